// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package limit

import "loadforge/status"

// MaxOperations shuts the run down once total_operations reaches Max.
type MaxOperations struct {
	Max uint64
}

func (m MaxOperations) Evaluate(s *status.Realtime) Limit {
	if s.TotalOperations() >= m.Max {
		return Shutdown
	}
	return None
}
