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

import (
	"time"

	"golang.org/x/time/rate"

	"loadforge/status"
)

// Rate is a supplemental limiter beyond the core algebra: a token
// bucket admitting at most r operations per second with the given
// burst, independent of in-flight concurrency. Unlike Concurrency it
// shapes throughput rather than capping how many operations overlap.
type Rate struct {
	limiter *rate.Limiter
	waitFor time.Duration
}

// NewRate builds a token-bucket limiter.
func NewRate(r rate.Limit, burst int, waitFor time.Duration) Rate {
	return Rate{limiter: rate.NewLimiter(r, burst), waitFor: waitFor}
}

func (r Rate) Evaluate(_ *status.Realtime) Limit {
	if r.limiter.Allow() {
		return None
	}
	return WaitFor(r.waitFor)
}
