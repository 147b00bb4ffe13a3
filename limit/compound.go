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

// Compound evaluates its limiters in order, short-circuiting on the
// first non-None decision.
type Compound struct {
	limiters []Limiter
}

// NewCompound builds a Compound evaluating limiters in the given order.
func NewCompound(limiters ...Limiter) Compound {
	return Compound{limiters: limiters}
}

// With returns a copy of c with l appended to the evaluation chain.
func (c Compound) With(l Limiter) Compound {
	next := make([]Limiter, len(c.limiters)+1)
	copy(next, c.limiters)
	next[len(c.limiters)] = l
	return Compound{limiters: next}
}

func (c Compound) Evaluate(s *status.Realtime) Limit {
	for _, l := range c.limiters {
		if d := l.Evaluate(s); d.Decision != DecisionNone {
			return d
		}
	}
	return None
}
