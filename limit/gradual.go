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

	"loadforge/clock"
	"loadforge/status"
)

// Gradual is a supplemental limiter beyond the core algebra: a ceiling
// on active connections that ramps linearly from startCeiling to
// maxCeiling over rampDuration, instead of Concurrency's fixed cap.
// Useful for ramping load up at run start rather than slamming a
// target at full concurrency immediately.
type Gradual struct {
	clk          clock.Clock
	start        time.Time
	startCeiling uint64
	maxCeiling   uint64
	rampDuration time.Duration
	waitFor      time.Duration
}

// NewGradual anchors the ramp to c's current time.
func NewGradual(c clock.Clock, startCeiling, maxCeiling uint64, rampDuration, waitFor time.Duration) Gradual {
	return Gradual{
		clk:          c,
		start:        c.Now(),
		startCeiling: startCeiling,
		maxCeiling:   maxCeiling,
		rampDuration: rampDuration,
		waitFor:      waitFor,
	}
}

func (g Gradual) ceiling() uint64 {
	if g.rampDuration <= 0 {
		return g.maxCeiling
	}
	elapsed := g.clk.Now().Sub(g.start)
	if elapsed >= g.rampDuration {
		return g.maxCeiling
	}
	frac := float64(elapsed) / float64(g.rampDuration)
	span := float64(g.maxCeiling) - float64(g.startCeiling)
	return g.startCeiling + uint64(frac*span)
}

func (g Gradual) Evaluate(s *status.Realtime) Limit {
	if s.ActiveConnections() >= g.ceiling() {
		return WaitFor(g.waitFor)
	}
	return None
}
