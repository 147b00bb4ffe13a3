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

// MaxDuration shuts the run down once more than Max has elapsed since
// its epoch. WithDelay shifts the epoch forward, granting a grace
// period before the limiter starts counting.
type MaxDuration struct {
	clk   clock.Clock
	max   time.Duration
	epoch time.Time
}

// NewMaxDuration anchors the epoch to c's current time.
func NewMaxDuration(c clock.Clock, max time.Duration) MaxDuration {
	return MaxDuration{clk: c, max: max, epoch: c.Now()}
}

// WithDelay returns a copy of m whose epoch is shifted forward by d.
func (m MaxDuration) WithDelay(d time.Duration) MaxDuration {
	m.epoch = m.epoch.Add(d)
	return m
}

func (m MaxDuration) Evaluate(_ *status.Realtime) Limit {
	if m.clk.Now().Sub(m.epoch) > m.max {
		return Shutdown
	}
	return None
}
