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

package aggregate

import (
	"time"

	"loadforge/clock"
)

// StartTime anchors elapsed-time bucketing to a fixed moment plus an
// optional wall-clock offset, and owns the clock used to read "now".
// The zero value is not usable; construct with NewStartTime or Now.
type StartTime struct {
	clock  clock.Clock
	offset time.Duration
	anchor time.Time
}

// Now anchors a StartTime to the current instant of c.
func Now(c clock.Clock) StartTime {
	return StartTime{clock: c, anchor: c.Now()}
}

// NewStartTime builds a StartTime with an explicit wall-clock offset and
// monotonic anchor, mirroring the reference implementation's
// StartTime::new constructor used in settings tests.
func NewStartTime(c clock.Clock, offset time.Duration, anchor time.Time) StartTime {
	return StartTime{clock: c, offset: offset, anchor: anchor}
}

// Window returns the bucket-boundary duration elapsed since the anchor,
// rounded to the nearest multiple of size with ties rounded up. A zero
// size disables rounding and returns the raw elapsed duration.
func (s StartTime) Window(size time.Duration) time.Duration {
	elapsed := s.offset + s.clock.Now().Sub(s.anchor)
	if size <= 0 {
		return elapsed
	}

	sizeNanos := size.Nanoseconds()
	elapsedNanos := elapsed.Nanoseconds()

	quotient := elapsedNanos / sizeNanos
	remainder := elapsedNanos % sizeNanos

	if remainder*2 >= sizeNanos {
		quotient++
	}

	return time.Duration(quotient * sizeNanos)
}
