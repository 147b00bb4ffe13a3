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

const defaultWindow = 100 * time.Millisecond

// Settings is an immutable bundle of the window size, scale, and epoch
// every timeline aggregate built from the same builder shares. Bucket
// keys only align across aggregates that share identical Settings.
type Settings struct {
	window time.Duration
	scale  Scale
	zero   StartTime
}

// DefaultSettings returns window=100ms, scale=microseconds, epoch=now
// (using the real clock).
func DefaultSettings() Settings {
	return Settings{
		window: defaultWindow,
		scale:  Microseconds,
		zero:   Now(clock.Real),
	}
}

// NewSettings builds Settings anchored to a caller-supplied clock, for
// deterministic tests.
func NewSettings(c clock.Clock) Settings {
	return Settings{
		window: defaultWindow,
		scale:  Microseconds,
		zero:   Now(c),
	}
}

// WithWindow returns a copy of s with a different bucket window.
func (s Settings) WithWindow(window time.Duration) Settings {
	s.window = window
	return s
}

// WithScale returns a copy of s with a different latency scale.
func (s Settings) WithScale(scale Scale) Settings {
	s.scale = scale
	return s
}

// WithZero returns a copy of s anchored to a different StartTime.
func (s Settings) WithZero(zero StartTime) Settings {
	s.zero = zero
	return s
}

// Window returns the configured bucket width.
func (s Settings) Window() time.Duration {
	return s.window
}

// Scale returns the configured latency scale.
func (s Settings) Scale() Scale {
	return s.scale
}

// Zero returns the configured epoch.
func (s Settings) Zero() StartTime {
	return s.zero
}
