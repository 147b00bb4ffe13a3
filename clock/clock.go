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

// Package clock provides the monotonic time source used throughout
// loadforge. Every component that needs "now" takes a Clock instead of
// calling time.Now directly, so tests can swap in a benbjohnson/clock
// Mock and advance it explicitly.
package clock

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
)

// Clock is the minimal surface loadforge depends on. clock.Clock from
// github.com/benbjohnson/clock satisfies it directly, in both its real
// and mock forms.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
	After(d time.Duration) <-chan time.Time
}

// Real is the production clock, backed by the OS monotonic clock.
var Real Clock = clock.New()

// SleepContext suspends for d or until ctx is cancelled, whichever comes
// first. Returns ctx.Err() if cancelled before d elapses.
func SleepContext(ctx context.Context, c Clock, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := c.After(d)
	select {
	case <-timer:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
