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
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

func TestStartTimeReturnsZeroForNotPassedWindow(t *testing.T) {
	mock := clock.NewMock()
	start := Now(mock)

	if got := start.Window(time.Millisecond); got != 0 {
		t.Fatalf("Window = %s, want 0", got)
	}
}

func TestStartTimeSpreads50msBuckets(t *testing.T) {
	mock := clock.NewMock()
	start := Now(mock)
	const window = 50 * time.Millisecond

	if got := start.Window(window); got != 0 {
		t.Fatalf("Window = %s, want 0", got)
	}

	mock.Add(24 * time.Millisecond)
	if got := start.Window(window); got != 0 {
		t.Fatalf("Window at +24ms = %s, want 0", got)
	}

	mock.Add(1 * time.Millisecond) // +25ms: exact half, ties round up
	if got := start.Window(window); got != 50*time.Millisecond {
		t.Fatalf("Window at +25ms = %s, want 50ms", got)
	}

	mock.Add(24 * time.Millisecond) // +49ms
	if got := start.Window(window); got != 50*time.Millisecond {
		t.Fatalf("Window at +49ms = %s, want 50ms", got)
	}

	mock.Add(1 * time.Millisecond) // +50ms
	if got := start.Window(window); got != 50*time.Millisecond {
		t.Fatalf("Window at +50ms = %s, want 50ms", got)
	}

	mock.Add(24 * time.Millisecond) // +74ms
	if got := start.Window(window); got != 50*time.Millisecond {
		t.Fatalf("Window at +74ms = %s, want 50ms", got)
	}

	mock.Add(1 * time.Millisecond) // +75ms: exact half of the next window, rounds up
	if got := start.Window(window); got != 100*time.Millisecond {
		t.Fatalf("Window at +75ms = %s, want 100ms", got)
	}
}

func TestStartTimeSpreadsSecondBuckets(t *testing.T) {
	mock := clock.NewMock()
	start := Now(mock)
	const window = 2 * time.Second

	mock.Add(999 * time.Millisecond)
	if got := start.Window(window); got != 0 {
		t.Fatalf("Window at +999ms = %s, want 0", got)
	}

	mock.Add(1 * time.Millisecond) // +1s
	if got := start.Window(window); got != 2*time.Second {
		t.Fatalf("Window at +1s = %s, want 2s", got)
	}

	mock.Add(1999 * time.Millisecond) // +2.999s
	if got := start.Window(window); got != 2*time.Second {
		t.Fatalf("Window at +2.999s = %s, want 2s", got)
	}

	mock.Add(1 * time.Millisecond) // +3s
	if got := start.Window(window); got != 4*time.Second {
		t.Fatalf("Window at +3s = %s, want 4s", got)
	}

	mock.Add(4199 * time.Millisecond) // +7.199s
	if got := start.Window(window); got != 8*time.Second {
		t.Fatalf("Window at +7.199s = %s, want 8s", got)
	}
}

func TestStartTimeReturnsDurationIfWindowIsZero(t *testing.T) {
	mock := clock.NewMock()
	start := Now(mock)

	mock.Add(411 * time.Millisecond)
	if got := start.Window(0); got != 411*time.Millisecond {
		t.Fatalf("Window(0) = %s, want 411ms", got)
	}
}

func TestNewStartTimeHonorsExplicitOffset(t *testing.T) {
	mock := clock.NewMock()
	anchor := mock.Now()
	start := NewStartTime(mock, 10*time.Millisecond, anchor)

	mock.Add(5 * time.Millisecond)
	// offset (10ms) + elapsed since anchor (5ms) = 15ms
	if got := start.Window(0); got != 15*time.Millisecond {
		t.Fatalf("Window(0) = %s, want 15ms", got)
	}
}
