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

// Package timeline implements the per-virtual-user timeline aggregate:
// a sorted sequence of time-bucketed storages plus a grand total, and
// the reference-counted virtual-user counter every built aggregate
// shares through its builder.
package timeline

import "sync/atomic"

// sharedCounter is the value every Counter clone shares: the number of
// live aggregates built from the same Builder.
type sharedCounter struct {
	value atomic.Uint64
}

// Counter is the Go stand-in for the reference's Drop-based RAII
// ticket: Rust decrements on scope exit automatically, Go has no
// destructors, so callers must invoke Release explicitly when a
// virtual user's aggregate is torn down. Release is idempotent.
type Counter struct {
	shared   *sharedCounter
	released bool
}

func newCounter(shared *sharedCounter) *Counter {
	shared.value.Add(1)
	return &Counter{shared: shared}
}

// Value reports the number of currently-live tickets sharing this
// counter, i.e. the number of concurrently active virtual users.
func (c *Counter) Value() uint64 {
	return c.shared.value.Load()
}

// Release decrements the shared counter exactly once, no matter how
// many times it is called or how many Aggregate clones hold this same
// Counter (Split hands the same *Counter to both halves).
func (c *Counter) Release() {
	if c.released {
		return
	}
	c.released = true
	for {
		v := c.shared.value.Load()
		if v == 0 {
			return
		}
		if c.shared.value.CompareAndSwap(v, v-1) {
			return
		}
	}
}
