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

// Package status holds the real-time, multi-writer counters shared
// across every virtual user (spec component C11).
package status

import (
	"math"
	"sync/atomic"
)

type realtimeState struct {
	// activeOperations is incremented and decremented once per virtual
	// user per iteration, making it the hottest counter in the run; it
	// is striped to keep that traffic off a single cache line.
	activeOperations  *stripedCounter
	activeConnections atomic.Uint64
	totalOperations   atomic.Uint64
}

// Realtime is a reference-counted handle onto the three shared
// counters: Clone copies the handle, not the underlying values, so
// every clone observes the same state.
type Realtime struct {
	state *realtimeState
}

// NewRealtime builds a fresh, zeroed Realtime.
func NewRealtime() *Realtime {
	return &Realtime{state: &realtimeState{activeOperations: newStripedCounter()}}
}

// Clone returns a handle sharing the same underlying counters.
func (r *Realtime) Clone() *Realtime {
	return &Realtime{state: r.state}
}

func saturatingIncrement(v *atomic.Uint64) {
	for {
		cur := v.Load()
		if cur == math.MaxUint64 {
			return
		}
		if v.CompareAndSwap(cur, cur+1) {
			return
		}
	}
}

func saturatingDecrement(v *atomic.Uint64) {
	for {
		cur := v.Load()
		if cur == 0 {
			return
		}
		if v.CompareAndSwap(cur, cur-1) {
			return
		}
	}
}

// OperationStarted increments both active and total operations.
func (r *Realtime) OperationStarted() {
	r.state.activeOperations.increment()
	saturatingIncrement(&r.state.totalOperations)
}

// OperationFinished decrements active operations.
func (r *Realtime) OperationFinished() {
	r.state.activeOperations.decrement()
}

// ConnectionOpened increments active connections, independent of
// operation counters.
func (r *Realtime) ConnectionOpened() {
	saturatingIncrement(&r.state.activeConnections)
}

// ConnectionClosed decrements active connections.
func (r *Realtime) ConnectionClosed() {
	saturatingDecrement(&r.state.activeConnections)
}

func (r *Realtime) ActiveOperations() uint64 {
	return r.state.activeOperations.load()
}

func (r *Realtime) ActiveConnections() uint64 {
	return r.state.activeConnections.Load()
}

func (r *Realtime) TotalOperations() uint64 {
	return r.state.totalOperations.Load()
}
