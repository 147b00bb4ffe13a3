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

// Package step is the alternative, pipeline-of-named-steps scenario
// surface (spec component C9): each step receives a state value,
// returns a fallible new state, and appends an Event to a
// thread-through sequence.
package step

import (
	"context"
	"time"

	"loadforge/clock"
)

// Kind classifies how a step's event concluded.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindTimeout:
		return "timeout"
	default:
		return "error"
	}
}

// Event records the outcome of one executed step.
type Event struct {
	Name    string
	Kind    Kind
	Latency time.Duration
	Err     error
}

// Step threads a state value of type T through one pipeline stage,
// appending its own Event to events. Leaf steps append at most one
// Event per Run; Sequence appends the events of both of its children.
type Step[T any] interface {
	Run(ctx context.Context, c clock.Clock, events []Event, value T) ([]Event, T, error)
}
