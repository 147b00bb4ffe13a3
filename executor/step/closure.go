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

package step

import (
	"context"

	"loadforge/clock"
	"loadforge/recorderror"
)

// Closure wraps a function T -> (T, error). On completion it pushes
// exactly one Event whose Kind is derived from the result: Success on
// a nil error, Timeout when the error is a timeout-class RecordError,
// Error otherwise.
type Closure[T any] struct {
	Name string
	Fn   func(ctx context.Context, value T) (T, error)
}

func (c Closure[T]) Run(ctx context.Context, clk clock.Clock, events []Event, value T) ([]Event, T, error) {
	start := clk.Now()
	result, err := c.Fn(ctx, value)
	latency := clk.Now().Sub(start)

	kind := KindSuccess
	switch {
	case err == nil:
	case recorderror.IsTimeout(err):
		kind = KindTimeout
	default:
		kind = KindError
	}

	events = append(events, Event{Name: c.Name, Kind: kind, Latency: latency, Err: err})
	return events, result, err
}
