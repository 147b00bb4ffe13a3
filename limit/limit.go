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

// Package limit implements the limiter algebra (spec component C10):
// pure functions from shared status to a three-way decision, composed
// with Compound's short-circuiting evaluation.
package limit

import (
	"context"
	"errors"
	"time"

	"loadforge/clock"
	"loadforge/status"
)

// Decision discriminates the three outcomes a Limiter can reach.
type Decision int

const (
	DecisionNone Decision = iota
	DecisionWait
	DecisionShutdown
)

// Limit is the tagged decision a Limiter returns.
type Limit struct {
	Decision Decision
	Wait     time.Duration
}

// None means no limiter objected; the driver proceeds immediately.
var None = Limit{Decision: DecisionNone}

// Shutdown means a limiter is terminating the virtual user.
var Shutdown = Limit{Decision: DecisionShutdown}

// WaitFor builds a Wait(d) decision.
func WaitFor(d time.Duration) Limit {
	return Limit{Decision: DecisionWait, Wait: d}
}

// Limiter evaluates the shared realtime status into a Limit decision.
type Limiter interface {
	Evaluate(s *status.Realtime) Limit
}

// ErrShutdown is the interruption-class error Process returns for a
// Shutdown decision; the driver catches it to terminate the virtual
// user.
var ErrShutdown = errors.New("limiter requested shutdown")

// Process acts on a Limit decision: None returns immediately, Wait
// suspends for its duration (honoring ctx cancellation), Shutdown
// returns ErrShutdown.
func Process(ctx context.Context, c clock.Clock, d Limit) error {
	switch d.Decision {
	case DecisionNone:
		return nil
	case DecisionWait:
		return clock.SleepContext(ctx, c, d.Wait)
	default:
		return ErrShutdown
	}
}
