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

// Package scenario defines the user-supplied state machine a driver
// runs per virtual user (spec component C8) and Func, a functional
// adapter covering the common stateless case without requiring a code
// generator.
//
// The reference implementation generates ScenarioBuilder/Scenario pairs
// from an async function via a compile-time macro, threading arbitrary
// default-initialized state parameters by exclusive reference. Go has
// no macros; callers who need per-iteration mutable state close over it
// themselves (the closure's captured variables ARE the state). The
// driver asks its Config.NewScenario for one Scenario per virtual user,
// so state captured by a closure created there persists across that
// virtual user's iterations.
package scenario

import (
	"context"

	"loadforge/aggregate/storage"
	"loadforge/measurer"
	"loadforge/metric"
)

// Scenario performs one iteration of a virtual user's workload.
// Execute may call Measure/TryMeasure/AddMeasurement on m arbitrarily
// many times and returns any error from the user's own domain; the
// driver does not interpret it beyond recording that the iteration
// failed.
type Scenario[M metric.Metric, S storage.Storage[M, S]] interface {
	Execute(ctx context.Context, m *measurer.Measurer[M, S]) error
}

// Builder constructs a fresh Scenario with default-initialized state
// for each virtual user. Build must be cheap and pure.
type Builder[M metric.Metric, S storage.Storage[M, S], Sc Scenario[M, S]] interface {
	Build() Sc
}

// Func adapts a plain function into both a Scenario and its own
// Builder for the stateless case: Build returns Func itself since
// there is no per-user state to freshly initialize beyond whatever the
// closure already captured.
type Func[M metric.Metric, S storage.Storage[M, S]] func(ctx context.Context, m *measurer.Measurer[M, S]) error

// Execute calls f.
func (f Func[M, S]) Execute(ctx context.Context, m *measurer.Measurer[M, S]) error {
	return f(ctx, m)
}

// Build returns f unchanged.
func (f Func[M, S]) Build() Func[M, S] {
	return f
}
