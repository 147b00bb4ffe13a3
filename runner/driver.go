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

// Package runner implements the scenario driver (spec component C12):
// per virtual user, consult the limiter chain, run one scenario
// iteration, repeat; at shutdown, merge every virtual user's timeline
// aggregate into one canonical aggregate.
package runner

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"loadforge/aggregate/storage"
	"loadforge/aggregate/timeline"
	"loadforge/clock"
	"loadforge/limit"
	"loadforge/measurer"
	"loadforge/metric"
	"loadforge/scenario"
	"loadforge/status"
)

// Config bundles everything a Driver needs to run a load test.
type Config[M metric.Metric, S storage.Storage[M, S]] struct {
	// VirtualUsers is the number of concurrent scenario loops to run.
	VirtualUsers int
	// Clock is shared by every measurer and limiter for deterministic tests.
	Clock clock.Clock
	// Limiter is consulted once per iteration, shared read-only across
	// virtual users.
	Limiter limit.Limiter
	// Status is the shared realtime counter handle every virtual user
	// updates; all virtual users use this same handle, and callers can
	// keep a reference to it to observe the run.
	Status *status.Realtime
	// NewScenario builds a fresh Scenario for each virtual user.
	NewScenario func() scenario.Scenario[M, S]
	// TimelineBuilder constructs each virtual user's task-local
	// aggregate and owns the shared virtual-user counter.
	TimelineBuilder *timeline.Builder[M, S]
	// MeasurerTimeout is applied to every virtual user's measurer, zero
	// disables it.
	MeasurerTimeout time.Duration
}

// Driver runs Config.VirtualUsers concurrent scenario loops and merges
// their results at shutdown.
type Driver[M metric.Metric, S storage.Storage[M, S]] struct {
	cfg Config[M, S]
}

// New builds a Driver from cfg.
func New[M metric.Metric, S storage.Storage[M, S]](cfg Config[M, S]) *Driver[M, S] {
	return &Driver[M, S]{cfg: cfg}
}

// Run starts every virtual user, blocks until ctx is cancelled or a
// limiter shuts the run down, then returns the canonical merged
// aggregate.
func (d *Driver[M, S]) Run(ctx context.Context) *timeline.Aggregate[M, S] {
	aggregates := make([]*timeline.Aggregate[M, S], d.cfg.VirtualUsers)

	var wg sync.WaitGroup
	for i := 0; i < d.cfg.VirtualUsers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := uuid.New()
			agg := d.cfg.TimelineBuilder.Build()
			aggregates[i] = agg

			m := measurer.New[M](d.cfg.Clock, agg)
			if d.cfg.MeasurerTimeout > 0 {
				m = m.WithTimeout(d.cfg.MeasurerTimeout)
			}

			sc := d.cfg.NewScenario()
			d.runVirtualUser(ctx, id, sc, m)
		}()
	}
	wg.Wait()

	canonical := d.cfg.TimelineBuilder.Build()
	for _, agg := range aggregates {
		agg.MergeInto(canonical)
		agg.Release()
	}
	canonical.Release()
	return canonical
}

func (d *Driver[M, S]) runVirtualUser(ctx context.Context, id uuid.UUID, sc scenario.Scenario[M, S], m *measurer.Measurer[M, S]) {
	slog.Debug("virtual user started", "id", id)
	var iterations int
	defer func() {
		slog.Debug("virtual user stopped", "id", id, "iterations", iterations)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		decision := d.cfg.Limiter.Evaluate(d.cfg.Status)
		if err := limit.Process(ctx, d.cfg.Clock, decision); err != nil {
			return
		}

		d.cfg.Status.OperationStarted()
		_ = sc.Execute(ctx, m)
		d.cfg.Status.OperationFinished()
		iterations++
	}
}
