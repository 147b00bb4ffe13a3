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

// Package measurer times a single action, applies an optional timeout,
// and routes the outcome into a timeline aggregate (spec component C7).
//
// Measure and TryMeasure are free functions rather than methods because
// Go methods cannot carry type parameters beyond their receiver's; both
// need an action-result type parameter the Measurer itself doesn't
// have.
package measurer

import (
	"context"
	"time"

	"loadforge/aggregate/storage"
	"loadforge/aggregate/timeline"
	"loadforge/clock"
	"loadforge/metric"
	"loadforge/recorderror"
)

// Measurer wraps a task-local timeline aggregate and an optional
// timeout applied to try_measure-style calls.
type Measurer[M metric.Metric, S storage.Storage[M, S]] struct {
	clock     clock.Clock
	aggregate *timeline.Aggregate[M, S]
	timeout   time.Duration
}

// New wraps agg with no timeout configured.
func New[M metric.Metric, S storage.Storage[M, S]](c clock.Clock, agg *timeline.Aggregate[M, S]) *Measurer[M, S] {
	return &Measurer[M, S]{clock: c, aggregate: agg}
}

// WithTimeout sets the timeout applied by TryMeasure. A zero duration
// disables the timeout.
func (m *Measurer[M, S]) WithTimeout(d time.Duration) *Measurer[M, S] {
	m.timeout = d
	return m
}

// Aggregate exposes the underlying timeline aggregate, mostly for the
// driver to merge/flush/release at shutdown.
func (m *Measurer[M, S]) Aggregate() *timeline.Aggregate[M, S] {
	return m.aggregate
}

// AddMeasurement records a pre-measured sample without running any
// action, the escape hatch for externally-timed work.
func (m *Measurer[M, S]) AddMeasurement(met M, latency time.Duration, recErr error) {
	m.aggregate.AddEntry(met, latency, recErr)
}

// Measure times action's total elapsed wall time, records exactly one
// measurement, and returns action's result. action cannot fail, so
// Measure cannot either.
func Measure[M metric.Metric, S storage.Storage[M, S], T any](
	m *Measurer[M, S], met M, action func() T,
) T {
	start := m.clock.Now()
	result := action()
	m.aggregate.AddEntry(met, m.clock.Now().Sub(start), nil)
	return result
}

// TryMeasure times action, recording exactly one measurement whether it
// succeeds, fails, or times out. On timeout the recorded latency is
// exactly the configured timeout (not the actual elapsed time) and the
// returned error is a *recorderror.RecordError of kind Timeout; on
// failure the returned error wraps action's own error as Dynamic.
func TryMeasure[M metric.Metric, S storage.Storage[M, S], T any](
	m *Measurer[M, S], ctx context.Context, met M, action func(ctx context.Context) (T, error),
) (T, error) {
	start := m.clock.Now()

	if m.timeout <= 0 {
		result, err := action(ctx)
		latency := m.clock.Now().Sub(start)
		return finishMeasurement(m, met, latency, result, err)
	}

	actionCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		result T
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := action(actionCtx)
		done <- outcome{result: result, err: err}
	}()

	select {
	case o := <-done:
		latency := m.clock.Now().Sub(start)
		return finishMeasurement(m, met, latency, o.result, o.err)
	case <-m.clock.After(m.timeout):
		cancel()
		var zero T
		timeoutErr := recorderror.Timeout(m.timeout)
		m.aggregate.AddEntry(met, m.timeout, timeoutErr)
		return zero, timeoutErr
	case <-ctx.Done():
		var zero T
		err := recorderror.Dynamic(ctx.Err())
		m.aggregate.AddEntry(met, m.clock.Now().Sub(start), err)
		return zero, err
	}
}

func finishMeasurement[M metric.Metric, S storage.Storage[M, S], T any](
	m *Measurer[M, S], met M, latency time.Duration, result T, err error,
) (T, error) {
	if err == nil {
		m.aggregate.AddEntry(met, latency, nil)
		return result, nil
	}
	wrapped := recorderror.Dynamic(err)
	m.aggregate.AddEntry(met, latency, wrapped)
	return result, wrapped
}
