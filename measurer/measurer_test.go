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

package measurer

import (
	"context"
	"errors"
	"testing"
	"time"

	"loadforge/aggregate"
	"loadforge/aggregate/storage"
	"loadforge/aggregate/timeline"
	realclock "loadforge/clock"
	"loadforge/metric"
	"loadforge/recorderror"
)

func newTestMeasurer(t *testing.T) *Measurer[metric.StringMetric, *storage.HashMap[metric.StringMetric]] {
	t.Helper()
	settings := aggregate.NewSettings(realclock.Real)
	builder := timeline.NewBuilder[metric.StringMetric](storage.NewHashMap[metric.StringMetric](), settings)
	agg := builder.Build()
	return New[metric.StringMetric](realclock.Real, agg)
}

func TestMeasureRecordsWithoutReturnValue(t *testing.T) {
	m := newTestMeasurer(t)

	Measure[metric.StringMetric, *storage.HashMap[metric.StringMetric], struct{}](m, "noop", func() struct{} {
		return struct{}{}
	})

	if got := m.Aggregate().Total().Storage.Value("noop").TotalCount(); got != 1 {
		t.Fatalf("recorded count = %d, want 1", got)
	}
}

func TestMeasureReturnsActionResult(t *testing.T) {
	m := newTestMeasurer(t)

	result := Measure[metric.StringMetric, *storage.HashMap[metric.StringMetric], int](m, "compute", func() int {
		return 42
	})

	if result != 42 {
		t.Fatalf("result = %d, want 42", result)
	}
}

func TestTryMeasureRecordsSuccess(t *testing.T) {
	m := newTestMeasurer(t)

	result, err := TryMeasure[metric.StringMetric, *storage.HashMap[metric.StringMetric], string](
		m, context.Background(), "call", func(ctx context.Context) (string, error) {
			return "ok", nil
		})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Fatalf("result = %q, want %q", result, "ok")
	}
	if got := m.Aggregate().Total().Errors; got != 0 {
		t.Fatalf("errors = %d, want 0", got)
	}
}

func TestTryMeasureRecordsError(t *testing.T) {
	m := newTestMeasurer(t)
	wantErr := errors.New("boom")

	_, err := TryMeasure[metric.StringMetric, *storage.HashMap[metric.StringMetric], string](
		m, context.Background(), "call", func(ctx context.Context) (string, error) {
			return "", wantErr
		})

	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want to wrap %v", err, wantErr)
	}
	if got := m.Aggregate().Total().Errors; got != 1 {
		t.Fatalf("errors = %d, want 1", got)
	}
}

func TestTryMeasureReportsTimeout(t *testing.T) {
	m := newTestMeasurer(t)
	m.WithTimeout(20 * time.Millisecond)

	release := make(chan struct{})
	defer close(release)

	_, err := TryMeasure[metric.StringMetric, *storage.HashMap[metric.StringMetric], string](
		m, context.Background(), "slow", func(ctx context.Context) (string, error) {
			select {
			case <-release:
				return "too late", nil
			case <-ctx.Done():
				return "", ctx.Err()
			}
		})

	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if !recorderror.IsTimeout(err) {
		t.Fatalf("err = %v, want a timeout-kind error", err)
	}
	if got := m.Aggregate().Total().Errors; got != 1 {
		t.Fatalf("errors = %d, want 1", got)
	}
}

func TestAddMeasurementRecordsPreMeasuredSample(t *testing.T) {
	m := newTestMeasurer(t)

	m.AddMeasurement("external", 15*time.Millisecond, nil)

	if got := m.Aggregate().Total().Storage.Value("external").TotalCount(); got != 1 {
		t.Fatalf("recorded count = %d, want 1", got)
	}
}
