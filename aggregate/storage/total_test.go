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

package storage

import (
	"testing"

	"github.com/HdrHistogram/hdrhistogram-go"

	"loadforge/metric"
)

func TestTotalIgnoresMetricIdentity(t *testing.T) {
	total := NewTotal[metric.StringMetric]()
	total.Record("login", 100)
	total.Record("checkout", 200)

	if got := total.Value("login").TotalCount(); got != 2 {
		t.Fatalf("count = %d, want 2", got)
	}
	if got := total.Value("checkout").TotalCount(); got != 2 {
		t.Fatalf("checkout view count = %d, want 2 (same shared histogram)", got)
	}
}

func TestTotalMerge(t *testing.T) {
	a := NewTotal[metric.StringMetric]()
	a.Record("login", 100)

	b := NewTotal[metric.StringMetric]()
	b.Record("checkout", 200)
	b.Record("checkout", 300)

	merged := a.Merge(b)
	if got := merged.Value("x").TotalCount(); got != 3 {
		t.Fatalf("merged count = %d, want 3", got)
	}
}

// TestTotalMergeWidensBoundedShape mirrors HashMap's widening
// contract: merging a bounded Total with a generous-ceiling one must
// not drop the wide side's out-of-range sample, in either order.
func TestTotalMergeWidensBoundedShape(t *testing.T) {
	wide := NewTotal[metric.StringMetric]()
	wide.Record("x", 5_000_000)

	bounded := &Total[metric.StringMetric]{
		histogram: hdrhistogram.New(0, 1000, 3),
		protoMax:  1000,
		protoSig:  3,
	}
	bounded.Record("x", 500)

	boundedFirst := bounded.Merge(wide)
	if got := boundedFirst.Value("x").TotalCount(); got != 2 {
		t.Fatalf("bounded.Merge(wide) count = %d, want 2 (wide sample must not be dropped)", got)
	}

	wideFirst := wide.Merge(bounded)
	if got := wideFirst.Value("x").TotalCount(); got != 2 {
		t.Fatalf("wide.Merge(bounded) count = %d, want 2", got)
	}

	if boundedFirst.protoMax != wideFirst.protoMax {
		t.Fatalf("merge result shape depends on receiver order: %d vs %d", boundedFirst.protoMax, wideFirst.protoMax)
	}
}
