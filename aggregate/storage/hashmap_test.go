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

	"loadforge/metric"
)

func TestHashMapRecordsPerMetric(t *testing.T) {
	h := NewHashMap[metric.StringMetric]()

	h.Record("login", 100)
	h.Record("login", 200)
	h.Record("checkout", 50)

	if got := h.Value("login").TotalCount(); got != 2 {
		t.Fatalf("login count = %d, want 2", got)
	}
	if got := h.Value("checkout").TotalCount(); got != 1 {
		t.Fatalf("checkout count = %d, want 1", got)
	}
	if got := h.Value("unseen").TotalCount(); got != 0 {
		t.Fatalf("unseen count = %d, want 0", got)
	}
}

func TestHashMapMergeIsCountPreserving(t *testing.T) {
	a := NewHashMap[metric.StringMetric]()
	a.Record("login", 100)
	a.Record("login", 150)

	b := NewHashMap[metric.StringMetric]()
	b.Record("login", 200)
	b.Record("checkout", 75)

	merged := a.Merge(b)

	if got := merged.Value("login").TotalCount(); got != 3 {
		t.Fatalf("merged login count = %d, want 3", got)
	}
	if got := merged.Value("checkout").TotalCount(); got != 1 {
		t.Fatalf("merged checkout count = %d, want 1", got)
	}

	// originals are untouched
	if got := a.Value("login").TotalCount(); got != 2 {
		t.Fatalf("a.login count mutated: %d, want 2", got)
	}
}

func TestHashMapCloneDropsCounts(t *testing.T) {
	a := NewHashMap[metric.StringMetric]()
	a.Record("login", 100)

	clone := a.Clone()
	if got := clone.Value("login").TotalCount(); got != 0 {
		t.Fatalf("clone carried counts over: %d, want 0", got)
	}

	clone.Record("login", 50)
	if got := a.Value("login").TotalCount(); got != 1 {
		t.Fatalf("clone write leaked into original: %d, want 1", got)
	}
}

func TestHashMapWithLimitDropsOverflow(t *testing.T) {
	h := WithLimit[metric.StringMetric](1000, 3)
	h.Record("login", 500)
	h.Record("login", 5_000_000) // out of range, dropped

	if got := h.Value("login").TotalCount(); got != 1 {
		t.Fatalf("count = %d, want 1 (overflow value dropped)", got)
	}
}

// TestHashMapMergeWidensBoundedShape merges a bounded storage into a
// generous-ceiling one (and vice versa) and checks neither direction
// drops the wide side's out-of-range sample, keeping Merge commutative
// regardless of which side is the receiver.
func TestHashMapMergeWidensBoundedShape(t *testing.T) {
	wide := NewHashMap[metric.StringMetric]()
	wide.Record("login", 5_000_000) // would overflow a 1000-ceiling storage

	bounded := WithLimit[metric.StringMetric](1000, 3)
	bounded.Record("login", 500)

	boundedFirst := bounded.Merge(wide)
	if got := boundedFirst.Value("login").TotalCount(); got != 2 {
		t.Fatalf("bounded.Merge(wide) login count = %d, want 2 (wide sample must not be dropped)", got)
	}

	wideFirst := wide.Merge(bounded)
	if got := wideFirst.Value("login").TotalCount(); got != 2 {
		t.Fatalf("wide.Merge(bounded) login count = %d, want 2", got)
	}

	if boundedFirst.protoMax != wideFirst.protoMax {
		t.Fatalf("merge result shape depends on receiver order: %d vs %d", boundedFirst.protoMax, wideFirst.protoMax)
	}
}
