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

func newShardedHashMap() *Sharded[metric.StringMetric, *HashMap[metric.StringMetric]] {
	return NewSharded[metric.StringMetric](4, NewHashMap[metric.StringMetric])
}

func TestShardedRoutesConsistently(t *testing.T) {
	s := newShardedHashMap()

	s.Record("login", 100)
	s.Record("login", 200)
	s.Record("checkout", 50)

	if got := s.Value("login").TotalCount(); got != 2 {
		t.Fatalf("login count = %d, want 2", got)
	}
	if got := s.Value("checkout").TotalCount(); got != 1 {
		t.Fatalf("checkout count = %d, want 1", got)
	}
}

func TestShardedMergeAndClone(t *testing.T) {
	a := newShardedHashMap()
	a.Record("login", 100)

	b := newShardedHashMap()
	b.Record("login", 200)
	b.Record("checkout", 50)

	merged := a.Merge(b)
	if got := merged.Value("login").TotalCount(); got != 2 {
		t.Fatalf("merged login count = %d, want 2", got)
	}
	if got := merged.Value("checkout").TotalCount(); got != 1 {
		t.Fatalf("merged checkout count = %d, want 1", got)
	}

	clone := merged.Clone()
	if got := clone.Value("login").TotalCount(); got != 0 {
		t.Fatalf("clone carried counts: %d, want 0", got)
	}
	if got := clone.ShardCount(); got != 4 {
		t.Fatalf("clone shard count = %d, want 4", got)
	}
}
