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
	"github.com/HdrHistogram/hdrhistogram-go"

	"loadforge/metric"
)

// Combined fans a single Record out to two independently-typed
// sub-storages, e.g. a per-metric HashMap alongside a run-wide Total.
// It composes statically (L and R are concrete, monomorphized types),
// which is the Go analogue of the reference implementation's trait-object
// composition without the heap allocation or vtable indirection.
type Combined[M metric.Metric, L Storage[M, L], R Storage[M, R]] struct {
	left  L
	right R
}

// NewCombined pairs an existing left and right storage.
func NewCombined[M metric.Metric, L Storage[M, L], R Storage[M, R]](left L, right R) Combined[M, L, R] {
	return Combined[M, L, R]{left: left, right: right}
}

// Record forwards value to both sub-storages.
func (c Combined[M, L, R]) Record(m M, value uint64) {
	c.left.Record(m, value)
	c.right.Record(m, value)
}

// Value returns the left sub-storage's view for m. Use Left/Right to
// reach either side explicitly.
func (c Combined[M, L, R]) Value(m M) *hdrhistogram.Histogram {
	return c.left.Value(m)
}

// Left returns the left sub-storage.
func (c Combined[M, L, R]) Left() L {
	return c.left
}

// Right returns the right sub-storage.
func (c Combined[M, L, R]) Right() R {
	return c.right
}

// Merge merges both sides independently.
func (c Combined[M, L, R]) Merge(other Combined[M, L, R]) Combined[M, L, R] {
	return Combined[M, L, R]{
		left:  c.left.Merge(other.left),
		right: c.right.Merge(other.right),
	}
}

// Clone clones both sides independently.
func (c Combined[M, L, R]) Clone() Combined[M, L, R] {
	return Combined[M, L, R]{
		left:  c.left.Clone(),
		right: c.right.Clone(),
	}
}
