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

// Package storage implements the aggregate-storage layer: mappings from
// metric identifiers to latency histograms, and the combinators
// (Combined, Sharded) that compose them.
package storage

import (
	"github.com/HdrHistogram/hdrhistogram-go"

	"loadforge/metric"
)

// defaultSigFig is the precision used by every prototype unless
// overridden with WithLimit.
const defaultSigFig = 3

// defaultCeiling emulates the reference implementation's
// auto-resizing histogram: hdrhistogram-go always needs an explicit
// highest trackable value, so the default prototype picks a ceiling
// generous enough (24h counted in nanoseconds, so at least 24h at any
// coarser scale) that ordinary load-test latencies never overflow it.
const defaultCeiling = int64(24 * 60 * 60 * 1_000_000_000) // 24h in nanoseconds-equivalent units

// Storage is the contract every aggregate-storage variant satisfies. It
// is expressed with an F-bounded type parameter (S is the concrete
// implementing type) instead of a plain interface value so that
// Combined/Sharded compose by embedding concrete, monomorphized types
// rather than boxing through a vtable on every Record call.
type Storage[M metric.Metric, S any] interface {
	// Record inserts value into the histogram for metric, lazily
	// creating it from the configured prototype.
	Record(m M, value uint64)

	// Value returns a read-only view of the histogram for metric, or
	// the empty prototype shape if metric was never recorded.
	Value(m M) *hdrhistogram.Histogram

	// Merge returns the union of self and other: bin-wise addition for
	// shared metrics, carried over untouched for metrics unique to
	// either side. Commutative, associative, count-preserving.
	Merge(other S) S

	// Clone returns an empty copy that preserves prototype shape but
	// not recorded counts, used to hand per-virtual-user clones of a
	// shared prototype.
	Clone() S
}

func newProto(sigfig uint8, max int64) *hdrhistogram.Histogram {
	h := hdrhistogram.New(0, max, int(sigfig))
	return h
}

func cloneProto(proto *hdrhistogram.Histogram) *hdrhistogram.Histogram {
	return hdrhistogram.New(proto.LowestTrackableValue(), proto.HighestTrackableValue(), int(proto.SignificantFigures()))
}
