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
	"log/slog"

	"github.com/HdrHistogram/hdrhistogram-go"

	"loadforge/metric"
)

// Total collapses every metric into a single histogram, discarding
// metric identity. It answers "what did the whole step/run look like"
// questions cheaply, without paying HashMap's per-metric bookkeeping
// (a variant of spec component C2).
type Total[M metric.Metric] struct {
	histogram *hdrhistogram.Histogram
	protoMax  int64
	protoSig  int
}

// NewTotal builds an empty Total with the default generous ceiling.
func NewTotal[M metric.Metric]() *Total[M] {
	return &Total[M]{
		histogram: hdrhistogram.New(0, defaultCeiling, defaultSigFig),
		protoMax:  defaultCeiling,
		protoSig:  defaultSigFig,
	}
}

// Record ignores m and records value into the single shared histogram.
func (t *Total[M]) Record(m M, value uint64) {
	if err := t.histogram.RecordValue(int64(value)); err != nil {
		slog.Warn("aggregate storage: dropped out-of-range value", "value", value, "error", err)
	}
}

// Value ignores m and always returns the shared histogram.
func (t *Total[M]) Value(m M) *hdrhistogram.Histogram {
	return t.histogram
}

// Merge returns the bin-wise union of t and other's single histograms.
//
// The result widens to max(t.protoMax, other.protoMax) and the wider
// sigfig setting rather than keeping the receiver's shape, so merging
// a generous-ceiling Total into a WithLimit-bounded one cannot
// silently drop the wide side's samples and Merge stays commutative.
func (t *Total[M]) Merge(other *Total[M]) *Total[M] {
	outMax := t.protoMax
	if other.protoMax > outMax {
		outMax = other.protoMax
	}
	outSig := t.protoSig
	if other.protoSig > outSig {
		outSig = other.protoSig
	}

	out := &Total[M]{
		histogram: hdrhistogram.New(0, outMax, outSig),
		protoMax:  outMax,
		protoSig:  outSig,
	}
	out.histogram.Merge(t.histogram)
	out.histogram.Merge(other.histogram)
	return out
}

// Clone returns an empty Total sharing this one's prototype bounds.
func (t *Total[M]) Clone() *Total[M] {
	return &Total[M]{
		histogram: cloneProto(t.histogram),
		protoMax:  t.protoMax,
		protoSig:  t.protoSig,
	}
}
