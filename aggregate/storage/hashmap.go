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

// HashMap keeps one histogram per metric, created lazily on first
// Record from a shared prototype. It is the default storage for
// per-metric latency distributions (spec component C2).
type HashMap[M metric.Metric] struct {
	histograms map[M]*hdrhistogram.Histogram
	protoMax   int64
	protoSig   int
}

// NewHashMap builds an empty HashMap whose lazily-created histograms
// all use the default generous ceiling, emulating an auto-resizing
// histogram for ordinary latency ranges.
func NewHashMap[M metric.Metric]() *HashMap[M] {
	return &HashMap[M]{
		histograms: make(map[M]*hdrhistogram.Histogram),
		protoMax:   defaultCeiling,
		protoSig:   defaultSigFig,
	}
}

// WithLimit returns a HashMap whose histograms are bounded to
// [0, max] at sigfig significant figures; values recorded above max are
// logged and dropped rather than silently growing the histogram, which
// is the explicit, bounded alternative to the default's generous ceiling.
func WithLimit[M metric.Metric](max int64, sigfig int) *HashMap[M] {
	return &HashMap[M]{
		histograms: make(map[M]*hdrhistogram.Histogram),
		protoMax:   max,
		protoSig:   sigfig,
	}
}

func (h *HashMap[M]) prototype() *hdrhistogram.Histogram {
	return hdrhistogram.New(0, h.protoMax, h.protoSig)
}

// Record inserts value into the histogram for m, creating it from the
// prototype on first use. Values outside the histogram's trackable
// range are logged at Warn and dropped.
func (h *HashMap[M]) Record(m M, value uint64) {
	hist, ok := h.histograms[m]
	if !ok {
		hist = h.prototype()
		h.histograms[m] = hist
	}
	if err := hist.RecordValue(int64(value)); err != nil {
		slog.Warn("aggregate storage: dropped out-of-range value",
			"metric", m.Name(), "value", value, "error", err)
	}
}

// Value returns the histogram recorded for m, or an empty prototype if
// m was never recorded.
func (h *HashMap[M]) Value(m M) *hdrhistogram.Histogram {
	if hist, ok := h.histograms[m]; ok {
		return hist
	}
	return h.prototype()
}

// Merge returns the bin-wise union of h and other: shared metrics have
// their histograms merged, metrics unique to either side are copied
// over untouched. Neither h nor other is mutated.
//
// The result's prototype widens to max(h.protoMax, other.protoMax) and
// the wider of the two significant-figure settings, rather than
// adopting the receiver's shape unconditionally: merging a
// generous-ceiling storage into a WithLimit-bounded one must not
// silently drop the wide side's samples, and the wider shape keeps
// Merge commutative regardless of which side is the receiver.
func (h *HashMap[M]) Merge(other *HashMap[M]) *HashMap[M] {
	outMax := h.protoMax
	if other.protoMax > outMax {
		outMax = other.protoMax
	}
	outSig := h.protoSig
	if other.protoSig > outSig {
		outSig = other.protoSig
	}

	out := &HashMap[M]{
		histograms: make(map[M]*hdrhistogram.Histogram, len(h.histograms)+len(other.histograms)),
		protoMax:   outMax,
		protoSig:   outSig,
	}
	mergeInto := func(src map[M]*hdrhistogram.Histogram) {
		for m, hist := range src {
			existing, ok := out.histograms[m]
			if !ok {
				existing = hdrhistogram.New(0, outMax, outSig)
				out.histograms[m] = existing
			}
			existing.Merge(hist)
		}
	}
	mergeInto(h.histograms)
	mergeInto(other.histograms)
	return out
}

// Clone returns an empty HashMap sharing this one's prototype bounds
// but none of its recorded counts.
func (h *HashMap[M]) Clone() *HashMap[M] {
	return &HashMap[M]{
		histograms: make(map[M]*hdrhistogram.Histogram),
		protoMax:   h.protoMax,
		protoSig:   h.protoSig,
	}
}

// Metrics returns the set of metrics with a recorded histogram, mostly
// useful for tests and reporting.
func (h *HashMap[M]) Metrics() []M {
	out := make([]M, 0, len(h.histograms))
	for m := range h.histograms {
		out = append(out, m)
	}
	return out
}
