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

package timeline

import (
	"time"

	"loadforge/aggregate"
	"loadforge/aggregate/storage"
	"loadforge/metric"
)

// Aggregate is a single virtual user's task-local timeline: a sorted,
// append-only sequence of per-window Items plus a grand-total Item. It
// is never shared across goroutines; the only cross-goroutine state it
// touches is the Counter sampled on every AddEntry.
type Aggregate[M metric.Metric, S storage.Storage[M, S]] struct {
	settings         aggregate.Settings
	storagePrototype S
	timeline         []Item[M, S]
	total            Item[M, S]
	counter          *Counter
}

// AddEntry records one measurement: it resolves (or appends) the
// current bucket, records the quantized latency into both that
// bucket's storage and the grand total, bumps error counters when
// recErr is non-nil, and snapshots the live virtual-user count onto
// both.
func (a *Aggregate[M, S]) AddEntry(m M, latency time.Duration, recErr error) {
	bucket := a.settings.Zero().Window(a.settings.Window())

	var item *Item[M, S]
	if n := len(a.timeline); n > 0 && a.timeline[n-1].Bucket == bucket {
		item = &a.timeline[n-1]
	} else {
		a.timeline = append(a.timeline, Item[M, S]{Bucket: bucket, Storage: a.storagePrototype.Clone()})
		item = &a.timeline[len(a.timeline)-1]
	}

	value := a.settings.Scale().DurationToValue(latency)
	item.Storage.Record(m, value)
	a.total.Storage.Record(m, value)

	if recErr != nil {
		item.Errors++
		a.total.Errors++
	}

	users := a.counter.Value()
	item.Users = users
	a.total.Users = users
}

// MergeInto folds every item of a into other: a bucket present in both
// merges in place (storage-merge, sum errors, max users); a bucket
// unique to a is inserted into other at its sorted position. a's grand
// total is merged into other's grand total the same way, so the total
// stays the union of the timeline items.
func (a *Aggregate[M, S]) MergeInto(other *Aggregate[M, S]) {
	other.total = other.total.mergeWith(a.total)
	for _, item := range a.timeline {
		idx, found := searchBucket(other.timeline, item.Bucket)
		if found {
			other.timeline[idx] = other.timeline[idx].mergeWith(item)
			continue
		}
		other.timeline = append(other.timeline, Item[M, S]{})
		copy(other.timeline[idx+1:], other.timeline[idx:])
		other.timeline[idx] = item
	}
}

// searchBucket returns the index bucket occupies in a bucket-sorted
// slice, or the insertion point and false if it is absent.
func searchBucket[M metric.Metric, S storage.Storage[M, S]](items []Item[M, S], bucket time.Duration) (int, bool) {
	lo, hi := 0, len(items)
	for lo < hi {
		mid := (lo + hi) / 2
		if items[mid].Bucket < bucket {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(items) && items[lo].Bucket == bucket {
		return lo, true
	}
	return lo, false
}

// Flush consumes the aggregate, returning its grand total and its
// timeline items. The aggregate is left empty; callers that still hold
// a virtual-user ticket on it should call Release separately.
func (a *Aggregate[M, S]) Flush() (Item[M, S], []Item[M, S]) {
	total, timeline := a.total, a.timeline
	a.total = Item[M, S]{}
	a.timeline = nil
	return total, timeline
}

// Total returns the current grand-total item without consuming it.
func (a *Aggregate[M, S]) Total() Item[M, S] {
	return a.total
}

// Timeline returns the current timeline items without consuming them.
func (a *Aggregate[M, S]) Timeline() []Item[M, S] {
	return a.timeline
}

// Release drops this aggregate's ticket on the shared virtual-user
// counter. Safe to call multiple times or on both halves of a Split
// result.
func (a *Aggregate[M, S]) Release() {
	a.counter.Release()
}
