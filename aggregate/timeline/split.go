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
	"loadforge/aggregate/storage"
	"loadforge/metric"
)

// Split unzips a Combined-backed aggregate into two independent
// aggregates, one per side, sharing bucket keys and error/user counts
// but holding only their half of the storage. Both halves share the
// same virtual-user Counter; its idempotent Release means either half
// (or both) may call Release without double-decrementing.
func Split[M metric.Metric, L storage.Storage[M, L], R storage.Storage[M, R]](
	agg *Aggregate[M, storage.Combined[M, L, R]],
) (*Aggregate[M, L], *Aggregate[M, R]) {
	leftTimeline := make([]Item[M, L], len(agg.timeline))
	rightTimeline := make([]Item[M, R], len(agg.timeline))

	for i, it := range agg.timeline {
		leftTimeline[i] = Item[M, L]{Bucket: it.Bucket, Storage: it.Storage.Left(), Errors: it.Errors, Users: it.Users}
		rightTimeline[i] = Item[M, R]{Bucket: it.Bucket, Storage: it.Storage.Right(), Errors: it.Errors, Users: it.Users}
	}

	left := &Aggregate[M, L]{
		settings:         agg.settings,
		storagePrototype: agg.storagePrototype.Left(),
		timeline:         leftTimeline,
		total: Item[M, L]{
			Bucket: agg.total.Bucket, Storage: agg.total.Storage.Left(),
			Errors: agg.total.Errors, Users: agg.total.Users,
		},
		counter: agg.counter,
	}
	right := &Aggregate[M, R]{
		settings:         agg.settings,
		storagePrototype: agg.storagePrototype.Right(),
		timeline:         rightTimeline,
		total: Item[M, R]{
			Bucket: agg.total.Bucket, Storage: agg.total.Storage.Right(),
			Errors: agg.total.Errors, Users: agg.total.Users,
		},
		counter: agg.counter,
	}
	return left, right
}
