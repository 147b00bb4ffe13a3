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

	"loadforge/aggregate/storage"
	"loadforge/metric"
)

// Item is one time-bucket's worth of aggregated data: a storage
// instance, the errors observed in that bucket, and a snapshot of how
// many virtual users were concurrently live when the bucket was last
// touched. Items order and compare solely on Bucket.
type Item[M metric.Metric, S storage.Storage[M, S]] struct {
	Bucket  time.Duration
	Storage S
	Errors  uint64
	Users   uint64
}

// mergeWith combines two items that share the same Bucket: storages
// merge, error counts sum, user counts take the max of the two
// snapshots (the larger sample is the more informative one).
func (it Item[M, S]) mergeWith(other Item[M, S]) Item[M, S] {
	return Item[M, S]{
		Bucket:  it.Bucket,
		Storage: it.Storage.Merge(other.Storage),
		Errors:  it.Errors + other.Errors,
		Users:   max(it.Users, other.Users),
	}
}
