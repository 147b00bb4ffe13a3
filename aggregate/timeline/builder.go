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
	"loadforge/aggregate"
	"loadforge/aggregate/storage"
	"loadforge/metric"
)

// Builder owns the prototype storage, the shared settings, and the
// shared virtual-user counter every Aggregate it builds participates
// in. One Builder is shared across an entire run; each virtual user
// calls Build once to get its own task-local Aggregate.
type Builder[M metric.Metric, S storage.Storage[M, S]] struct {
	prototype S
	settings  aggregate.Settings
	shared    *sharedCounter
}

// NewBuilder constructs a Builder from a prototype storage (used only
// for its shape, never mutated) and the settings every built aggregate
// will share.
func NewBuilder[M metric.Metric, S storage.Storage[M, S]](prototype S, settings aggregate.Settings) *Builder[M, S] {
	return &Builder[M, S]{
		prototype: prototype,
		settings:  settings,
		shared:    &sharedCounter{},
	}
}

// Build returns a fresh, task-local Aggregate: empty timeline, storage
// cloned from the prototype, a grand-total item anchored at the
// current bucket, and an incremented ticket on the shared user-counter.
func (b *Builder[M, S]) Build() *Aggregate[M, S] {
	counter := newCounter(b.shared)
	bucket := b.settings.Zero().Window(b.settings.Window())
	return &Aggregate[M, S]{
		settings:         b.settings,
		storagePrototype: b.prototype,
		total:            Item[M, S]{Bucket: bucket, Storage: b.prototype.Clone()},
		counter:          counter,
	}
}
