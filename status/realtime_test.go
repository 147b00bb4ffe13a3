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

package status

import (
	"math"
	"testing"
)

func TestOperationStartedFinished(t *testing.T) {
	r := NewRealtime()

	r.OperationStarted()
	r.OperationStarted()
	if got := r.ActiveOperations(); got != 2 {
		t.Fatalf("active = %d, want 2", got)
	}
	if got := r.TotalOperations(); got != 2 {
		t.Fatalf("total = %d, want 2", got)
	}

	r.OperationFinished()
	if got := r.ActiveOperations(); got != 1 {
		t.Fatalf("active = %d, want 1", got)
	}
	if got := r.TotalOperations(); got != 2 {
		t.Fatalf("total should not decrement: got %d, want 2", got)
	}
}

func TestCloneSharesState(t *testing.T) {
	r := NewRealtime()
	clone := r.Clone()

	r.OperationStarted()
	if got := clone.ActiveOperations(); got != 1 {
		t.Fatalf("clone.ActiveOperations = %d, want 1 (shared state)", got)
	}
}

func TestSaturatingArithmetic(t *testing.T) {
	r := NewRealtime()
	r.OperationFinished() // decrement at 0 stays at 0
	if got := r.ActiveOperations(); got != 0 {
		t.Fatalf("active = %d, want 0", got)
	}

	r.state.totalOperations.Store(math.MaxUint64)
	r.OperationStarted()
	if got := r.TotalOperations(); got != math.MaxUint64 {
		t.Fatalf("total = %d, want MaxUint64 (saturated)", got)
	}
}
