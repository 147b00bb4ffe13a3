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

package step

import (
	"context"

	"loadforge/clock"
)

// Sequence runs Left, then Right on Left's output, short-circuiting on
// Left's error: Right is not run and appends no event when Left fails.
type Sequence[T any] struct {
	Left  Step[T]
	Right Step[T]
}

func (s Sequence[T]) Run(ctx context.Context, clk clock.Clock, events []Event, value T) ([]Event, T, error) {
	events, value, err := s.Left.Run(ctx, clk, events, value)
	if err != nil {
		return events, value, err
	}
	return s.Right.Run(ctx, clk, events, value)
}
