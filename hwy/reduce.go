// Copyright 2025 go-highway Authors
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

package hwy

import "math"

// Horizontal reductions collapse the lanes of one register into a scalar
// with a pairwise-halving tree: the upper half of the live lanes is added
// onto the lower half until a single lane remains. Compared with a
// sequential fold the rounding error grows with log2(lanes) instead of
// lanes, and the shape matches hardware reduce instructions.

// ReduceSumF32 reduces lanes in place and returns the total.
// lanes is clobbered. Odd counts fold the middle lane into the next round.
func ReduceSumF32(lanes []float32) float32 {
	w := len(lanes)
	if w == 0 {
		return 0
	}
	for w > 1 {
		h := (w + 1) / 2
		for i := 0; i < w-h; i++ {
			lanes[i] += lanes[i+h]
		}
		w = h
	}
	return lanes[0]
}

// ReduceSumF64 is the float64 counterpart of ReduceSumF32.
func ReduceSumF64(lanes []float64) float64 {
	w := len(lanes)
	if w == 0 {
		return 0
	}
	for w > 1 {
		h := (w + 1) / 2
		for i := 0; i < w-h; i++ {
			lanes[i] += lanes[i+h]
		}
		w = h
	}
	return lanes[0]
}

// ReduceSumF16 reduces half-precision lanes in place, rounding every partial
// sum to half precision as _mm512_reduce_add_ph does.
func ReduceSumF16(lanes []Float16) Float16 {
	w := len(lanes)
	if w == 0 {
		return 0
	}
	for w > 1 {
		h := (w + 1) / 2
		for i := 0; i < w-h; i++ {
			lanes[i] = addF16(lanes[i], lanes[i+h])
		}
		w = h
	}
	return lanes[0]
}

// ReduceMinF32 reduces lanes in place to the smallest non-NaN value. It
// returns +Inf when lanes is empty or all NaN.
func ReduceMinF32(lanes []float32) float32 {
	w := len(lanes)
	if w == 0 {
		return float32(math.Inf(1))
	}
	for w > 1 {
		h := (w + 1) / 2
		for i := 0; i < w-h; i++ {
			lanes[i] = MinNum(lanes[i], lanes[i+h])
		}
		w = h
	}
	return MinNum(lanes[0], float32(math.Inf(1)))
}

// ReduceMaxF32 reduces lanes in place to the largest non-NaN value. It
// returns -Inf when lanes is empty or all NaN.
func ReduceMaxF32(lanes []float32) float32 {
	w := len(lanes)
	if w == 0 {
		return float32(math.Inf(-1))
	}
	for w > 1 {
		h := (w + 1) / 2
		for i := 0; i < w-h; i++ {
			lanes[i] = MaxNum(lanes[i], lanes[i+h])
		}
		w = h
	}
	return MaxNum(lanes[0], float32(math.Inf(-1)))
}

// MinNum returns the smaller of a and b. A NaN operand is ignored; the
// result is NaN only if both are NaN (IEEE 754 minNum).
func MinNum(a, b float32) float32 {
	switch {
	case isNaN(a):
		return b
	case isNaN(b):
		return a
	case b < a:
		return b
	}
	return a
}

// MaxNum returns the larger of a and b, ignoring a NaN operand.
func MaxNum(a, b float32) float32 {
	switch {
	case isNaN(a):
		return b
	case isNaN(b):
		return a
	case b > a:
		return b
	}
	return a
}

func isNaN(x float32) bool { return math.IsNaN(float64(x)) }

func abs32(x float32) float32 {
	return math.Float32frombits(math.Float32bits(x) &^ (1 << 31))
}

// ReduceSumU32 sums integer lanes. Order does not affect the result.
func ReduceSumU32(lanes []uint32) uint32 {
	var sum uint32
	for _, v := range lanes {
		sum += v
	}
	return sum
}

// ReduceSumU64 is the 64-bit form of ReduceSumU32.
func ReduceSumU64(lanes []uint64) uint64 {
	var sum uint64
	for _, v := range lanes {
		sum += v
	}
	return sum
}

// Bzhi32 returns a mask with the low n bits set (n saturates at 32), the
// lane-select pattern used for bounds-safe masked tail loads.
func Bzhi32(n int) uint32 {
	if n >= 32 {
		return ^uint32(0)
	}
	if n <= 0 {
		return 0
	}
	return uint32(1)<<uint(n) - 1
}

// Bzhi64 is the 64-lane form of Bzhi32.
func Bzhi64(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	if n <= 0 {
		return 0
	}
	return uint64(1)<<uint(n) - 1
}
