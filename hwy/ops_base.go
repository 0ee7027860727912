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

import (
	"math/bits"
	"unsafe"
)

// This file provides the scalable (SVE-style) vector operations. The lane
// count of a Vec is not a compile-time constant: it is ScalableBytes()
// divided by the element size, queried by kernels at entry with MaxLanes.
// Partial vectors are expressed with a Mask (an SVE predicate), never by
// shortening the vector, so loads past the end of the input never happen.

// Lanes is the set of element types a scalable vector can carry.
// Float16 is included through its uint16 representation.
type Lanes interface {
	~uint16 | ~uint32 | ~int32 | ~float32 | ~float64
}

// Floats is the set of element types with native Go arithmetic.
type Floats interface {
	~float32 | ~float64
}

// maxScalableLanes covers MaxScalableBytes of the narrowest lane type.
const maxScalableLanes = MaxScalableBytes / 2

// Vec is a scalable vector of MaxLanes[T]() lanes.
type Vec[T Lanes] struct {
	data [maxScalableLanes]T
	n    int
}

// Mask is a per-lane predicate for a Vec[T]. Bit i governs lane i.
type Mask[T Lanes] struct {
	bits uint32
	n    int
}

// MaxLanes returns the number of T lanes in one scalable register (svcntw,
// svcnth, ...).
func MaxLanes[T Lanes]() int {
	var zero T
	return scalableBytes / int(unsafe.Sizeof(zero))
}

// Zero creates a vector with all lanes set to zero.
func Zero[T Lanes]() Vec[T] {
	return Vec[T]{n: MaxLanes[T]()}
}

// NumLanes returns the number of lanes in v.
func (v Vec[T]) NumLanes() int {
	return v.n
}

// Lane returns lane i of v.
func (v Vec[T]) Lane(i int) T {
	return v.data[:v.n][i]
}

// Load creates a vector from the first NumLanes elements of src.
// Panics if src is shorter than one register.
func Load[T Lanes](src []T) Vec[T] {
	v := Zero[T]()
	copy(v.data[:v.n], src[:v.n])
	return v
}

// Store writes a vector's data to a slice.
func Store[T Lanes](v Vec[T], dst []T) {
	copy(dst[:v.n], v.data[:v.n])
}

// PTrue returns a mask with every lane active.
func PTrue[T Lanes]() Mask[T] {
	n := MaxLanes[T]()
	return Mask[T]{bits: Bzhi32(n), n: n}
}

// FirstN returns a mask with lanes [0, k) active.
func FirstN[T Lanes](k int) Mask[T] {
	n := MaxLanes[T]()
	return Mask[T]{bits: Bzhi32(min(k, n)), n: n}
}

// WhileLessThan returns a mask with lane j active iff i+j < n (svwhilelt).
func WhileLessThan[T Lanes](i, n int) Mask[T] {
	return FirstN[T](n - i)
}

// Active reports whether lane i is active.
func (m Mask[T]) Active(i int) bool {
	return i >= 0 && i < m.n && m.bits&(1<<uint(i)) != 0
}

// CountTrue returns the number of active lanes.
func (m Mask[T]) CountTrue() int {
	return bits.OnesCount32(m.bits)
}

// MaskLoad loads data from a slice only for lanes where the mask is true.
// Inactive lanes are zero and their addresses are never touched.
func MaskLoad[T Lanes](mask Mask[T], src []T) Vec[T] {
	v := Vec[T]{n: mask.n}
	for i := 0; i < mask.n; i++ {
		if mask.bits&(1<<uint(i)) != 0 {
			v.data[i] = src[i]
		}
	}
	return v
}

// Add performs element-wise addition.
func Add[T Floats](a, b Vec[T]) Vec[T] {
	for i := 0; i < a.n; i++ {
		a.data[i] += b.data[i]
	}
	return a
}

// Sub performs element-wise subtraction.
func Sub[T Floats](a, b Vec[T]) Vec[T] {
	for i := 0; i < a.n; i++ {
		a.data[i] -= b.data[i]
	}
	return a
}

// SubMasked subtracts active lanes and zeroes inactive ones (svsub_z).
func SubMasked[T Floats](mask Mask[T], a, b Vec[T]) Vec[T] {
	for i := 0; i < a.n; i++ {
		if mask.bits&(1<<uint(i)) != 0 {
			a.data[i] -= b.data[i]
		} else {
			a.data[i] = 0
		}
	}
	return a
}

// MulAdd computes a*b + c per lane.
func MulAdd[T Floats](a, b, c Vec[T]) Vec[T] {
	for i := 0; i < c.n; i++ {
		c.data[i] = a.data[i]*b.data[i] + c.data[i]
	}
	return c
}

// MulAddMasked computes a*b + acc on active lanes and keeps acc on inactive
// lanes (svmla_m merging form).
func MulAddMasked[T Floats](mask Mask[T], acc, a, b Vec[T]) Vec[T] {
	for i := 0; i < acc.n; i++ {
		if mask.bits&(1<<uint(i)) != 0 {
			acc.data[i] = a.data[i]*b.data[i] + acc.data[i]
		}
	}
	return acc
}

// ReduceSum sums all lanes with a pairwise-halving tree.
func ReduceSum[T Floats](v Vec[T]) T {
	w := v.n
	if w == 0 {
		return 0
	}
	for w > 1 {
		h := (w + 1) / 2
		for i := 0; i < w-h; i++ {
			v.data[i] += v.data[i+h]
		}
		w = h
	}
	return v.data[0]
}

// ===== Half-precision scalable operations =====

// SubF16Masked subtracts active lanes in half precision and zeroes inactive ones.
func SubF16Masked(mask Mask[Float16], a, b Vec[Float16]) Vec[Float16] {
	for i := 0; i < a.n; i++ {
		if mask.bits&(1<<uint(i)) != 0 {
			a.data[i] = subF16(a.data[i], b.data[i])
		} else {
			a.data[i] = 0
		}
	}
	return a
}

// MulAddF16 computes a*b + c per lane, rounded to half precision.
func MulAddF16(a, b, c Vec[Float16]) Vec[Float16] {
	for i := 0; i < c.n; i++ {
		c.data[i] = mulAddF16(a.data[i], b.data[i], c.data[i])
	}
	return c
}

// MulAddF16Masked is the merging form of MulAddF16.
func MulAddF16Masked(mask Mask[Float16], acc, a, b Vec[Float16]) Vec[Float16] {
	for i := 0; i < acc.n; i++ {
		if mask.bits&(1<<uint(i)) != 0 {
			acc.data[i] = mulAddF16(a.data[i], b.data[i], acc.data[i])
		}
	}
	return acc
}

// ExtF16 returns the concatenation v:v shifted down by k lanes (svext(v, v, k)).
func ExtF16(v Vec[Float16], k int) Vec[Float16] {
	r := Vec[Float16]{n: v.n}
	for i := 0; i < v.n; i++ {
		r.data[i] = v.data[(i+k)%v.n]
	}
	return r
}

// PromoteEvenF16 widens the even-numbered half-precision lanes to float32
// (svcvt_f32_f16 reads the bottom half of each 32-bit container).
func PromoteEvenF16(v Vec[Float16]) Vec[float32] {
	r := Vec[float32]{n: v.n / 2}
	for i := 0; i < r.n; i++ {
		r.data[i] = v.data[2*i].Float32()
	}
	return r
}
