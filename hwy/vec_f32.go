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

// Float32x4 represents a 128-bit vector of 4 float32 values (NEON q / SSE xmm).
// This provides an API similar to archsimd.Float32x4.
type Float32x4 [4]float32

// Float32x8 represents a 256-bit vector of 8 float32 values (AVX2 ymm).
type Float32x8 [8]float32

// Float32x16 represents a 512-bit vector of 16 float32 values (AVX-512 zmm).
type Float32x16 [16]float32

// ===== Float32x4 =====

// BroadcastFloat32x4 creates a vector with all lanes set to the given value.
func BroadcastFloat32x4(v float32) Float32x4 {
	return Float32x4{v, v, v, v}
}

// LoadFloat32x4Slice loads 4 float32 values from a slice.
// Panics if len(s) < 4.
func LoadFloat32x4Slice(s []float32) Float32x4 {
	var v Float32x4
	copy(v[:], s[:4])
	return v
}

// StoreSlice stores the vector to a slice.
func (v Float32x4) StoreSlice(s []float32) {
	copy(s[:4], v[:])
}

// Add performs element-wise addition.
func (v Float32x4) Add(other Float32x4) Float32x4 {
	for i := range v {
		v[i] += other[i]
	}
	return v
}

// Sub performs element-wise subtraction.
func (v Float32x4) Sub(other Float32x4) Float32x4 {
	for i := range v {
		v[i] -= other[i]
	}
	return v
}

// Mul performs element-wise multiplication.
func (v Float32x4) Mul(other Float32x4) Float32x4 {
	for i := range v {
		v[i] *= other[i]
	}
	return v
}

// MulAdd performs fused multiply-add: v * a + b
func (v Float32x4) MulAdd(a, b Float32x4) Float32x4 {
	for i := range v {
		v[i] = v[i]*a[i] + b[i]
	}
	return v
}

// PairwiseAdd adds adjacent lane pairs of v then of other (vpaddq_f32):
// {v0+v1, v2+v3, o0+o1, o2+o3}.
func (v Float32x4) PairwiseAdd(other Float32x4) Float32x4 {
	return Float32x4{v[0] + v[1], v[2] + v[3], other[0] + other[1], other[2] + other[3]}
}

// ZeroExtend widens v to 256 bits with the upper lanes zeroed.
func (v Float32x4) ZeroExtend() Float32x8 {
	return v.Concat(Float32x4{})
}

// Concat returns the 256-bit vector with v in the lower and hi in the upper
// half (_mm256_setr_m128).
func (v Float32x4) Concat(hi Float32x4) Float32x8 {
	return Float32x8{v[0], v[1], v[2], v[3], hi[0], hi[1], hi[2], hi[3]}
}

// Abs clears the sign bit of every lane.
func (v Float32x4) Abs() Float32x4 {
	for i := range v {
		v[i] = abs32(v[i])
	}
	return v
}

// MinNum returns the lane-wise minimum, ignoring NaN lanes (vminnmq_f32).
func (v Float32x4) MinNum(other Float32x4) Float32x4 {
	for i := range v {
		v[i] = MinNum(v[i], other[i])
	}
	return v
}

// MaxNum returns the lane-wise maximum, ignoring NaN lanes (vmaxnmq_f32).
func (v Float32x4) MaxNum(other Float32x4) Float32x4 {
	for i := range v {
		v[i] = MaxNum(v[i], other[i])
	}
	return v
}

// ReduceMin returns the smallest non-NaN lane, or +Inf if every lane is NaN.
func (v Float32x4) ReduceMin() float32 {
	return ReduceMinF32(v[:])
}

// ReduceMax returns the largest non-NaN lane, or -Inf if every lane is NaN.
func (v Float32x4) ReduceMax() float32 {
	return ReduceMaxF32(v[:])
}

// ReduceSum returns the sum of all elements.
func (v Float32x4) ReduceSum() float32 {
	return ReduceSumF32(v[:])
}

// ===== Float32x8 =====

// BroadcastFloat32x8 creates a vector with all lanes set to the given value.
func BroadcastFloat32x8(v float32) Float32x8 {
	var r Float32x8
	for i := range r {
		r[i] = v
	}
	return r
}

// LoadFloat32x8Slice loads 8 float32 values from a slice.
// Panics if len(s) < 8.
func LoadFloat32x8Slice(s []float32) Float32x8 {
	var v Float32x8
	copy(v[:], s[:8])
	return v
}

// StoreSlice stores the vector to a slice.
func (v Float32x8) StoreSlice(s []float32) {
	copy(s[:8], v[:])
}

// Add performs element-wise addition.
func (v Float32x8) Add(other Float32x8) Float32x8 {
	for i := range v {
		v[i] += other[i]
	}
	return v
}

// Sub performs element-wise subtraction.
func (v Float32x8) Sub(other Float32x8) Float32x8 {
	for i := range v {
		v[i] -= other[i]
	}
	return v
}

// Mul performs element-wise multiplication.
func (v Float32x8) Mul(other Float32x8) Float32x8 {
	for i := range v {
		v[i] *= other[i]
	}
	return v
}

// MulAdd performs fused multiply-add: v * a + b
func (v Float32x8) MulAdd(a, b Float32x8) Float32x8 {
	for i := range v {
		v[i] = v[i]*a[i] + b[i]
	}
	return v
}

// Abs clears the sign bit of every lane.
func (v Float32x8) Abs() Float32x8 {
	for i := range v {
		v[i] = abs32(v[i])
	}
	return v
}

// MinNum returns the lane-wise minimum, ignoring NaN lanes.
func (v Float32x8) MinNum(other Float32x8) Float32x8 {
	for i := range v {
		v[i] = MinNum(v[i], other[i])
	}
	return v
}

// MaxNum returns the lane-wise maximum, ignoring NaN lanes.
func (v Float32x8) MaxNum(other Float32x8) Float32x8 {
	for i := range v {
		v[i] = MaxNum(v[i], other[i])
	}
	return v
}

// ReduceMin returns the smallest non-NaN lane.
func (v Float32x8) ReduceMin() float32 {
	return ReduceMinF32(v[:])
}

// ReduceMax returns the largest non-NaN lane.
func (v Float32x8) ReduceMax() float32 {
	return ReduceMaxF32(v[:])
}

// GetLo returns the lower 128 bits.
func (v Float32x8) GetLo() Float32x4 {
	return Float32x4{v[0], v[1], v[2], v[3]}
}

// GetHi returns the upper 128 bits.
func (v Float32x8) GetHi() Float32x4 {
	return Float32x4{v[4], v[5], v[6], v[7]}
}

// ReduceSum returns the sum of all elements.
func (v Float32x8) ReduceSum() float32 {
	return ReduceSumF32(v[:])
}

// ===== Float32x16 =====

// BroadcastFloat32x16 creates a vector with all lanes set to the given value.
func BroadcastFloat32x16(v float32) Float32x16 {
	var r Float32x16
	for i := range r {
		r[i] = v
	}
	return r
}

// LoadFloat32x16Slice loads 16 float32 values from a slice.
// Panics if len(s) < 16.
func LoadFloat32x16Slice(s []float32) Float32x16 {
	var v Float32x16
	copy(v[:], s[:16])
	return v
}

// MaskzLoadFloat32x16 loads the lanes whose mask bit is set and zeroes the
// rest. Only s[i] for set bits i is read, so s may be shorter than 16.
func MaskzLoadFloat32x16(mask uint16, s []float32) Float32x16 {
	var v Float32x16
	for i := range v {
		if mask&(1<<uint(i)) != 0 {
			v[i] = s[i]
		}
	}
	return v
}

// StoreSlice stores the vector to a slice.
func (v Float32x16) StoreSlice(s []float32) {
	copy(s[:16], v[:])
}

// Add performs element-wise addition.
func (v Float32x16) Add(other Float32x16) Float32x16 {
	for i := range v {
		v[i] += other[i]
	}
	return v
}

// Sub performs element-wise subtraction.
func (v Float32x16) Sub(other Float32x16) Float32x16 {
	for i := range v {
		v[i] -= other[i]
	}
	return v
}

// Mul performs element-wise multiplication.
func (v Float32x16) Mul(other Float32x16) Float32x16 {
	for i := range v {
		v[i] *= other[i]
	}
	return v
}

// MulAdd performs fused multiply-add: v * a + b
func (v Float32x16) MulAdd(a, b Float32x16) Float32x16 {
	for i := range v {
		v[i] = v[i]*a[i] + b[i]
	}
	return v
}

// Abs clears the sign bit of every lane.
func (v Float32x16) Abs() Float32x16 {
	for i := range v {
		v[i] = abs32(v[i])
	}
	return v
}

// MinNumMasked sets lane i to MinNum(v[i], x[i]) where mask bit i is set
// and keeps v[i] elsewhere (_mm512_mask_min_ps with v as source).
func (v Float32x16) MinNumMasked(mask uint16, x Float32x16) Float32x16 {
	for i := range v {
		if mask&(1<<uint(i)) != 0 {
			v[i] = MinNum(v[i], x[i])
		}
	}
	return v
}

// MaxNumMasked is the maximum counterpart of MinNumMasked.
func (v Float32x16) MaxNumMasked(mask uint16, x Float32x16) Float32x16 {
	for i := range v {
		if mask&(1<<uint(i)) != 0 {
			v[i] = MaxNum(v[i], x[i])
		}
	}
	return v
}

// ReduceMin returns the smallest non-NaN lane.
func (v Float32x16) ReduceMin() float32 {
	return ReduceMinF32(v[:])
}

// ReduceMax returns the largest non-NaN lane.
func (v Float32x16) ReduceMax() float32 {
	return ReduceMaxF32(v[:])
}

// GetLo returns the lower 256 bits.
func (v Float32x16) GetLo() Float32x8 {
	var r Float32x8
	copy(r[:], v[:8])
	return r
}

// GetHi returns the upper 256 bits.
func (v Float32x16) GetHi() Float32x8 {
	var r Float32x8
	copy(r[:], v[8:])
	return r
}

// ReduceSum returns the sum of all elements.
func (v Float32x16) ReduceSum() float32 {
	return ReduceSumF32(v[:])
}
