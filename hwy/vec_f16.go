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

// Half-precision registers. Arithmetic on Float16x8 and Float16x32 rounds
// every lane result to half precision, as native fp16 instructions do
// (NEON +fp16, AVX512-FP16). The narrower Float16x4 and Float16x16 exist
// only as load-and-widen sources for kernels that compute in float32.

// Float16x4 represents a 64-bit vector of 4 half-precision values.
type Float16x4 [4]Float16

// Float16x8 represents a 128-bit vector of 8 half-precision values.
type Float16x8 [8]Float16

// Float16x16 represents a 256-bit vector of 16 half-precision values.
type Float16x16 [16]Float16

// Float16x32 represents a 512-bit vector of 32 half-precision values.
type Float16x32 [32]Float16

// ===== Float16x4 =====

// LoadFloat16x4Slice loads 4 values. Panics if len(s) < 4.
func LoadFloat16x4Slice(s []Float16) Float16x4 {
	var v Float16x4
	copy(v[:], s[:4])
	return v
}

// Promote widens all lanes to float32 (vcvt_f32_f16).
func (v Float16x4) Promote() Float32x4 {
	return Float32x4{v[0].Float32(), v[1].Float32(), v[2].Float32(), v[3].Float32()}
}

// ===== Float16x8 =====

// LoadFloat16x8Slice loads 8 values. Panics if len(s) < 8.
func LoadFloat16x8Slice(s []Float16) Float16x8 {
	var v Float16x8
	copy(v[:], s[:8])
	return v
}

// Add performs element-wise addition.
func (v Float16x8) Add(other Float16x8) Float16x8 {
	for i := range v {
		v[i] = addF16(v[i], other[i])
	}
	return v
}

// Sub performs element-wise subtraction.
func (v Float16x8) Sub(other Float16x8) Float16x8 {
	for i := range v {
		v[i] = subF16(v[i], other[i])
	}
	return v
}

// MulAdd performs fused multiply-add: v * a + b
func (v Float16x8) MulAdd(a, b Float16x8) Float16x8 {
	for i := range v {
		v[i] = mulAddF16(v[i], a[i], b[i])
	}
	return v
}

// PromoteLo widens the lower 4 lanes to float32.
func (v Float16x8) PromoteLo() Float32x4 {
	return Float32x4{v[0].Float32(), v[1].Float32(), v[2].Float32(), v[3].Float32()}
}

// PromoteHi widens the upper 4 lanes to float32.
func (v Float16x8) PromoteHi() Float32x4 {
	return Float32x4{v[4].Float32(), v[5].Float32(), v[6].Float32(), v[7].Float32()}
}

// Promote widens all 8 lanes to float32 (vcvtph2ps ymm).
func (v Float16x8) Promote() Float32x8 {
	var r Float32x8
	for i := range v {
		r[i] = v[i].Float32()
	}
	return r
}

// ===== Float16x16 =====

// LoadFloat16x16Slice loads 16 values. Panics if len(s) < 16.
func LoadFloat16x16Slice(s []Float16) Float16x16 {
	var v Float16x16
	copy(v[:], s[:16])
	return v
}

// MaskzLoadFloat16x16 loads the lanes whose mask bit is set and zeroes the
// rest. Only s[i] for set bits i is read.
func MaskzLoadFloat16x16(mask uint16, s []Float16) Float16x16 {
	var v Float16x16
	for i := range v {
		if mask&(1<<uint(i)) != 0 {
			v[i] = s[i]
		}
	}
	return v
}

// Promote widens all 16 lanes to float32 (vcvtph2ps zmm).
func (v Float16x16) Promote() Float32x16 {
	var r Float32x16
	for i := range v {
		r[i] = v[i].Float32()
	}
	return r
}

// ===== Float16x32 =====

// LoadFloat16x32Slice loads 32 values. Panics if len(s) < 32.
func LoadFloat16x32Slice(s []Float16) Float16x32 {
	var v Float16x32
	copy(v[:], s[:32])
	return v
}

// MaskzLoadFloat16x32 loads the lanes whose mask bit is set and zeroes the
// rest. Only s[i] for set bits i is read, so s may be shorter than 32.
func MaskzLoadFloat16x32(mask uint32, s []Float16) Float16x32 {
	var v Float16x32
	for i := range v {
		if mask&(1<<uint(i)) != 0 {
			v[i] = s[i]
		}
	}
	return v
}

// Add performs element-wise addition.
func (v Float16x32) Add(other Float16x32) Float16x32 {
	for i := range v {
		v[i] = addF16(v[i], other[i])
	}
	return v
}

// Sub performs element-wise subtraction.
func (v Float16x32) Sub(other Float16x32) Float16x32 {
	for i := range v {
		v[i] = subF16(v[i], other[i])
	}
	return v
}

// MulAdd performs fused multiply-add: v * a + b
func (v Float16x32) MulAdd(a, b Float16x32) Float16x32 {
	for i := range v {
		v[i] = mulAddF16(v[i], a[i], b[i])
	}
	return v
}

// GetLo returns the lower 256 bits.
func (v Float16x32) GetLo() Float16x16 {
	var r Float16x16
	copy(r[:], v[:16])
	return r
}

// GetHi returns the upper 256 bits.
func (v Float16x32) GetHi() Float16x16 {
	var r Float16x16
	copy(r[:], v[16:])
	return r
}

// ReduceSum sums all lanes in half precision and widens the result.
func (v Float16x32) ReduceSum() float32 {
	return ReduceSumF16(v[:]).Float32()
}
