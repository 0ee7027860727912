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

import "math/bits"

// Uint64x8 represents a 512-bit vector of 8 uint64 values.
type Uint64x8 [8]uint64

// LoadUint64x8Slice loads 8 words. Panics if len(s) < 8.
func LoadUint64x8Slice(s []uint64) Uint64x8 {
	var v Uint64x8
	copy(v[:], s[:8])
	return v
}

// MaskzLoadUint64x8 loads the words whose mask bit is set and zeroes the
// rest. Only s[i] for set bits i is read.
func MaskzLoadUint64x8(mask uint8, s []uint64) Uint64x8 {
	var v Uint64x8
	for i := range v {
		if mask&(1<<uint(i)) != 0 {
			v[i] = s[i]
		}
	}
	return v
}

// And performs element-wise bitwise AND.
func (v Uint64x8) And(other Uint64x8) Uint64x8 {
	for i := range v {
		v[i] &= other[i]
	}
	return v
}

// Or performs element-wise bitwise OR.
func (v Uint64x8) Or(other Uint64x8) Uint64x8 {
	for i := range v {
		v[i] |= other[i]
	}
	return v
}

// Xor performs element-wise bitwise XOR.
func (v Uint64x8) Xor(other Uint64x8) Uint64x8 {
	for i := range v {
		v[i] ^= other[i]
	}
	return v
}

// Add performs element-wise addition.
func (v Uint64x8) Add(other Uint64x8) Uint64x8 {
	for i := range v {
		v[i] += other[i]
	}
	return v
}

// PopCount replaces every lane by its number of set bits (vpopcntq).
func (v Uint64x8) PopCount() Uint64x8 {
	for i := range v {
		v[i] = uint64(bits.OnesCount64(v[i]))
	}
	return v
}

// AsUint8x64 reinterprets the lanes as little-endian bytes.
func (v Uint64x8) AsUint8x64() Uint8x64 {
	var r Uint8x64
	for i, w := range v {
		for j := range 8 {
			r[8*i+j] = uint8(w >> (8 * j))
		}
	}
	return r
}

// ReduceSum returns the sum of all elements.
func (v Uint64x8) ReduceSum() uint64 {
	return ReduceSumU64(v[:])
}
