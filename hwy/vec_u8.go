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

// Uint8x16 represents a 128-bit vector of 16 uint8 values.
type Uint8x16 [16]uint8

// Uint8x64 represents a 512-bit vector of 64 uint8 values.
type Uint8x64 [64]uint8

// Uint16x8 represents a 128-bit vector of 8 uint16 values.
type Uint16x8 [8]uint16

// Uint16x32 represents a 512-bit vector of 32 uint16 values.
type Uint16x32 [32]uint16

// Uint32x4 represents a 128-bit vector of 4 uint32 values.
type Uint32x4 [4]uint32

// Uint32x16 represents a 512-bit vector of 16 uint32 values.
type Uint32x16 [16]uint32

// ===== Uint8x16 =====

// BroadcastUint8x16 creates a vector with all lanes set to the given value.
func BroadcastUint8x16(v uint8) Uint8x16 {
	var r Uint8x16
	for i := range r {
		r[i] = v
	}
	return r
}

// LoadUint8x16Slice loads 16 bytes. Panics if len(s) < 16.
func LoadUint8x16Slice(s []uint8) Uint8x16 {
	var v Uint8x16
	copy(v[:], s[:16])
	return v
}

// And performs element-wise bitwise AND.
func (v Uint8x16) And(other Uint8x16) Uint8x16 {
	for i := range v {
		v[i] &= other[i]
	}
	return v
}

// ShiftRight shifts every byte right by k bits, filling with zeros.
func (v Uint8x16) ShiftRight(k uint) Uint8x16 {
	for i := range v {
		v[i] >>= k
	}
	return v
}

// AsUint16x8 reinterprets the bytes as little-endian 16-bit lanes.
func (v Uint8x16) AsUint16x8() Uint16x8 {
	var r Uint16x8
	for i := range r {
		r[i] = uint16(v[2*i]) | uint16(v[2*i+1])<<8
	}
	return r
}

// MulWidenLo multiplies the lower 8 lanes of v and other into 16-bit
// products (vmull_u8 on the low halves).
func (v Uint8x16) MulWidenLo(other Uint8x16) Uint16x8 {
	var r Uint16x8
	for i := range r {
		r[i] = uint16(v[i]) * uint16(other[i])
	}
	return r
}

// MulWidenHi multiplies the upper 8 lanes of v and other into 16-bit products.
func (v Uint8x16) MulWidenHi(other Uint8x16) Uint16x8 {
	var r Uint16x8
	for i := range r {
		r[i] = uint16(v[8+i]) * uint16(other[8+i])
	}
	return r
}

// ===== Uint8x64 =====

// BroadcastUint8x64 creates a vector with all lanes set to the given value.
func BroadcastUint8x64(v uint8) Uint8x64 {
	var r Uint8x64
	for i := range r {
		r[i] = v
	}
	return r
}

// LoadUint8x64Slice loads 64 bytes. Panics if len(s) < 64.
func LoadUint8x64Slice(s []uint8) Uint8x64 {
	var v Uint8x64
	copy(v[:], s[:64])
	return v
}

// MaskzLoadUint8x64 loads the bytes whose mask bit is set and zeroes the
// rest. Only s[i] for set bits i is read.
func MaskzLoadUint8x64(mask uint64, s []uint8) Uint8x64 {
	var v Uint8x64
	for i := range v {
		if mask&(1<<uint(i)) != 0 {
			v[i] = s[i]
		}
	}
	return v
}

// And performs element-wise bitwise AND.
func (v Uint8x64) And(other Uint8x64) Uint8x64 {
	for i := range v {
		v[i] &= other[i]
	}
	return v
}

// Add performs element-wise wrapping addition.
func (v Uint8x64) Add(other Uint8x64) Uint8x64 {
	for i := range v {
		v[i] += other[i]
	}
	return v
}

// ShiftRight shifts every byte right by k bits, filling with zeros.
func (v Uint8x64) ShiftRight(k uint) Uint8x64 {
	for i := range v {
		v[i] >>= k
	}
	return v
}

// Lookup replaces each byte by table[byte&0x0f], or zero when the byte's
// high bit is set (vpshufb with table repeated in every 128-bit lane).
func (v Uint8x64) Lookup(table Uint8x16) Uint8x64 {
	for i := range v {
		if v[i]&0x80 != 0 {
			v[i] = 0
		} else {
			v[i] = table[v[i]&0x0f]
		}
	}
	return v
}

// SumGroups8 adds each group of 8 consecutive bytes into a 64-bit lane
// (vpsadbw against zero).
func (v Uint8x64) SumGroups8() Uint64x8 {
	var r Uint64x8
	for i := range r {
		for _, b := range v[8*i : 8*i+8] {
			r[i] += uint64(b)
		}
	}
	return r
}

// AsUint16x32 reinterprets the bytes as little-endian 16-bit lanes.
func (v Uint8x64) AsUint16x32() Uint16x32 {
	var r Uint16x32
	for i := range r {
		r[i] = uint16(v[2*i]) | uint16(v[2*i+1])<<8
	}
	return r
}

// ===== Uint16x8 =====

// BroadcastUint16x8 creates a vector with all lanes set to the given value.
func BroadcastUint16x8(v uint16) Uint16x8 {
	return Uint16x8{v, v, v, v, v, v, v, v}
}

// And performs element-wise bitwise AND.
func (v Uint16x8) And(other Uint16x8) Uint16x8 {
	for i := range v {
		v[i] &= other[i]
	}
	return v
}

// ShiftRight shifts every lane right by k bits.
func (v Uint16x8) ShiftRight(k uint) Uint16x8 {
	for i := range v {
		v[i] >>= k
	}
	return v
}

// Mul performs element-wise multiplication, keeping the low 16 bits.
func (v Uint16x8) Mul(other Uint16x8) Uint16x8 {
	for i := range v {
		v[i] *= other[i]
	}
	return v
}

// PairwiseAddWiden adds adjacent lane pairs into 32-bit lanes (vpaddlq_u16).
func (v Uint16x8) PairwiseAddWiden() Uint32x4 {
	return Uint32x4{
		uint32(v[0]) + uint32(v[1]),
		uint32(v[2]) + uint32(v[3]),
		uint32(v[4]) + uint32(v[5]),
		uint32(v[6]) + uint32(v[7]),
	}
}

// WidenLo zero-extends the lower 4 lanes to 32 bits (vmovl_u16).
func (v Uint16x8) WidenLo() Uint32x4 {
	return Uint32x4{uint32(v[0]), uint32(v[1]), uint32(v[2]), uint32(v[3])}
}

// WidenHi zero-extends the upper 4 lanes to 32 bits.
func (v Uint16x8) WidenHi() Uint32x4 {
	return Uint32x4{uint32(v[4]), uint32(v[5]), uint32(v[6]), uint32(v[7])}
}

// ===== Uint16x32 =====

// BroadcastUint16x32 creates a vector with all lanes set to the given value.
func BroadcastUint16x32(v uint16) Uint16x32 {
	var r Uint16x32
	for i := range r {
		r[i] = v
	}
	return r
}

// And performs element-wise bitwise AND.
func (v Uint16x32) And(other Uint16x32) Uint16x32 {
	for i := range v {
		v[i] &= other[i]
	}
	return v
}

// ShiftRight shifts every lane right by k bits.
func (v Uint16x32) ShiftRight(k uint) Uint16x32 {
	for i := range v {
		v[i] >>= k
	}
	return v
}

// MulAddPairs multiplies lanes and adds adjacent products into 32-bit lanes
// (vpmaddwd). Operands are at most 0xff here, so no product overflows.
func (v Uint16x32) MulAddPairs(other Uint16x32) Uint32x16 {
	var r Uint32x16
	for i := range r {
		r[i] = uint32(v[2*i])*uint32(other[2*i]) + uint32(v[2*i+1])*uint32(other[2*i+1])
	}
	return r
}

// ===== Uint32x4 =====

// Add performs element-wise addition.
func (v Uint32x4) Add(other Uint32x4) Uint32x4 {
	for i := range v {
		v[i] += other[i]
	}
	return v
}

// DotAccumulate adds to each 32-bit lane the dot product of the four bytes
// of x and y that share its position (vdotq_u32 / UDOT).
func (v Uint32x4) DotAccumulate(x, y Uint8x16) Uint32x4 {
	for i := range v {
		j := 4 * i
		v[i] += uint32(x[j])*uint32(y[j]) +
			uint32(x[j+1])*uint32(y[j+1]) +
			uint32(x[j+2])*uint32(y[j+2]) +
			uint32(x[j+3])*uint32(y[j+3])
	}
	return v
}

// ReduceSum returns the sum of all elements.
func (v Uint32x4) ReduceSum() uint32 {
	return ReduceSumU32(v[:])
}

// ===== Uint32x16 =====

// Add performs element-wise addition.
func (v Uint32x16) Add(other Uint32x16) Uint32x16 {
	for i := range v {
		v[i] += other[i]
	}
	return v
}

// ReduceSum returns the sum of all elements.
func (v Uint32x16) ReduceSum() uint32 {
	return ReduceSumU32(v[:])
}
