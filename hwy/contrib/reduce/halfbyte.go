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

package reduce

import "github.com/embedkit/go-vreduce/hwy"

// Packed 4-bit codes hold two elements per byte, element 2j in the low
// nibble of byte j and element 2j+1 in the high nibble. A slice of n bytes
// is a vector of 2n elements.

// dotNibbleDotProd computes the dot product of two packed 4-bit vectors in
// 16-byte blocks (32 elements). Low and high nibbles feed separate
// dot-accumulate accumulators; the remainder is zero-padded to one block.
func dotNibbleDotProd(a, b []uint8) uint32 {
	n := len(a)
	b = paired(a, b)
	nib := hwy.BroadcastUint8x16(0x0f)
	var acc0, acc1 hwy.Uint32x4
	i := 0
	for ; i+16 <= n; i += 16 {
		x := hwy.LoadUint8x16Slice(a[i:])
		y := hwy.LoadUint8x16Slice(b[i:])
		acc0 = acc0.DotAccumulate(x.And(nib), y.And(nib))
		acc1 = acc1.DotAccumulate(x.ShiftRight(4), y.ShiftRight(4))
	}
	if i < n {
		var x, y hwy.Uint8x16
		copy(x[:], a[i:])
		copy(y[:], b[i:])
		acc0 = acc0.DotAccumulate(x.And(nib), y.And(nib))
		acc1 = acc1.DotAccumulate(x.ShiftRight(4), y.ShiftRight(4))
	}
	return acc0.Add(acc1).ReduceSum()
}

// dotNibbleWiden is the variant without a byte dot-product instruction.
// Each 16-bit lane carries four nibble positions; the four products per
// lane are widened into eight accumulators. Bytes left over after the last
// whole block are summed one at a time.
func dotNibbleWiden(a, b []uint8) uint32 {
	n := len(a)
	b = paired(a, b)
	nib := hwy.BroadcastUint16x8(0x000f)
	var acc [8]hwy.Uint32x4
	i := 0
	for ; i+16 <= n; i += 16 {
		x := hwy.LoadUint8x16Slice(a[i:]).AsUint16x8()
		y := hwy.LoadUint8x16Slice(b[i:]).AsUint16x8()
		for k := 0; k < 4; k++ {
			s := uint(4 * k)
			p := x.ShiftRight(s).And(nib).Mul(y.ShiftRight(s).And(nib))
			acc[2*k] = acc[2*k].Add(p.WidenLo())
			acc[2*k+1] = acc[2*k+1].Add(p.WidenHi())
		}
	}
	for w := len(acc); w > 1; w /= 2 {
		for k := 0; k < w/2; k++ {
			acc[k] = acc[k].Add(acc[k+w/2])
		}
	}
	sum := acc[0].ReduceSum()
	for ; i < n; i++ {
		sum += uint32(a[i]&0x0f)*uint32(b[i]&0x0f) + uint32(a[i]>>4)*uint32(b[i]>>4)
	}
	return sum
}

func dotNibbleFallback(a, b []uint8) uint32 {
	n := len(a)
	b = paired(a, b)
	var sum uint32
	for i := 0; i < n; i++ {
		sum += uint32(a[i]&0x0f)*uint32(b[i]&0x0f) + uint32(a[i]>>4)*uint32(b[i]>>4)
	}
	return sum
}
