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

// dotU8DotProd computes Σ a[i]*b[i] over bytes in 16-byte blocks with a
// single four-lane accumulator advanced by a 4-way dot-accumulate (UDOT).
// The remainder is zero-padded to one block.
func dotU8DotProd(a, b []uint8) uint32 {
	n := len(a)
	b = paired(a, b)
	var acc hwy.Uint32x4
	i := 0
	for ; i+16 <= n; i += 16 {
		acc = acc.DotAccumulate(hwy.LoadUint8x16Slice(a[i:]), hwy.LoadUint8x16Slice(b[i:]))
	}
	if i < n {
		var pa, pb hwy.Uint8x16
		copy(pa[:], a[i:])
		copy(pb[:], b[i:])
		acc = acc.DotAccumulate(pa, pb)
	}
	return acc.ReduceSum()
}

// dotU8Widen is the NEON variant without UDOT: widening multiplies of the
// low and high halves feed two accumulators through pairwise widening adds.
func dotU8Widen(a, b []uint8) uint32 {
	n := len(a)
	b = paired(a, b)
	var acc0, acc1 hwy.Uint32x4
	i := 0
	for ; i+16 <= n; i += 16 {
		x := hwy.LoadUint8x16Slice(a[i:])
		y := hwy.LoadUint8x16Slice(b[i:])
		acc0 = acc0.Add(x.MulWidenLo(y).PairwiseAddWiden())
		acc1 = acc1.Add(x.MulWidenHi(y).PairwiseAddWiden())
	}
	if i < n {
		var x, y hwy.Uint8x16
		copy(x[:], a[i:])
		copy(y[:], b[i:])
		acc0 = acc0.Add(x.MulWidenLo(y).PairwiseAddWiden())
		acc1 = acc1.Add(x.MulWidenHi(y).PairwiseAddWiden())
	}
	return acc0.Add(acc1).ReduceSum()
}

// dotU8Wide works on 64-byte blocks. Even and odd bytes are split out of
// 16-bit lanes and multiplied with pairwise adds into two 16-lane
// accumulators; the remainder uses a masked load.
func dotU8Wide(a, b []uint8) uint32 {
	n := len(a)
	b = paired(a, b)
	lo := hwy.BroadcastUint16x32(0x00ff)
	var acc0, acc1 hwy.Uint32x16
	i := 0
	for ; i+64 <= n; i += 64 {
		x := hwy.LoadUint8x64Slice(a[i:]).AsUint16x32()
		y := hwy.LoadUint8x64Slice(b[i:]).AsUint16x32()
		acc0 = acc0.Add(x.And(lo).MulAddPairs(y.And(lo)))
		acc1 = acc1.Add(x.ShiftRight(8).MulAddPairs(y.ShiftRight(8)))
	}
	if i < n {
		mask := hwy.Bzhi64(n - i)
		x := hwy.MaskzLoadUint8x64(mask, a[i:]).AsUint16x32()
		y := hwy.MaskzLoadUint8x64(mask, b[i:]).AsUint16x32()
		acc0 = acc0.Add(x.And(lo).MulAddPairs(y.And(lo)))
		acc1 = acc1.Add(x.ShiftRight(8).MulAddPairs(y.ShiftRight(8)))
	}
	return acc0.Add(acc1).ReduceSum()
}

func dotU8Fallback(a, b []uint8) uint32 {
	n := len(a)
	b = paired(a, b)
	var sum uint32
	for i := 0; i < n; i++ {
		sum += uint32(a[i]) * uint32(b[i])
	}
	return sum
}

// SumU8 returns Σ a[i], dot-accumulating 16-byte blocks against a vector of
// ones. The remainder is zero-padded to one block.
func SumU8(a []uint8) uint32 {
	n := len(a)
	ones := hwy.BroadcastUint8x16(1)
	var acc hwy.Uint32x4
	i := 0
	for ; i+16 <= n; i += 16 {
		acc = acc.DotAccumulate(hwy.LoadUint8x16Slice(a[i:]), ones)
	}
	if i < n {
		var pa hwy.Uint8x16
		copy(pa[:], a[i:])
		acc = acc.DotAccumulate(pa, ones)
	}
	return acc.ReduceSum()
}
