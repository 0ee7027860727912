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

// Half-precision kernels. Variants that accumulate in half precision
// (NEON +fp16, AVX-512-FP16, SVE) round every lane update to f16 and widen
// their accumulators to float32 only for the final reduction. Variants that
// widen on load (F16C, AVX-512, plain NEON) accumulate in float32 throughout.

// f16x8Step folds one 8-lane block pair into an accumulator.
type f16x8Step func(acc, x, y hwy.Float16x8) hwy.Float16x8

func dotStepF16x8(acc, x, y hwy.Float16x8) hwy.Float16x8 {
	return x.MulAdd(y, acc)
}

func sqDistStepF16x8(acc, x, y hwy.Float16x8) hwy.Float16x8 {
	d := x.Sub(y)
	return d.MulAdd(d, acc)
}

// tieredF16x8 runs step over 8-lane registers with nacc accumulators
// (nacc is 4 or 8). Whole blocks of 8*nacc elements are looped; then the
// tiers 4*nacc, 2*nacc, ..., 8 each run at most once into accumulators not
// yet touched by a narrower tier, and the last accumulator takes a
// zero-padded 8-lane tail.
//
// Each accumulator is widened to two Float32x4 halves and the halves are
// combined by a pairwise-add tree before the final horizontal sum.
func tieredF16x8(a, b []hwy.Float16, nacc int, step f16x8Step) float32 {
	n := len(a)
	b = paired(a, b)
	var acc [8]hwy.Float16x8
	i := 0
	for ; i+8*nacc <= n; i += 8 * nacc {
		for k := 0; k < nacc; k++ {
			acc[k] = step(acc[k], hwy.LoadFloat16x8Slice(a[i+8*k:]), hwy.LoadFloat16x8Slice(b[i+8*k:]))
		}
	}
	off := 0
	for w := nacc / 2; w >= 1; w /= 2 {
		if i+8*w <= n {
			for k := 0; k < w; k++ {
				acc[off+k] = step(acc[off+k], hwy.LoadFloat16x8Slice(a[i+8*k:]), hwy.LoadFloat16x8Slice(b[i+8*k:]))
			}
			i += 8 * w
		}
		off += w
	}
	if i < n {
		var x, y hwy.Float16x8
		copy(x[:], a[i:])
		copy(y[:], b[i:])
		acc[off] = step(acc[off], x, y)
	}

	var s [16]hwy.Float32x4
	for k := 0; k < nacc; k++ {
		s[2*k] = acc[k].PromoteLo()
		s[2*k+1] = acc[k].PromoteHi()
	}
	for w := 2 * nacc; w > 1; w /= 2 {
		for k := 0; k < w/2; k++ {
			s[k] = s[2*k].PairwiseAdd(s[2*k+1])
		}
	}
	return s[0].ReduceSum()
}

// dotF16x8Tiered is the NEON +fp16 dot product: eight accumulators, block
// tiers of 64/32/16/8 elements and an 8-lane padded tail.
func dotF16x8Tiered(a, b []hwy.Float16) float32 {
	return tieredF16x8(a, b, 8, dotStepF16x8)
}

// sqDistF16x8Tiered subtracts in half precision, then squares and
// accumulates with the same layout as dotF16x8Tiered.
func sqDistF16x8Tiered(a, b []hwy.Float16) float32 {
	return tieredF16x8(a, b, 8, sqDistStepF16x8)
}

// dotF16x4Tiered uses four accumulators and tiers of 32/16/8 elements.
func dotF16x4Tiered(a, b []hwy.Float16) float32 {
	return tieredF16x8(a, b, 4, dotStepF16x8)
}

func sqDistF16x4Tiered(a, b []hwy.Float16) float32 {
	return tieredF16x8(a, b, 4, sqDistStepF16x8)
}

// dotF16Widen4 widens 4 lanes at a time to float32 (NEON without +fp16).
// The remainder is zero-padded to 4 lanes.
func dotF16Widen4(a, b []hwy.Float16) float32 {
	n := len(a)
	b = paired(a, b)
	var acc hwy.Float32x4
	i := 0
	for ; i+4 <= n; i += 4 {
		x := hwy.LoadFloat16x4Slice(a[i:]).Promote()
		y := hwy.LoadFloat16x4Slice(b[i:]).Promote()
		acc = x.MulAdd(y, acc)
	}
	if i < n {
		var px, py hwy.Float16x4
		copy(px[:], a[i:])
		copy(py[:], b[i:])
		x, y := px.Promote(), py.Promote()
		acc = x.MulAdd(y, acc)
	}
	return acc.ReduceSum()
}

func sqDistF16Widen4(a, b []hwy.Float16) float32 {
	n := len(a)
	b = paired(a, b)
	var acc hwy.Float32x4
	i := 0
	for ; i+4 <= n; i += 4 {
		d := hwy.LoadFloat16x4Slice(a[i:]).Promote().Sub(hwy.LoadFloat16x4Slice(b[i:]).Promote())
		acc = d.MulAdd(d, acc)
	}
	if i < n {
		var px, py hwy.Float16x4
		copy(px[:], a[i:])
		copy(py[:], b[i:])
		d := px.Promote().Sub(py.Promote())
		acc = d.MulAdd(d, acc)
	}
	return acc.ReduceSum()
}

// dotF16Widen8 converts 8 lanes at a time (F16C) and accumulates with FMA.
// The accumulator is reduced first and leftover elements are added one by
// one in float32.
func dotF16Widen8(a, b []hwy.Float16) float32 {
	n := len(a)
	b = paired(a, b)
	var acc hwy.Float32x8
	i := 0
	for ; i+8 <= n; i += 8 {
		x := hwy.LoadFloat16x8Slice(a[i:]).Promote()
		y := hwy.LoadFloat16x8Slice(b[i:]).Promote()
		acc = x.MulAdd(y, acc)
	}
	sum := acc.ReduceSum()
	for ; i < n; i++ {
		sum += a[i].Float32() * b[i].Float32()
	}
	return sum
}

func sqDistF16Widen8(a, b []hwy.Float16) float32 {
	n := len(a)
	b = paired(a, b)
	var acc hwy.Float32x8
	i := 0
	for ; i+8 <= n; i += 8 {
		d := hwy.LoadFloat16x8Slice(a[i:]).Promote().Sub(hwy.LoadFloat16x8Slice(b[i:]).Promote())
		acc = d.MulAdd(d, acc)
	}
	sum := acc.ReduceSum()
	for ; i < n; i++ {
		d := a[i].Float32() - b[i].Float32()
		sum += d * d
	}
	return sum
}

// dotF16Widen16 converts 16 lanes at a time (AVX-512 without FP16
// arithmetic); the remainder uses a masked load.
func dotF16Widen16(a, b []hwy.Float16) float32 {
	n := len(a)
	b = paired(a, b)
	var acc hwy.Float32x16
	i := 0
	for ; i+16 <= n; i += 16 {
		x := hwy.LoadFloat16x16Slice(a[i:]).Promote()
		y := hwy.LoadFloat16x16Slice(b[i:]).Promote()
		acc = x.MulAdd(y, acc)
	}
	if i < n {
		mask := uint16(hwy.Bzhi32(n - i))
		x := hwy.MaskzLoadFloat16x16(mask, a[i:]).Promote()
		y := hwy.MaskzLoadFloat16x16(mask, b[i:]).Promote()
		acc = x.MulAdd(y, acc)
	}
	return acc.ReduceSum()
}

func sqDistF16Widen16(a, b []hwy.Float16) float32 {
	n := len(a)
	b = paired(a, b)
	var acc hwy.Float32x16
	i := 0
	for ; i+16 <= n; i += 16 {
		d := hwy.LoadFloat16x16Slice(a[i:]).Promote().Sub(hwy.LoadFloat16x16Slice(b[i:]).Promote())
		acc = d.MulAdd(d, acc)
	}
	if i < n {
		mask := uint16(hwy.Bzhi32(n - i))
		d := hwy.MaskzLoadFloat16x16(mask, a[i:]).Promote().Sub(hwy.MaskzLoadFloat16x16(mask, b[i:]).Promote())
		acc = d.MulAdd(d, acc)
	}
	return acc.ReduceSum()
}

func dotF16Fallback(a, b []hwy.Float16) float32 {
	n := len(a)
	b = paired(a, b)
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i].Float32() * b[i].Float32()
	}
	return sum
}

func sqDistF16Fallback(a, b []hwy.Float16) float32 {
	n := len(a)
	b = paired(a, b)
	var sum float32
	for i := 0; i < n; i++ {
		d := a[i].Float32() - b[i].Float32()
		sum += d * d
	}
	return sum
}
