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

// 512-bit half-precision kernels (AVX-512-FP16): 32 f16 lanes per register.

// dotF16x32 uses two accumulators. Pairs of registers are looped first,
// then single registers into the first accumulator; the remainder is a
// masked load into the second accumulator.
func dotF16x32(a, b []hwy.Float16) float32 {
	n := len(a)
	b = paired(a, b)
	var acc0, acc1 hwy.Float16x32
	i := 0
	for ; i+64 <= n; i += 64 {
		acc0 = hwy.LoadFloat16x32Slice(a[i:]).MulAdd(hwy.LoadFloat16x32Slice(b[i:]), acc0)
		acc1 = hwy.LoadFloat16x32Slice(a[i+32:]).MulAdd(hwy.LoadFloat16x32Slice(b[i+32:]), acc1)
	}
	for ; i+32 <= n; i += 32 {
		acc0 = hwy.LoadFloat16x32Slice(a[i:]).MulAdd(hwy.LoadFloat16x32Slice(b[i:]), acc0)
	}
	if i < n {
		mask := hwy.Bzhi32(n - i)
		x := hwy.MaskzLoadFloat16x32(mask, a[i:])
		y := hwy.MaskzLoadFloat16x32(mask, b[i:])
		acc1 = x.MulAdd(y, acc1)
	}
	return reduceF16x32Pair(acc0, acc1)
}

func sqDistF16x32(a, b []hwy.Float16) float32 {
	n := len(a)
	b = paired(a, b)
	var acc0, acc1 hwy.Float16x32
	i := 0
	for ; i+64 <= n; i += 64 {
		d0 := hwy.LoadFloat16x32Slice(a[i:]).Sub(hwy.LoadFloat16x32Slice(b[i:]))
		d1 := hwy.LoadFloat16x32Slice(a[i+32:]).Sub(hwy.LoadFloat16x32Slice(b[i+32:]))
		acc0 = d0.MulAdd(d0, acc0)
		acc1 = d1.MulAdd(d1, acc1)
	}
	for ; i+32 <= n; i += 32 {
		d := hwy.LoadFloat16x32Slice(a[i:]).Sub(hwy.LoadFloat16x32Slice(b[i:]))
		acc0 = d.MulAdd(d, acc0)
	}
	if i < n {
		mask := hwy.Bzhi32(n - i)
		d := hwy.MaskzLoadFloat16x32(mask, a[i:]).Sub(hwy.MaskzLoadFloat16x32(mask, b[i:]))
		acc1 = d.MulAdd(d, acc1)
	}
	return reduceF16x32Pair(acc0, acc1)
}

// reduceF16x32Pair widens both halves of each accumulator to float32 and
// sums them as (lo0+lo1)+(hi0+hi1).
func reduceF16x32Pair(acc0, acc1 hwy.Float16x32) float32 {
	s0 := acc0.GetLo().Promote()
	s1 := acc0.GetHi().Promote()
	s2 := acc1.GetLo().Promote()
	s3 := acc1.GetHi().Promote()
	return s0.Add(s2).Add(s1.Add(s3)).ReduceSum()
}

// dotF16x32Single is the one-accumulator form: 32-lane loop, masked tail,
// and a horizontal sum carried out in half precision.
func dotF16x32Single(a, b []hwy.Float16) float32 {
	n := len(a)
	b = paired(a, b)
	var acc hwy.Float16x32
	i := 0
	for ; i+32 <= n; i += 32 {
		acc = hwy.LoadFloat16x32Slice(a[i:]).MulAdd(hwy.LoadFloat16x32Slice(b[i:]), acc)
	}
	if i < n {
		mask := hwy.Bzhi32(n - i)
		acc = hwy.MaskzLoadFloat16x32(mask, a[i:]).MulAdd(hwy.MaskzLoadFloat16x32(mask, b[i:]), acc)
	}
	return acc.ReduceSum()
}

func sqDistF16x32Single(a, b []hwy.Float16) float32 {
	n := len(a)
	b = paired(a, b)
	var acc hwy.Float16x32
	i := 0
	for ; i+32 <= n; i += 32 {
		d := hwy.LoadFloat16x32Slice(a[i:]).Sub(hwy.LoadFloat16x32Slice(b[i:]))
		acc = d.MulAdd(d, acc)
	}
	if i < n {
		mask := hwy.Bzhi32(n - i)
		d := hwy.MaskzLoadFloat16x32(mask, a[i:]).Sub(hwy.MaskzLoadFloat16x32(mask, b[i:]))
		acc = d.MulAdd(d, acc)
	}
	return acc.ReduceSum()
}
