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

// dotF16Scalable is the SVE half-precision dot product. The register
// length is queried at entry; two accumulators take pairs of registers,
// one more register may go into the first accumulator, and the remainder
// is a predicated multiply-accumulate that leaves inactive lanes unchanged.
func dotF16Scalable(a, b []hwy.Float16) float32 {
	n := len(a)
	b = paired(a, b)
	vl := hwy.MaxLanes[hwy.Float16]()
	acc0 := hwy.Zero[hwy.Float16]()
	acc1 := hwy.Zero[hwy.Float16]()
	i := 0
	for ; i+2*vl <= n; i += 2 * vl {
		acc0 = hwy.MulAddF16(hwy.Load(a[i:]), hwy.Load(b[i:]), acc0)
		acc1 = hwy.MulAddF16(hwy.Load(a[i+vl:]), hwy.Load(b[i+vl:]), acc1)
	}
	if i+vl <= n {
		acc0 = hwy.MulAddF16(hwy.Load(a[i:]), hwy.Load(b[i:]), acc0)
		i += vl
	}
	if i < n {
		mask := hwy.WhileLessThan[hwy.Float16](i, n)
		x := hwy.MaskLoad(mask, a[i:])
		y := hwy.MaskLoad(mask, b[i:])
		acc0 = hwy.MulAddF16Masked(mask, acc0, x, y)
	}
	return reduceScalableF16Pair(acc0, acc1)
}

func sqDistF16Scalable(a, b []hwy.Float16) float32 {
	n := len(a)
	b = paired(a, b)
	vl := hwy.MaxLanes[hwy.Float16]()
	all := hwy.PTrue[hwy.Float16]()
	acc0 := hwy.Zero[hwy.Float16]()
	acc1 := hwy.Zero[hwy.Float16]()
	i := 0
	for ; i+2*vl <= n; i += 2 * vl {
		d0 := hwy.SubF16Masked(all, hwy.Load(a[i:]), hwy.Load(b[i:]))
		d1 := hwy.SubF16Masked(all, hwy.Load(a[i+vl:]), hwy.Load(b[i+vl:]))
		acc0 = hwy.MulAddF16(d0, d0, acc0)
		acc1 = hwy.MulAddF16(d1, d1, acc1)
	}
	if i+vl <= n {
		d := hwy.SubF16Masked(all, hwy.Load(a[i:]), hwy.Load(b[i:]))
		acc0 = hwy.MulAddF16(d, d, acc0)
		i += vl
	}
	if i < n {
		mask := hwy.WhileLessThan[hwy.Float16](i, n)
		d := hwy.SubF16Masked(mask, hwy.MaskLoad(mask, a[i:]), hwy.MaskLoad(mask, b[i:]))
		acc0 = hwy.MulAddF16Masked(mask, acc0, d, d)
	}
	return reduceScalableF16Pair(acc0, acc1)
}

// reduceScalableF16Pair widens the even lanes of each accumulator, then
// the odd lanes by rotating them into even position, and sums
// (even0+even1)+(odd0+odd1).
func reduceScalableF16Pair(acc0, acc1 hwy.Vec[hwy.Float16]) float32 {
	s0 := hwy.PromoteEvenF16(acc0)
	s1 := hwy.PromoteEvenF16(hwy.ExtF16(acc0, 1))
	s2 := hwy.PromoteEvenF16(acc1)
	s3 := hwy.PromoteEvenF16(hwy.ExtF16(acc1, 1))
	return hwy.ReduceSum(hwy.Add(hwy.Add(s0, s2), hwy.Add(s1, s3)))
}
