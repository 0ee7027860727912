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

// dotF32Scalable is the SVE single-precision dot product. Every iteration,
// including the last, builds a while-less-than predicate, so partial
// registers need no separate tail path.
func dotF32Scalable(a, b []float32) float32 {
	n := len(a)
	b = paired(a, b)
	vl := hwy.MaxLanes[float32]()
	acc := hwy.Zero[float32]()
	for i := 0; i < n; i += vl {
		mask := hwy.WhileLessThan[float32](i, n)
		x := hwy.MaskLoad(mask, a[i:])
		y := hwy.MaskLoad(mask, b[i:])
		acc = hwy.MulAddMasked(mask, acc, x, y)
	}
	return hwy.ReduceSum(acc)
}

func sqDistF32Scalable(a, b []float32) float32 {
	n := len(a)
	b = paired(a, b)
	vl := hwy.MaxLanes[float32]()
	acc := hwy.Zero[float32]()
	for i := 0; i < n; i += vl {
		mask := hwy.WhileLessThan[float32](i, n)
		d := hwy.SubMasked(mask, hwy.MaskLoad(mask, a[i:]), hwy.MaskLoad(mask, b[i:]))
		acc = hwy.MulAddMasked(mask, acc, d, d)
	}
	return hwy.ReduceSum(acc)
}
