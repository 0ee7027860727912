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

// dotF32x4 processes 4 lanes at a time (NEON q registers, SSE) and pads the
// remainder to one register.
func dotF32x4(a, b []float32) float32 {
	n := len(a)
	b = paired(a, b)
	var acc hwy.Float32x4
	i := 0
	for ; i+4 <= n; i += 4 {
		acc = hwy.LoadFloat32x4Slice(a[i:]).MulAdd(hwy.LoadFloat32x4Slice(b[i:]), acc)
	}
	if i < n {
		var x, y hwy.Float32x4
		copy(x[:], a[i:])
		copy(y[:], b[i:])
		acc = x.MulAdd(y, acc)
	}
	return acc.ReduceSum()
}

func sqDistF32x4(a, b []float32) float32 {
	n := len(a)
	b = paired(a, b)
	var acc hwy.Float32x4
	i := 0
	for ; i+4 <= n; i += 4 {
		d := hwy.LoadFloat32x4Slice(a[i:]).Sub(hwy.LoadFloat32x4Slice(b[i:]))
		acc = d.MulAdd(d, acc)
	}
	if i < n {
		var x, y hwy.Float32x4
		copy(x[:], a[i:])
		copy(y[:], b[i:])
		d := x.Sub(y)
		acc = d.MulAdd(d, acc)
	}
	return acc.ReduceSum()
}

// dotF32x8 loops 8 lanes (AVX2), then one 4-lane step zero-extended into
// the 8-lane accumulator, then a padded 4-lane tail.
func dotF32x8(a, b []float32) float32 {
	n := len(a)
	b = paired(a, b)
	var acc hwy.Float32x8
	i := 0
	for ; i+8 <= n; i += 8 {
		acc = hwy.LoadFloat32x8Slice(a[i:]).MulAdd(hwy.LoadFloat32x8Slice(b[i:]), acc)
	}
	if i+4 <= n {
		x := hwy.LoadFloat32x4Slice(a[i:]).ZeroExtend()
		y := hwy.LoadFloat32x4Slice(b[i:]).ZeroExtend()
		acc = x.MulAdd(y, acc)
		i += 4
	}
	if i < n {
		var x, y hwy.Float32x4
		copy(x[:], a[i:])
		copy(y[:], b[i:])
		acc = x.ZeroExtend().MulAdd(y.ZeroExtend(), acc)
	}
	return acc.ReduceSum()
}

func sqDistF32x8(a, b []float32) float32 {
	n := len(a)
	b = paired(a, b)
	var acc hwy.Float32x8
	i := 0
	for ; i+8 <= n; i += 8 {
		d := hwy.LoadFloat32x8Slice(a[i:]).Sub(hwy.LoadFloat32x8Slice(b[i:]))
		acc = d.MulAdd(d, acc)
	}
	if i+4 <= n {
		d := hwy.LoadFloat32x4Slice(a[i:]).Sub(hwy.LoadFloat32x4Slice(b[i:])).ZeroExtend()
		acc = d.MulAdd(d, acc)
		i += 4
	}
	if i < n {
		var x, y hwy.Float32x4
		copy(x[:], a[i:])
		copy(y[:], b[i:])
		d := x.Sub(y).ZeroExtend()
		acc = d.MulAdd(d, acc)
	}
	return acc.ReduceSum()
}

// dotF32x16 loops 16 lanes (AVX-512) and finishes with a masked load.
func dotF32x16(a, b []float32) float32 {
	n := len(a)
	b = paired(a, b)
	var acc hwy.Float32x16
	i := 0
	for ; i+16 <= n; i += 16 {
		acc = hwy.LoadFloat32x16Slice(a[i:]).MulAdd(hwy.LoadFloat32x16Slice(b[i:]), acc)
	}
	if i < n {
		mask := uint16(hwy.Bzhi32(n - i))
		acc = hwy.MaskzLoadFloat32x16(mask, a[i:]).MulAdd(hwy.MaskzLoadFloat32x16(mask, b[i:]), acc)
	}
	return acc.ReduceSum()
}

func sqDistF32x16(a, b []float32) float32 {
	n := len(a)
	b = paired(a, b)
	var acc hwy.Float32x16
	i := 0
	for ; i+16 <= n; i += 16 {
		d := hwy.LoadFloat32x16Slice(a[i:]).Sub(hwy.LoadFloat32x16Slice(b[i:]))
		acc = d.MulAdd(d, acc)
	}
	if i < n {
		mask := uint16(hwy.Bzhi32(n - i))
		d := hwy.MaskzLoadFloat32x16(mask, a[i:]).Sub(hwy.MaskzLoadFloat32x16(mask, b[i:]))
		acc = d.MulAdd(d, acc)
	}
	return acc.ReduceSum()
}

func dotF32Fallback(a, b []float32) float32 {
	n := len(a)
	b = paired(a, b)
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func sqDistF32Fallback(a, b []float32) float32 {
	n := len(a)
	b = paired(a, b)
	var sum float32
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// DotBatchF32 computes DotF32(queries[i], keys[i]) for each pair.
// Returns a slice of length min(len(queries), len(keys)).
func DotBatchF32(queries, keys [][]float32) []float32 {
	n := min(len(queries), len(keys))
	results := make([]float32, n)
	for i := 0; i < n; i++ {
		results[i] = DotF32(queries[i], keys[i])
	}
	return results
}
