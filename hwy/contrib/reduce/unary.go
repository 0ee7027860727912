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

import (
	"math"

	"github.com/samber/lo"

	"github.com/embedkit/go-vreduce/hwy"
)

// Single-vector reductions share one kernel body per register width. A
// block iterator loads the input, widening half precision to float32, and
// hands the body one register at a time. Padded iterators fill lanes past
// the end with pad: zero for sums, NaN for min/max, which ignore NaN lanes.
// The 16-lane iterators zero inactive lanes and pass their mask instead.

func blocksF32x4(x []float32, pad float32, fn func(v hwy.Float32x4)) {
	n := len(x)
	i := 0
	for ; i+4 <= n; i += 4 {
		fn(hwy.LoadFloat32x4Slice(x[i:]))
	}
	if i < n {
		v := hwy.BroadcastFloat32x4(pad)
		copy(v[:], x[i:])
		fn(v)
	}
}

// blocksF32x8 loops 8 lanes, then takes one 4-lane step and a padded 4-lane
// tail, each filled to 8 lanes with pad.
func blocksF32x8(x []float32, pad float32, fn func(v hwy.Float32x8)) {
	n := len(x)
	i := 0
	for ; i+8 <= n; i += 8 {
		fn(hwy.LoadFloat32x8Slice(x[i:]))
	}
	fill := hwy.BroadcastFloat32x4(pad)
	if i+4 <= n {
		fn(hwy.LoadFloat32x4Slice(x[i:]).Concat(fill))
		i += 4
	}
	if i < n {
		v := fill
		copy(v[:], x[i:])
		fn(v.Concat(fill))
	}
}

func blocksF32x16(x []float32, fn func(v hwy.Float32x16, mask uint16)) {
	n := len(x)
	i := 0
	for ; i+16 <= n; i += 16 {
		fn(hwy.LoadFloat32x16Slice(x[i:]), 0xffff)
	}
	if i < n {
		mask := uint16(hwy.Bzhi32(n - i))
		fn(hwy.MaskzLoadFloat32x16(mask, x[i:]), mask)
	}
}

func blocksF16x4(x []hwy.Float16, pad float32, fn func(v hwy.Float32x4)) {
	n := len(x)
	i := 0
	for ; i+4 <= n; i += 4 {
		fn(hwy.LoadFloat16x4Slice(x[i:]).Promote())
	}
	if i < n {
		v := hwy.BroadcastFloat32x4(pad)
		hwy.PromoteF16ToF32(x[i:], v[:])
		fn(v)
	}
}

func blocksF16x8(x []hwy.Float16, pad float32, fn func(v hwy.Float32x8)) {
	n := len(x)
	i := 0
	for ; i+8 <= n; i += 8 {
		fn(hwy.LoadFloat16x8Slice(x[i:]).Promote())
	}
	if i < n {
		v := hwy.BroadcastFloat32x8(pad)
		hwy.PromoteF16ToF32(x[i:], v[:])
		fn(v)
	}
}

func blocksF16x16(x []hwy.Float16, fn func(v hwy.Float32x16, mask uint16)) {
	n := len(x)
	i := 0
	for ; i+16 <= n; i += 16 {
		fn(hwy.LoadFloat16x16Slice(x[i:]).Promote(), 0xffff)
	}
	if i < n {
		mask := uint16(hwy.Bzhi32(n - i))
		fn(hwy.MaskzLoadFloat16x16(mask, x[i:]).Promote(), mask)
	}
}

var (
	inf32 = float32(math.Inf(1))
	nan32 = float32(math.NaN())
)

// ===== 4 lanes =====

func sumX4[T any](each func([]T, float32, func(hwy.Float32x4))) func([]T) float32 {
	return func(x []T) float32 {
		var acc hwy.Float32x4
		each(x, 0, func(v hwy.Float32x4) { acc = acc.Add(v) })
		return acc.ReduceSum()
	}
}

func sumAbsX4[T any](each func([]T, float32, func(hwy.Float32x4))) func([]T) float32 {
	return func(x []T) float32 {
		var acc hwy.Float32x4
		each(x, 0, func(v hwy.Float32x4) { acc = acc.Add(v.Abs()) })
		return acc.ReduceSum()
	}
}

func sqNormX4[T any](each func([]T, float32, func(hwy.Float32x4))) func([]T) float32 {
	return func(x []T) float32 {
		var acc hwy.Float32x4
		each(x, 0, func(v hwy.Float32x4) { acc = v.MulAdd(v, acc) })
		return acc.ReduceSum()
	}
}

func minMaxX4[T any](each func([]T, float32, func(hwy.Float32x4))) func([]T) (float32, float32) {
	return func(x []T) (float32, float32) {
		mn, mx := hwy.BroadcastFloat32x4(inf32), hwy.BroadcastFloat32x4(-inf32)
		each(x, nan32, func(v hwy.Float32x4) {
			mn = mn.MinNum(v)
			mx = mx.MaxNum(v)
		})
		return mn.ReduceMin(), mx.ReduceMax()
	}
}

// ===== 8 lanes =====

func sumX8[T any](each func([]T, float32, func(hwy.Float32x8))) func([]T) float32 {
	return func(x []T) float32 {
		var acc hwy.Float32x8
		each(x, 0, func(v hwy.Float32x8) { acc = acc.Add(v) })
		return acc.ReduceSum()
	}
}

func sumAbsX8[T any](each func([]T, float32, func(hwy.Float32x8))) func([]T) float32 {
	return func(x []T) float32 {
		var acc hwy.Float32x8
		each(x, 0, func(v hwy.Float32x8) { acc = acc.Add(v.Abs()) })
		return acc.ReduceSum()
	}
}

func sqNormX8[T any](each func([]T, float32, func(hwy.Float32x8))) func([]T) float32 {
	return func(x []T) float32 {
		var acc hwy.Float32x8
		each(x, 0, func(v hwy.Float32x8) { acc = v.MulAdd(v, acc) })
		return acc.ReduceSum()
	}
}

func minMaxX8[T any](each func([]T, float32, func(hwy.Float32x8))) func([]T) (float32, float32) {
	return func(x []T) (float32, float32) {
		mn, mx := hwy.BroadcastFloat32x8(inf32), hwy.BroadcastFloat32x8(-inf32)
		each(x, nan32, func(v hwy.Float32x8) {
			mn = mn.MinNum(v)
			mx = mx.MaxNum(v)
		})
		return mn.ReduceMin(), mx.ReduceMax()
	}
}

// ===== 16 lanes =====

func sumX16[T any](each func([]T, func(hwy.Float32x16, uint16))) func([]T) float32 {
	return func(x []T) float32 {
		var acc hwy.Float32x16
		each(x, func(v hwy.Float32x16, _ uint16) { acc = acc.Add(v) })
		return acc.ReduceSum()
	}
}

func sumAbsX16[T any](each func([]T, func(hwy.Float32x16, uint16))) func([]T) float32 {
	return func(x []T) float32 {
		var acc hwy.Float32x16
		each(x, func(v hwy.Float32x16, _ uint16) { acc = acc.Add(v.Abs()) })
		return acc.ReduceSum()
	}
}

func sqNormX16[T any](each func([]T, func(hwy.Float32x16, uint16))) func([]T) float32 {
	return func(x []T) float32 {
		var acc hwy.Float32x16
		each(x, func(v hwy.Float32x16, _ uint16) { acc = v.MulAdd(v, acc) })
		return acc.ReduceSum()
	}
}

// minMaxX16 merges only the active lanes of the tail, so zeroed lanes never
// reach the accumulators (_mm512_mask_min_ps).
func minMaxX16[T any](each func([]T, func(hwy.Float32x16, uint16))) func([]T) (float32, float32) {
	return func(x []T) (float32, float32) {
		mn, mx := hwy.BroadcastFloat32x16(inf32), hwy.BroadcastFloat32x16(-inf32)
		each(x, func(v hwy.Float32x16, mask uint16) {
			mn = mn.MinNumMasked(mask, v)
			mx = mx.MaxNumMasked(mask, v)
		})
		return mn.ReduceMin(), mx.ReduceMax()
	}
}

// ===== Fallbacks =====

func f32Value(x float32) float32 { return x }

func sumFallback[T any](conv func(T) float32) func([]T) float32 {
	return func(x []T) float32 {
		var sum float32
		for _, e := range x {
			sum += conv(e)
		}
		return sum
	}
}

func sumAbsFallback[T any](conv func(T) float32) func([]T) float32 {
	return func(x []T) float32 {
		var sum float32
		for _, e := range x {
			sum += float32(math.Abs(float64(conv(e))))
		}
		return sum
	}
}

func sqNormFallback[T any](conv func(T) float32) func([]T) float32 {
	return func(x []T) float32 {
		var sum float32
		for _, e := range x {
			v := conv(e)
			sum += v * v
		}
		return sum
	}
}

func minMaxFallback[T any](conv func(T) float32) func([]T) (float32, float32) {
	return func(x []T) (float32, float32) {
		mn, mx := inf32, -inf32
		for _, e := range x {
			v := conv(e)
			mn = hwy.MinNum(mn, v)
			mx = hwy.MaxNum(mx, v)
		}
		return mn, mx
	}
}

// HasZeroF32 reports whether any element of x is +0 or -0.
func HasZeroF32(x []float32) bool {
	return lo.ContainsBy(x, func(v float32) bool { return v == 0 })
}

// HasZeroF16 reports whether any element of x is +0 or -0.
func HasZeroF16(x []hwy.Float16) bool {
	return lo.ContainsBy(x, func(v hwy.Float16) bool { return uint16(v)&0x7fff == 0 })
}
