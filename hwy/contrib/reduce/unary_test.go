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
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/embedkit/go-vreduce/hwy"
)

// refSums returns Σx, Σ|x| and Σx² in float64.
func refSums(x []float64) (sum, abs, sq float64) {
	for _, v := range x {
		sum += v
		abs += stdmath.Abs(v)
		sq += v * v
	}
	return sum, abs, sq
}

// refMinMax skips NaN elements.
func refMinMax(x []float64) (float32, float32) {
	mn, mx := stdmath.Inf(1), stdmath.Inf(-1)
	for _, v := range x {
		if stdmath.IsNaN(v) {
			continue
		}
		mn = stdmath.Min(mn, v)
		mx = stdmath.Max(mx, v)
	}
	return float32(mn), float32(mx)
}

func checkUnary[T any](t *testing.T, v UnaryVariant[T], x []T, wx []float64) {
	t.Helper()
	n := len(x)
	sum, abs, sq := refSums(wx)
	if got := v.Sum(x); !approxEqual(got, sum, abs, f32Rel, f32Abs) {
		t.Errorf("Sum n=%d: got %v, want %v", n, got, sum)
	}
	if got := v.SumAbs(x); !approxEqual(got, abs, abs, f32Rel, f32Abs) {
		t.Errorf("SumAbs n=%d: got %v, want %v", n, got, abs)
	}
	if got := v.SqNorm(x); !approxEqual(got, sq, sq, f32Rel, f32Abs) {
		t.Errorf("SqNorm n=%d: got %v, want %v", n, got, sq)
	}
	wantMin, wantMax := refMinMax(wx)
	gotMin, gotMax := v.MinMax(x)
	if gotMin != wantMin || gotMax != wantMax {
		t.Errorf("MinMax n=%d: got (%v, %v), want (%v, %v)", n, gotMin, gotMax, wantMin, wantMax)
	}
}

func TestUnaryF32VariantsMatchReference(t *testing.T) {
	rng := newRNG()
	for _, v := range F32UnaryVariants() {
		t.Run(v.Name, func(t *testing.T) {
			for _, n := range lengths() {
				x := makeF32(rng, n)
				checkUnary(t, v, x, widenF32(x))
			}
		})
	}
}

func TestUnaryF16VariantsMatchReference(t *testing.T) {
	rng := newRNG()
	for _, v := range F16UnaryVariants() {
		t.Run(v.Name, func(t *testing.T) {
			for _, n := range lengths() {
				x := makeF16(rng, n)
				checkUnary(t, v, x, widenF16(x))
			}
		})
	}
}

func TestUnaryLengthFive(t *testing.T) {
	x := []float32{1, -2, 3, -4, 5}
	for _, v := range F32UnaryVariants() {
		assert.Equal(t, float32(3), v.Sum(x), v.Name)
		assert.Equal(t, float32(15), v.SumAbs(x), v.Name)
		assert.Equal(t, float32(55), v.SqNorm(x), v.Name)
		mn, mx := v.MinMax(x)
		assert.Equal(t, float32(-4), mn, v.Name)
		assert.Equal(t, float32(5), mx, v.Name)
	}
	h := f16s(1, -2, 3, -4, 5)
	for _, v := range F16UnaryVariants() {
		assert.Equal(t, float32(3), v.Sum(h), v.Name)
		assert.Equal(t, float32(15), v.SumAbs(h), v.Name)
		assert.Equal(t, float32(55), v.SqNorm(h), v.Name)
		mn, mx := v.MinMax(h)
		assert.Equal(t, float32(-4), mn, v.Name)
		assert.Equal(t, float32(5), mx, v.Name)
	}

	assert.Equal(t, float32(3), SumF32(x))
	assert.Equal(t, float32(15), SumAbsF32(x))
	assert.Equal(t, float32(55), SqNormF32(x))
	assert.Equal(t, float32(3), SumF16(h))
	assert.Equal(t, float32(55), SqNormF16(h))
	mn, mx := MinMaxF32(x)
	assert.Equal(t, [2]float32{-4, 5}, [2]float32{mn, mx})
	mn, mx = MinMaxF16(h)
	assert.Equal(t, [2]float32{-4, 5}, [2]float32{mn, mx})
}

func TestMinMaxIgnoresNaN(t *testing.T) {
	nan := float32(stdmath.NaN())
	rng := newRNG()
	for _, n := range []int{2, 3, 5, 8, 9, 13, 16, 17, 33, 100} {
		x := makeF32(rng, n)
		x[0] = nan
		x[1] = -nan
		wantMin, wantMax := refMinMax(widenF32(x))
		h := make([]hwy.Float16, n)
		hwy.DemoteF32ToF16(x, h)
		wantMinH, wantMaxH := refMinMax(widenF16(h))
		for _, v := range F32UnaryVariants() {
			mn, mx := v.MinMax(x)
			assert.Equal(t, wantMin, mn, "%s n=%d", v.Name, n)
			assert.Equal(t, wantMax, mx, "%s n=%d", v.Name, n)
		}
		for _, v := range F16UnaryVariants() {
			mn, mx := v.MinMax(h)
			assert.Equal(t, wantMinH, mn, "%s n=%d", v.Name, n)
			assert.Equal(t, wantMaxH, mx, "%s n=%d", v.Name, n)
		}
	}
}

func TestMinMaxEmptyOrAllNaN(t *testing.T) {
	inf := float32(stdmath.Inf(1))
	nan := float32(stdmath.NaN())
	for _, x := range [][]float32{nil, {nan}, {nan, nan, nan, nan, nan}} {
		for _, v := range F32UnaryVariants() {
			mn, mx := v.MinMax(x)
			assert.Equal(t, inf, mn, "%s len=%d", v.Name, len(x))
			assert.Equal(t, -inf, mx, "%s len=%d", v.Name, len(x))
		}
	}
	for _, v := range F16UnaryVariants() {
		mn, mx := v.MinMax(nil)
		assert.Equal(t, inf, mn, v.Name)
		assert.Equal(t, -inf, mx, v.Name)
	}
}

func TestUnarySumsEmpty(t *testing.T) {
	for _, v := range F32UnaryVariants() {
		assert.Equal(t, float32(0), v.Sum(nil), v.Name)
		assert.Equal(t, float32(0), v.SumAbs(nil), v.Name)
		assert.Equal(t, float32(0), v.SqNorm([]float32{}), v.Name)
	}
}

func TestSumNaNPropagates(t *testing.T) {
	nan := float32(stdmath.NaN())
	for _, n := range []int{1, 4, 5, 13, 16, 33} {
		x := make([]float32, n)
		x[n-1] = nan
		for _, v := range F32UnaryVariants() {
			assert.True(t, stdmath.IsNaN(float64(v.Sum(x))), "%s n=%d Sum", v.Name, n)
			assert.True(t, stdmath.IsNaN(float64(v.SqNorm(x))), "%s n=%d SqNorm", v.Name, n)
		}
	}
}

func TestHasZero(t *testing.T) {
	negZero := float32(stdmath.Copysign(0, -1))
	assert.False(t, HasZeroF32(nil))
	assert.False(t, HasZeroF32([]float32{1, -2, 3}))
	assert.True(t, HasZeroF32([]float32{1, 0, 3}))
	assert.True(t, HasZeroF32([]float32{1, negZero}))

	assert.False(t, HasZeroF16(f16s(1, -2, 3)))
	assert.True(t, HasZeroF16(f16s(1, 0)))
	assert.True(t, HasZeroF16([]hwy.Float16{hwy.Float16(0x3c00), hwy.Float16(0x8000)}))
	// The smallest subnormal is not zero.
	assert.False(t, HasZeroF16([]hwy.Float16{hwy.Float16(0x0001)}))
}
