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
	"github.com/stretchr/testify/require"
)

const (
	f32Rel = 1e-4
	f32Abs = 1e-6
)

// runnableF32 skips hardware variants the CPU cannot execute.
func runnableF32(t *testing.T) []Variant[F32Kernel] {
	t.Helper()
	var vs []Variant[F32Kernel]
	for _, v := range F32Variants() {
		if !v.Runnable() {
			t.Logf("skipping %s: not supported on this CPU", v.Name)
			continue
		}
		vs = append(vs, v)
	}
	return vs
}

func TestF32VariantsMatchReference(t *testing.T) {
	withScalableBytes(t, func(t *testing.T) {
		rng := newRNG()
		for _, v := range runnableF32(t) {
			t.Run(v.Name, func(t *testing.T) {
				for _, n := range lengths() {
					a, b := makeF32(rng, n), makeF32(rng, n)
					wa, wb := widenF32(a), widenF32(b)

					want, scale := refDot(wa, wb)
					if got := v.Dot(a, b); !approxEqual(got, want, scale, f32Rel, f32Abs) {
						t.Errorf("Dot n=%d: got %v, want %v", n, got, want)
					}
					want, scale = refSqDist(wa, wb)
					if got := v.SqDist(a, b); !approxEqual(got, want, scale, f32Rel, f32Abs) {
						t.Errorf("SqDist n=%d: got %v, want %v", n, got, want)
					}
				}
			})
		}
	})
}

func TestF32LengthFive(t *testing.T) {
	a := []float32{1, 2, 3, 4, 5}
	b := []float32{5, 4, 3, 2, 1}
	withScalableBytes(t, func(t *testing.T) {
		for _, v := range runnableF32(t) {
			assert.Equal(t, float32(35), v.Dot(a, b), v.Name)
			assert.Equal(t, float32(40), v.SqDist(a, b), v.Name)
		}
	})
	assert.Equal(t, float32(35), DotF32(a, b))
	assert.Equal(t, float32(40), SqDistF32(a, b))
}

func TestF32Properties(t *testing.T) {
	rng := newRNG()
	withScalableBytes(t, func(t *testing.T) {
		for _, v := range runnableF32(t) {
			for _, n := range []int{0, 1, 3, 4, 5, 15, 16, 17, 100} {
				a, b := makeF32(rng, n), makeF32(rng, n)
				assert.Equal(t, v.Dot(a, b), v.Dot(b, a), "%s n=%d: Dot symmetry", v.Name, n)
				assert.Equal(t, v.SqDist(a, b), v.SqDist(b, a), "%s n=%d: SqDist symmetry", v.Name, n)
				assert.GreaterOrEqual(t, v.SqDist(a, b), float32(0), "%s n=%d", v.Name, n)
				assert.Equal(t, float32(0), v.SqDist(a, a), "%s n=%d: identity", v.Name, n)
			}
		}
	})
}

func TestF32Empty(t *testing.T) {
	for _, v := range runnableF32(t) {
		assert.Equal(t, float32(0), v.Dot(nil, nil), v.Name)
		assert.Equal(t, float32(0), v.SqDist([]float32{}, []float32{}), v.Name)
	}
}

func TestF32NaNPropagates(t *testing.T) {
	nan := float32(stdmath.NaN())
	for _, n := range []int{1, 4, 5, 13, 16, 33} {
		a := make([]float32, n)
		b := make([]float32, n)
		a[n-1] = nan
		for _, v := range runnableF32(t) {
			assert.True(t, stdmath.IsNaN(float64(v.Dot(a, b))), "%s n=%d Dot", v.Name, n)
			assert.True(t, stdmath.IsNaN(float64(v.SqDist(a, b))), "%s n=%d SqDist", v.Name, n)
		}
	}
}

func TestF32InfPropagates(t *testing.T) {
	inf := float32(stdmath.Inf(1))
	a := []float32{1, 2, inf, 4, 5, 6}
	b := []float32{1, 1, 1, 1, 1, 1}
	for _, v := range runnableF32(t) {
		assert.True(t, stdmath.IsInf(float64(v.Dot(a, b)), 1), v.Name)
		assert.True(t, stdmath.IsInf(float64(v.SqDist(a, b)), 1), v.Name)
	}
}

func TestF32ShortBPanics(t *testing.T) {
	a := []float32{1, 1, 1, 1, 1}
	backing := []float32{1, 1, 1, 100, 100, 0, 0, 0}
	b := backing[:3]
	withScalableBytes(t, func(t *testing.T) {
		for _, v := range runnableF32(t) {
			assert.Panics(t, func() { v.Dot(a, b) }, "%s Dot", v.Name)
			assert.Panics(t, func() { v.SqDist(a, b) }, "%s SqDist", v.Name)
		}
	})
}

func TestDotBatchF32(t *testing.T) {
	queries := [][]float32{{1, 2}, {3, 4}, {5, 6}}
	keys := [][]float32{{5, 6}, {7, 8}}
	got := DotBatchF32(queries, keys)
	require.Len(t, got, 2)
	assert.Equal(t, []float32{17, 53}, got)
	assert.Empty(t, DotBatchF32(nil, keys))
}
