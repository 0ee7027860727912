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
	"fmt"
	stdmath "math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/embedkit/go-vreduce/hwy"
)

// maxBlock is the widest block of any variant at the largest scalable length.
const maxBlock = 64

// lengths covers every remainder up to two of the widest blocks.
func lengths() []int {
	ns := make([]int, 0, 2*maxBlock+8)
	for n := 0; n <= 2*maxBlock+3; n++ {
		ns = append(ns, n)
	}
	return append(ns, 255, 256, 257, 1000)
}

// withScalableBytes runs fn at each supported scalable register length.
func withScalableBytes(t *testing.T, fn func(t *testing.T)) {
	t.Helper()
	for _, bytes := range []int{16, 32, 48, 64} {
		t.Run(fmt.Sprintf("vl%d", bytes*8), func(t *testing.T) {
			prev, err := hwy.SetScalableBytes(bytes)
			require.NoError(t, err)
			defer hwy.SetScalableBytes(prev)
			fn(t)
		})
	}
}

func newRNG() *rand.Rand {
	return rand.New(rand.NewPCG(42, 1))
}

func makeU8(rng *rand.Rand, n int) []uint8 {
	s := make([]uint8, n)
	for i := range s {
		s[i] = uint8(rng.UintN(256))
	}
	return s
}

func makeF32(rng *rand.Rand, n int) []float32 {
	s := make([]float32, n)
	for i := range s {
		s[i] = rng.Float32()*2 - 1
	}
	return s
}

func makeF16(rng *rand.Rand, n int) []hwy.Float16 {
	s := make([]hwy.Float16, n)
	for i := range s {
		s[i] = hwy.Float32ToFloat16(rng.Float32()*2 - 1)
	}
	return s
}

func f16s(vals ...float32) []hwy.Float16 {
	s := make([]hwy.Float16, len(vals))
	hwy.DemoteF32ToF16(vals, s)
	return s
}

// refDot returns the float64 dot product and Σ|a[i]*b[i]|, the scale for
// rounding tolerances.
func refDot(a, b []float64) (sum, abs float64) {
	for i := range a {
		p := a[i] * b[i]
		sum += p
		abs += stdmath.Abs(p)
	}
	return sum, abs
}

func refSqDist(a, b []float64) (sum, abs float64) {
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum, sum
}

func widenF32(s []float32) []float64 {
	r := make([]float64, len(s))
	for i, v := range s {
		r[i] = float64(v)
	}
	return r
}

func widenF16(s []hwy.Float16) []float64 {
	r := make([]float64, len(s))
	for i, v := range s {
		r[i] = float64(v.Float32())
	}
	return r
}

func approxEqual(got float32, want, scale, rel, abs float64) bool {
	return stdmath.Abs(float64(got)-want) <= rel*scale+abs
}
