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

package hwy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withScalableBytes runs fn at each supported scalable register length.
func withScalableBytes(t *testing.T, fn func(t *testing.T)) {
	t.Helper()
	for _, bytes := range []int{16, 32, 48, 64} {
		t.Run(fmt.Sprintf("vl%d", bytes*8), func(t *testing.T) {
			prev, err := SetScalableBytes(bytes)
			require.NoError(t, err)
			defer SetScalableBytes(prev)
			fn(t)
		})
	}
}

func TestMaxLanes(t *testing.T) {
	withScalableBytes(t, func(t *testing.T) {
		assert.Equal(t, ScalableBytes()/4, MaxLanes[float32]())
		assert.Equal(t, ScalableBytes()/2, MaxLanes[Float16]())
		assert.Equal(t, ScalableBytes()/8, MaxLanes[float64]())
	})
}

func TestWhileLessThan(t *testing.T) {
	withScalableBytes(t, func(t *testing.T) {
		n := MaxLanes[float32]()
		full := WhileLessThan[float32](0, 1000)
		assert.Equal(t, n, full.CountTrue())
		assert.Equal(t, PTrue[float32]().CountTrue(), full.CountTrue())

		part := WhileLessThan[float32](10, 13)
		assert.Equal(t, 3, part.CountTrue())
		assert.True(t, part.Active(2))
		assert.False(t, part.Active(3))

		assert.Equal(t, 0, WhileLessThan[float32](13, 13).CountTrue())
		assert.Equal(t, 0, WhileLessThan[float32](20, 13).CountTrue())
	})
}

func TestMaskLoadDoesNotReadPastEnd(t *testing.T) {
	withScalableBytes(t, func(t *testing.T) {
		src := []float32{1, 2, 3}
		// Panics if any inactive lane reads src.
		v := MaskLoad(WhileLessThan[float32](0, len(src)), src)
		assert.Equal(t, float32(6), ReduceSum(v))
		assert.Equal(t, MaxLanes[float32](), v.NumLanes())
	})
}

func TestMulAddMaskedMerges(t *testing.T) {
	withScalableBytes(t, func(t *testing.T) {
		n := MaxLanes[float32]()
		ones := make([]float32, n)
		for i := range ones {
			ones[i] = 1
		}
		a := Load(ones)
		acc := MulAdd(a, a, Zero[float32]())
		acc = MulAddMasked(FirstN[float32](1), acc, a, a)
		assert.Equal(t, float32(2), acc.Lane(0))
		if n > 1 {
			assert.Equal(t, float32(1), acc.Lane(1))
		}
		assert.Equal(t, float32(n+1), ReduceSum(acc))

		d := SubMasked(FirstN[float32](1), acc, a)
		assert.Equal(t, float32(1), ReduceSum(d))
		assert.Equal(t, float32(0), ReduceSum(Sub(a, a)))
		assert.Equal(t, float32(2*n), ReduceSum(Add(a, a)))
	})
}

func TestStoreRoundTrip(t *testing.T) {
	withScalableBytes(t, func(t *testing.T) {
		n := MaxLanes[float32]()
		src := make([]float32, n)
		for i := range src {
			src[i] = float32(i)
		}
		dst := make([]float32, n)
		Store(Load(src), dst)
		assert.Equal(t, src, dst)
	})
}

func TestHalfPrecisionScalable(t *testing.T) {
	withScalableBytes(t, func(t *testing.T) {
		n := MaxLanes[Float16]()
		src := make([]Float16, n)
		for i := range src {
			src[i] = Float32ToFloat16(float32(i + 1))
		}
		v := Load(src)

		rot := ExtF16(v, 1)
		assert.Equal(t, float32(2), rot.Lane(0).Float32())
		assert.Equal(t, float32(1), rot.Lane(n-1).Float32())

		even := PromoteEvenF16(v)
		odd := PromoteEvenF16(rot)
		assert.Equal(t, n/2, even.NumLanes())
		// Even lanes 1,3,5,... and odd lanes 2,4,6,... cover 1..n.
		assert.Equal(t, float32(n*(n+1)/2), ReduceSum(Add(even, odd)))

		sq := MulAddF16(v, v, Zero[Float16]())
		assert.Equal(t, float32(4), sq.Lane(1).Float32())

		m := WhileLessThan[Float16](0, 2)
		d := SubF16Masked(m, v, Zero[Float16]())
		assert.Equal(t, float32(2), d.Lane(1).Float32())
		if n > 2 {
			assert.Equal(t, float32(0), d.Lane(2).Float32())
		}
		acc := MulAddF16Masked(m, Zero[Float16](), v, v)
		assert.Equal(t, float32(4), acc.Lane(1).Float32())
	})
}
