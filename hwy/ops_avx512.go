//go:build amd64 && goexperiment.simd

package hwy

import (
	"simd/archsimd"
)

// ReduceSum_AVX512_F32x16 returns the sum of the 16 lanes using the same
// halving tree as ReduceSumF32.
func ReduceSum_AVX512_F32x16(v archsimd.Float32x16) float32 {
	var temp [16]float32
	v.StoreSlice(temp[:])
	return ReduceSumF32(temp[:])
}
