//go:build amd64 && goexperiment.simd

package hwy

import (
	"simd/archsimd"
)

// This file provides low-level AVX2 horizontal reductions that work directly
// with archsimd vector types, for kernels that bypass the emulated registers.

// ReduceSum_AVX2_F32x8 returns the sum of the 8 lanes.
// Reduces 8 -> 4 by adding the high half onto the low half, then pairwise.
func ReduceSum_AVX2_F32x8(v archsimd.Float32x8) float32 {
	sum4 := v.GetLo().Add(v.GetHi())
	e0 := sum4.GetElem(0)
	e1 := sum4.GetElem(1)
	e2 := sum4.GetElem(2)
	e3 := sum4.GetElem(3)
	return (e0 + e2) + (e1 + e3)
}
