//go:build amd64 && goexperiment.simd

package reduce

import (
	"simd/archsimd"

	"github.com/embedkit/go-vreduce/hwy"
)

// dotF32AVX2 computes the dot product with 256-bit registers.
// The remainder is zero-padded to one register.
func dotF32AVX2(a, b []float32) float32 {
	n := len(a)
	b = paired(a, b)
	sum := archsimd.BroadcastFloat32x8(0.0)

	// Process 8 float32s at a time
	i := 0
	for ; i+8 <= n; i += 8 {
		va := archsimd.LoadFloat32x8Slice(a[i:])
		vb := archsimd.LoadFloat32x8Slice(b[i:])
		sum = sum.Add(va.Mul(vb))
	}
	if i < n {
		var pa, pb [8]float32
		copy(pa[:], a[i:])
		copy(pb[:], b[i:])
		sum = sum.Add(archsimd.LoadFloat32x8Slice(pa[:]).Mul(archsimd.LoadFloat32x8Slice(pb[:])))
	}
	return hwy.ReduceSum_AVX2_F32x8(sum)
}

// sqDistF32AVX2 computes the squared distance with 256-bit registers.
func sqDistF32AVX2(a, b []float32) float32 {
	n := len(a)
	b = paired(a, b)
	sum := archsimd.BroadcastFloat32x8(0.0)

	i := 0
	for ; i+8 <= n; i += 8 {
		d := archsimd.LoadFloat32x8Slice(a[i:]).Sub(archsimd.LoadFloat32x8Slice(b[i:]))
		sum = sum.Add(d.Mul(d))
	}
	if i < n {
		var pa, pb [8]float32
		copy(pa[:], a[i:])
		copy(pb[:], b[i:])
		d := archsimd.LoadFloat32x8Slice(pa[:]).Sub(archsimd.LoadFloat32x8Slice(pb[:]))
		sum = sum.Add(d.Mul(d))
	}
	return hwy.ReduceSum_AVX2_F32x8(sum)
}
