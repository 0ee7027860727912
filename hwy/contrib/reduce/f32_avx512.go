//go:build amd64 && goexperiment.simd

package reduce

import (
	"simd/archsimd"

	"github.com/embedkit/go-vreduce/hwy"
)

// dotF32AVX512 computes the dot product with 512-bit registers.
// The remainder is zero-padded to one register.
func dotF32AVX512(a, b []float32) float32 {
	n := len(a)
	b = paired(a, b)
	sum := archsimd.BroadcastFloat32x16(0.0)

	// Process 16 float32s at a time
	i := 0
	for ; i+16 <= n; i += 16 {
		va := archsimd.LoadFloat32x16Slice(a[i:])
		vb := archsimd.LoadFloat32x16Slice(b[i:])
		sum = sum.Add(va.Mul(vb))
	}
	if i < n {
		var pa, pb [16]float32
		copy(pa[:], a[i:])
		copy(pb[:], b[i:])
		sum = sum.Add(archsimd.LoadFloat32x16Slice(pa[:]).Mul(archsimd.LoadFloat32x16Slice(pb[:])))
	}
	return hwy.ReduceSum_AVX512_F32x16(sum)
}

// sqDistF32AVX512 computes the squared distance with 512-bit registers.
func sqDistF32AVX512(a, b []float32) float32 {
	n := len(a)
	b = paired(a, b)
	sum := archsimd.BroadcastFloat32x16(0.0)

	i := 0
	for ; i+16 <= n; i += 16 {
		d := archsimd.LoadFloat32x16Slice(a[i:]).Sub(archsimd.LoadFloat32x16Slice(b[i:]))
		sum = sum.Add(d.Mul(d))
	}
	if i < n {
		var pa, pb [16]float32
		copy(pa[:], a[i:])
		copy(pb[:], b[i:])
		d := archsimd.LoadFloat32x16Slice(pa[:]).Sub(archsimd.LoadFloat32x16Slice(pb[:]))
		sum = sum.Add(d.Mul(d))
	}
	return hwy.ReduceSum_AVX512_F32x16(sum)
}
