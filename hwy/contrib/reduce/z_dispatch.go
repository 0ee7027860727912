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

// Entry points bound at init to the first native variant of each family.
// They may be reassigned with Bind after changing the dispatch
// environment, for example after hwy.SetScalableBytes.
var (
	// DotU8 computes Σ a[i]*b[i] over bytes.
	DotU8 U8Kernel = dotU8Fallback

	// DotNibble computes the dot product of packed 4-bit vectors.
	DotNibble U8Kernel = dotNibbleFallback

	// DotF16 computes Σ a[i]*b[i] over half-precision values.
	DotF16 F16Kernel = dotF16Fallback

	// SqDistF16 computes Σ (a[i]-b[i])² over half-precision values.
	SqDistF16 F16Kernel = sqDistF16Fallback

	// DotF32 computes Σ a[i]*b[i] over float32 values.
	DotF32 F32Kernel = dotF32Fallback

	// SqDistF32 computes Σ (a[i]-b[i])² over float32 values.
	SqDistF32 F32Kernel = sqDistF32Fallback

	// SumF32 computes Σ x[i].
	SumF32 = sumFallback(f32Value)

	// SumAbsF32 computes Σ |x[i]|.
	SumAbsF32 = sumAbsFallback(f32Value)

	// SqNormF32 computes Σ x[i]².
	SqNormF32 = sqNormFallback(f32Value)

	// MinMaxF32 returns the smallest and largest non-NaN elements, or
	// (+Inf, -Inf) when there are none.
	MinMaxF32 = minMaxFallback(f32Value)

	SumF16    = sumFallback(hwy.Float16ToFloat32)
	SumAbsF16 = sumAbsFallback(hwy.Float16ToFloat32)
	SqNormF16 = sqNormFallback(hwy.Float16ToFloat32)
	MinMaxF16 = minMaxFallback(hwy.Float16ToFloat32)

	// PopcountAnd counts the set bits of a AND b.
	PopcountAnd BitKernel = bitsFallback(func(x, y uint64) uint64 { return x & y })

	// PopcountOr counts the set bits of a OR b.
	PopcountOr BitKernel = bitsFallback(func(x, y uint64) uint64 { return x | y })

	// PopcountXor counts the set bits of a XOR b, the Hamming distance.
	PopcountXor BitKernel = bitsFallback(func(x, y uint64) uint64 { return x ^ y })

	// Popcount counts the set bits of a.
	Popcount = countFallback
)

// Bound holds the variant name bound to each entry point.
type Bound struct {
	U8     string
	Nibble string
	F16    string
	F32    string

	F32Unary string
	F16Unary string
	Bit      string
}

var bound Bound

func init() {
	Bind()
}

// Bind selects the first native variant of each family and assigns the
// package entry points.
func Bind() {
	u8 := selectNative(u8DotVariants)
	nibble := selectNative(nibbleDotVariants)
	f16 := selectNative(f16Variants)
	f32 := selectNative(f32Variants)
	f32u := selectNative(f32UnaryVariants)
	f16u := selectNative(f16UnaryVariants)
	bit := selectNative(bitVariants)

	DotU8 = u8.Dot
	DotNibble = nibble.Dot
	DotF16, SqDistF16 = f16.Dot, f16.SqDist
	DotF32, SqDistF32 = f32.Dot, f32.SqDist

	SumF32, SumAbsF32, SqNormF32, MinMaxF32 = f32u.Sum, f32u.SumAbs, f32u.SqNorm, f32u.MinMax
	SumF16, SumAbsF16, SqNormF16, MinMaxF16 = f16u.Sum, f16u.SumAbs, f16u.SqNorm, f16u.MinMax
	PopcountAnd, PopcountOr, PopcountXor, Popcount = bit.And, bit.Or, bit.Xor, bit.Count

	bound = Bound{
		U8:       u8.Name,
		Nibble:   nibble.Name,
		F16:      f16.Name,
		F32:      f32.Name,
		F32Unary: f32u.Name,
		F16Unary: f16u.Name,
		Bit:      bit.Name,
	}
}

// BoundVariants reports which variant each entry point is bound to.
func BoundVariants() Bound {
	return bound
}
