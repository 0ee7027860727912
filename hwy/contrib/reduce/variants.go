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
	"slices"

	"github.com/samber/lo"

	"github.com/embedkit/go-vreduce/hwy"
)

// Kernel signatures per element type.
type (
	U8Kernel  = func(a, b []uint8) uint32
	F16Kernel = func(a, b []hwy.Float16) float32
	F32Kernel = func(a, b []float32) float32
	BitKernel = func(a, b []uint64) uint32
)

// traits are the properties every variant shares, whatever its kernels.
type traits struct {
	Name  string
	Level hwy.DispatchLevel

	block  func() int
	native func() bool
	// hardware marks variants that execute real vector instructions.
	hardware bool
}

// BlockWidth returns the number of elements consumed per iteration of the
// widest loop. Scalable variants report the value for the current
// register length.
func (t traits) BlockWidth() int {
	return t.block()
}

// Native reports whether the running CPU has the instructions this variant
// models. Dispatch binds the first native variant.
func (t traits) Native() bool {
	return t.native()
}

// Runnable reports whether the variant can be called on this CPU. Emulated
// variants run everywhere; hardware variants only where they are native.
func (t traits) Runnable() bool {
	return !t.hardware || t.native()
}

func (t traits) info() traits { return t }

// Variant describes one implementation of a two-vector kernel family: the
// instruction set it models, its block width and its entry points. Integer
// families leave SqDist nil.
type Variant[F any] struct {
	traits
	Dot    F
	SqDist F
}

// UnaryVariant is one implementation of the single-vector reductions over
// elements of type T. Every result is accumulated in float32.
type UnaryVariant[T any] struct {
	traits
	// Sum returns Σ x[i].
	Sum func(x []T) float32
	// SumAbs returns Σ |x[i]|.
	SumAbs func(x []T) float32
	// SqNorm returns Σ x[i]², the squared Euclidean norm.
	SqNorm func(x []T) float32
	// MinMax returns the smallest and largest non-NaN elements, or
	// (+Inf, -Inf) when there are none.
	MinMax func(x []T) (min, max float32)
}

// BitVariant is one implementation of the popcount reductions over bit
// vectors packed into 64-bit words.
type BitVariant struct {
	traits
	// And, Or and Xor return the number of set bits of a[i] op b[i].
	And BitKernel
	Or  BitKernel
	Xor BitKernel
	// Count returns the number of set bits of a.
	Count func(a []uint64) uint32
}

type variant interface {
	info() traits
}

func fixed(n int) func() int {
	return func() int { return n }
}

func always() bool { return true }

func atLevel(l hwy.DispatchLevel) func() bool {
	return func() bool { return hwy.CurrentLevel() == l }
}

func neonOrSSE() bool {
	return hwy.CurrentLevel() == hwy.DispatchNEON || hwy.CurrentLevel() == hwy.DispatchSSE2
}

func fallbackTraits(name string) traits {
	return traits{Name: name, Level: hwy.DispatchScalar, block: fixed(1), native: always}
}

// Variant tables are ordered by dispatch priority; the fallback is last and
// always native. Entries that share a predicate with an earlier entry are
// alternatives kept for verification and benchmarking.

var u8DotVariants = []Variant[U8Kernel]{
	{traits: traits{Name: "u8-wide-64", Level: hwy.DispatchAVX512, block: fixed(64), native: atLevel(hwy.DispatchAVX512)}, Dot: dotU8Wide},
	{traits: traits{Name: "u8-dotprod-16", Level: hwy.DispatchNEON, block: fixed(16), native: hwy.HasARMDotProd}, Dot: dotU8DotProd},
	{traits: traits{Name: "u8-widen-16", Level: hwy.DispatchNEON, block: fixed(16), native: atLevel(hwy.DispatchNEON)}, Dot: dotU8Widen},
	{traits: fallbackTraits("u8-fallback"), Dot: dotU8Fallback},
}

var nibbleDotVariants = []Variant[U8Kernel]{
	{traits: traits{Name: "u4-dotprod-16", Level: hwy.DispatchNEON, block: fixed(16), native: hwy.HasARMDotProd}, Dot: dotNibbleDotProd},
	{traits: traits{Name: "u4-widen-16", Level: hwy.DispatchNEON, block: fixed(16), native: atLevel(hwy.DispatchNEON)}, Dot: dotNibbleWiden},
	{traits: fallbackTraits("u4-fallback"), Dot: dotNibbleFallback},
}

var f16Variants = []Variant[F16Kernel]{
	{traits: traits{Name: "f16-x32", Level: hwy.DispatchAVX512, block: fixed(64), native: hwy.HasAVX512FP16}, Dot: dotF16x32, SqDist: sqDistF16x32},
	{traits: traits{Name: "f16-x32-single", Level: hwy.DispatchAVX512, block: fixed(32), native: hwy.HasAVX512FP16}, Dot: dotF16x32Single, SqDist: sqDistF16x32Single},
	{traits: traits{Name: "f16-widen-16", Level: hwy.DispatchAVX512, block: fixed(16), native: atLevel(hwy.DispatchAVX512)}, Dot: dotF16Widen16, SqDist: sqDistF16Widen16},
	{traits: traits{Name: "f16-widen-8", Level: hwy.DispatchAVX2, block: fixed(8), native: hwy.HasF16C}, Dot: dotF16Widen8, SqDist: sqDistF16Widen8},
	{traits: traits{Name: "f16-scalable", Level: hwy.DispatchSVE, block: func() int { return 2 * hwy.MaxLanes[hwy.Float16]() }, native: hwy.HasSVE}, Dot: dotF16Scalable, SqDist: sqDistF16Scalable},
	{traits: traits{Name: "f16-x8-tiered", Level: hwy.DispatchNEON, block: fixed(64), native: hwy.HasARMFP16}, Dot: dotF16x8Tiered, SqDist: sqDistF16x8Tiered},
	{traits: traits{Name: "f16-x4-tiered", Level: hwy.DispatchNEON, block: fixed(32), native: hwy.HasARMFP16}, Dot: dotF16x4Tiered, SqDist: sqDistF16x4Tiered},
	{traits: traits{Name: "f16-widen-4", Level: hwy.DispatchNEON, block: fixed(4), native: atLevel(hwy.DispatchNEON)}, Dot: dotF16Widen4, SqDist: sqDistF16Widen4},
	{traits: fallbackTraits("f16-fallback"), Dot: dotF16Fallback, SqDist: sqDistF16Fallback},
}

var f32Variants = slices.Concat(archsimdF32Variants, []Variant[F32Kernel]{
	{traits: traits{Name: "f32-x16", Level: hwy.DispatchAVX512, block: fixed(16), native: atLevel(hwy.DispatchAVX512)}, Dot: dotF32x16, SqDist: sqDistF32x16},
	{traits: traits{Name: "f32-x8", Level: hwy.DispatchAVX2, block: fixed(8), native: atLevel(hwy.DispatchAVX2)}, Dot: dotF32x8, SqDist: sqDistF32x8},
	{traits: traits{Name: "f32-scalable", Level: hwy.DispatchSVE, block: hwy.MaxLanes[float32], native: hwy.HasSVE}, Dot: dotF32Scalable, SqDist: sqDistF32Scalable},
	{traits: traits{Name: "f32-x4", Level: hwy.DispatchNEON, block: fixed(4), native: neonOrSSE}, Dot: dotF32x4, SqDist: sqDistF32x4},
	{traits: fallbackTraits("f32-fallback"), Dot: dotF32Fallback, SqDist: sqDistF32Fallback},
})

var f32UnaryVariants = []UnaryVariant[float32]{
	{
		traits: traits{Name: "f32-x16", Level: hwy.DispatchAVX512, block: fixed(16), native: atLevel(hwy.DispatchAVX512)},
		Sum:    sumX16(blocksF32x16),
		SumAbs: sumAbsX16(blocksF32x16),
		SqNorm: sqNormX16(blocksF32x16),
		MinMax: minMaxX16(blocksF32x16),
	},
	{
		traits: traits{Name: "f32-x8", Level: hwy.DispatchAVX2, block: fixed(8), native: atLevel(hwy.DispatchAVX2)},
		Sum:    sumX8(blocksF32x8),
		SumAbs: sumAbsX8(blocksF32x8),
		SqNorm: sqNormX8(blocksF32x8),
		MinMax: minMaxX8(blocksF32x8),
	},
	{
		traits: traits{Name: "f32-x4", Level: hwy.DispatchNEON, block: fixed(4), native: neonOrSSE},
		Sum:    sumX4(blocksF32x4),
		SumAbs: sumAbsX4(blocksF32x4),
		SqNorm: sqNormX4(blocksF32x4),
		MinMax: minMaxX4(blocksF32x4),
	},
	{
		traits: fallbackTraits("f32-fallback"),
		Sum:    sumFallback(f32Value),
		SumAbs: sumAbsFallback(f32Value),
		SqNorm: sqNormFallback(f32Value),
		MinMax: minMaxFallback(f32Value),
	},
}

var f16UnaryVariants = []UnaryVariant[hwy.Float16]{
	{
		traits: traits{Name: "f16-widen-16", Level: hwy.DispatchAVX512, block: fixed(16), native: atLevel(hwy.DispatchAVX512)},
		Sum:    sumX16(blocksF16x16),
		SumAbs: sumAbsX16(blocksF16x16),
		SqNorm: sqNormX16(blocksF16x16),
		MinMax: minMaxX16(blocksF16x16),
	},
	{
		traits: traits{Name: "f16-widen-8", Level: hwy.DispatchAVX2, block: fixed(8), native: hwy.HasF16C},
		Sum:    sumX8(blocksF16x8),
		SumAbs: sumAbsX8(blocksF16x8),
		SqNorm: sqNormX8(blocksF16x8),
		MinMax: minMaxX8(blocksF16x8),
	},
	{
		traits: traits{Name: "f16-widen-4", Level: hwy.DispatchNEON, block: fixed(4), native: atLevel(hwy.DispatchNEON)},
		Sum:    sumX4(blocksF16x4),
		SumAbs: sumAbsX4(blocksF16x4),
		SqNorm: sqNormX4(blocksF16x4),
		MinMax: minMaxX4(blocksF16x4),
	},
	{
		traits: fallbackTraits("f16-fallback"),
		Sum:    sumFallback(hwy.Float16ToFloat32),
		SumAbs: sumAbsFallback(hwy.Float16ToFloat32),
		SqNorm: sqNormFallback(hwy.Float16ToFloat32),
		MinMax: minMaxFallback(hwy.Float16ToFloat32),
	},
}

var bitVariants = []BitVariant{
	{
		traits: traits{Name: "u64-popcnt-8", Level: hwy.DispatchAVX512, block: fixed(8), native: hwy.HasAVX512VPOPCNTDQ},
		And:    popcntPair(hwy.Uint64x8.And),
		Or:     popcntPair(hwy.Uint64x8.Or),
		Xor:    popcntPair(hwy.Uint64x8.Xor),
		Count:  popcntCount,
	},
	{
		traits: traits{Name: "u64-lut-8", Level: hwy.DispatchAVX512, block: fixed(8), native: atLevel(hwy.DispatchAVX512)},
		And:    lutPair(hwy.Uint64x8.And),
		Or:     lutPair(hwy.Uint64x8.Or),
		Xor:    lutPair(hwy.Uint64x8.Xor),
		Count:  lutCount,
	},
	{
		traits: fallbackTraits("u64-fallback"),
		And:    bitsFallback(func(x, y uint64) uint64 { return x & y }),
		Or:     bitsFallback(func(x, y uint64) uint64 { return x | y }),
		Xor:    bitsFallback(func(x, y uint64) uint64 { return x ^ y }),
		Count:  countFallback,
	},
}

// U8DotVariants returns the byte dot product variants in dispatch order.
func U8DotVariants() []Variant[U8Kernel] { return slices.Clone(u8DotVariants) }

// NibbleDotVariants returns the packed 4-bit dot product variants.
func NibbleDotVariants() []Variant[U8Kernel] { return slices.Clone(nibbleDotVariants) }

// F16Variants returns the half-precision variants.
func F16Variants() []Variant[F16Kernel] { return slices.Clone(f16Variants) }

// F32Variants returns the single-precision variants.
func F32Variants() []Variant[F32Kernel] { return slices.Clone(f32Variants) }

// F32UnaryVariants returns the single-vector float32 reduction variants.
func F32UnaryVariants() []UnaryVariant[float32] { return slices.Clone(f32UnaryVariants) }

// F16UnaryVariants returns the single-vector half-precision reduction variants.
func F16UnaryVariants() []UnaryVariant[hwy.Float16] { return slices.Clone(f16UnaryVariants) }

// BitVariants returns the popcount reduction variants.
func BitVariants() []BitVariant { return slices.Clone(bitVariants) }

// FindVariant returns the variant called name.
func FindVariant[V variant](variants []V, name string) (V, bool) {
	return lo.Find(variants, func(v V) bool { return v.info().Name == name })
}

// MustVariant is like FindVariant but panics if name is unknown.
func MustVariant[V variant](variants []V, name string) V {
	v, ok := FindVariant(variants, name)
	if !ok {
		panic("reduce: unknown variant " + name)
	}
	return v
}

// VariantNames lists the names of variants in order.
func VariantNames[V variant](variants []V) []string {
	return lo.Map(variants, func(v V, _ int) string { return v.info().Name })
}

// selectNative returns the first native variant. The fallback guarantees
// a match.
func selectNative[V variant](variants []V) V {
	v, _ := lo.Find(variants, func(v V) bool { return v.info().Native() })
	return v
}
