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

// Package reduce provides vectorized reductions over pairs of equal-length
// embedding vectors: the dot product Σ a[i]*b[i] and the squared Euclidean
// distance Σ (a[i]-b[i])².
//
// Element types are uint8, packed 4-bit codes (two per byte, low nibble
// first), half precision (hwy.Float16) and float32. Integer kernels return
// an exact uint32; floating-point kernels return float32.
//
// # Kernel Structure
//
// Every kernel follows the same shape:
//  1. Process whole blocks with several independent accumulators
//  2. Optionally step down through narrower block tiers
//  3. Finish the remainder with a zero-padded stack copy of one block, or
//     with a predicated load whose inactive lanes read as zero
//  4. Combine the accumulators pairwise and reduce horizontally
//
// Zero padding is applied to both operands, so padded lanes add nothing to
// either a product or a squared difference.
//
// # Variants
//
// Each element type has several variants mirroring the register width and
// instruction set they model (NEON, F16C, AVX-512, AVX-512-FP16, SVE). All
// variants run on every GOARCH; the package-level functions DotU8,
// DotNibble, DotF16, SqDistF16, DotF32 and SqDistF32 are bound at init to
// the variant matching hwy.CurrentLevel. Variants agree within floating
// point rounding, not bit for bit.
//
// # Single-Vector and Bit Reductions
//
// SumF32, SumAbsF32, SqNormF32 and MinMaxF32, with their F16 counterparts,
// reduce one vector and always accumulate in float32. MinMax skips NaN
// elements and returns (+Inf, -Inf) when none remain. Popcount, PopcountAnd,
// PopcountOr and PopcountXor count set bits of bit vectors packed into
// uint64 words.
//
// # Example Usage
//
//	import "github.com/embedkit/go-vreduce/hwy/contrib/reduce"
//
//	a := []float32{1, 2, 3, 4, 5}
//	b := []float32{5, 4, 3, 2, 1}
//	dot := reduce.DotF32(a, b)     // 35
//	d2 := reduce.SqDistF32(a, b)   // 40
//
// # Preconditions
//
// len(b) must be at least len(a); only the first len(a) elements of b are
// read. A shorter b panics even when its capacity would cover len(a). Kernels allocate nothing and are safe for concurrent use on shared
// read-only inputs.
package reduce
