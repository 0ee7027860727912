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

//go:build amd64 && goexperiment.simd

package reduce

import "github.com/embedkit/go-vreduce/hwy"

// archsimdF32Variants run real AVX2 and AVX-512 instructions, so they are
// only native at the matching level.
var archsimdF32Variants = []Variant[F32Kernel]{
	{
		traits: traits{Name: "f32-avx512", Level: hwy.DispatchAVX512, block: fixed(16), native: atLevel(hwy.DispatchAVX512), hardware: true},
		Dot:    dotF32AVX512,
		SqDist: sqDistF32AVX512,
	},
	{
		traits: traits{Name: "f32-avx2", Level: hwy.DispatchAVX2, block: fixed(8), native: avx2OrWider, hardware: true},
		Dot:    dotF32AVX2,
		SqDist: sqDistF32AVX2,
	},
}

func avx2OrWider() bool {
	return hwy.CurrentLevel() == hwy.DispatchAVX2 || hwy.CurrentLevel() == hwy.DispatchAVX512
}
