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
	"testing"
)

var benchDims = []int{128, 768, 1536}

func BenchmarkDotU8(b *testing.B) {
	rng := newRNG()
	for _, v := range U8DotVariants() {
		for _, n := range benchDims {
			x, y := makeU8(rng, n), makeU8(rng, n)
			b.Run(fmt.Sprintf("%s/%d", v.Name, n), func(b *testing.B) {
				b.SetBytes(int64(2 * n))
				for b.Loop() {
					_ = v.Dot(x, y)
				}
			})
		}
	}
}

func BenchmarkDotF16(b *testing.B) {
	rng := newRNG()
	for _, v := range F16Variants() {
		for _, n := range benchDims {
			x, y := makeF16(rng, n), makeF16(rng, n)
			b.Run(fmt.Sprintf("%s/%d", v.Name, n), func(b *testing.B) {
				b.SetBytes(int64(4 * n))
				for b.Loop() {
					_ = v.Dot(x, y)
				}
			})
		}
	}
}

func BenchmarkSqDistF32(b *testing.B) {
	rng := newRNG()
	for _, v := range F32Variants() {
		if !v.Runnable() {
			continue
		}
		for _, n := range benchDims {
			x, y := makeF32(rng, n), makeF32(rng, n)
			b.Run(fmt.Sprintf("%s/%d", v.Name, n), func(b *testing.B) {
				b.SetBytes(int64(8 * n))
				for b.Loop() {
					_ = v.SqDist(x, y)
				}
			})
		}
	}
}
