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

import "github.com/x448/float16"

// Float16 is an IEEE 754 binary16 value. The zero value is +0.
type Float16 = float16.Float16

// Float32ToFloat16 rounds f to the nearest half-precision value (ties to even).
func Float32ToFloat16(f float32) Float16 {
	return float16.Fromfloat32(f)
}

// Float16ToFloat32 widens h to float32. The conversion is exact.
func Float16ToFloat32(h Float16) float32 {
	return h.Float32()
}

// PromoteF16ToF32 widens src into dst.
// PRECONDITION: len(dst) >= len(src).
func PromoteF16ToF32(src []Float16, dst []float32) {
	dst = dst[:len(src)]
	for i, h := range src {
		dst[i] = h.Float32()
	}
}

// DemoteF32ToF16 rounds src into dst.
// PRECONDITION: len(dst) >= len(src).
func DemoteF32ToF16(src []float32, dst []Float16) {
	dst = dst[:len(src)]
	for i, f := range src {
		dst[i] = float16.Fromfloat32(f)
	}
}

// mulAddF16 computes a*b + c rounded to half precision. The product of two
// half-precision values is exact in float32.
func mulAddF16(a, b, c Float16) Float16 {
	return float16.Fromfloat32(a.Float32()*b.Float32() + c.Float32())
}

func addF16(a, b Float16) Float16 {
	return float16.Fromfloat32(a.Float32() + b.Float32())
}

func subF16(a, b Float16) Float16 {
	return float16.Fromfloat32(a.Float32() - b.Float32())
}
