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

// Sparse vectors are given as strictly increasing index lists with one
// value per index. Both reductions walk the two index lists in a single
// merge pass and accumulate in float32.

// SparseDotF32 returns Σ l[k]*r[k] over the indices k present in both
// vectors.
func SparseDotF32(lidx []uint32, lval []float32, ridx []uint32, rval []float32) float32 {
	lval = paired(lidx, lval)
	rval = paired(ridx, rval)
	var sum float32
	lp, rp := 0, 0
	for lp < len(lidx) && rp < len(ridx) {
		switch {
		case lidx[lp] == ridx[rp]:
			sum += lval[lp] * rval[rp]
			lp++
			rp++
		case lidx[lp] < ridx[rp]:
			lp++
		default:
			rp++
		}
	}
	return sum
}

// SparseSqDistF32 returns the squared Euclidean distance between two
// sparse vectors. An index present on one side only contributes the square
// of its value.
func SparseSqDistF32(lidx []uint32, lval []float32, ridx []uint32, rval []float32) float32 {
	lval = paired(lidx, lval)
	rval = paired(ridx, rval)
	var sum float32
	lp, rp := 0, 0
	for lp < len(lidx) && rp < len(ridx) {
		switch {
		case lidx[lp] == ridx[rp]:
			d := lval[lp] - rval[rp]
			sum += d * d
			lp++
			rp++
		case lidx[lp] < ridx[rp]:
			sum += lval[lp] * lval[lp]
			lp++
		default:
			sum += rval[rp] * rval[rp]
			rp++
		}
	}
	for ; lp < len(lidx); lp++ {
		sum += lval[lp] * lval[lp]
	}
	for ; rp < len(ridx); rp++ {
		sum += rval[rp] * rval[rp]
	}
	return sum
}

// SparseDotF16 is SparseDotF32 for half-precision values.
func SparseDotF16(lidx []uint32, lval []hwy.Float16, ridx []uint32, rval []hwy.Float16) float32 {
	lval = paired(lidx, lval)
	rval = paired(ridx, rval)
	var sum float32
	lp, rp := 0, 0
	for lp < len(lidx) && rp < len(ridx) {
		switch {
		case lidx[lp] == ridx[rp]:
			sum += lval[lp].Float32() * rval[rp].Float32()
			lp++
			rp++
		case lidx[lp] < ridx[rp]:
			lp++
		default:
			rp++
		}
	}
	return sum
}

// SparseSqDistF16 is SparseSqDistF32 for half-precision values.
func SparseSqDistF16(lidx []uint32, lval []hwy.Float16, ridx []uint32, rval []hwy.Float16) float32 {
	lval = paired(lidx, lval)
	rval = paired(ridx, rval)
	var sum float32
	lp, rp := 0, 0
	for lp < len(lidx) && rp < len(ridx) {
		switch {
		case lidx[lp] == ridx[rp]:
			d := lval[lp].Float32() - rval[rp].Float32()
			sum += d * d
			lp++
			rp++
		case lidx[lp] < ridx[rp]:
			x := lval[lp].Float32()
			sum += x * x
			lp++
		default:
			x := rval[rp].Float32()
			sum += x * x
			rp++
		}
	}
	for ; lp < len(lidx); lp++ {
		x := lval[lp].Float32()
		sum += x * x
	}
	for ; rp < len(ridx); rp++ {
		x := rval[rp].Float32()
		sum += x * x
	}
	return sum
}
