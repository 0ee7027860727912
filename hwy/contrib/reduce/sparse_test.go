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
	stdmath "math"
	"testing"

	"github.com/embedkit/go-vreduce/hwy"
)

// densify expands a sparse vector to dim elements.
func densify(idx []uint32, val []float32, dim int) []float32 {
	d := make([]float32, dim)
	for i, k := range idx {
		d[k] = val[i]
	}
	return d
}

func TestSparseF32(t *testing.T) {
	tests := []struct {
		name       string
		lidx       []uint32
		lval       []float32
		ridx       []uint32
		rval       []float32
		wantDot    float32
		wantSqDist float32
	}{
		{
			name:       "empty",
			wantDot:    0,
			wantSqDist: 0,
		},
		{
			name:       "one side empty",
			lidx:       []uint32{1, 4},
			lval:       []float32{2, 3},
			wantDot:    0,
			wantSqDist: 13,
		},
		{
			name:       "identical",
			lidx:       []uint32{0, 2, 5},
			lval:       []float32{1, 2, 3},
			ridx:       []uint32{0, 2, 5},
			rval:       []float32{1, 2, 3},
			wantDot:    14,
			wantSqDist: 0,
		},
		{
			name:       "disjoint",
			lidx:       []uint32{0, 2},
			lval:       []float32{1, 2},
			ridx:       []uint32{1, 3},
			rval:       []float32{3, 4},
			wantDot:    0,
			wantSqDist: 1 + 4 + 9 + 16,
		},
		{
			name:       "partial overlap with leftovers",
			lidx:       []uint32{1, 3, 7, 9},
			lval:       []float32{1, 2, 3, 4},
			ridx:       []uint32{0, 3, 7},
			rval:       []float32{5, 1, 1},
			wantDot:    2 + 3,
			wantSqDist: 25 + 1 + 1 + 4 + 16,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SparseDotF32(tt.lidx, tt.lval, tt.ridx, tt.rval); got != tt.wantDot {
				t.Errorf("SparseDotF32() = %v, want %v", got, tt.wantDot)
			}
			if got := SparseSqDistF32(tt.lidx, tt.lval, tt.ridx, tt.rval); got != tt.wantSqDist {
				t.Errorf("SparseSqDistF32() = %v, want %v", got, tt.wantSqDist)
			}

			lh := make([]hwy.Float16, len(tt.lval))
			rh := make([]hwy.Float16, len(tt.rval))
			hwy.DemoteF32ToF16(tt.lval, lh)
			hwy.DemoteF32ToF16(tt.rval, rh)
			if got := SparseDotF16(tt.lidx, lh, tt.ridx, rh); got != tt.wantDot {
				t.Errorf("SparseDotF16() = %v, want %v", got, tt.wantDot)
			}
			if got := SparseSqDistF16(tt.lidx, lh, tt.ridx, rh); got != tt.wantSqDist {
				t.Errorf("SparseSqDistF16() = %v, want %v", got, tt.wantSqDist)
			}
		})
	}
}

func TestSparseMatchesDense(t *testing.T) {
	rng := newRNG()
	const dim = 300
	for trial := 0; trial < 20; trial++ {
		var lidx, ridx []uint32
		var lval, rval []float32
		for k := uint32(0); k < dim; k++ {
			if rng.IntN(3) == 0 {
				lidx = append(lidx, k)
				lval = append(lval, rng.Float32()*2-1)
			}
			if rng.IntN(4) == 0 {
				ridx = append(ridx, k)
				rval = append(rval, rng.Float32()*2-1)
			}
		}
		ld, rd := densify(lidx, lval, dim), densify(ridx, rval, dim)

		want, scale := refDot(widenF32(ld), widenF32(rd))
		if got := SparseDotF32(lidx, lval, ridx, rval); !approxEqual(got, want, scale, f32Rel, f32Abs) {
			t.Errorf("trial %d: SparseDotF32() = %v, want %v", trial, got, want)
		}
		want, scale = refSqDist(widenF32(ld), widenF32(rd))
		if got := SparseSqDistF32(lidx, lval, ridx, rval); !approxEqual(got, want, scale, f32Rel, f32Abs) {
			t.Errorf("trial %d: SparseSqDistF32() = %v, want %v", trial, got, want)
		}
	}
}

func TestSparseNaN(t *testing.T) {
	nan := float32(stdmath.NaN())
	got := SparseSqDistF32([]uint32{4}, []float32{nan}, nil, nil)
	if !stdmath.IsNaN(float64(got)) {
		t.Errorf("SparseSqDistF32() = %v, want NaN", got)
	}
}

func TestSparseShortValuesPanic(t *testing.T) {
	backing := []float32{1, 2, 3, 4}
	lval := backing[:1]
	if cap(lval) <= 1 {
		t.Fatal("want spare capacity behind lval")
	}
	defer func() {
		if recover() == nil {
			t.Error("SparseDotF32 with fewer values than indices did not panic")
		}
	}()
	SparseDotF32([]uint32{0, 1}, lval, []uint32{0, 1}, []float32{1, 1})
}
