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
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
)

func refPopcount(a, b []uint64, op func(x, y uint64) uint64) uint32 {
	var n int
	for i := range a {
		n += bits.OnesCount64(op(a[i], b[i]))
	}
	return uint32(n)
}

func makeU64(n int) []uint64 {
	rng := newRNG()
	s := make([]uint64, n)
	for i := range s {
		s[i] = rng.Uint64()
	}
	return s
}

func TestBitVariantsMatchReference(t *testing.T) {
	and := func(x, y uint64) uint64 { return x & y }
	or := func(x, y uint64) uint64 { return x | y }
	xor := func(x, y uint64) uint64 { return x ^ y }
	for _, v := range BitVariants() {
		t.Run(v.Name, func(t *testing.T) {
			for _, n := range append(lengths()[:21], 126, 255) {
				a, b := makeU64(n), makeU64(n+1)[1:]
				if got, want := v.And(a, b), refPopcount(a, b, and); got != want {
					t.Errorf("And n=%d: got %d, want %d", n, got, want)
				}
				if got, want := v.Or(a, b), refPopcount(a, b, or); got != want {
					t.Errorf("Or n=%d: got %d, want %d", n, got, want)
				}
				if got, want := v.Xor(a, b), refPopcount(a, b, xor); got != want {
					t.Errorf("Xor n=%d: got %d, want %d", n, got, want)
				}
				if got, want := v.Count(a), refPopcount(a, a, and); got != want {
					t.Errorf("Count n=%d: got %d, want %d", n, got, want)
				}
			}
		})
	}
}

func TestBitAllOnes(t *testing.T) {
	a := []uint64{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}
	b := make([]uint64, len(a))
	for _, v := range BitVariants() {
		assert.Equal(t, uint32(576), v.Count(a), v.Name)
		assert.Equal(t, uint32(0), v.And(a, b), v.Name)
		assert.Equal(t, uint32(576), v.Or(a, b), v.Name)
		assert.Equal(t, uint32(576), v.Xor(a, b), v.Name)
		assert.Equal(t, uint32(0), v.Xor(a, a), v.Name)
	}
	assert.Equal(t, uint32(576), Popcount(a))
	assert.Equal(t, uint32(576), PopcountXor(a, b))
	assert.Equal(t, uint32(0), PopcountAnd(a, b))
	assert.Equal(t, uint32(576), PopcountOr(b, a))
}

func TestBitEmpty(t *testing.T) {
	for _, v := range BitVariants() {
		assert.Equal(t, uint32(0), v.Count(nil), v.Name)
		assert.Equal(t, uint32(0), v.Xor(nil, nil), v.Name)
	}
}

func TestBitShortBPanics(t *testing.T) {
	a := []uint64{1, 1, 1, 1, 1}
	backing := []uint64{1, 1, 1, 100, 100, 0, 0, 0}
	b := backing[:3]
	for _, v := range BitVariants() {
		assert.Panics(t, func() { v.And(a, b) }, "%s And", v.Name)
		assert.Panics(t, func() { v.Xor(a, b) }, "%s Xor", v.Name)
	}
}
