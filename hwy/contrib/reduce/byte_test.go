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

	"github.com/stretchr/testify/assert"
)

func refDotU8(a, b []uint8) uint32 {
	var sum uint32
	for i := range a {
		sum += uint32(a[i]) * uint32(b[i])
	}
	return sum
}

func refDotNibble(a, b []uint8) uint32 {
	var sum uint32
	for i := range a {
		sum += uint32(a[i]&0xf)*uint32(b[i]&0xf) + uint32(a[i]>>4)*uint32(b[i]>>4)
	}
	return sum
}

func TestDotU8Variants(t *testing.T) {
	rng := newRNG()
	for _, v := range U8DotVariants() {
		t.Run(v.Name, func(t *testing.T) {
			for _, n := range lengths() {
				a, b := makeU8(rng, n), makeU8(rng, n)
				want := refDotU8(a, b)
				if got := v.Dot(a, b); got != want {
					t.Errorf("n=%d: got %d, want %d", n, got, want)
				}
				if got := v.Dot(b, a); got != want {
					t.Errorf("n=%d: not symmetric: got %d, want %d", n, got, want)
				}
			}
		})
	}
}

func TestDotU8SeventeenElements(t *testing.T) {
	a := make([]uint8, 17)
	b := make([]uint8, 17)
	for i := range a {
		a[i] = uint8(i + 1)
		b[i] = 1
	}
	for _, v := range U8DotVariants() {
		assert.Equal(t, uint32(153), v.Dot(a, b), v.Name)
	}
	assert.Equal(t, uint32(153), DotU8(a, b))
}

func TestDotU8Saturated(t *testing.T) {
	for _, n := range []int{15, 16, 63, 64, 65, 4096} {
		a := make([]uint8, n)
		for i := range a {
			a[i] = 255
		}
		want := uint32(n) * 255 * 255
		for _, v := range U8DotVariants() {
			if got := v.Dot(a, a); got != want {
				t.Errorf("%s n=%d: got %d, want %d", v.Name, n, got, want)
			}
		}
	}
}

func TestDotU8Empty(t *testing.T) {
	for _, v := range U8DotVariants() {
		assert.Equal(t, uint32(0), v.Dot(nil, nil), v.Name)
		assert.Equal(t, uint32(0), v.Dot([]uint8{}, []uint8{}), v.Name)
	}
}

func TestDotU8ReadsOnlyLenA(t *testing.T) {
	a := []uint8{1, 2, 3}
	b := []uint8{4, 5, 6, 200, 200}
	for _, v := range U8DotVariants() {
		assert.Equal(t, uint32(32), v.Dot(a, b), v.Name)
	}
}

func TestDotU8ShortBPanics(t *testing.T) {
	a := []uint8{1, 1, 1, 1, 1}
	backing := []uint8{1, 1, 1, 100, 100, 0, 0, 0}
	b := backing[:3]
	for _, v := range U8DotVariants() {
		assert.Panics(t, func() { v.Dot(a, b) }, v.Name)
	}
	for _, v := range NibbleDotVariants() {
		assert.Panics(t, func() { v.Dot(a, b) }, v.Name)
	}
}

func TestDotNibbleVariants(t *testing.T) {
	rng := newRNG()
	for _, v := range NibbleDotVariants() {
		t.Run(v.Name, func(t *testing.T) {
			for _, n := range lengths() {
				a, b := makeU8(rng, n), makeU8(rng, n)
				want := refDotNibble(a, b)
				if got := v.Dot(a, b); got != want {
					t.Errorf("n=%d: got %d, want %d", n, got, want)
				}
			}
		})
	}
}

func TestDotNibbleLayout(t *testing.T) {
	// Logical vectors [1, 2, 3] and [4, 5, 6] padded with a zero element.
	a := []uint8{0x21, 0x03}
	b := []uint8{0x54, 0x06}
	for _, v := range NibbleDotVariants() {
		assert.Equal(t, uint32(32), v.Dot(a, b), v.Name)
	}
	assert.Equal(t, uint32(32), DotNibble(a, b))
}

func TestDotNibbleSaturated(t *testing.T) {
	for _, n := range []int{1, 16, 17, 100} {
		a := make([]uint8, n)
		for i := range a {
			a[i] = 0xff
		}
		want := uint32(2*n) * 15 * 15
		for _, v := range NibbleDotVariants() {
			if got := v.Dot(a, a); got != want {
				t.Errorf("%s n=%d: got %d, want %d", v.Name, n, got, want)
			}
		}
	}
}

func TestSumU8(t *testing.T) {
	rng := newRNG()
	for _, n := range lengths() {
		t.Run(fmt.Sprintf("len%d", n), func(t *testing.T) {
			a := makeU8(rng, n)
			var want uint32
			for _, x := range a {
				want += uint32(x)
			}
			assert.Equal(t, want, SumU8(a))
		})
	}
}
