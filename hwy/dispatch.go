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

// Package hwy provides the portable vector layer used by the reduction
// kernels: CPU capability detection, fixed-width register types modeled on
// archsimd (Float32x8, Uint8x16, ...), runtime-width scalable vectors with
// per-lane predicates, and pairwise horizontal reductions.
//
// Register types are plain Go arrays. A kernel written against them keeps the
// lane layout, accumulator count and tail handling of the instruction set it
// targets, so every variant runs (and is tested) on every GOARCH.
package hwy

import (
	"fmt"
	"os"
	"strconv"
)

// DispatchLevel identifies the instruction-set family the process runs on.
// Levels are ordered within an architecture: a higher level implies the
// capabilities of the lower ones.
type DispatchLevel int

const (
	DispatchScalar DispatchLevel = iota
	DispatchSSE2
	DispatchAVX2
	DispatchAVX512
	DispatchNEON
	DispatchSVE
)

func (l DispatchLevel) String() string {
	switch l {
	case DispatchScalar:
		return "scalar"
	case DispatchSSE2:
		return "sse2"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	case DispatchSVE:
		return "sve"
	default:
		return fmt.Sprintf("DispatchLevel(%d)", int(l))
	}
}

const (
	// MaxScalableBytes is the widest scalable register carried by Vec.
	// SVE allows up to 2048 bits; no shipping core exceeds 512.
	MaxScalableBytes = 64

	// MinScalableBytes is the architectural minimum SVE register width.
	MinScalableBytes = 16

	defaultScalableBytes = 32
)

var (
	currentLevel DispatchLevel
	currentWidth int
	currentName  string

	// scalableBytes is the emulated SVE register length.
	scalableBytes = MinScalableBytes
)

// CurrentLevel returns the detected dispatch level.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the native vector width in bytes for the detected level.
func CurrentWidth() int {
	return currentWidth
}

// CurrentName returns a short name for the detected level.
func CurrentName() string {
	return currentName
}

// NoSimdEnv reports whether HWY_NO_SIMD is set, which forces scalar kernels.
func NoSimdEnv() bool {
	v, ok := os.LookupEnv("HWY_NO_SIMD")
	if !ok {
		return false
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return v != ""
}

// ScalableBytes returns the register length in bytes used by scalable vectors.
func ScalableBytes() int {
	return scalableBytes
}

// SetScalableBytes sets the scalable register length. The length must be a
// multiple of 16 between MinScalableBytes and MaxScalableBytes, as SVE
// requires. It returns the previous value.
func SetScalableBytes(bytes int) (int, error) {
	if bytes < MinScalableBytes || bytes > MaxScalableBytes || bytes%16 != 0 {
		return scalableBytes, fmt.Errorf("hwy: invalid scalable vector length %d bytes (want a multiple of 16 in [%d, %d])",
			bytes, MinScalableBytes, MaxScalableBytes)
	}
	prev := scalableBytes
	scalableBytes = bytes
	return prev, nil
}

// scalableBytesFromEnv reads HWY_SCALABLE_BYTES. golang.org/x/sys/cpu reports
// whether SVE is present but not its register length.
func scalableBytesFromEnv(fallback int) int {
	v, ok := os.LookupEnv("HWY_SCALABLE_BYTES")
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < MinScalableBytes || n > MaxScalableBytes || n%16 != 0 {
		return fallback
	}
	return n
}

func setScalarMode() {
	currentLevel = DispatchScalar
	currentWidth = 16 // Use 16-byte vectors even in scalar mode for consistency
	currentName = "scalar"
	scalableBytes = scalableBytesFromEnv(MinScalableBytes)
}
