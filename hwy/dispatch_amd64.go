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

//go:build amd64

package hwy

import "golang.org/x/sys/cpu"

func init() {
	// Check if SIMD is disabled via environment variable
	if NoSimdEnv() {
		setScalarMode()
		return
	}

	detectCPUFeatures()
}

func detectCPUFeatures() {
	switch {
	case cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW && cpu.X86.HasAVX512VL:
		currentLevel = DispatchAVX512
		currentWidth = 64
		currentName = "avx512"
	case cpu.X86.HasAVX2 && cpu.X86.HasFMA:
		currentLevel = DispatchAVX2
		currentWidth = 32
		currentName = "avx2"
	default:
		// SSE2 is baseline for amd64
		currentLevel = DispatchSSE2
		currentWidth = 16
		currentName = "sse2"
	}
	scalableBytes = scalableBytesFromEnv(MinScalableBytes)
}

// HasF16C reports whether half-precision conversion instructions are usable.
// x/sys/cpu has no F16C flag; every AVX2+FMA part ships F16C.
func HasF16C() bool {
	return currentLevel >= DispatchAVX2 && cpu.X86.HasAVX2 && cpu.X86.HasFMA
}

// HasAVX512FP16 reports whether AVX-512 half-precision arithmetic is usable.
// x/sys/cpu has no FP16 flag, so the answer is inferred from HasAMXTile: AMX
// tiles ship only on parts that also carry AVX512-FP16 (Sapphire Rapids and
// later).
func HasAVX512FP16() bool {
	return currentLevel >= DispatchAVX512 && cpu.X86.HasAMXTile
}

// HasAVX512VNNI reports whether AVX-512 integer dot-product instructions are usable.
func HasAVX512VNNI() bool {
	return currentLevel >= DispatchAVX512 && cpu.X86.HasAVX512VNNI
}

// HasAVX512VPOPCNTDQ reports whether the 64-bit vector popcount instruction is usable.
func HasAVX512VPOPCNTDQ() bool {
	return currentLevel >= DispatchAVX512 && cpu.X86.HasAVX512VPOPCNTDQ
}

// HasARMFP16 returns false on non-ARM64 platforms (ARM FP16 is ARM-specific).
func HasARMFP16() bool {
	return false
}

// HasARMDotProd returns false on non-ARM64 platforms.
func HasARMDotProd() bool {
	return false
}

// HasSVE returns false on non-ARM64 platforms.
func HasSVE() bool {
	return false
}
