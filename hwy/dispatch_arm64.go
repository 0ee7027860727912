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

//go:build arm64

package hwy

import "golang.org/x/sys/cpu"

func init() {
	if NoSimdEnv() {
		setScalarMode()
		return
	}

	detectCPUFeatures()
}

func detectCPUFeatures() {
	if cpu.ARM64.HasSVE {
		currentLevel = DispatchSVE
		currentWidth = 16
		currentName = "sve"
		scalableBytes = scalableBytesFromEnv(defaultScalableBytes)
		return
	}
	// ASIMD is mandatory on arm64.
	currentLevel = DispatchNEON
	currentWidth = 16
	currentName = "neon"
	scalableBytes = scalableBytesFromEnv(MinScalableBytes)
}

// HasF16C returns false on non-x86 platforms (F16C is an x86-specific feature).
func HasF16C() bool {
	return false
}

// HasAVX512FP16 returns false on non-x86 platforms (AVX-512 is x86-specific).
func HasAVX512FP16() bool {
	return false
}

// HasAVX512VNNI returns false on non-x86 platforms.
func HasAVX512VNNI() bool {
	return false
}

// HasAVX512VPOPCNTDQ returns false on non-x86 platforms.
func HasAVX512VPOPCNTDQ() bool {
	return false
}

// HasARMFP16 reports whether NEON half-precision arithmetic (ARMv8.2-A) is usable.
func HasARMFP16() bool {
	return currentLevel >= DispatchNEON && cpu.ARM64.HasFPHP && cpu.ARM64.HasASIMDHP
}

// HasARMDotProd reports whether the UDOT/SDOT instructions are usable.
func HasARMDotProd() bool {
	return currentLevel >= DispatchNEON && cpu.ARM64.HasASIMDDP
}

// HasSVE reports whether the Scalable Vector Extension is usable.
func HasSVE() bool {
	return currentLevel >= DispatchSVE && cpu.ARM64.HasSVE
}
