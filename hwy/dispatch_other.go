//go:build !amd64 && !arm64

package hwy

func init() {
	// Non-amd64/arm64 architectures fall back to scalar mode.
	setScalarMode()
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
