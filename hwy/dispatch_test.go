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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchLevelString(t *testing.T) {
	tests := []struct {
		level DispatchLevel
		want  string
	}{
		{DispatchScalar, "scalar"},
		{DispatchSSE2, "sse2"},
		{DispatchAVX2, "avx2"},
		{DispatchAVX512, "avx512"},
		{DispatchNEON, "neon"},
		{DispatchSVE, "sve"},
		{DispatchLevel(42), "DispatchLevel(42)"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCurrentLevelConsistent(t *testing.T) {
	assert.Equal(t, CurrentLevel().String(), CurrentName())
	assert.GreaterOrEqual(t, CurrentWidth(), 16)
	if CurrentLevel() == DispatchScalar {
		assert.False(t, HasSVE())
		assert.False(t, HasARMFP16())
		assert.False(t, HasAVX512FP16())
	}
	if HasAVX512FP16() {
		assert.Equal(t, DispatchAVX512, CurrentLevel())
	}
}

func TestSetScalableBytes(t *testing.T) {
	orig := ScalableBytes()

	prev, err := SetScalableBytes(64)
	require.NoError(t, err)
	assert.Equal(t, orig, prev)
	assert.Equal(t, 64, ScalableBytes())

	for _, bad := range []int{0, 8, 24, 80, 128} {
		_, err := SetScalableBytes(bad)
		assert.Error(t, err, "bytes=%d", bad)
		assert.Equal(t, 64, ScalableBytes(), "rejected value must not change the length")
	}

	_, err = SetScalableBytes(orig)
	require.NoError(t, err)
}

func TestScalableBytesFromEnv(t *testing.T) {
	t.Setenv("HWY_SCALABLE_BYTES", "48")
	assert.Equal(t, 48, scalableBytesFromEnv(32))

	t.Setenv("HWY_SCALABLE_BYTES", "17")
	assert.Equal(t, 32, scalableBytesFromEnv(32))

	t.Setenv("HWY_SCALABLE_BYTES", "wide")
	assert.Equal(t, 32, scalableBytesFromEnv(32))
}

func TestNoSimdEnv(t *testing.T) {
	t.Setenv("HWY_NO_SIMD", "1")
	assert.True(t, NoSimdEnv())
	t.Setenv("HWY_NO_SIMD", "false")
	assert.False(t, NoSimdEnv())
	t.Setenv("HWY_NO_SIMD", "yes")
	assert.True(t, NoSimdEnv())
}
