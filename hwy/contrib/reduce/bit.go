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

	"github.com/embedkit/go-vreduce/hwy"
)

// nibbleCounts holds the number of set bits of every 4-bit value.
var nibbleCounts = hwy.Uint8x16{0, 1, 1, 2, 1, 2, 2, 3, 1, 2, 2, 3, 2, 3, 3, 4}

// lutPopCount counts the set bits of every 64-bit lane without vpopcntq:
// each byte is split into nibbles that index nibbleCounts (vpshufb), and the
// byte counts of a lane are summed by vpsadbw.
func lutPopCount(v hwy.Uint64x8) hwy.Uint64x8 {
	b := v.AsUint8x64()
	low := b.And(hwy.BroadcastUint8x64(0x0f)).Lookup(nibbleCounts)
	high := b.ShiftRight(4).Lookup(nibbleCounts)
	return low.Add(high).SumGroups8()
}

// pairCounter returns a kernel counting the set bits of op(a[i], b[i]) eight
// words at a time. The remainder uses masked loads, whose zeroed lanes add
// nothing under And, Or and Xor.
func pairCounter(op func(x, y hwy.Uint64x8) hwy.Uint64x8, count func(hwy.Uint64x8) hwy.Uint64x8) BitKernel {
	return func(a, b []uint64) uint32 {
		b = paired(a, b)
		n := len(a)
		var acc hwy.Uint64x8
		i := 0
		for ; i+8 <= n; i += 8 {
			acc = acc.Add(count(op(hwy.LoadUint64x8Slice(a[i:]), hwy.LoadUint64x8Slice(b[i:]))))
		}
		if i < n {
			mask := uint8(hwy.Bzhi32(n - i))
			acc = acc.Add(count(op(hwy.MaskzLoadUint64x8(mask, a[i:]), hwy.MaskzLoadUint64x8(mask, b[i:]))))
		}
		return uint32(acc.ReduceSum())
	}
}

func counter(count func(hwy.Uint64x8) hwy.Uint64x8) func(a []uint64) uint32 {
	return func(a []uint64) uint32 {
		n := len(a)
		var acc hwy.Uint64x8
		i := 0
		for ; i+8 <= n; i += 8 {
			acc = acc.Add(count(hwy.LoadUint64x8Slice(a[i:])))
		}
		if i < n {
			acc = acc.Add(count(hwy.MaskzLoadUint64x8(uint8(hwy.Bzhi32(n-i)), a[i:])))
		}
		return uint32(acc.ReduceSum())
	}
}

func popcntPair(op func(x, y hwy.Uint64x8) hwy.Uint64x8) BitKernel {
	return pairCounter(op, hwy.Uint64x8.PopCount)
}

func lutPair(op func(x, y hwy.Uint64x8) hwy.Uint64x8) BitKernel {
	return pairCounter(op, lutPopCount)
}

var (
	popcntCount = counter(hwy.Uint64x8.PopCount)
	lutCount    = counter(lutPopCount)
)

func bitsFallback(op func(x, y uint64) uint64) BitKernel {
	return func(a, b []uint64) uint32 {
		b = paired(a, b)
		var count int
		for i, x := range a {
			count += bits.OnesCount64(op(x, b[i]))
		}
		return uint32(count)
	}
}

func countFallback(a []uint64) uint32 {
	var count int
	for _, x := range a {
		count += bits.OnesCount64(x)
	}
	return uint32(count)
}
