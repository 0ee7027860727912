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

// Package cpuinfo reports the CPU features detected by Go, the dispatch
// level chosen by hwy and the kernel variants bound in reduce.
package cpuinfo

import (
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/embedkit/go-vreduce/hwy"
	"github.com/embedkit/go-vreduce/hwy/contrib/reduce"
)

// Feature is one named capability flag.
type Feature struct {
	Name    string
	Present bool
	Note    string
}

// Report is a snapshot of the detected hardware and dispatch state.
type Report struct {
	GOOS   string
	GOARCH string
	NumCPU int

	Level         hwy.DispatchLevel
	Width         int
	Name          string
	ScalableBytes int

	// Features are the raw golang.org/x/sys/cpu flags for GOARCH.
	Features []Feature
	// Capabilities are the hwy predicates kernels dispatch on.
	Capabilities []Feature
	Bound        reduce.Bound
}

// Collect builds a Report for the running process.
func Collect() Report {
	r := Report{
		GOOS:          runtime.GOOS,
		GOARCH:        runtime.GOARCH,
		NumCPU:        runtime.NumCPU(),
		Level:         hwy.CurrentLevel(),
		Width:         hwy.CurrentWidth(),
		Name:          hwy.CurrentName(),
		ScalableBytes: hwy.ScalableBytes(),
		Bound:         reduce.BoundVariants(),
	}
	switch runtime.GOARCH {
	case "arm64":
		r.Features = arm64Features()
	case "amd64":
		r.Features = amd64Features()
	}
	r.Capabilities = []Feature{
		{Name: "HasF16C", Present: hwy.HasF16C()},
		{Name: "HasAVX512FP16", Present: hwy.HasAVX512FP16()},
		{Name: "HasAVX512VNNI", Present: hwy.HasAVX512VNNI()},
		{Name: "HasARMFP16", Present: hwy.HasARMFP16()},
		{Name: "HasARMDotProd", Present: hwy.HasARMDotProd()},
		{Name: "HasSVE", Present: hwy.HasSVE()},
		{Name: "HasAVX512VPOPCNTDQ", Present: hwy.HasAVX512VPOPCNTDQ()},
	}
	if r.GOARCH == "amd64" {
		r.Capabilities[1].Note = "inferred from HasAMXTile; x/sys/cpu has no FP16 flag"
	}
	return r
}

func arm64Features() []Feature {
	return []Feature{
		{"HasASIMD", cpu.ARM64.HasASIMD, "NEON baseline"},
		{"HasFP", cpu.ARM64.HasFP, "Floating point"},
		{"HasFPHP", cpu.ARM64.HasFPHP, "FP16 scalar, ARMv8.2-A"},
		{"HasASIMDHP", cpu.ARM64.HasASIMDHP, "FP16 NEON, ARMv8.2-A"},
		{"HasASIMDFHM", cpu.ARM64.HasASIMDFHM, "FP16 FMA, ARMv8.4-A"},
		{"HasASIMDDP", cpu.ARM64.HasASIMDDP, "UDOT/SDOT"},
		{"HasSVE", cpu.ARM64.HasSVE, "Scalable Vector Extension"},
		{"HasSVE2", cpu.ARM64.HasSVE2, "SVE2"},
	}
}

func amd64Features() []Feature {
	return []Feature{
		{"HasSSE2", cpu.X86.HasSSE2, ""},
		{"HasAVX", cpu.X86.HasAVX, ""},
		{"HasAVX2", cpu.X86.HasAVX2, ""},
		{"HasFMA", cpu.X86.HasFMA, ""},
		{"HasAVX512F", cpu.X86.HasAVX512F, ""},
		{"HasAVX512BW", cpu.X86.HasAVX512BW, ""},
		{"HasAVX512VL", cpu.X86.HasAVX512VL, ""},
		{"HasAVX512VNNI", cpu.X86.HasAVX512VNNI, ""},
		{"HasAVX512VPOPCNTDQ", cpu.X86.HasAVX512VPOPCNTDQ, ""},
		{"HasAMXTile", cpu.X86.HasAMXTile, "implies AVX512-FP16"},
	}
}

// errWriter keeps the first write error so the report can be written
// without checking every line.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

// feature prints one flag, with its note in parentheses when set.
func (ew *errWriter) feature(indent string, f Feature) {
	if f.Note != "" {
		ew.printf("%s%-20s %v (%s)\n", indent, f.Name+":", f.Present, f.Note)
	} else {
		ew.printf("%s%-20s %v\n", indent, f.Name+":", f.Present)
	}
}

// Write prints r in a human-readable form.
func (r Report) Write(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("GOOS: %s\n", r.GOOS)
	ew.printf("GOARCH: %s\n", r.GOARCH)
	ew.printf("NumCPU: %d\n\n", r.NumCPU)

	ew.printf("Dispatch level: %s\n", r.Level)
	ew.printf("Dispatch width: %d bytes\n", r.Width)
	ew.printf("Dispatch name: %s\n", r.Name)
	ew.printf("Scalable vector length: %d bytes\n\n", r.ScalableBytes)

	if len(r.Features) > 0 {
		ew.printf("=== golang.org/x/sys/cpu (%s) ===\n", r.GOARCH)
		for _, f := range r.Features {
			ew.feature("  ", f)
		}
		ew.printf("\n")
	}

	for _, f := range r.Capabilities {
		ew.feature("", f)
	}
	ew.printf("\n")

	ew.printf("Bound variants:\n")
	ew.printf("  DotU8:            %s\n", r.Bound.U8)
	ew.printf("  DotNibble:        %s\n", r.Bound.Nibble)
	ew.printf("  DotF16/SqDistF16: %s\n", r.Bound.F16)
	ew.printf("  DotF32/SqDistF32: %s\n", r.Bound.F32)
	ew.printf("  SumF32/MinMaxF32: %s\n", r.Bound.F32Unary)
	ew.printf("  SumF16/MinMaxF16: %s\n", r.Bound.F16Unary)
	ew.printf("  Popcount*:        %s\n", r.Bound.Bit)
	return ew.err
}
