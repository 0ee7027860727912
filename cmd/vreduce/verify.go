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


package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/bits"
	"math/rand/v2"
	"runtime"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/embedkit/go-vreduce/hwy"
	"github.com/embedkit/go-vreduce/hwy/contrib/reduce"
)

// ErrMismatch is returned by verify when a variant disagrees with the
// float64 reference beyond its tolerance.
var ErrMismatch = errors.New("variant result outside tolerance")

type verifyOptions struct {
	dim    int
	trials int
	seed   uint64
}

func (o verifyOptions) validate() error {
	if o.dim < 0 {
		return fmt.Errorf("--dim must be >= 0, got %d", o.dim)
	}
	if o.trials < 1 {
		return fmt.Errorf("--trials must be >= 1, got %d", o.trials)
	}
	return nil
}

// tolerance bounds |got-want| by rel*scale + abs, where scale is Σ|terms|.
type tolerance struct {
	rel, abs float64
}

var (
	exact  = tolerance{}
	f16Tol = tolerance{rel: 1e-2, abs: 1e-3}
	f32Tol = tolerance{rel: 1e-4, abs: 1e-6}
)

// check evaluates one variant and operation on trial t.
type check struct {
	family  string
	variant string
	op      string
	tol     tolerance
	eval    func(t int) (got, want, scale float64)
}

type verifyResult struct {
	Family   string
	Variant  string
	Op       string
	MaxError float64
	Failures int
}

// inputs holds trials random vector pairs of every element type.
type inputs struct {
	u8a, u8b   [][]uint8
	f16a, f16b [][]hwy.Float16
	f32a, f32b [][]float32
	u64a, u64b [][]uint64
}

func newInputs(opts verifyOptions) *inputs {
	rng := rand.New(rand.NewPCG(opts.seed, opts.seed^0x9e3779b97f4a7c15))
	in := &inputs{}
	for range opts.trials {
		in.u8a = append(in.u8a, randomU8(rng, opts.dim))
		in.u8b = append(in.u8b, randomU8(rng, opts.dim))
		a, b := randomF32(rng, opts.dim), randomF32(rng, opts.dim)
		in.f32a = append(in.f32a, a)
		in.f32b = append(in.f32b, b)
		ha, hb := make([]hwy.Float16, opts.dim), make([]hwy.Float16, opts.dim)
		hwy.DemoteF32ToF16(a, ha)
		hwy.DemoteF32ToF16(b, hb)
		in.f16a = append(in.f16a, ha)
		in.f16b = append(in.f16b, hb)
		in.u64a = append(in.u64a, randomU64(rng, opts.dim))
		in.u64b = append(in.u64b, randomU64(rng, opts.dim))
	}
	return in
}

func randomU8(rng *rand.Rand, n int) []uint8 {
	s := make([]uint8, n)
	for i := range s {
		s[i] = uint8(rng.UintN(256))
	}
	return s
}

func randomU64(rng *rand.Rand, n int) []uint64 {
	s := make([]uint64, n)
	for i := range s {
		s[i] = rng.Uint64()
	}
	return s
}

func randomF32(rng *rand.Rand, n int) []float32 {
	s := make([]float32, n)
	for i := range s {
		s[i] = rng.Float32()*2 - 1
	}
	return s
}

func dot64(a, b []float64) (sum, scale float64) {
	for i := range a {
		p := a[i] * b[i]
		sum += p
		scale += math.Abs(p)
	}
	return sum, scale
}

func sqDist64(a, b []float64) (sum, scale float64) {
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum, sum
}

// sums64 returns Σx, Σ|x| and Σx².
func sums64(x []float64) (sum, abs, sq float64) {
	for _, v := range x {
		sum += v
		abs += math.Abs(v)
		sq += v * v
	}
	return sum, abs, sq
}

func minMax64(x []float64) (mn, mx float64) {
	mn, mx = math.Inf(1), math.Inf(-1)
	for _, v := range x {
		if !math.IsNaN(v) {
			mn, mx = math.Min(mn, v), math.Max(mx, v)
		}
	}
	return mn, mx
}

func widen[T any](s []T, f func(T) float64) []float64 {
	return lo.Map(s, func(v T, _ int) float64 { return f(v) })
}

func f16To64(h hwy.Float16) float64 { return float64(h.Float32()) }
func f32To64(x float32) float64     { return float64(x) }

// runnable drops hardware variants this CPU cannot execute.
func runnable[V interface{ Runnable() bool }](vs []V) []V {
	return lo.Filter(vs, func(v V, _ int) bool { return v.Runnable() })
}

// unaryChecks covers the single-vector reductions of one element type.
// They accumulate in float32 whatever the element type.
func unaryChecks[T any](family string, vs []reduce.UnaryVariant[T], xs [][]T, to64 func(T) float64) []check {
	var checks []check
	for _, v := range runnable(vs) {
		reference := func(t int) ([]float64, float64, float64, float64) {
			wx := widen(xs[t], to64)
			sum, abs, sq := sums64(wx)
			return wx, sum, abs, sq
		}
		checks = append(checks,
			check{family: family, variant: v.Name, op: "sum", tol: f32Tol,
				eval: func(t int) (float64, float64, float64) {
					_, sum, abs, _ := reference(t)
					return float64(v.Sum(xs[t])), sum, abs
				}},
			check{family: family, variant: v.Name, op: "sumabs", tol: f32Tol,
				eval: func(t int) (float64, float64, float64) {
					_, _, abs, _ := reference(t)
					return float64(v.SumAbs(xs[t])), abs, abs
				}},
			check{family: family, variant: v.Name, op: "sqnorm", tol: f32Tol,
				eval: func(t int) (float64, float64, float64) {
					_, _, _, sq := reference(t)
					return float64(v.SqNorm(xs[t])), sq, sq
				}},
			check{family: family, variant: v.Name, op: "min", tol: exact,
				eval: func(t int) (float64, float64, float64) {
					wx, _, _, _ := reference(t)
					got, _ := v.MinMax(xs[t])
					want, _ := minMax64(wx)
					return float64(got), want, 0
				}},
			check{family: family, variant: v.Name, op: "max", tol: exact,
				eval: func(t int) (float64, float64, float64) {
					wx, _, _, _ := reference(t)
					_, got := v.MinMax(xs[t])
					_, want := minMax64(wx)
					return float64(got), want, 0
				}})
	}
	return checks
}

// bitChecks covers the popcount reductions; all are exact.
func bitChecks(in *inputs) []check {
	ops := []struct {
		name string
		eval func(v reduce.BitVariant, a, b []uint64) uint32
		ref  func(x, y uint64) uint64
	}{
		{"and", func(v reduce.BitVariant, a, b []uint64) uint32 { return v.And(a, b) }, func(x, y uint64) uint64 { return x & y }},
		{"or", func(v reduce.BitVariant, a, b []uint64) uint32 { return v.Or(a, b) }, func(x, y uint64) uint64 { return x | y }},
		{"xor", func(v reduce.BitVariant, a, b []uint64) uint32 { return v.Xor(a, b) }, func(x, y uint64) uint64 { return x ^ y }},
		{"count", func(v reduce.BitVariant, a, _ []uint64) uint32 { return v.Count(a) }, func(x, _ uint64) uint64 { return x }},
	}
	var checks []check
	for _, v := range runnable(reduce.BitVariants()) {
		for _, op := range ops {
			checks = append(checks, check{family: "u64", variant: v.Name, op: op.name, tol: exact,
				eval: func(t int) (float64, float64, float64) {
					a, b := in.u64a[t], in.u64b[t]
					var want int
					for i := range a {
						want += bits.OnesCount64(op.ref(a[i], b[i]))
					}
					return float64(op.eval(v, a, b)), float64(want), 0
				}})
		}
	}
	return checks
}

// buildChecks lists every runnable variant and operation.
func buildChecks(in *inputs) []check {
	var checks []check

	for _, v := range runnable(reduce.U8DotVariants()) {
		checks = append(checks, check{family: "u8", variant: v.Name, op: "dot", tol: exact,
			eval: func(t int) (float64, float64, float64) {
				a, b := in.u8a[t], in.u8b[t]
				var want uint32
				for i := range a {
					want += uint32(a[i]) * uint32(b[i])
				}
				return float64(v.Dot(a, b)), float64(want), 0
			}})
	}
	for _, v := range runnable(reduce.NibbleDotVariants()) {
		checks = append(checks, check{family: "u4", variant: v.Name, op: "dot", tol: exact,
			eval: func(t int) (float64, float64, float64) {
				a, b := in.u8a[t], in.u8b[t]
				var want uint32
				for i := range a {
					want += uint32(a[i]&0xf)*uint32(b[i]&0xf) + uint32(a[i]>>4)*uint32(b[i]>>4)
				}
				return float64(v.Dot(a, b)), float64(want), 0
			}})
	}
	for _, v := range runnable(reduce.F16Variants()) {
		checks = append(checks,
			check{family: "f16", variant: v.Name, op: "dot", tol: f16Tol,
				eval: func(t int) (float64, float64, float64) {
					a, b := in.f16a[t], in.f16b[t]
					want, scale := dot64(widen(a, f16To64), widen(b, f16To64))
					return float64(v.Dot(a, b)), want, scale
				}},
			check{family: "f16", variant: v.Name, op: "sqdist", tol: f16Tol,
				eval: func(t int) (float64, float64, float64) {
					a, b := in.f16a[t], in.f16b[t]
					want, scale := sqDist64(widen(a, f16To64), widen(b, f16To64))
					return float64(v.SqDist(a, b)), want, scale
				}})
	}
	for _, v := range runnable(reduce.F32Variants()) {
		checks = append(checks,
			check{family: "f32", variant: v.Name, op: "dot", tol: f32Tol,
				eval: func(t int) (float64, float64, float64) {
					a, b := in.f32a[t], in.f32b[t]
					want, scale := dot64(widen(a, f32To64), widen(b, f32To64))
					return float64(v.Dot(a, b)), want, scale
				}},
			check{family: "f32", variant: v.Name, op: "sqdist", tol: f32Tol,
				eval: func(t int) (float64, float64, float64) {
					a, b := in.f32a[t], in.f32b[t]
					want, scale := sqDist64(widen(a, f32To64), widen(b, f32To64))
					return float64(v.SqDist(a, b)), want, scale
				}})
	}
	checks = append(checks, unaryChecks("f16", reduce.F16UnaryVariants(), in.f16a, f16To64)...)
	checks = append(checks, unaryChecks("f32", reduce.F32UnaryVariants(), in.f32a, f32To64)...)
	return append(checks, bitChecks(in)...)
}

// runVerify evaluates every check on every trial concurrently. Inputs are
// shared read-only across goroutines.
func runVerify(ctx context.Context, opts verifyOptions, logger *logrus.Logger) ([]verifyResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	in := newInputs(opts)
	checks := buildChecks(in)
	results := make([]verifyResult, len(checks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range checks {
		g.Go(func() error {
			r := verifyResult{Family: c.family, Variant: c.variant, Op: c.op}
			for t := range opts.trials {
				if err := ctx.Err(); err != nil {
					return err
				}
				got, want, scale := c.eval(t)
				var diff float64
				if got != want {
					diff = math.Abs(got - want)
				}
				if math.IsNaN(got) {
					diff = math.Inf(1)
				}
				r.MaxError = max(r.MaxError, diff)
				if diff > c.tol.rel*scale+c.tol.abs {
					r.Failures++
				}
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}

	for _, r := range results {
		entry := logger.WithFields(logrus.Fields{
			"family":    r.Family,
			"variant":   r.Variant,
			"op":        r.Op,
			"max_error": r.MaxError,
		})
		if r.Failures > 0 {
			entry.WithField("failures", r.Failures).Error("variant mismatch")
		} else {
			entry.Debug("variant ok")
		}
	}

	failed := lo.CountBy(results, func(r verifyResult) bool { return r.Failures > 0 })
	logger.WithFields(logrus.Fields{
		"dim":    opts.dim,
		"trials": opts.trials,
		"checks": len(results),
		"failed": failed,
	}).Info("verification finished")
	if failed > 0 {
		return results, fmt.Errorf("%w: %d of %d checks", ErrMismatch, failed, len(results))
	}
	return results, nil
}

func verifyCmd(c *cli) *cobra.Command {
	var opts verifyOptions
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check every kernel variant against a float64 reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runVerify(cmd.Context(), opts, c.logger)
			return err
		},
	}
	cmd.Flags().IntVar(&opts.dim, "dim", 768, "vector dimension")
	cmd.Flags().IntVar(&opts.trials, "trials", 16, "random vector pairs per variant")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "random seed")
	return cmd
}
