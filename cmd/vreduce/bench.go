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
	"fmt"
	"io"
	"math/rand/v2"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/embedkit/go-vreduce/hwy/contrib/reduce"
)

type benchOptions struct {
	dim   int
	iters int
}

type benchRow struct {
	family  string
	variant string
	op      string
	bound   bool
	unary   bool
	nsPerOp float64
}

// sink keeps kernel results observable so calls are not eliminated.
var sink float64

// timeLoop runs fn iters times and returns the mean duration per call.
func timeLoop(ctx context.Context, iters int, fn func() float64) (float64, error) {
	start := time.Now()
	for i := range iters {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		sink += fn()
	}
	return float64(time.Since(start).Nanoseconds()) / float64(iters), nil
}

type job struct {
	row benchRow
	fn  func() float64
}

func unaryJobs[T any](family string, v reduce.UnaryVariant[T], bound bool, x []T) []job {
	row := func(op string) benchRow {
		return benchRow{family: family, variant: v.Name, op: op, bound: bound, unary: true}
	}
	return []job{
		{row("sum"), func() float64 { return float64(v.Sum(x)) }},
		{row("sumabs"), func() float64 { return float64(v.SumAbs(x)) }},
		{row("sqnorm"), func() float64 { return float64(v.SqNorm(x)) }},
		{row("minmax"), func() float64 {
			mn, mx := v.MinMax(x)
			return float64(mn + mx)
		}},
	}
}

// runBench times every runnable variant, one at a time.
func runBench(ctx context.Context, opts benchOptions, logger *logrus.Logger) ([]benchRow, error) {
	if opts.dim < 1 {
		return nil, fmt.Errorf("--dim must be >= 1, got %d", opts.dim)
	}
	if opts.iters < 1 {
		return nil, fmt.Errorf("--iters must be >= 1, got %d", opts.iters)
	}
	in := newInputs(verifyOptions{dim: opts.dim, trials: 1, seed: rand.Uint64()})
	bound := reduce.BoundVariants()

	var jobs []job
	for _, v := range runnable(reduce.U8DotVariants()) {
		jobs = append(jobs, job{benchRow{family: "u8", variant: v.Name, op: "dot", bound: v.Name == bound.U8},
			func() float64 { return float64(v.Dot(in.u8a[0], in.u8b[0])) }})
	}
	for _, v := range runnable(reduce.NibbleDotVariants()) {
		jobs = append(jobs, job{benchRow{family: "u4", variant: v.Name, op: "dot", bound: v.Name == bound.Nibble},
			func() float64 { return float64(v.Dot(in.u8a[0], in.u8b[0])) }})
	}
	for _, v := range runnable(reduce.F16Variants()) {
		b := v.Name == bound.F16
		jobs = append(jobs,
			job{benchRow{family: "f16", variant: v.Name, op: "dot", bound: b},
				func() float64 { return float64(v.Dot(in.f16a[0], in.f16b[0])) }},
			job{benchRow{family: "f16", variant: v.Name, op: "sqdist", bound: b},
				func() float64 { return float64(v.SqDist(in.f16a[0], in.f16b[0])) }})
	}
	for _, v := range runnable(reduce.F32Variants()) {
		b := v.Name == bound.F32
		jobs = append(jobs,
			job{benchRow{family: "f32", variant: v.Name, op: "dot", bound: b},
				func() float64 { return float64(v.Dot(in.f32a[0], in.f32b[0])) }},
			job{benchRow{family: "f32", variant: v.Name, op: "sqdist", bound: b},
				func() float64 { return float64(v.SqDist(in.f32a[0], in.f32b[0])) }})
	}
	for _, v := range runnable(reduce.F16UnaryVariants()) {
		jobs = append(jobs, unaryJobs("f16", v, v.Name == bound.F16Unary, in.f16a[0])...)
	}
	for _, v := range runnable(reduce.F32UnaryVariants()) {
		jobs = append(jobs, unaryJobs("f32", v, v.Name == bound.F32Unary, in.f32a[0])...)
	}
	for _, v := range runnable(reduce.BitVariants()) {
		b := v.Name == bound.Bit
		a, c := in.u64a[0], in.u64b[0]
		jobs = append(jobs,
			job{benchRow{family: "u64", variant: v.Name, op: "and", bound: b},
				func() float64 { return float64(v.And(a, c)) }},
			job{benchRow{family: "u64", variant: v.Name, op: "or", bound: b},
				func() float64 { return float64(v.Or(a, c)) }},
			job{benchRow{family: "u64", variant: v.Name, op: "xor", bound: b},
				func() float64 { return float64(v.Xor(a, c)) }},
			job{benchRow{family: "u64", variant: v.Name, op: "count", bound: b, unary: true},
				func() float64 { return float64(v.Count(a)) }})
	}

	rows := make([]benchRow, 0, len(jobs))
	for _, j := range jobs {
		ns, err := timeLoop(ctx, opts.iters, j.fn)
		if err != nil {
			return nil, fmt.Errorf("bench %s: %w", j.row.variant, err)
		}
		j.row.nsPerOp = ns
		logger.WithFields(logrus.Fields{
			"variant": j.row.variant,
			"op":      j.row.op,
			"ns_op":   ns,
		}).Debug("timed variant")
		rows = append(rows, j.row)
	}
	return rows, nil
}

func writeBench(w io.Writer, dim int, rows []benchRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "dim=%d\n", dim)
	fmt.Fprintln(tw, "FAMILY\tVARIANT\tOP\tNS/OP\tGB/S\t")
	for _, r := range rows {
		name := r.variant
		if r.bound {
			name += " *"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%.2f\t\n", r.family, name, r.op, r.nsPerOp, throughput(r, dim))
	}
	return tw.Flush()
}

// throughput returns input bytes read per nanosecond.
func throughput(r benchRow, dim int) float64 {
	if r.nsPerOp == 0 {
		return 0
	}
	size := map[string]int{"u8": 1, "u4": 1, "f16": 2, "f32": 4, "u64": 8}[r.family]
	operands := 2
	if r.unary {
		operands = 1
	}
	return float64(operands*dim*size) / r.nsPerOp
}

func benchCmd(c *cli) *cobra.Command {
	var opts benchOptions
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time every runnable kernel variant",
		Long:  "Times every runnable kernel variant on one random vector pair. The variant bound by dispatch is marked with *. The u64 family treats --dim as a word count.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := runBench(cmd.Context(), opts, c.logger)
			if err != nil {
				return err
			}
			return writeBench(cmd.OutOrStdout(), opts.dim, rows)
		},
	}
	cmd.Flags().IntVar(&opts.dim, "dim", 768, "vector dimension")
	cmd.Flags().IntVar(&opts.iters, "iters", 100000, "calls per variant")
	return cmd
}
