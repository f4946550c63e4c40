package main

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/fxvec/vmath"
)

// benchCase pairs a fixed-point operation with its float64 equivalent
type benchCase struct {
	name  string
	fixed func(n int)
	float func(n int)
}

// Sinks keep the compiler from discarding loop bodies
var (
	sinkFixed vmath.Fixed
	sinkVec2  vmath.Vec2
	sinkVec3  vmath.Vec3
	sinkFloat float64
)

func newBenchCmd(opts *rootOptions) *cobra.Command {
	var iterations int
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare Q32.32 operations against float64",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if iterations <= 0 {
				return fmt.Errorf("iterations must be positive, got %d", iterations)
			}
			opts.logger.Info("bench start", zap.Int("iterations", iterations))
			results := runBench(cmd.OutOrStdout(), benchCases(), iterations)
			for _, r := range results {
				opts.logger.Info("bench result",
					zap.String("op", r.name),
					zap.Duration("fixed", r.fixed),
					zap.Duration("float", r.float),
				)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 10_000_000, "iterations per operation")
	return cmd
}

type benchResult struct {
	name         string
	fixed, float time.Duration
}

func runBench(w io.Writer, cases []benchCase, iterations int) []benchResult {
	fmt.Fprintf(w, "vmath Benchmark (%d iterations)\n", iterations)
	fmt.Fprintln(w, "══════════════════════════════════════════════════════════════")
	fmt.Fprintf(w, "%-28s %14s %14s %10s\n", "Operation", "Q32.32", "float64", "Ratio")
	fmt.Fprintln(w, "──────────────────────────────────────────────────────────────")

	results := make([]benchResult, 0, len(cases))
	for _, c := range cases {
		start := time.Now()
		c.fixed(iterations)
		fixedTime := time.Since(start)

		start = time.Now()
		c.float(iterations)
		floatTime := time.Since(start)

		printResult(w, c.name, fixedTime, floatTime)
		results = append(results, benchResult{name: c.name, fixed: fixedTime, float: floatTime})
	}

	fmt.Fprintln(w, "══════════════════════════════════════════════════════════════")
	return results
}

func printResult(w io.Writer, name string, q32Time, floatTime time.Duration) {
	ratio := 0.0
	if floatTime > 0 {
		ratio = float64(q32Time) / float64(floatTime)
	}
	fmt.Fprintf(w, "%-28s %14v %14v %9.2fx\n", name, q32Time, floatTime, ratio)
}

func benchCases() []benchCase {
	a, b := vmath.FromFloat(123.456), vmath.FromFloat(78.9)
	af, bf := 123.456, 78.9
	v2 := vmath.NewVec2(a, b)
	v3 := vmath.NewVec3(a, b, vmath.FromFloat(-42.5))
	zf := -42.5

	return []benchCase{
		{
			name: "Mul",
			fixed: func(n int) {
				for i := 0; i < n; i++ {
					sinkFixed = a.Mul(b)
				}
			},
			float: func(n int) {
				for i := 0; i < n; i++ {
					sinkFloat = af * bf
				}
			},
		},
		{
			name: "Div",
			fixed: func(n int) {
				for i := 0; i < n; i++ {
					sinkFixed = a.Div(b)
				}
			},
			float: func(n int) {
				for i := 0; i < n; i++ {
					sinkFloat = af / bf
				}
			},
		},
		{
			name: "Sqrt",
			fixed: func(n int) {
				for i := 0; i < n; i++ {
					sinkFixed = a.Sqrt()
				}
			},
			float: func(n int) {
				for i := 0; i < n; i++ {
					sinkFloat = math.Sqrt(af)
				}
			},
		},
		{
			name: "Vec2.Len",
			fixed: func(n int) {
				for i := 0; i < n; i++ {
					sinkFixed = v2.Len()
				}
			},
			float: func(n int) {
				for i := 0; i < n; i++ {
					sinkFloat = math.Sqrt(af*af + bf*bf)
				}
			},
		},
		{
			name: "Vec2.Normalized",
			fixed: func(n int) {
				for i := 0; i < n; i++ {
					sinkVec2 = v2.Normalized()
				}
			},
			float: func(n int) {
				for i := 0; i < n; i++ {
					m := math.Sqrt(af*af + bf*bf)
					sinkFloat = af/m + bf/m
				}
			},
		},
		{
			name: "Vec2.Rotate",
			fixed: func(n int) {
				for i := 0; i < n; i++ {
					sinkVec2 = v2.Rotate(vmath.One / 8)
				}
			},
			float: func(n int) {
				for i := 0; i < n; i++ {
					s, c := math.Sincos(math.Pi / 4)
					sinkFloat = af*c - bf*s + af*s + bf*c
				}
			},
		},
		{
			name: "Vec3.Normalized",
			fixed: func(n int) {
				for i := 0; i < n; i++ {
					sinkVec3 = v3.Normalized()
				}
			},
			float: func(n int) {
				for i := 0; i < n; i++ {
					m := math.Sqrt(af*af + bf*bf + zf*zf)
					sinkFloat = af/m + bf/m + zf/m
				}
			},
		},
		{
			name: "Vec3.Cross",
			fixed: func(n int) {
				for i := 0; i < n; i++ {
					sinkVec3 = v3.Cross(v3.Neg().Add(vmath.NewVec3Of(1, 2, 3)))
				}
			},
			float: func(n int) {
				for i := 0; i < n; i++ {
					ox, oy, oz := 1-af, 2-bf, 3-zf
					sinkFloat = (bf*oz - zf*oy) + (zf*ox - af*oz) + (af*oy - bf*ox)
				}
			},
		},
	}
}
