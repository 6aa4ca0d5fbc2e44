// Copyright 2025 go-perflab Authors
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

// Package bench runs every registered kernel variant over a range of buffer
// sizes, checks each result against the baseline of its kind and reports
// cycles per element and speedup.
package bench

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/ajroetker/go-perflab/config"
	"github.com/ajroetker/go-perflab/kernels"
	"github.com/ajroetker/go-perflab/pixel"
	"github.com/ajroetker/go-perflab/timing"
	"github.com/ajroetker/go-perflab/workerpool"
)

// Transform is the instrumented form of a kernel: it runs the kernel and
// stores the user CPU microseconds and cycles it took.
type Transform func(dim int, src, dst *pixel.Buffer, userMicros *int64, cycles *uint64)

// Timed wraps fn with the two clocks. A clock failure is fatal.
func Timed(log *zap.Logger, name string, fn kernels.Func) Transform {
	return func(dim int, src, dst *pixel.Buffer, userMicros *int64, cycles *uint64) {
		s := timing.MustMeasure(log, name, func() { fn(dim, src, dst) })
		*userMicros = s.UserMicros
		*cycles = s.Cycles
	}
}

// MismatchError reports a variant whose output differs from the baseline.
type MismatchError struct {
	Variant  string
	Baseline string
	Dim      int
	Row, Col int
	Got      pixel.Pixel
	Want     pixel.Pixel
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: dim %d: pixel (%d,%d) = %v, %s gives %v",
		e.Variant, e.Dim, e.Row, e.Col, e.Got, e.Baseline, e.Want)
}

// NewRegistry returns kernels.Default(pool) plus a blocked_rotate_<n> variant
// when cfg.BlockSize differs from kernels.BlockSize.
func NewRegistry(cfg config.Config, pool *workerpool.Pool) *kernels.Registry {
	r := kernels.Default(pool)
	if block := cfg.BlockSize; block > 0 && block != kernels.BlockSize {
		r.MustRegister(kernels.Variant{
			Name:        fmt.Sprintf("blocked_rotate_%d", block),
			Description: fmt.Sprintf("%dx%d tiles, dim-1 hoisted", block, block),
			Kind:        kernels.KindRotate,
			Fn: func(dim int, src, dst *pixel.Buffer) {
				kernels.BlockedRotateN(dim, src, dst, block)
			},
		})
	}
	return r
}

// ErrNoBaseline is returned when a kind has variants but no baseline.
var ErrNoBaseline = errors.New("bench: no baseline registered")

// Result is the measurement of one variant at one dimension.
type Result struct {
	Variant    string  `json:"variant"`
	Kind       string  `json:"kind"`
	Dim        int     `json:"dim"`
	UserMicros int64   `json:"user_us"`
	Cycles     uint64  `json:"cycles"`
	CPE        float64 `json:"cpe"`
	Speedup    float64 `json:"speedup"`
	Err        error   `json:"-"`
	Team       string  `json:"team,omitempty"`
}

// OK reports whether the variant produced the correct output.
func (r Result) OK() bool {
	return r.Err == nil
}

// Summary aggregates the results of one variant across dimensions.
type Summary struct {
	Variant     string
	Description string
	Kind        kernels.Kind
	Results     []Result

	// MeanSpeedup is the geometric mean of the per-dimension speedups, zero
	// if any dimension failed the correctness check.
	MeanSpeedup float64
}

// Report is the outcome of Harness.Run.
type Report struct {
	Team      config.TeamInfo
	Counter   string
	Summaries []Summary
}

// Failed returns every result that did not match its baseline.
func (r *Report) Failed() []Result {
	var out []Result
	for _, s := range r.Summaries {
		for _, res := range s.Results {
			if !res.OK() {
				out = append(out, res)
			}
		}
	}
	return out
}

// Sink receives each result as soon as it is measured.
type Sink interface {
	Publish(ctx context.Context, r Result) error
}

// Harness drives a benchmark run.
type Harness struct {
	Registry *kernels.Registry
	Config   config.Config
	Logger   *zap.Logger
	Sinks    []Sink

	// Quiet skips timing; only correctness is checked.
	Quiet bool
}

func (h *Harness) log() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

func (h *Harness) selected(v kernels.Variant) bool {
	return v.Baseline || len(h.Config.Variants) == 0 || slices.Contains(h.Config.Variants, v.Name)
}

func (h *Harness) dims(k kernels.Kind) []int {
	if k == kernels.KindRotate {
		return h.Config.RotateDims
	}
	return h.Config.SmoothDims
}

// Run measures every selected variant. It stops early, returning the partial
// report and ctx.Err(), when ctx is cancelled. Correctness failures do not
// stop the run; see Report.Failed.
func (h *Harness) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		Team:    config.Team(),
		Counter: timing.CounterName(),
	}

	for _, kind := range kernels.Kinds {
		dims := h.dims(kind)
		variants := slices.DeleteFunc(h.Registry.Variants(kind), func(v kernels.Variant) bool {
			return !h.selected(v)
		})
		if len(dims) == 0 || len(variants) == 0 {
			continue
		}
		baseline, ok := h.Registry.Baseline(kind)
		if !ok {
			return report, fmt.Errorf("%w for %s", ErrNoBaseline, kind)
		}

		summaries := make([]Summary, len(variants))
		for i, v := range variants {
			summaries[i] = Summary{Variant: v.Name, Description: v.Description, Kind: kind}
		}

		for _, dim := range dims {
			results, err := h.runDim(ctx, baseline, variants, dim)
			for i, r := range results {
				summaries[i].Results = append(summaries[i].Results, r)
			}
			if err != nil {
				report.Summaries = append(report.Summaries, summaries...)
				return report, err
			}
		}

		for i := range summaries {
			summaries[i].MeanSpeedup = geoMean(summaries[i].Results)
		}
		report.Summaries = append(report.Summaries, summaries...)
	}
	return report, nil
}

// runDim measures every variant at one dimension against the output of
// baseline on the same seeded source.
func (h *Harness) runDim(ctx context.Context, baseline kernels.Variant, variants []kernels.Variant, dim int) ([]Result, error) {
	log := h.log().With(zap.String("kind", baseline.Kind.String()), zap.Int("dim", dim))

	src := pixel.Random(dim, h.Config.Seed)
	want := pixel.NewBuffer(dim)
	baseline.Fn(dim, src, want)

	var baseCPE float64
	results := make([]Result, 0, len(variants))
	for _, v := range variants {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		r, got := h.measure(v, dim, src)
		if row, col, ok := got.FirstDiff(want); !ok {
			r.Err = &MismatchError{
				Variant:  v.Name,
				Baseline: baseline.Name,
				Dim:      dim,
				Row:      row,
				Col:      col,
				Got:      got.At(row, col),
				Want:     want.At(row, col),
			}
			log.Warn("variant output differs from baseline", zap.String("variant", v.Name), zap.Error(r.Err))
		}
		if v.Name == baseline.Name {
			baseCPE = r.CPE
		}
		results = append(results, r)
	}

	for i := range results {
		results[i].Speedup = speedup(baseCPE, results[i].CPE)
		log.Debug("measured",
			zap.String("variant", results[i].Variant),
			zap.Uint64("cycles", results[i].Cycles),
			zap.Int64("user_us", results[i].UserMicros),
			zap.Float64("cpe", results[i].CPE),
			zap.Float64("speedup", results[i].Speedup))
		for _, s := range h.Sinks {
			if err := s.Publish(ctx, results[i]); err != nil {
				log.Warn("publish result", zap.String("variant", results[i].Variant), zap.Error(err))
			}
		}
	}
	return results, nil
}

// measure runs v Repeats times on fresh destination buffers and keeps the
// fastest sample. It returns the output of the last run.
func (h *Harness) measure(v kernels.Variant, dim int, src *pixel.Buffer) (Result, *pixel.Buffer) {
	r := Result{
		Variant: v.Name,
		Kind:    v.Kind.String(),
		Dim:     dim,
		Team:    config.Team().Name,
	}

	var dst *pixel.Buffer
	if h.Quiet {
		dst = pixel.NewBuffer(dim)
		v.Fn(dim, src, dst)
		return r, dst
	}

	transform := Timed(h.log(), v.Name, v.Fn)
	for i := range max(h.Config.Repeats, 1) {
		dst = pixel.NewBuffer(dim)
		var user int64
		var cycles uint64
		transform(dim, src, dst, &user, &cycles)
		if i == 0 || cycles < r.Cycles {
			r.Cycles = cycles
		}
		if i == 0 || user < r.UserMicros {
			r.UserMicros = user
		}
	}
	r.CPE = float64(r.Cycles) / float64(dim*dim)
	return r, dst
}

func speedup(baseCPE, cpe float64) float64 {
	if baseCPE == 0 || cpe == 0 {
		return 0
	}
	return baseCPE / cpe
}

func geoMean(results []Result) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		if !r.OK() || r.Speedup <= 0 {
			return 0
		}
		sum += math.Log(r.Speedup)
	}
	return math.Exp(sum / float64(len(results)))
}
