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

package kernels

import (
	"errors"
	"fmt"

	"github.com/ajroetker/go-perflab/pixel"
	"github.com/ajroetker/go-perflab/workerpool"
)

// Kind identifies which transform a variant implements.
type Kind int

const (
	// KindRotate is the 90-degree rotate.
	KindRotate Kind = iota

	// KindSmooth is the 3x3 box blur.
	KindSmooth
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindRotate:
		return "rotate"
	case KindSmooth:
		return "smooth"
	default:
		return "unknown"
	}
}

// Kinds lists every kind in reporting order.
var Kinds = []Kind{KindRotate, KindSmooth}

// Func is the common signature of all transforms.
type Func func(dim int, src, dst *pixel.Buffer)

// Variant is a named implementation of one kind.
type Variant struct {
	Name        string
	Description string
	Kind        Kind
	Fn          Func

	// Baseline marks the reference implementation of Kind. Other variants
	// are checked against it and their speedup is relative to it.
	Baseline bool
}

// Label returns "name: description", the form used in reports.
func (v Variant) Label() string {
	if v.Description == "" {
		return v.Name
	}
	return v.Name + ": " + v.Description
}

var (
	// ErrDuplicateVariant is returned when a name is registered twice.
	ErrDuplicateVariant = errors.New("kernels: duplicate variant")

	// ErrDuplicateBaseline is returned when a kind gets a second baseline.
	ErrDuplicateBaseline = errors.New("kernels: duplicate baseline")

	// ErrInvalidVariant is returned for variants missing a name or function.
	ErrInvalidVariant = errors.New("kernels: invalid variant")
)

// Registry holds variants in registration order.
type Registry struct {
	variants []Variant
	byName   map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Register adds v.
func (r *Registry) Register(v Variant) error {
	if v.Name == "" || v.Fn == nil {
		return fmt.Errorf("%w: %q", ErrInvalidVariant, v.Name)
	}
	if _, ok := r.byName[v.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateVariant, v.Name)
	}
	if v.Baseline {
		if b, ok := r.Baseline(v.Kind); ok {
			return fmt.Errorf("%w: %s already has %q", ErrDuplicateBaseline, v.Kind, b.Name)
		}
	}
	r.byName[v.Name] = len(r.variants)
	r.variants = append(r.variants, v)
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(v Variant) {
	if err := r.Register(v); err != nil {
		panic(err)
	}
}

// Lookup returns the variant registered under name.
func (r *Registry) Lookup(name string) (Variant, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Variant{}, false
	}
	return r.variants[i], true
}

// Variants returns the variants of kind k in registration order.
func (r *Registry) Variants(k Kind) []Variant {
	var out []Variant
	for _, v := range r.variants {
		if v.Kind == k {
			out = append(out, v)
		}
	}
	return out
}

// Baseline returns the baseline variant of kind k.
func (r *Registry) Baseline(k Kind) (Variant, bool) {
	for _, v := range r.variants {
		if v.Kind == k && v.Baseline {
			return v, true
		}
	}
	return Variant{}, false
}

// Len returns the number of registered variants.
func (r *Registry) Len() int {
	return len(r.variants)
}

// Default returns a registry with every variant in this package.
// The parallel variants run on pool; pass nil to leave them out.
func Default(pool *workerpool.Pool) *Registry {
	r := NewRegistry()

	r.MustRegister(Variant{
		Name:        "naive_rotate",
		Description: "Naive baseline implementation",
		Kind:        KindRotate,
		Fn:          NaiveRotate,
		Baseline:    true,
	})
	r.MustRegister(Variant{
		Name:        "blocked_rotate",
		Description: "16x16 tiles, dim-1 hoisted",
		Kind:        KindRotate,
		Fn:          BlockedRotate,
	})
	if pool != nil {
		r.MustRegister(Variant{
			Name:        "parallel_rotate",
			Description: fmt.Sprintf("tile strips on %d workers", pool.NumWorkers()),
			Kind:        KindRotate,
			Fn: func(dim int, src, dst *pixel.Buffer) {
				ParallelRotate(pool, dim, src, dst)
			},
		})
	}

	r.MustRegister(Variant{
		Name:        "naive_smooth",
		Description: "Naive baseline implementation",
		Kind:        KindSmooth,
		Fn:          NaiveSmooth,
		Baseline:    true,
	})
	r.MustRegister(Variant{
		Name:        "inlined_smooth",
		Description: "row-major, accumulation and division inlined",
		Kind:        KindSmooth,
		Fn:          InlinedSmooth,
	})
	if pool != nil {
		r.MustRegister(Variant{
			Name:        "parallel_smooth",
			Description: fmt.Sprintf("row ranges on %d workers", pool.NumWorkers()),
			Kind:        KindSmooth,
			Fn: func(dim int, src, dst *pixel.Buffer) {
				ParallelSmooth(pool, dim, src, dst)
			},
		})
	}

	return r
}
