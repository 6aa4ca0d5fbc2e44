package kernels

import (
	"errors"
	"testing"

	"github.com/ajroetker/go-perflab/pixel"
	"github.com/ajroetker/go-perflab/workerpool"
)

func TestKindString(t *testing.T) {
	if KindRotate.String() != "rotate" || KindSmooth.String() != "smooth" {
		t.Errorf("got %q, %q", KindRotate, KindSmooth)
	}
	if Kind(42).String() != "unknown" {
		t.Errorf("Kind(42) = %q, want unknown", Kind(42))
	}
}

func TestDefault(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Close()

	r := Default(pool)
	if r.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", r.Len())
	}

	wantRotate := []string{"naive_rotate", "blocked_rotate", "parallel_rotate"}
	for i, v := range r.Variants(KindRotate) {
		if v.Name != wantRotate[i] {
			t.Errorf("rotate[%d] = %q, want %q", i, v.Name, wantRotate[i])
		}
	}

	b, ok := r.Baseline(KindSmooth)
	if !ok || b.Name != "naive_smooth" {
		t.Errorf("smooth baseline = %q, %v", b.Name, ok)
	}
	if got := b.Label(); got != "naive_smooth: Naive baseline implementation" {
		t.Errorf("Label() = %q", got)
	}

	// Every registered variant agrees with its baseline.
	for _, k := range Kinds {
		base, _ := r.Baseline(k)
		src := pixel.Random(37, 11)
		want := pixel.NewBuffer(37)
		base.Fn(37, src, want)
		for _, v := range r.Variants(k) {
			got := pixel.NewBuffer(37)
			v.Fn(37, src, got)
			if !got.Equal(want) {
				t.Errorf("%s disagrees with %s", v.Name, base.Name)
			}
		}
	}
}

func TestDefault_NoPool(t *testing.T) {
	r := Default(nil)
	if r.Len() != 4 {
		t.Errorf("Len() = %d, want 4", r.Len())
	}
	if _, ok := r.Lookup("parallel_smooth"); ok {
		t.Error("parallel_smooth registered without a pool")
	}
}

func TestRegister_Errors(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Variant{Name: "a", Kind: KindRotate, Fn: NaiveRotate, Baseline: true}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		v    Variant
		want error
	}{
		{"duplicate name", Variant{Name: "a", Kind: KindSmooth, Fn: NaiveSmooth}, ErrDuplicateVariant},
		{"second baseline", Variant{Name: "b", Kind: KindRotate, Fn: BlockedRotate, Baseline: true}, ErrDuplicateBaseline},
		{"no name", Variant{Kind: KindRotate, Fn: BlockedRotate}, ErrInvalidVariant},
		{"no func", Variant{Name: "c", Kind: KindRotate}, ErrInvalidVariant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := r.Register(tt.v); !errors.Is(err, tt.want) {
				t.Errorf("Register() = %v, want %v", err, tt.want)
			}
		})
	}

	if _, ok := r.Lookup("a"); !ok {
		t.Error("Lookup(a) failed")
	}
	if _, ok := r.Baseline(KindSmooth); ok {
		t.Error("unexpected smooth baseline")
	}
}
