package kernels

import (
	"fmt"
	"testing"

	"github.com/ajroetker/go-perflab/pixel"
	"github.com/ajroetker/go-perflab/workerpool"
)

// testDims covers tiny buffers, exact multiples of BlockSize and the sizes
// just around them.
var testDims = []int{1, 2, 3, 7, 15, 16, 17, 31, 32, 33, 64, 100}

func rotateVariants(pool *workerpool.Pool) map[string]Func {
	return map[string]Func{
		"naive":   NaiveRotate,
		"blocked": BlockedRotate,
		"blocked5": func(dim int, src, dst *pixel.Buffer) {
			BlockedRotateN(dim, src, dst, 5)
		},
		"parallel": func(dim int, src, dst *pixel.Buffer) {
			ParallelRotate(pool, dim, src, dst)
		},
	}
}

func TestRotate_Mapping(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	for name, rotate := range rotateVariants(pool) {
		for _, dim := range testDims {
			t.Run(fmt.Sprintf("%s/%d", name, dim), func(t *testing.T) {
				src := pixel.Random(dim, 1)
				dst := pixel.NewBuffer(dim)
				rotate(dim, src, dst)

				for i := range dim {
					for j := range dim {
						if got, want := dst.At(dim-1-j, i), src.At(i, j); got != want {
							t.Fatalf("dst(%d,%d) = %v, want src(%d,%d) = %v", dim-1-j, i, got, i, j, want)
						}
					}
				}
			})
		}
	}
}

func TestRotate_FourTimesIsIdentity(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	for name, rotate := range rotateVariants(pool) {
		for _, dim := range testDims {
			orig := pixel.Random(dim, uint64(dim))
			a := orig.Clone()
			b := pixel.NewBuffer(dim)
			for range 4 {
				rotate(dim, a, b)
				a, b = b, a
			}
			if row, col, ok := orig.FirstDiff(a); !ok {
				t.Errorf("%s dim=%d: four rotations differ at (%d,%d)", name, dim, row, col)
			}
		}
	}
}

func TestRotate_MatchesNaive(t *testing.T) {
	pool := workerpool.New(3)
	defer pool.Close()

	for _, dim := range []int{17, 48, 65, 127, 256} {
		for seed := range uint64(3) {
			src := pixel.Random(dim, seed)
			want := pixel.NewBuffer(dim)
			NaiveRotate(dim, src, want)

			for name, rotate := range rotateVariants(pool) {
				got := pixel.NewBuffer(dim)
				rotate(dim, src, got)
				if row, col, ok := got.FirstDiff(want); !ok {
					t.Errorf("%s dim=%d seed=%d: differs from naive at (%d,%d)", name, dim, seed, row, col)
				}
			}
		}
	}
}

func TestRotate_TwoByTwo(t *testing.T) {
	a, b := pixel.Gray(1), pixel.Gray(2)
	c, d := pixel.Gray(3), pixel.Gray(4)
	src, err := pixel.FromPixels(2, []pixel.Pixel{a, b, c, d})
	if err != nil {
		t.Fatal(err)
	}

	// (i,j) -> (1-j, i): the top row becomes the left column, bottom up.
	want := []pixel.Pixel{b, d, a, c}

	for _, rotate := range []Func{NaiveRotate, BlockedRotate} {
		dst := pixel.NewBuffer(2)
		rotate(2, src, dst)
		for k, p := range dst.Pixels() {
			if p != want[k] {
				t.Errorf("dst[%d] = %v, want %v", k, p, want[k])
			}
		}
	}
}

func TestRotate_SourceUnchanged(t *testing.T) {
	src := pixel.Random(33, 9)
	orig := src.Clone()
	BlockedRotate(33, src, pixel.NewBuffer(33))
	if !src.Equal(orig) {
		t.Error("BlockedRotate modified its source")
	}
}

func TestRotate_Preconditions(t *testing.T) {
	buf := pixel.NewBuffer(4)
	tests := []struct {
		name string
		fn   func()
	}{
		{"zero dim", func() { NaiveRotate(0, buf, pixel.NewBuffer(4)) }},
		{"negative dim", func() { BlockedRotate(-1, buf, pixel.NewBuffer(4)) }},
		{"undersized dst", func() { BlockedRotate(4, buf, pixel.NewBuffer(3)) }},
		{"aliased", func() { NaiveRotate(4, buf, buf) }},
		{"nil src", func() { NaiveRotate(4, nil, buf) }},
		{"overlapping", func() {
			backing := make([]pixel.Pixel, 17)
			src, _ := pixel.FromPixels(4, backing[:16])
			dst, _ := pixel.FromPixels(4, backing[1:17])
			BlockedRotate(4, src, dst)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestRotate_AdjacentBuffersAccepted(t *testing.T) {
	backing := make([]pixel.Pixel, 32)
	src, _ := pixel.FromPixels(4, backing[:16])
	dst, _ := pixel.FromPixels(4, backing[16:])
	src.Set(0, 0, pixel.Gray(5))

	BlockedRotate(4, src, dst)
	if got := dst.At(3, 0); got != pixel.Gray(5) {
		t.Errorf("dst(3,0) = %v, want %v", got, pixel.Gray(5))
	}
}
