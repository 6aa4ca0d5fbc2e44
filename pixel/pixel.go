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

// Package pixel provides the square RGB pixel buffer the kernels operate on.
//
// A Buffer stores dim*dim pixels in a single flat slice, row-major. Pixel
// (row, col) lives at Index(row, col, dim). There is no row padding: the
// kernels address the slice directly and rely on the layout being dense.
//
// Example usage:
//
//	src := pixel.Random(256, 42)
//	dst := pixel.NewBuffer(256)
//	kernels.BlockedRotate(256, src, dst)
package pixel

import (
	"fmt"
	"math/rand/v2"
)

// Pixel is a single RGB sample with 16-bit unsigned channels.
type Pixel struct {
	Red   uint16
	Green uint16
	Blue  uint16
}

// String formats the pixel as [r,g,b].
func (p Pixel) String() string {
	return fmt.Sprintf("[%d,%d,%d]", p.Red, p.Green, p.Blue)
}

// Gray returns a pixel with all three channels set to v.
func Gray(v uint16) Pixel {
	return Pixel{Red: v, Green: v, Blue: v}
}

// Index maps (row, col) to a flat offset in a row-major buffer of side dim.
func Index(row, col, dim int) int {
	return row*dim + col
}

// Buffer is a square, row-major grid of pixels.
type Buffer struct {
	pix []Pixel
	dim int
}

// NewBuffer allocates a zeroed buffer of side dim.
// A non-positive dim yields an empty buffer.
func NewBuffer(dim int) *Buffer {
	if dim <= 0 {
		return &Buffer{}
	}
	return &Buffer{
		pix: make([]Pixel, dim*dim),
		dim: dim,
	}
}

// FromPixels wraps pix as a buffer of side dim.
// It returns an error if len(pix) != dim*dim.
func FromPixels(dim int, pix []Pixel) (*Buffer, error) {
	if dim <= 0 || len(pix) != dim*dim {
		return nil, fmt.Errorf("pixel: %d pixels do not form a %dx%d buffer", len(pix), dim, dim)
	}
	return &Buffer{pix: pix, dim: dim}, nil
}

// Dim returns the side length.
func (b *Buffer) Dim() int {
	return b.dim
}

// Len returns the number of pixels (dim*dim).
func (b *Buffer) Len() int {
	return len(b.pix)
}

// Pixels returns the backing slice. Writes through it modify the buffer.
func (b *Buffer) Pixels() []Pixel {
	return b.pix
}

// Row returns the pixels of row i, or nil if i is out of range.
func (b *Buffer) Row(i int) []Pixel {
	if i < 0 || i >= b.dim {
		return nil
	}
	start := i * b.dim
	return b.pix[start : start+b.dim]
}

// At returns the pixel at (row, col). Out-of-range coordinates return the
// zero pixel.
func (b *Buffer) At(row, col int) Pixel {
	if row < 0 || row >= b.dim || col < 0 || col >= b.dim {
		return Pixel{}
	}
	return b.pix[Index(row, col, b.dim)]
}

// Set writes the pixel at (row, col). Out-of-range coordinates are ignored.
func (b *Buffer) Set(row, col int, p Pixel) {
	if row < 0 || row >= b.dim || col < 0 || col >= b.dim {
		return
	}
	b.pix[Index(row, col, b.dim)] = p
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{
		pix: make([]Pixel, len(b.pix)),
		dim: b.dim,
	}
	copy(c.pix, b.pix)
	return c
}

// Fill sets every pixel to p.
func (b *Buffer) Fill(p Pixel) {
	for i := range b.pix {
		b.pix[i] = p
	}
}

// Clear sets every pixel to zero.
func (b *Buffer) Clear() {
	clear(b.pix)
}

// FillRandom overwrites every pixel with channels drawn from rng.
func (b *Buffer) FillRandom(rng *rand.Rand) {
	for i := range b.pix {
		v := rng.Uint64()
		b.pix[i] = Pixel{
			Red:   uint16(v),
			Green: uint16(v >> 16),
			Blue:  uint16(v >> 32),
		}
	}
}

// Random returns a buffer of side dim filled from a PCG source seeded with
// seed. The same (dim, seed) pair always yields the same content.
func Random(dim int, seed uint64) *Buffer {
	b := NewBuffer(dim)
	b.FillRandom(rand.New(rand.NewPCG(seed, uint64(dim))))
	return b
}

// Equal reports whether both buffers have the same side and content.
func (b *Buffer) Equal(other *Buffer) bool {
	_, _, ok := b.FirstDiff(other)
	return ok
}

// FirstDiff returns the first (row, col) at which the buffers differ, in
// row-major order. ok is true when the buffers are identical. Buffers of
// different sides differ at (0, 0).
func (b *Buffer) FirstDiff(other *Buffer) (row, col int, ok bool) {
	if b.dim != other.dim || len(b.pix) != len(other.pix) {
		return 0, 0, false
	}
	for i := range b.pix {
		if b.pix[i] != other.pix[i] {
			return i / b.dim, i % b.dim, false
		}
	}
	return 0, 0, true
}

// SameSize reports whether both buffers have the same side.
func SameSize(a, b *Buffer) bool {
	return a.dim == b.dim
}

// Clamp returns index clamped to [0, size-1].
func Clamp(index, size int) int {
	if index < 0 {
		return 0
	}
	if index >= size {
		return size - 1
	}
	return index
}
