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
	"github.com/ajroetker/go-perflab/pixel"
	"github.com/ajroetker/go-perflab/workerpool"
)

// BlockSize is the default tile side used by BlockedRotate.
// 16 pixels of 6 bytes span 96 bytes, so a tile row stays within two cache
// lines on both the read and the write side.
const BlockSize = 16

// NaiveRotate is the baseline rotate: column-outer, row-inner, recomputing
// the destination index for every pixel.
func NaiveRotate(dim int, src, dst *pixel.Buffer) {
	mustValid("NaiveRotate", dim, src, dst)
	s, d := src.Pixels(), dst.Pixels()

	for j := 0; j < dim; j++ {
		for i := 0; i < dim; i++ {
			d[pixel.Index(dim-1-j, i, dim)] = s[pixel.Index(i, j, dim)]
		}
	}
}

// BlockedRotate rotates in BlockSize x BlockSize tiles.
func BlockedRotate(dim int, src, dst *pixel.Buffer) {
	mustValid("BlockedRotate", dim, src, dst)
	rotateTiles(dim, src.Pixels(), dst.Pixels(), BlockSize, 0, dim)
}

// BlockedRotateN is BlockedRotate with a caller-chosen tile side.
// block <= 0 selects BlockSize.
func BlockedRotateN(dim int, src, dst *pixel.Buffer, block int) {
	mustValid("BlockedRotateN", dim, src, dst)
	if block <= 0 {
		block = BlockSize
	}
	rotateTiles(dim, src.Pixels(), dst.Pixels(), block, 0, dim)
}

// ParallelRotate splits the source columns into tile-wide strips and
// rotates the strips on pool. Strip j writes only destination rows
// dim-1-j..dim-block-j, so strips never overlap.
func ParallelRotate(pool *workerpool.Pool, dim int, src, dst *pixel.Buffer) {
	mustValid("ParallelRotate", dim, src, dst)
	s, d := src.Pixels(), dst.Pixels()

	pool.ParallelForBatched(dim, BlockSize, func(start, end int) {
		rotateTiles(dim, s, d, BlockSize, start, end)
	})
}

// rotateTiles rotates source columns [colStart, colEnd) tile by tile.
// Edge tiles are truncated at dim, so dim need not be a multiple of block.
func rotateTiles(dim int, s, d []pixel.Pixel, block, colStart, colEnd int) {
	last := dim - 1

	for j := colStart; j < colEnd; j += block {
		jEnd := min(j+block, colEnd)
		for i := 0; i < dim; i += block {
			iEnd := min(i+block, dim)
			for jj := j; jj < jEnd; jj++ {
				out := d[(last-jj)*dim : (last-jj+1)*dim]
				for ii := i; ii < iEnd; ii++ {
					out[ii] = s[ii*dim+jj]
				}
			}
		}
	}
}
