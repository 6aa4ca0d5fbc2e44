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

// avg returns the averaged pixel around (i, j).
func avg(dim, i, j int, s []pixel.Pixel) pixel.Pixel {
	var sum pixel.Accumulator
	for ii := pixel.Clamp(i-1, dim); ii <= pixel.Clamp(i+1, dim); ii++ {
		for jj := pixel.Clamp(j-1, dim); jj <= pixel.Clamp(j+1, dim); jj++ {
			sum.Add(s[pixel.Index(ii, jj, dim)])
		}
	}
	return sum.Average()
}

// NaiveSmooth is the baseline smooth: column-outer, one avg call per pixel.
func NaiveSmooth(dim int, src, dst *pixel.Buffer) {
	mustValid("NaiveSmooth", dim, src, dst)
	s, d := src.Pixels(), dst.Pixels()

	for j := 0; j < dim; j++ {
		for i := 0; i < dim; i++ {
			d[pixel.Index(i, j, dim)] = avg(dim, i, j, s)
		}
	}
}

// InlinedSmooth walks the destination row-major and accumulates the
// neighbourhood in locals instead of calling avg.
func InlinedSmooth(dim int, src, dst *pixel.Buffer) {
	mustValid("InlinedSmooth", dim, src, dst)
	smoothRows(dim, src.Pixels(), dst.Pixels(), 0, dim)
}

// ParallelSmooth smooths contiguous row ranges on pool.
func ParallelSmooth(pool *workerpool.Pool, dim int, src, dst *pixel.Buffer) {
	mustValid("ParallelSmooth", dim, src, dst)
	s, d := src.Pixels(), dst.Pixels()

	pool.ParallelFor(dim, func(start, end int) {
		smoothRows(dim, s, d, start, end)
	})
}

// smoothRows writes destination rows [rowStart, rowEnd).
func smoothRows(dim int, s, d []pixel.Pixel, rowStart, rowEnd int) {
	last := dim - 1

	for i := rowStart; i < rowEnd; i++ {
		iLo, iHi := max(i-1, 0), min(i+1, last)
		out := d[i*dim : (i+1)*dim]
		for j := 0; j < dim; j++ {
			jLo, jHi := max(j-1, 0), min(j+1, last)

			var red, green, blue, num int32
			for ii := iLo; ii <= iHi; ii++ {
				row := s[ii*dim : (ii+1)*dim]
				for jj := jLo; jj <= jHi; jj++ {
					p := row[jj]
					red += int32(p.Red)
					green += int32(p.Green)
					blue += int32(p.Blue)
					num++
				}
			}
			out[j] = pixel.Pixel{
				Red:   uint16(red / num),
				Green: uint16(green / num),
				Blue:  uint16(blue / num),
			}
		}
	}
}
