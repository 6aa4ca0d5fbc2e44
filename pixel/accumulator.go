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

package pixel

// Accumulator sums the channels of a pixel neighbourhood and counts how many
// samples went in. It is a plain value meant to live on the stack of the
// loop computing a single output pixel.
type Accumulator struct {
	Red   int32
	Green int32
	Blue  int32
	Num   int32
}

// Add folds p into the running sums.
func (a *Accumulator) Add(p Pixel) {
	a.Red += int32(p.Red)
	a.Green += int32(p.Green)
	a.Blue += int32(p.Blue)
	a.Num++
}

// Average returns the per-channel sums divided by the sample count,
// truncating. Average of an empty accumulator panics with a division by zero.
func (a Accumulator) Average() Pixel {
	return Pixel{
		Red:   uint16(a.Red / a.Num),
		Green: uint16(a.Green / a.Num),
		Blue:  uint16(a.Blue / a.Num),
	}
}
