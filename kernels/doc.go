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

// Package kernels implements the rotate and smooth pixel transforms in a
// naive form and in hand-optimized forms.
//
// Every transform has the shape
//
//	func(dim int, src, dst *pixel.Buffer)
//
// It reads the dim x dim source and overwrites every cell of the destination
// exactly once. The source is never written. Optimized variants are required
// to produce output bit-identical to the naive baseline of the same kind.
//
// # Rotate
//
// Pixel (i, j) of the source lands at (dim-1-j, i) of the destination.
//
//	NaiveRotate(dim, src, dst)   // column-outer baseline
//	BlockedRotate(dim, src, dst) // BlockSize x BlockSize tiles, dim-1 hoisted
//
// # Smooth
//
// Each destination pixel is the truncated average of the 3x3 neighbourhood
// around it, clipped to the buffer: 4 samples at corners, 6 along edges, 9
// in the interior.
//
//	NaiveSmooth(dim, src, dst)   // one avg helper call per pixel
//	InlinedSmooth(dim, src, dst) // row-major, accumulation inlined
//
// # Preconditions
//
// dim must be at least 1, both buffers must hold dim*dim pixels and they must
// not share storage. Violations are programming errors and panic.
package kernels
