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
	"fmt"
	"unsafe"

	"github.com/ajroetker/go-perflab/pixel"
)

// mustValid panics unless src and dst can hold a dim x dim transform and
// their first dim*dim pixels do not overlap in memory.
func mustValid(name string, dim int, src, dst *pixel.Buffer) {
	if dim < 1 {
		panic(fmt.Sprintf("kernels: %s: dim must be >= 1, got %d", name, dim))
	}
	if src == nil || dst == nil {
		panic(fmt.Sprintf("kernels: %s: nil buffer", name))
	}
	n := dim * dim
	if src.Len() < n || dst.Len() < n {
		panic(fmt.Sprintf("kernels: %s: need %d pixels, have src=%d dst=%d", name, n, src.Len(), dst.Len()))
	}
	if overlap(src.Pixels()[:n], dst.Pixels()[:n]) {
		panic(fmt.Sprintf("kernels: %s: src and dst share storage", name))
	}
}

// overlap reports whether a and b cover any common memory.
func overlap(a, b []pixel.Pixel) bool {
	size := unsafe.Sizeof(pixel.Pixel{})
	aLo := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	bLo := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	aHi := aLo + uintptr(len(a))*size
	bHi := bLo + uintptr(len(b))*size
	return aLo < bHi && bLo < aHi
}
