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

//go:build (amd64 || arm64) && !noasm

package timing

import "runtime"

// readCycles reads the hardware counter. Implemented in cycles_$GOARCH.s.
func readCycles() uint64

// Cycles returns the current value of the hardware cycle counter.
func Cycles() uint64 {
	return readCycles()
}

// CounterName names the source behind Cycles.
func CounterName() string {
	if runtime.GOARCH == "arm64" {
		return "cntvct_el0"
	}
	return "rdtsc"
}
