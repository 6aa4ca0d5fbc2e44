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

// Command perflab benchmarks and checks the rotate and smooth kernels.
//
// Usage:
//
//	perflab run                         # all variants at the default sizes
//	perflab run --rotate-dims 64,1024 --variants blocked_rotate
//	perflab check                       # correctness only, no timing
//	perflab cpuinfo                     # CPU features and cycle counter
//	perflab team
//
// Settings can also come from .perflab.yaml or PERFLAB_* environment
// variables; flags win.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
