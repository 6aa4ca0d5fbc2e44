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

//go:build (!amd64 && !arm64) || noasm

package timing

import "time"

var epoch = time.Now()

// Cycles returns monotonic nanoseconds since package initialisation. No
// hardware counter is read on this build.
func Cycles() uint64 {
	return uint64(time.Since(epoch))
}

// CounterName names the source behind Cycles.
func CounterName() string {
	return "monotonic"
}
