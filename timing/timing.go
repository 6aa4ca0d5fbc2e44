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

// Package timing samples the two clocks the kernel benchmarks report: user
// CPU time of the process and a hardware cycle counter.
//
// The cycle counter is RDTSC on amd64 and CNTVCT_EL0 on arm64. Other
// architectures, and builds with the noasm tag, count monotonic nanoseconds
// instead; CounterName tells which one is in use. User CPU time comes from
// getrusage(RUSAGE_SELF) on unix systems.
//
// Failing to read user CPU time is the one unrecoverable condition in a
// benchmark run: MustMeasure logs it and terminates the process through
// Exit.
package timing

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// Exit terminates the process after a fatal timing failure.
// Tests replace it to observe the failure.
var Exit = os.Exit

// userClock is UserTime, swapped out in tests.
var userClock = UserTime

// Sample is the cost of one measured call.
type Sample struct {
	UserMicros int64
	Cycles     uint64
	Wall       time.Duration
}

// Min returns the per-field minimum of s and o.
func (s Sample) Min(o Sample) Sample {
	return Sample{
		UserMicros: min(s.UserMicros, o.UserMicros),
		Cycles:     min(s.Cycles, o.Cycles),
		Wall:       min(s.Wall, o.Wall),
	}
}

// Measure runs fn between two readings of both clocks.
func Measure(fn func()) (Sample, error) {
	userStart, err := userClock()
	if err != nil {
		return Sample{}, fmt.Errorf("timing: start: %w", err)
	}
	wallStart := time.Now()
	cycleStart := Cycles()

	fn()

	cycleEnd := Cycles()
	wall := time.Since(wallStart)
	userEnd, err := userClock()
	if err != nil {
		return Sample{}, fmt.Errorf("timing: stop: %w", err)
	}

	return Sample{
		UserMicros: (userEnd - userStart).Microseconds(),
		Cycles:     cycleEnd - cycleStart,
		Wall:       wall,
	}, nil
}

// MustMeasure is like Measure but treats a clock failure as fatal: the error
// is logged with the caller-supplied context and Exit(1) is called.
func MustMeasure(log *zap.Logger, what string, fn func()) Sample {
	s, err := Measure(fn)
	if err != nil {
		if log == nil {
			log = zap.NewNop()
		}
		log.Error("could not read process user time",
			zap.String("measuring", what),
			zap.String("counter", CounterName()),
			zap.Error(err))
		_ = log.Sync()
		Exit(1)
	}
	return s
}
