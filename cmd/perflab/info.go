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

package main

import (
	"fmt"
	"io"
	"runtime"
	"unsafe"

	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-perflab/config"
	"github.com/ajroetker/go-perflab/kernels"
	"github.com/ajroetker/go-perflab/pixel"
	"github.com/ajroetker/go-perflab/timing"
)

func newCPUInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cpuinfo",
		Short: "Print the CPU features and clocks perflab sees",
		Run: func(cmd *cobra.Command, args []string) {
			printCPUInfo(cmd.OutOrStdout())
		},
	}
}

func printCPUInfo(w io.Writer) {
	fmt.Fprintf(w, "GOOS: %s\n", runtime.GOOS)
	fmt.Fprintf(w, "GOARCH: %s\n", runtime.GOARCH)
	fmt.Fprintf(w, "NumCPU: %d\n", runtime.NumCPU())
	fmt.Fprintf(w, "GOMAXPROCS: %d\n", runtime.GOMAXPROCS(0))
	fmt.Fprintln(w)

	lineSize := int(unsafe.Sizeof(cpu.CacheLinePad{}))
	pixelSize := int(unsafe.Sizeof(pixel.Pixel{}))
	fmt.Fprintf(w, "Cycle counter:   %s\n", timing.CounterName())
	fmt.Fprintf(w, "Cache line:      %d bytes\n", lineSize)
	fmt.Fprintf(w, "Pixel:           %d bytes (%d per cache line)\n", pixelSize, lineSize/pixelSize)
	fmt.Fprintf(w, "Rotate tile:     %dx%d (%d bytes per tile row)\n", kernels.BlockSize, kernels.BlockSize, kernels.BlockSize*pixelSize)
	fmt.Fprintln(w)

	switch runtime.GOARCH {
	case "amd64":
		fmt.Fprintln(w, "=== golang.org/x/sys/cpu.X86 ===")
		fmt.Fprintf(w, "  HasSSE2:    %v\n", cpu.X86.HasSSE2)
		fmt.Fprintf(w, "  HasSSE41:   %v\n", cpu.X86.HasSSE41)
		fmt.Fprintf(w, "  HasAVX:     %v\n", cpu.X86.HasAVX)
		fmt.Fprintf(w, "  HasAVX2:    %v\n", cpu.X86.HasAVX2)
		fmt.Fprintf(w, "  HasAVX512F: %v\n", cpu.X86.HasAVX512F)
		fmt.Fprintf(w, "  HasERMS:    %v\n", cpu.X86.HasERMS)
	case "arm64":
		fmt.Fprintln(w, "=== golang.org/x/sys/cpu.ARM64 ===")
		fmt.Fprintf(w, "  HasASIMD:   %v (NEON baseline)\n", cpu.ARM64.HasASIMD)
		fmt.Fprintf(w, "  HasSVE:     %v\n", cpu.ARM64.HasSVE)
		fmt.Fprintf(w, "  HasATOMICS: %v\n", cpu.ARM64.HasATOMICS)
	}
}

func newTeamCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "team",
		Short: "Print the team credited with the optimized kernels",
		Run: func(cmd *cobra.Command, args []string) {
			team := config.Team()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Team: %s\n", team.Name)
			for _, m := range team.Members() {
				fmt.Fprintf(out, "Member: %s\n", m)
			}
		},
	}
}
