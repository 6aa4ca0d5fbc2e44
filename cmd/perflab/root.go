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
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ajroetker/go-perflab/config"
)

const version = "0.1.0"

// app is the state shared by all subcommands.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "perflab",
		Short: "Benchmark naive and optimized image kernels",
		Long: `perflab runs the rotate and smooth kernels over square RGB buffers,
checks every optimized variant against its naive baseline and reports
cycles per element and speedup.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetVersionTemplate(fmt.Sprintf("perflab version %s\n", version))

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is .perflab.yaml in . or $HOME)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.IntSlice("rotate-dims", config.Default().RotateDims, "buffer sides for rotate")
	flags.IntSlice("smooth-dims", config.Default().SmoothDims, "buffer sides for smooth")
	flags.Uint64("seed", config.Default().Seed, "seed for the random source buffers")
	flags.StringSlice("variants", nil, "only run these variants (baselines always run)")
	flags.Int("block-size", config.Default().BlockSize, "extra blocked_rotate tile side to try")
	flags.Int("workers", config.Default().Workers, "workers for parallel variants (0 = GOMAXPROCS, -1 = none)")
	flags.String("redis-addr", "", "publish results to this Redis server")
	flags.String("redis-stream", config.Default().Redis.Stream, "Redis stream for results")

	for key, flag := range map[string]string{
		"verbose":      "verbose",
		"rotate_dims":  "rotate-dims",
		"smooth_dims":  "smooth-dims",
		"seed":         "seed",
		"variants":     "variants",
		"block_size":   "block-size",
		"workers":      "workers",
		"redis.addr":   "redis-addr",
		"redis.stream": "redis-stream",
	} {
		if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(
		newRunCmd(a),
		newCheckCmd(a),
		newCPUInfoCmd(),
		newTeamCmd(),
	)
	return root
}

func (a *app) init() error {
	home, _ := os.UserHomeDir()
	if err := config.ReadFile(a.v, a.cfgFile, home); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if cfg.Verbose {
		a.log, err = zap.NewDevelopment()
	} else {
		a.log, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debug("using config file", zap.String("path", used))
	}
	return nil
}
