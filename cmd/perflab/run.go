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
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajroetker/go-perflab/bench"
	"github.com/ajroetker/go-perflab/config"
	"github.com/ajroetker/go-perflab/report"
	"github.com/ajroetker/go-perflab/workerpool"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Time every variant and print CPE and speedup",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, false)
		},
	}
	cmd.Flags().Int("repeats", config.Default().Repeats, "runs per variant and size; the fastest is kept")
	if err := a.v.BindPFlag("repeats", cmd.Flags().Lookup("repeats")); err != nil {
		panic(err)
	}
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify every variant against its baseline without timing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, true)
		},
	}
}

func (a *app) run(cmd *cobra.Command, quiet bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var pool *workerpool.Pool
	if a.cfg.Workers >= 0 {
		pool = workerpool.New(a.cfg.Workers)
		defer pool.Close()
	}

	h := &bench.Harness{
		Registry: bench.NewRegistry(a.cfg, pool),
		Config:   a.cfg,
		Logger:   a.log,
		Quiet:    quiet,
	}

	if a.cfg.Redis.Addr != "" && !quiet {
		sink, err := report.NewRedisSink(ctx, a.cfg.Redis.Addr, a.cfg.Redis.Stream)
		if err != nil {
			return err
		}
		defer sink.Close()
		h.Sinks = append(h.Sinks, sink)
		a.log.Info("publishing results",
			zap.String("addr", a.cfg.Redis.Addr),
			zap.String("stream", a.cfg.Redis.Stream))
	}

	a.log.Info("starting",
		zap.Bool("check_only", quiet),
		zap.Ints("rotate_dims", a.cfg.RotateDims),
		zap.Ints("smooth_dims", a.cfg.SmoothDims),
		zap.Int("repeats", a.cfg.Repeats))

	rep, err := h.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	out := cmd.OutOrStdout()
	if quiet {
		for _, s := range rep.Summaries {
			fmt.Fprintf(out, "%-20s %d sizes\n", s.Variant, len(s.Results))
		}
		for _, f := range rep.Failed() {
			fmt.Fprintf(out, "FAILED %v\n", f.Err)
		}
	} else if werr := report.WriteTable(out, rep); werr != nil {
		return werr
	}

	if err != nil {
		return err
	}
	if n := len(rep.Failed()); n > 0 {
		return fmt.Errorf("%d results differ from their baseline", n)
	}
	return nil
}
