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

// Package report renders benchmark reports and ships results to external
// sinks.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ajroetker/go-perflab/bench"
)

// WriteTable writes r as one aligned table per variant, followed by the
// per-variant mean speedups. Integers are printed with digit grouping.
func WriteTable(w io.Writer, r *bench.Report) error {
	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	p.Fprintf(tw, "Team: %s\n", r.Team.Name)
	for _, m := range r.Team.Members() {
		p.Fprintf(tw, "Member: %s\n", m)
	}
	p.Fprintf(tw, "Counter: %s\n\n", r.Counter)

	for _, s := range r.Summaries {
		p.Fprintf(tw, "%s: %s\n", s.Variant, s.Description)
		p.Fprintf(tw, "Dim\tUser (us)\tCycles\tCPE\tSpeedup\tStatus\t\n")
		for _, res := range s.Results {
			status := "ok"
			if !res.OK() {
				status = "WRONG"
			}
			p.Fprintf(tw, "%d\t%d\t%d\t%.2f\t%.2f\t%s\t\n",
				res.Dim, res.UserMicros, res.Cycles, res.CPE, res.Speedup, status)
		}
		p.Fprintf(tw, "\n")
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	var b strings.Builder
	for _, s := range r.Summaries {
		p.Fprintf(&b, "%-20s %-6s mean speedup %.2f\n", s.Variant, s.Kind, s.MeanSpeedup)
	}
	for _, f := range r.Failed() {
		p.Fprintf(&b, "FAILED %v\n", f.Err)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
