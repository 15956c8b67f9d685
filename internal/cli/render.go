/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"quotecard/internal/batch"
	"quotecard/internal/config"
	"quotecard/internal/crash"
)

type renderFlags struct {
	input, output, fonts string
	font                 string
	size, scheme         int
	placement            string
	quotes               []string
	quotesFile           string
	workers              int
	continueOnError      bool
	format               string
}

func (c *CLI) renderCommand() *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render every quote onto every image of the input folder",
		Example: `  quotecard render --quote "Stay hungry, stay foolish" --scheme 1 --placement middle
  quotecard render -c job.yaml --workers 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			job, err := c.loadJob()
			if err != nil {
				return err
			}
			f.apply(cmd, &job)
			return c.runJob(cmd, job)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.input, "input", "", "input image folder")
	fl.StringVar(&f.output, "output", "", "output folder")
	fl.StringVar(&f.fonts, "fonts", "", "fonts folder")
	fl.StringVar(&f.font, "font", "", "font path, file name in the fonts folder, or builtin:<name>")
	fl.IntVar(&f.size, "size", 0, "font size in points")
	fl.IntVar(&f.scheme, "scheme", 0, "color scheme 1-10 (see 'quotecard schemes')")
	fl.StringVar(&f.placement, "placement", "", "top, middle or bottom")
	fl.StringArrayVarP(&f.quotes, "quote", "q", nil, "quote text (repeatable)")
	fl.StringVar(&f.quotesFile, "quotes-file", "", "file with one quote per line")
	fl.IntVar(&f.workers, "workers", 0, "number of pairs rendered in parallel")
	fl.BoolVar(&f.continueOnError, "continue-on-error", false, "keep going when a pair fails")
	fl.StringVar(&f.format, "format", "", "output format: jpg or png")
	return cmd
}

// apply copies the flags the user actually set onto job.
func (f *renderFlags) apply(cmd *cobra.Command, job *config.Job) {
	fl := cmd.Flags()
	if fl.Changed("input") {
		job.InputDir = f.input
	}
	if fl.Changed("output") {
		job.OutputDir = f.output
	}
	if fl.Changed("fonts") {
		job.FontsDir = f.fonts
	}
	if fl.Changed("font") {
		job.Font = f.font
	}
	if fl.Changed("size") {
		job.FontSize = f.size
	}
	if fl.Changed("scheme") {
		job.Scheme = f.scheme
	}
	if fl.Changed("placement") {
		job.Placement = f.placement
	}
	if fl.Changed("quote") {
		job.Quotes = append([]string(nil), f.quotes...)
	}
	if fl.Changed("quotes-file") {
		job.QuotesFile = f.quotesFile
	}
	if fl.Changed("workers") {
		job.Batch.Workers = f.workers
	}
	if fl.Changed("continue-on-error") {
		job.Batch.ContinueOnError = f.continueOnError
	}
	if fl.Changed("format") {
		job.Output.Format = f.format
	}
}

// runJob validates job, runs the batch and prints a summary.
func (c *CLI) runJob(cmd *cobra.Command, job config.Job) error {
	if err := job.Prepare(); err != nil {
		return err
	}
	defer crash.Recover(job.OutputDir)

	rep, err := batch.Run(cmd.Context(), job)
	printReport(c.Out, rep)
	return err
}

func printReport(w io.Writer, rep batch.Report) {
	for _, p := range rep.Written {
		printSuccess(w, "Image saved as %s", p)
	}
	for _, pe := range rep.Failed {
		printFailure(w, "%s", pe.Error())
	}
	if rep.Pairs == 0 {
		return
	}
	printDetail(w, "font", filepath.Base(rep.Font))
	printDetail(w, "written", fmt.Sprintf("%d of %d", len(rep.Written), rep.Pairs))
	if rep.Skipped > 0 {
		printDetail(w, "skipped", fmt.Sprintf("%d", rep.Skipped))
	}
	printDetail(w, "took", rep.Duration.Round(time.Millisecond).String())
}
