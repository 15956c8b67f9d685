/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package cli implements the quotecard command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"quotecard/internal/config"
	applog "quotecard/internal/log"
	"quotecard/internal/version"
)

// CLI holds shared state for all commands.
type CLI struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	configPath string
	verbose    bool
}

// New creates a CLI bound to the given streams. Nil streams fall back to the
// process stdin, stdout and stderr.
func New(in io.Reader, out, errOut io.Writer) *CLI {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &CLI{In: in, Out: out, Err: errOut}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "quotecard",
		Short:         "quotecard overlays quotes on a batch of images",
		Long:          `quotecard renders every quote onto every image of an input folder, wrapping the text to the image width and coloring words from a gradient scheme.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(c.In)
	root.SetOut(c.Out)
	root.SetErr(c.Err)
	root.SetVersionTemplate("quotecard {{.Version}}\n")

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "job file (default ./"+config.DefaultPath+" when present)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.promptCommand())
	root.AddCommand(c.schemesCommand())
	root.AddCommand(c.fontsCommand())
	root.AddCommand(c.versionCommand())
	return root
}

// loadJob reads the job file and environment, then installs the job's logging setup.
func (c *CLI) loadJob() (config.Job, error) {
	job, err := config.Load(c.configPath)
	if err != nil {
		return config.Job{}, err
	}
	c.initLogging(job)
	return job, nil
}

func (c *CLI) initLogging(job config.Job) {
	lvl := job.Logging.Level
	if c.verbose {
		lvl = "debug"
	}
	applog.Init(applog.Options{
		Level:     lvl,
		Format:    job.Logging.Format,
		AddSource: job.Logging.Source,
		File:      job.Logging.File,
		Writer:    c.Err,
	})
}
