/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"quotecard/internal/batch"
	"quotecard/internal/config"
	"quotecard/internal/palette"
	"quotecard/internal/textlayout"
)

func (c *CLI) promptCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Ask for quotes, scheme, placement, font and size, then render",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			job, err := c.loadJob()
			if err != nil {
				return err
			}
			job, err = promptJob(c.In, c.Out, job)
			if err != nil {
				return err
			}
			return c.runJob(cmd, job)
		},
	}
}

// prompter reads one answer per line.
type prompter struct {
	sc  *bufio.Scanner
	out io.Writer
}

func (p *prompter) line() (string, bool) {
	if !p.sc.Scan() {
		return "", false
	}
	return p.sc.Text(), true
}

func (p *prompter) number(question string) (int, error) {
	_, _ = fmt.Fprint(p.out, question)
	s, ok := p.line()
	if !ok {
		if err := p.sc.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("read answer: %w", io.ErrUnexpectedEOF)
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", palette.ErrInvalidChoice, strings.TrimSpace(s))
	}
	return n, nil
}

// promptJob walks through the interactive questions and returns job with the
// answers filled in. Quote entry ends with "done" or end of input.
func promptJob(in io.Reader, out io.Writer, job config.Job) (config.Job, error) {
	p := &prompter{sc: bufio.NewScanner(in), out: out}

	printTitle(out, "Enter the quotes (type 'done' when finished):")
	var quotes []string
	for {
		s, ok := p.line()
		if !ok || strings.EqualFold(strings.TrimSpace(s), "done") {
			break
		}
		if q := textlayout.Sanitize(s); q != "" {
			quotes = append(quotes, q)
		}
	}
	if len(quotes) == 0 {
		return job, fmt.Errorf("%w: no valid quotes provided", batch.ErrNoInputFound)
	}
	job.Quotes = quotes
	job.QuotesFile = ""

	printTitle(out, "Select a color scheme:")
	for _, s := range palette.Schemes() {
		g, _ := palette.Scheme(s.ID)
		printMenuItem(out, s.ID, s.Name, swatch(g))
	}
	scheme, err := p.number("Enter the number of your choice: ")
	if err != nil {
		return job, err
	}
	if _, err := palette.Scheme(scheme); err != nil {
		return job, err
	}
	job.Scheme = scheme

	printTitle(out, "Select text placement:")
	for _, pl := range []textlayout.Placement{textlayout.Top, textlayout.Middle, textlayout.Bottom} {
		printMenuItem(out, int(pl), strings.ToUpper(pl.String()[:1])+pl.String()[1:])
	}
	placement, err := p.number("Enter the number of your choice: ")
	if err != nil {
		return job, err
	}
	job.Placement = textlayout.ParsePlacement(strconv.Itoa(placement)).String()

	fonts, err := fontChoices(job.FontsDir)
	if err != nil {
		return job, err
	}
	printTitle(out, "Select a font:")
	for i, f := range fonts {
		printMenuItem(out, i, fontLabel(f))
	}
	choice, err := p.number("Enter the number of your choice: ")
	if err != nil {
		return job, err
	}
	if choice < 0 || choice >= len(fonts) {
		return job, fmt.Errorf("%w: %d", batch.ErrInvalidFontChoice, choice)
	}
	job.Font = fonts[choice]

	size, err := p.number("Enter the font size (e.g., 40): ")
	if err != nil {
		return job, err
	}
	job.FontSize = size
	return job, nil
}

// fontChoices lists the fonts folder followed by the builtin faces.
func fontChoices(dir string) ([]string, error) {
	files, err := batch.ListFonts(dir)
	if err != nil && !errors.Is(err, batch.ErrNoFontFound) {
		return nil, err
	}
	return append(files, textlayout.BuiltinNames()...), nil
}

func fontLabel(ref string) string {
	if textlayout.IsBuiltin(ref) {
		return ref
	}
	return filepath.Base(ref)
}
