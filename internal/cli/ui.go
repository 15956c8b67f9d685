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
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quotecard/internal/palette"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorWhite = lipgloss.Color("255")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
)

func printTitle(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, styleTitle.Render(title))
}

// printMenuItem prints "n: label", the form every interactive menu uses.
func printMenuItem(w io.Writer, n int, label string, extra ...string) {
	line := styleNumber.Render(fmt.Sprintf("%d", n)) + ": " + styleValue.Render(label)
	if len(extra) > 0 {
		line += " " + strings.Join(extra, " ")
	}
	_, _ = fmt.Fprintln(w, line)
}

func printSuccess(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, styleSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printFailure(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, styleError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printDetail(w io.Writer, label, value string) {
	_, _ = fmt.Fprintf(w, "  %s %s\n", styleDim.Render(label+":"), styleValue.Render(value))
}

// swatch renders the colors of g as colored blocks followed by their hex codes.
// Terminals without color support only get the hex codes.
func swatch(g palette.Gradient) string {
	var b strings.Builder
	for _, c := range g {
		b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("  "))
	}
	return b.String() + " " + styleDim.Render(strings.Join(g.Hex(), " "))
}
