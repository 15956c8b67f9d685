/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

// Layout turns wrapped lines into absolute word positions and colors. It does
// not touch pixels; render.Paint draws the result.

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"quotecard/internal/palette"
)

var (
	// ErrInvalidPlacement is returned for a placement outside Top/Middle/Bottom.
	ErrInvalidPlacement = errors.New("invalid placement option")
	// ErrTextOverflow is returned when the text block does not fit vertically.
	ErrTextOverflow = errors.New("text is too large to fit within the image with the specified margin")
	// ErrEmptyGradient is returned when no colors are available for the words.
	ErrEmptyGradient = errors.New("gradient has no colors")
)

// Spacing constants in pixels.
const (
	TopMargin    = 20
	BottomMargin = 50
	WordGap      = 10
	LineGap      = 10

	// ReferenceGlyphs is measured to derive the line height.
	ReferenceGlyphs = "A"
)

// Placement anchors the text block vertically. Values match the menu ids 1..3.
type Placement int

const (
	Top Placement = iota + 1
	Middle
	Bottom
)

func (p Placement) Valid() bool { return p >= Top && p <= Bottom }

func (p Placement) String() string {
	switch p {
	case Top:
		return "top"
	case Middle:
		return "middle"
	case Bottom:
		return "bottom"
	default:
		return "placement(" + strconv.Itoa(int(p)) + ")"
	}
}

// LookupPlacement resolves "top|middle|bottom" or "1|2|3".
func LookupPlacement(s string) (Placement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "1":
		return Top, nil
	case "middle", "2":
		return Middle, nil
	case "bottom", "3":
		return Bottom, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPlacement, s)
}

// ParsePlacement is LookupPlacement with unrecognized values mapped to Bottom.
func ParsePlacement(s string) Placement {
	p, err := LookupPlacement(s)
	if err != nil {
		return Bottom
	}
	return p
}

// PlacedWord is one word positioned on the canvas. X,Y is the top-left of the
// word box; Line and Index locate the word within the wrapped text.
type PlacedWord struct {
	Text  string
	X, Y  float64
	Width float64
	Color palette.Color
	Line  int
	Index int
}

// Layout is the complete paint plan for one render call.
type Layout struct {
	Lines       []string
	LineHeight  float64
	Gap         float64
	TotalHeight float64
	Top         float64
	Words       []PlacedWord
}

// Bottom returns the y coordinate just below the last line.
func (l Layout) Bottom() float64 { return l.Top + l.TotalHeight }

// BlockHeight is the height of n lines separated by LineGap.
func BlockHeight(lineHeight float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return lineHeight*float64(n) + LineGap*float64(n-1)
}

// StartY computes the top of the text block for placement p.
func StartY(p Placement, imageHeight, totalHeight float64) (float64, error) {
	var y float64
	switch p {
	case Top:
		y = TopMargin
	case Middle:
		y = (imageHeight - totalHeight) / 2
	case Bottom:
		y = imageHeight - totalHeight - BottomMargin
	default:
		return 0, fmt.Errorf("%w: %v", ErrInvalidPlacement, p)
	}
	if y < 0 {
		return y, fmt.Errorf("%w: block height %.0f, image height %.0f", ErrTextOverflow, totalHeight, imageHeight)
	}
	return y, nil
}

// Compute lays out lines on a width x height canvas. Each line is centered
// using its word widths plus WordGap between words; within a line word i gets
// gradient color i (mod length), starting over on every line.
func Compute(lines []string, m Measurer, width, height int, g palette.Gradient, p Placement) (Layout, error) {
	if !p.Valid() {
		return Layout{}, fmt.Errorf("%w: %v", ErrInvalidPlacement, p)
	}
	if len(g) == 0 {
		return Layout{}, ErrEmptyGradient
	}
	_, lineHeight := m.Measure(ReferenceGlyphs)
	lay := Layout{
		Lines:       lines,
		LineHeight:  lineHeight,
		TotalHeight: BlockHeight(lineHeight, len(lines)),
	}
	if len(lines) > 1 {
		lay.Gap = LineGap
	}
	y, err := StartY(p, float64(height), lay.TotalHeight)
	if err != nil {
		return Layout{}, err
	}
	lay.Top = y

	for li, line := range lines {
		words := strings.Fields(line)
		widths := make([]float64, len(words))
		lineWidth := 0.0
		for i, w := range words {
			widths[i], _ = m.Measure(w)
			lineWidth += widths[i]
		}
		if len(words) > 1 {
			lineWidth += WordGap * float64(len(words)-1)
		}
		x := (float64(width) - lineWidth) / 2
		for i, w := range words {
			lay.Words = append(lay.Words, PlacedWord{
				Text:  w,
				X:     x,
				Y:     y,
				Width: widths[i],
				Color: g.At(i),
				Line:  li,
				Index: i,
			})
			// the gap is added after the last word too; x is not reused past the line
			x += widths[i] + WordGap
		}
		y += lineHeight + lay.Gap
	}
	return lay, nil
}
