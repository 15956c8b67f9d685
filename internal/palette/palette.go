/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package palette builds the color sequences used to tint words.
//
// A Gradient is an ordered, non-empty list of colors that is consumed
// cyclically: word i of a line gets Gradient.At(i).
package palette

import (
	"errors"
	"fmt"
	"image/color"
)

var (
	// ErrInvalidChoice is returned for an unknown color scheme identifier.
	ErrInvalidChoice = errors.New("invalid color choice")
	// ErrInvalidSteps is returned when a linear gradient is asked for fewer than one step.
	ErrInvalidSteps = errors.New("gradient steps must be >= 1")
)

// Color is an opaque 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// RGBA converts c to a fully opaque color.RGBA.
func (c Color) RGBA() color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255} }

// Hex renders c as #rrggbb.
func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// Named endpoints.
var (
	Silver  = Color{192, 192, 192}
	Gold    = Color{255, 215, 0}
	Magenta = Color{255, 0, 255}
	Green   = Color{0, 255, 0}
	Yellow  = Color{255, 255, 0}
	Purple  = Color{128, 0, 128}
	Black   = Color{0, 0, 0}
	White   = Color{255, 255, 255}
)

// Gradient is an ordered sequence of colors. Treat it as immutable.
type Gradient []Color

// At returns the color for position i, wrapping around the gradient length.
// An empty gradient yields Black.
func (g Gradient) At(i int) Color {
	n := len(g)
	if n == 0 {
		return Black
	}
	return g[((i%n)+n)%n]
}

// Hex returns the #rrggbb form of every entry.
func (g Gradient) Hex() []string {
	out := make([]string, len(g))
	for i, c := range g {
		out[i] = c.Hex()
	}
	return out
}

// LinearGradient returns steps+1 colors from start to end inclusive.
//
// Each channel is start + (end-start)*i/steps computed in floating point and
// truncated toward zero. Integer division would turn 229.5 into 230 on
// descending channels.
func LinearGradient(start, end Color, steps int) (Gradient, error) {
	if steps < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSteps, steps)
	}
	g := make(Gradient, steps+1)
	for i := 0; i <= steps; i++ {
		g[i] = Color{
			R: lerp(start.R, end.R, i, steps),
			G: lerp(start.G, end.G, i, steps),
			B: lerp(start.B, end.B, i, steps),
		}
	}
	return g, nil
}

func lerp(a, b uint8, i, steps int) uint8 {
	delta := (int(b) - int(a)) * i
	return uint8(int(float64(a) + float64(delta)/float64(steps)))
}
