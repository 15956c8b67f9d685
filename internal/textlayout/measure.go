/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

// Abstractions for text measurement. The layout code only ever asks "how big is
// this string", so tests can plug in arithmetic measures and production code a
// real font face.

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Measurer reports the rendered size of a string in pixels.
// Width is the horizontal advance, height the ink height of the glyph run.
type Measurer interface {
	Measure(s string) (width, height float64)
}

// MeasureFunc adapts a plain function to Measurer.
type MeasureFunc func(s string) (width, height float64)

func (f MeasureFunc) Measure(s string) (float64, float64) { return f(s) }

// FaceMeasurer measures strings with a font.Face.
type FaceMeasurer struct{ Face font.Face }

func (m FaceMeasurer) Measure(s string) (w, h float64) {
	bounds, adv := font.BoundString(m.Face, s)
	return toFloat(adv), toFloat(bounds.Max.Y - bounds.Min.Y)
}

// BasicFace returns x/image basicfont Face7x13 for deterministic tests.
func BasicFace() font.Face { return basicfont.Face7x13 }

func toFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

// ToFixed converts a pixel coordinate to 26.6 fixed point, rounding to the nearest 1/64.
func ToFixed(v float64) fixed.Int26_6 {
	if v < 0 {
		return -fixed.Int26_6(-v*64 + 0.5)
	}
	return fixed.Int26_6(v*64 + 0.5)
}
