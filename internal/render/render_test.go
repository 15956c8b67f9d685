/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"quotecard/internal/imageio"
	"quotecard/internal/palette"
	"quotecard/internal/textlayout"
)

func whiteImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

func builtinLibrary(t *testing.T) *textlayout.FontLibrary {
	t.Helper()
	lib := textlayout.NewFontLibrary()
	if _, err := lib.Load("builtin:goregular"); err != nil {
		t.Fatalf("load builtin font: %v", err)
	}
	return lib
}

func TestRender_BlackOnlyBottom(t *testing.T) {
	lib := builtinLibrary(t)
	face, err := lib.Face("builtin:goregular", 40)
	if err != nil {
		t.Fatalf("face: %v", err)
	}
	defer func() { _ = face.Close() }()
	g, _ := palette.Scheme(5)
	src := whiteImage(800, 600)

	out, lay, err := Render(Request{
		Image:     src,
		Text:      "done is better than perfect",
		Face:      face,
		Gradient:  g,
		Placement: textlayout.Bottom,
	})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if b := out.Bounds(); b.Dx() != 800 || b.Dy() != 600 {
		t.Fatalf("output bounds = %v", b)
	}
	if len(lay.Words) != 5 {
		t.Fatalf("expected 5 words, got %d", len(lay.Words))
	}
	for _, w := range lay.Words {
		if w.Color != palette.Black {
			t.Fatalf("word %q painted %v, want black", w.Text, w.Color)
		}
	}
	// Layout box only: glyphs hang below it since line height is the cap height of "A".
	if lay.Bottom() > 600-50 {
		t.Fatalf("text block bottom %v is less than 50 above the image bottom", lay.Bottom())
	}
	if want := 600 - lay.TotalHeight - 50; lay.Top != want {
		t.Fatalf("top = %v, want %v", lay.Top, want)
	}

	dark := 0
	for y := 0; y < 600; y++ {
		for x := 0; x < 800; x++ {
			c := out.NRGBAAt(x, y)
			if c.R != c.G || c.G != c.B {
				t.Fatalf("non-gray pixel %v at %d,%d", c, x, y)
			}
			if c.R < 128 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Fatalf("no text pixels painted")
	}
	if c := out.NRGBAAt(0, 0); c != (color.NRGBA{255, 255, 255, 255}) {
		t.Fatalf("corner pixel changed: %v", c)
	}
	for _, v := range src.Pix {
		if v != 255 {
			t.Fatalf("source image was modified")
		}
	}
}

// lowestInkRow returns the last row containing a non-white pixel, or -1.
func lowestInkRow(img *image.NRGBA) int {
	b := img.Bounds()
	for y := b.Max.Y - 1; y >= b.Min.Y; y-- {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c := img.NRGBAAt(x, y); c.R != 255 || c.G != 255 || c.B != 255 {
				return y
			}
		}
	}
	return -1
}

func TestRender_GlyphsExtendBelowLayoutBox(t *testing.T) {
	lib := builtinLibrary(t)
	face, err := lib.Face("builtin:goregular", 40)
	if err != nil {
		t.Fatalf("face: %v", err)
	}
	defer func() { _ = face.Close() }()
	g, _ := palette.Scheme(5)

	out, lay, err := Render(Request{Image: whiteImage(800, 600), Text: "happy typography", Face: face, Gradient: g, Placement: textlayout.Bottom})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	ink := lowestInkRow(out)
	if float64(ink) <= lay.Bottom() {
		t.Fatalf("lowest ink row %d not below layout bottom %v", ink, lay.Bottom())
	}
	if ink >= 600 {
		t.Fatalf("ink reaches the image edge: row %d", ink)
	}
}

func TestRender_Deterministic(t *testing.T) {
	lib := builtinLibrary(t)
	g, _ := palette.Scheme(2)
	run := func() []byte {
		face, err := lib.Face("builtin:goregular", 32)
		if err != nil {
			t.Fatalf("face: %v", err)
		}
		defer func() { _ = face.Close() }()
		out, _, err := Render(Request{
			Image:     whiteImage(400, 300),
			Text:      "1. stay hungry, stay foolish and keep shipping",
			Face:      face,
			Gradient:  g,
			Placement: textlayout.Middle,
		})
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}
		return out.Pix
	}
	if !bytes.Equal(run(), run()) {
		t.Fatalf("render output differs between runs")
	}
}

func TestRender_ColorsResetPerLine(t *testing.T) {
	g, _ := palette.Scheme(7)
	// 7px per glyph: "aa bb cc dd ee" is 98px, the 60px wrap width fits "aa bb cc" (56px)
	_, lay, err := Render(Request{
		Image:          whiteImage(100, 100),
		Text:           "aa bb cc dd ee",
		Face:           textlayout.BasicFace(),
		Gradient:       g,
		Placement:      textlayout.Top,
		MaxWidthMargin: 40,
	})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if len(lay.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", lay.Lines)
	}
	want := []palette.Color{palette.Black, palette.White, palette.Black, palette.Black, palette.White}
	for i, w := range lay.Words {
		if w.Color != want[i] {
			t.Fatalf("word %d (%s) = %v, want %v", i, w.Text, w.Color, want[i])
		}
	}
}

func TestRender_Errors(t *testing.T) {
	g := palette.Gradient{palette.Black}
	face := textlayout.BasicFace()
	if _, _, err := Render(Request{Face: face, Gradient: g, Placement: textlayout.Top}); !errors.Is(err, imageio.ErrImageLoad) {
		t.Fatalf("expected ErrImageLoad, got %v", err)
	}
	if _, _, err := Render(Request{Image: whiteImage(10, 10), Gradient: g, Placement: textlayout.Top}); !errors.Is(err, textlayout.ErrFontLoad) {
		t.Fatalf("expected ErrFontLoad, got %v", err)
	}
	if _, _, err := Render(Request{Image: whiteImage(10, 10), Face: face, Gradient: g}); !errors.Is(err, textlayout.ErrInvalidPlacement) {
		t.Fatalf("expected ErrInvalidPlacement, got %v", err)
	}
	_, _, err := Render(Request{Image: whiteImage(200, 40), Text: "a b c d e f g h i j k l m n o p", Face: face, Gradient: g, Placement: textlayout.Bottom})
	if !errors.Is(err, textlayout.ErrTextOverflow) {
		t.Fatalf("expected ErrTextOverflow, got %v", err)
	}
}

func TestPaint_RespectsOffsetBounds(t *testing.T) {
	dst := image.NewRGBA(image.Rect(100, 100, 200, 150))
	lay := textlayout.Layout{Words: []textlayout.PlacedWord{{Text: "Hi", X: 5, Y: 5, Color: palette.Gold}}}
	Paint(dst, lay, textlayout.BasicFace())
	painted := false
	for i := 0; i < len(dst.Pix); i += 4 {
		if dst.Pix[i+3] != 0 {
			painted = true
			break
		}
	}
	if !painted {
		t.Fatalf("expected glyph pixels inside offset image")
	}
}
