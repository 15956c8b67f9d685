/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render paints quote text onto images.
//
// Render is the per (image, quote) entry point: it clones the source image,
// wraps the text to the image width, computes the layout and paints every
// word in its gradient color. The source image is never modified.
package render

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"quotecard/internal/imageio"
	"quotecard/internal/palette"
	"quotecard/internal/textlayout"
)

// DefaultMaxWidthMargin is subtracted from the image width to get the wrap width.
const DefaultMaxWidthMargin = 40

// Request bundles everything needed for one render call.
type Request struct {
	Image     image.Image
	Text      string
	Face      font.Face
	Gradient  palette.Gradient
	Placement textlayout.Placement
	// MaxWidthMargin defaults to DefaultMaxWidthMargin when zero.
	MaxWidthMargin float64
}

// Render draws req.Text onto a copy of req.Image and returns the copy together
// with the layout used.
func Render(req Request) (*image.NRGBA, textlayout.Layout, error) {
	if req.Image == nil {
		return nil, textlayout.Layout{}, fmt.Errorf("%w: no image", imageio.ErrImageLoad)
	}
	if req.Face == nil {
		return nil, textlayout.Layout{}, fmt.Errorf("%w: no font face", textlayout.ErrFontLoad)
	}
	if !req.Placement.Valid() {
		return nil, textlayout.Layout{}, fmt.Errorf("%w: %v", textlayout.ErrInvalidPlacement, req.Placement)
	}
	margin := req.MaxWidthMargin
	if margin == 0 {
		margin = DefaultMaxWidthMargin
	}

	dst := imaging.Clone(req.Image)
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	m := textlayout.FaceMeasurer{Face: req.Face}
	lines := textlayout.Wrap(textlayout.Sanitize(req.Text), m, float64(w)-margin)
	lay, err := textlayout.Compute(lines, m, w, h, req.Gradient, req.Placement)
	if err != nil {
		return nil, textlayout.Layout{}, err
	}
	Paint(dst, lay, req.Face)
	return dst, lay, nil
}

// Paint draws every placed word of lay onto dst. Word Y is the top of the
// line box, so the baseline sits one ascent below it.
func Paint(dst draw.Image, lay textlayout.Layout, face font.Face) {
	ascent := face.Metrics().Ascent
	origin := dst.Bounds().Min
	d := &font.Drawer{Dst: dst, Face: face}
	for _, w := range lay.Words {
		d.Src = image.NewUniform(w.Color.RGBA())
		d.Dot = fixed.Point26_6{
			X: fixed.I(origin.X) + textlayout.ToFixed(w.X),
			Y: fixed.I(origin.Y) + textlayout.ToFixed(w.Y) + ascent,
		}
		d.DrawString(w.Text)
	}
}
