/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"errors"
	"testing"

	"quotecard/internal/palette"
)

func TestStartY_Placements(t *testing.T) {
	const h, total = 600.0, 110.0
	cases := []struct {
		p    Placement
		want float64
	}{
		{Top, 20},
		{Middle, (h - total) / 2},
		{Bottom, h - total - 50},
	}
	for _, tc := range cases {
		got, err := StartY(tc.p, h, total)
		if err != nil {
			t.Fatalf("StartY(%v) error: %v", tc.p, err)
		}
		if got != tc.want {
			t.Fatalf("StartY(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestStartY_MiddleKeepsHalfPixels(t *testing.T) {
	got, err := StartY(Middle, 101, 10)
	if err != nil {
		t.Fatalf("StartY error: %v", err)
	}
	if got != 45.5 {
		t.Fatalf("StartY = %v, want 45.5", got)
	}
}

func TestStartY_Overflow(t *testing.T) {
	for _, p := range []Placement{Middle, Bottom} {
		if _, err := StartY(p, 100, 120); !errors.Is(err, ErrTextOverflow) {
			t.Fatalf("StartY(%v): expected ErrTextOverflow, got %v", p, err)
		}
	}
	// bottom margin alone can push the block off the top
	if _, err := StartY(Bottom, 100, 60); !errors.Is(err, ErrTextOverflow) {
		t.Fatalf("expected ErrTextOverflow for bottom margin, got %v", err)
	}
	if _, err := StartY(Placement(9), 100, 10); !errors.Is(err, ErrInvalidPlacement) {
		t.Fatalf("expected ErrInvalidPlacement, got %v", err)
	}
}

func TestBlockHeight(t *testing.T) {
	if got := BlockHeight(30, 1); got != 30 {
		t.Fatalf("one line = %v, want 30", got)
	}
	if got := BlockHeight(30, 3); got != 110 {
		t.Fatalf("three lines = %v, want 110", got)
	}
	if got := BlockHeight(30, 0); got != 0 {
		t.Fatalf("no lines = %v, want 0", got)
	}
}

func TestCompute_ColorCyclingResetsPerLine(t *testing.T) {
	g := palette.Gradient{palette.Black, palette.White}
	lines := []string{"one two three four five", "six seven"}
	lay, err := Compute(lines, tenPerChar, 1000, 600, g, Middle)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	want := []palette.Color{
		palette.Black, palette.White, palette.Black, palette.White, palette.Black,
		palette.Black, palette.White,
	}
	if len(lay.Words) != len(want) {
		t.Fatalf("got %d words, want %d", len(lay.Words), len(want))
	}
	for i, w := range lay.Words {
		if w.Color != want[i] {
			t.Fatalf("word %d (%s) color %v, want %v", i, w.Text, w.Color, want[i])
		}
	}
}

func TestCompute_CentersLinesAndTrailingGap(t *testing.T) {
	lay, err := Compute([]string{"ab cde"}, tenPerChar, 200, 100, palette.Gradient{palette.Gold}, Top)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	// widths 20 + 30 + one gap of 10 = 60, so x starts at (200-60)/2
	if lay.Words[0].X != 70 {
		t.Fatalf("first word x = %v, want 70", lay.Words[0].X)
	}
	if lay.Words[1].X != 100 {
		t.Fatalf("second word x = %v, want 100", lay.Words[1].X)
	}
	if lay.Words[0].Y != TopMargin || lay.Gap != 0 {
		t.Fatalf("unexpected y/gap: %v/%v", lay.Words[0].Y, lay.Gap)
	}
}

func TestCompute_VerticalAdvance(t *testing.T) {
	lines := []string{"a", "b", "c"}
	lay, err := Compute(lines, tenPerChar, 100, 300, palette.Gradient{palette.Black}, Bottom)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if lay.LineHeight != 10 || lay.Gap != LineGap {
		t.Fatalf("line height/gap = %v/%v", lay.LineHeight, lay.Gap)
	}
	if lay.TotalHeight != 50 {
		t.Fatalf("total height = %v, want 50", lay.TotalHeight)
	}
	if lay.Top != 300-50-50 {
		t.Fatalf("top = %v, want 200", lay.Top)
	}
	for i, w := range lay.Words {
		if want := lay.Top + float64(i)*20; w.Y != want {
			t.Fatalf("line %d y = %v, want %v", i, w.Y, want)
		}
	}
	if lay.Bottom() != 250 {
		t.Fatalf("bottom = %v, want 250", lay.Bottom())
	}
}

func TestCompute_Errors(t *testing.T) {
	g := palette.Gradient{palette.Black}
	if _, err := Compute([]string{"x"}, tenPerChar, 100, 100, g, Placement(0)); !errors.Is(err, ErrInvalidPlacement) {
		t.Fatalf("expected ErrInvalidPlacement, got %v", err)
	}
	if _, err := Compute([]string{"x"}, tenPerChar, 100, 100, nil, Top); !errors.Is(err, ErrEmptyGradient) {
		t.Fatalf("expected ErrEmptyGradient, got %v", err)
	}
	tall := make([]string, 20)
	for i := range tall {
		tall[i] = "x"
	}
	if _, err := Compute(tall, tenPerChar, 100, 100, g, Middle); !errors.Is(err, ErrTextOverflow) {
		t.Fatalf("expected ErrTextOverflow, got %v", err)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	m := FaceMeasurer{Face: BasicFace()}
	g, _ := palette.Scheme(1)
	lines := Wrap("done is better than perfect", m, 120)
	a, err := Compute(lines, m, 160, 200, g, Middle)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	b, _ := Compute(lines, m, 160, 200, g, Middle)
	if len(a.Words) != len(b.Words) {
		t.Fatalf("word count differs")
	}
	for i := range a.Words {
		if a.Words[i] != b.Words[i] {
			t.Fatalf("word %d differs: %+v vs %+v", i, a.Words[i], b.Words[i])
		}
	}
}

func TestPlacementParsing(t *testing.T) {
	cases := map[string]Placement{
		"top": Top, "1": Top, "Middle": Middle, "2": Middle, " bottom ": Bottom, "3": Bottom,
	}
	for in, want := range cases {
		got, err := LookupPlacement(in)
		if err != nil || got != want {
			t.Fatalf("LookupPlacement(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := LookupPlacement("sideways"); !errors.Is(err, ErrInvalidPlacement) {
		t.Fatalf("expected ErrInvalidPlacement, got %v", err)
	}
	if got := ParsePlacement("4"); got != Bottom {
		t.Fatalf("ParsePlacement fallback = %v, want bottom", got)
	}
	if Top.String() != "top" || Placement(7).Valid() {
		t.Fatalf("unexpected String/Valid behaviour")
	}
}
