/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"strings"
	"testing"
)

// tenPerChar measures every rune as 10 px wide and 10 px tall.
var tenPerChar = MeasureFunc(func(s string) (float64, float64) { return float64(len(s) * 10), 10 })

func TestWrap_BoundedAndLossless(t *testing.T) {
	text := "aa bb cc dd ee ff gg hh ii jj"
	lines := Wrap(text, tenPerChar, 100)
	if len(lines) < 2 {
		t.Fatalf("expected multiple lines, got %v", lines)
	}
	var words []string
	for _, l := range lines {
		if w, _ := tenPerChar.Measure(l); w > 100 {
			t.Fatalf("line %q is %v wide, exceeds 100", l, w)
		}
		words = append(words, strings.Fields(l)...)
	}
	if got := strings.Join(words, " "); got != text {
		t.Fatalf("words changed: got %q, want %q", got, text)
	}
	want := []string{"aa bb cc", "dd ee ff", "gg hh ii", "jj"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
}

func TestWrap_OverwideWordStandsAlone(t *testing.T) {
	lines := Wrap("a extraordinarily b", tenPerChar, 50)
	want := []string{"a", "extraordinarily", "b"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
}

func TestWrap_EmptyAndWhitespace(t *testing.T) {
	if lines := Wrap("", tenPerChar, 100); len(lines) != 0 {
		t.Fatalf("expected no lines, got %q", lines)
	}
	if lines := Wrap(" \t\n ", tenPerChar, 100); len(lines) != 0 {
		t.Fatalf("expected no lines, got %q", lines)
	}
}

func TestWrap_CollapsesWhitespace(t *testing.T) {
	lines := Wrap("one\t two\nthree", tenPerChar, 1000)
	if len(lines) != 1 || lines[0] != "one two three" {
		t.Fatalf("lines = %q", lines)
	}
}

func TestWrap_WithBasicFace(t *testing.T) {
	m := FaceMeasurer{Face: BasicFace()}
	lines := Wrap("Hello world from Go", m, 50)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping into multiple lines, got %d", len(lines))
	}
	for _, l := range lines {
		if w, _ := m.Measure(l); w > 50 && strings.Contains(l, " ") {
			t.Fatalf("multi-word line %q exceeds width: %v", l, w)
		}
	}
}
