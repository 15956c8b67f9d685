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
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// ErrFontLoad is returned when a font resource cannot be read or parsed.
var ErrFontLoad = errors.New("error loading font file")

// BuiltinPrefix marks a font reference that resolves to an embedded Go font,
// e.g. "builtin:goregular".
const BuiltinPrefix = "builtin:"

var builtinFonts = map[string][]byte{
	"goregular": goregular.TTF,
	"gobold":    gobold.TTF,
	"gomono":    gomono.TTF,
}

// IsBuiltin reports whether ref names an embedded font.
func IsBuiltin(ref string) bool { return strings.HasPrefix(ref, BuiltinPrefix) }

// BuiltinNames lists the embedded font references.
func BuiltinNames() []string {
	out := make([]string, 0, len(builtinFonts))
	for n := range builtinFonts {
		out = append(out, BuiltinPrefix+n)
	}
	sort.Strings(out)
	return out
}

// FontLibrary caches parsed OpenType fonts by reference (file path or builtin name).
// Parsed fonts are read-only and can be shared; faces are not, so callers get a
// fresh face from Face and must Close it.
type FontLibrary struct {
	DPI float64 // default 72 if zero

	mu    sync.Mutex
	fonts map[string]*opentype.Font
}

func NewFontLibrary() *FontLibrary { return &FontLibrary{fonts: make(map[string]*opentype.Font)} }

// Load parses the font behind ref once and returns the cached result afterwards.
func (fl *FontLibrary) Load(ref string) (*opentype.Font, error) {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	if fl.fonts == nil {
		fl.fonts = make(map[string]*opentype.Font)
	}
	if f, ok := fl.fonts[ref]; ok {
		return f, nil
	}
	data, err := readFont(ref)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrFontLoad, ref, err)
	}
	fl.fonts[ref] = f
	return f, nil
}

// Face loads ref and returns a face at sizePt points with full hinting.
func (fl *FontLibrary) Face(ref string, sizePt float64) (font.Face, error) {
	if sizePt <= 0 {
		return nil, fmt.Errorf("%w: font size must be positive, got %v", ErrFontLoad, sizePt)
	}
	f, err := fl.Load(ref)
	if err != nil {
		return nil, err
	}
	dpi := fl.DPI
	if dpi <= 0 {
		dpi = 72
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: sizePt, DPI: dpi, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("%w: face %s: %v", ErrFontLoad, ref, err)
	}
	return face, nil
}

// LoadFace is a one-shot helper for callers that do not keep a library around.
func LoadFace(ref string, sizePt float64) (font.Face, error) {
	return NewFontLibrary().Face(ref, sizePt)
}

func readFont(ref string) ([]byte, error) {
	if IsBuiltin(ref) {
		name := strings.TrimPrefix(ref, BuiltinPrefix)
		data, ok := builtinFonts[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown builtin font %q", ErrFontLoad, name)
		}
		return data, nil
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrFontLoad, ref, err)
	}
	return data, nil
}
