/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"quotecard/internal/config"
	"quotecard/internal/imageio"
	"quotecard/internal/textlayout"
)

var (
	// ErrNoInputFound is returned when there are no images or no quotes to combine.
	ErrNoInputFound = errors.New("no input found")
	// ErrNoFontFound is returned when no font can be selected.
	ErrNoFontFound = errors.New("no fonts found in the fonts folder")
	// ErrInvalidFontChoice is returned for a font index outside the listed fonts.
	ErrInvalidFontChoice = errors.New("invalid font choice")
)

var (
	imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".bmp": true, ".webp": true, ".tif": true, ".tiff": true}
	fontExts  = map[string]bool{".ttf": true, ".otf": true}
)

// ListImages returns the supported image files directly inside dir, sorted by name.
func ListImages(dir string) ([]string, error) {
	files, err := listByExt(dir, imageExts)
	if err != nil {
		return nil, fmt.Errorf("scan input folder: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no images in %s", ErrNoInputFound, dir)
	}
	return files, nil
}

// ListFonts returns the font files directly inside dir, sorted by name.
func ListFonts(dir string) ([]string, error) {
	files, err := listByExt(dir, fontExts)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("scan fonts folder: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFontFound, dir)
	}
	return files, nil
}

func listByExt(dir string, exts map[string]bool) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range ents {
		if !e.Type().IsRegular() {
			continue
		}
		if exts[strings.ToLower(filepath.Ext(e.Name()))] {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}

// ResolveFont picks the font reference for job:
//   - builtin:<name> is returned as is,
//   - an existing path (absolute, or relative to the working directory) wins,
//   - otherwise Font is looked up inside FontsDir,
//   - an empty Font selects ListFonts(FontsDir)[FontIndex].
func ResolveFont(job config.Job) (string, error) {
	ref := strings.TrimSpace(job.Font)
	if ref == "" {
		fonts, err := ListFonts(job.FontsDir)
		if err != nil {
			return "", err
		}
		if job.FontIndex < 0 || job.FontIndex >= len(fonts) {
			return "", fmt.Errorf("%w: %d (have %d fonts)", ErrInvalidFontChoice, job.FontIndex, len(fonts))
		}
		return fonts[job.FontIndex], nil
	}
	if textlayout.IsBuiltin(ref) {
		return ref, nil
	}
	if _, err := os.Stat(ref); err == nil {
		return ref, nil
	}
	if job.FontsDir != "" && !filepath.IsAbs(ref) {
		candidate := filepath.Join(job.FontsDir, ref)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoFontFound, ref)
}

// OutputName is the file name for the pair (image i, quote j), both 1-based.
func OutputName(i, j int, f imageio.Format) string {
	return fmt.Sprintf("%d_%d.%s", i, j, f.Ext())
}
