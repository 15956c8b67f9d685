/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package imageio loads source images and writes rendered ones.
//
// Decoding goes through github.com/disintegration/imaging so EXIF orientation
// is honoured; WebP is registered from golang.org/x/image. Writes are
// transactional: a temp file in the target directory is synced and then
// renamed over the destination, so an interrupted batch never leaves a
// half-written image behind.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// ErrImageLoad is returned when a source image cannot be opened or decoded.
var ErrImageLoad = errors.New("error opening image file")

// Format is an output encoding.
type Format string

const (
	JPEG Format = "jpg"
	PNG  Format = "png"
)

// DefaultJPEGQuality matches what most viewers consider visually lossless.
const DefaultJPEGQuality = 95

// ParseFormat maps "jpg|jpeg|png" (any case) to a Format; empty means JPEG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "jpg", "jpeg":
		return JPEG, nil
	case "png":
		return PNG, nil
	}
	return "", fmt.Errorf("unknown output format: %s", s)
}

// Ext is the file extension for f, without the dot.
func (f Format) Ext() string {
	if f == PNG {
		return "png"
	}
	return "jpg"
}

// EncodeOptions controls output encoding.
type EncodeOptions struct {
	Format      Format
	JPEGQuality int
}

// Load opens and decodes the image at path, applying EXIF orientation.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageLoad, path, err)
	}
	return img, nil
}

// Decode reads an image from r, applying EXIF orientation.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	return img, nil
}

// Encode writes img to w in the requested format.
func Encode(w io.Writer, img image.Image, opt EncodeOptions) error {
	switch opt.Format {
	case PNG:
		return imaging.Encode(w, img, imaging.PNG)
	case JPEG, "":
		q := opt.JPEGQuality
		if q <= 0 || q > 100 {
			q = DefaultJPEGQuality
		}
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(q))
	default:
		return fmt.Errorf("unknown output format: %s", opt.Format)
	}
}

// WriteAtomic encodes img to path via a temp file in the same directory.
func WriteAtomic(path string, img image.Image, opt EncodeOptions) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", filepath.Base(path), os.Getpid(), rand.Int()))
	defer func() {
		if err != nil {
			_ = os.Remove(temp)
		}
	}()
	if err := writeFileSync(temp, img, opt); err != nil {
		return fmt.Errorf("write temp image: %w", err)
	}
	// On Windows, replace by removing destination first if needed
	if _, statErr := os.Stat(path); statErr == nil {
		_ = os.Remove(path)
	}
	if err := os.Rename(temp, path); err != nil {
		return fmt.Errorf("replace image: %w", err)
	}
	return nil
}

func writeFileSync(path string, img image.Image, opt EncodeOptions) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := Encode(f, img, opt); err != nil {
		return err
	}
	return f.Sync()
}
