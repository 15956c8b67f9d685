/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package batch renders every (image, quote) pair of a job into the output folder.
package batch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"quotecard/internal/config"
	"quotecard/internal/imageio"
	applog "quotecard/internal/log"
	"quotecard/internal/palette"
	"quotecard/internal/render"
	"quotecard/internal/textlayout"
)

// ErrRenderPanic wraps a panic raised while rendering a single pair.
var ErrRenderPanic = errors.New("render panicked")

// renderImage is swapped in tests to exercise failure paths.
var renderImage = render.Render

// PairError ties a render failure to the image and the 1-based quote index it
// happened on.
type PairError struct {
	Image string
	Quote int
	Err   error
}

func (e *PairError) Error() string {
	return fmt.Sprintf("%s, quote %d: %v", filepath.Base(e.Image), e.Quote, e.Err)
}

func (e *PairError) Unwrap() error { return e.Err }

// Result is the outcome of one pair. Indexes are 1-based.
type Result struct {
	ImageIndex int
	QuoteIndex int
	Image      string
	Output     string
	Lines      int
	Err        error
	ran        bool
}

// Report summarizes a run.
type Report struct {
	Font     string
	Pairs    int
	Results  []Result
	Written  []string
	Failed   []*PairError
	Skipped  int
	Duration time.Duration
}

// source is a decoded input image shared read-only by all quotes rendered on it.
type source struct {
	path      string
	once      sync.Once
	img       image.Image
	err       error
	remaining atomic.Int32
}

func (s *source) get() (image.Image, error) {
	s.once.Do(func() { s.img, s.err = imageio.Load(s.path) })
	return s.img, s.err
}

// release drops the decoded image after its last quote.
func (s *source) release() {
	if s.remaining.Add(-1) == 0 {
		s.img = nil
	}
}

// Run renders every quote of job onto every image in job.InputDir.
//
// By default the first failing pair aborts the run and its error is returned.
// With job.Batch.ContinueOnError each pair is isolated and all failures are
// returned joined. Cancelling ctx stops scheduling new pairs.
func Run(ctx context.Context, job config.Job) (Report, error) {
	start := time.Now()
	lg := applog.WithOperation(applog.WithComponent("batch"), "run")
	var rep Report

	if len(job.Quotes) == 0 {
		return rep, fmt.Errorf("%w: no quotes given", ErrNoInputFound)
	}
	images, err := ListImages(job.InputDir)
	if err != nil {
		return rep, err
	}
	fontRef, err := ResolveFont(job)
	if err != nil {
		return rep, err
	}
	rep.Font = fontRef
	lib := textlayout.NewFontLibrary()
	if _, err := lib.Load(fontRef); err != nil {
		return rep, err
	}
	grad, err := job.Gradient()
	if err != nil {
		return rep, err
	}
	format, err := imageio.ParseFormat(job.Output.Format)
	if err != nil {
		return rep, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	enc := imageio.EncodeOptions{Format: format, JPEGQuality: job.Output.JPEGQuality}
	placement := job.PlacementValue()
	if err := os.MkdirAll(job.OutputDir, 0o755); err != nil {
		return rep, fmt.Errorf("create output folder: %w", err)
	}

	workers := job.Batch.Workers
	if workers < 1 {
		workers = 1
	}
	keepGoing := job.Batch.ContinueOnError
	lg.Info("batch started", slog.Int("images", len(images)), slog.Int("quotes", len(job.Quotes)),
		slog.String("font", fontRef), slog.Int("workers", workers))

	sources := make([]*source, len(images))
	for i, p := range images {
		sources[i] = &source{path: p}
		sources[i].remaining.Store(int32(len(job.Quotes)))
	}
	rep.Pairs = len(images) * len(job.Quotes)
	rep.Results = make([]Result, rep.Pairs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
schedule:
	for i, src := range sources {
		for j, quote := range job.Quotes {
			if gctx.Err() != nil {
				break schedule
			}
			res := &rep.Results[i*len(job.Quotes)+j]
			*res = Result{ImageIndex: i + 1, QuoteIndex: j + 1, Image: src.path}
			i, j, src, quote := i, j, src, quote
			g.Go(func() error {
				if gctx.Err() != nil {
					return nil
				}
				res.ran = true
				defer src.release()
				out := filepath.Join(job.OutputDir, OutputName(i+1, j+1, format))
				pl := applog.WithPair(lg, i+1, j+1)
				lines, err := safeRenderPair(pl, src, quote, lib, fontRef, float64(job.FontSize), grad, placement, out, enc)
				res.Lines = lines
				if err != nil {
					res.Err = &PairError{Image: src.path, Quote: j + 1, Err: err}
					pl.Warn("pair failed", slog.String("file", src.path), slog.Any("err", err))
					if keepGoing {
						return nil
					}
					return res.Err
				}
				res.Output = out
				pl.Info("image saved", slog.String("path", out))
				return nil
			})
		}
	}
	waitErr := g.Wait()

	var errs []error
	for i := range rep.Results {
		r := &rep.Results[i]
		switch {
		case !r.ran:
			rep.Skipped++
		case r.Err != nil:
			var pe *PairError
			if errors.As(r.Err, &pe) {
				rep.Failed = append(rep.Failed, pe)
			}
			errs = append(errs, r.Err)
		default:
			rep.Written = append(rep.Written, r.Output)
		}
	}
	rep.Duration = time.Since(start)
	lg.Info("batch finished", slog.Int("written", len(rep.Written)), slog.Int("failed", len(rep.Failed)),
		slog.Int("skipped", rep.Skipped), slog.Duration("took", rep.Duration))

	if waitErr != nil {
		return rep, waitErr
	}
	if err := ctx.Err(); err != nil {
		return rep, err
	}
	return rep, errors.Join(errs...)
}

// safeRenderPair runs renderPair on the worker goroutine and reports a panic
// as an ErrRenderPanic error for that pair.
func safeRenderPair(lg *slog.Logger, src *source, quote string, lib *textlayout.FontLibrary, fontRef string, size float64,
	grad palette.Gradient, placement textlayout.Placement, out string, enc imageio.EncodeOptions) (lines int, err error) {
	defer func() {
		if r := recover(); r != nil {
			lg.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
			err = fmt.Errorf("%w: %v", ErrRenderPanic, r)
		}
	}()
	return renderPair(src, quote, lib, fontRef, size, grad, placement, out, enc)
}

func renderPair(src *source, quote string, lib *textlayout.FontLibrary, fontRef string, size float64,
	grad palette.Gradient, placement textlayout.Placement, out string, enc imageio.EncodeOptions) (int, error) {
	img, err := src.get()
	if err != nil {
		return 0, err
	}
	// Faces keep glyph caches and are not safe for concurrent use.
	face, err := lib.Face(fontRef, size)
	if err != nil {
		return 0, err
	}
	defer func() { _ = face.Close() }()

	dst, lay, err := renderImage(render.Request{
		Image:     img,
		Text:      quote,
		Face:      face,
		Gradient:  grad,
		Placement: placement,
	})
	if err != nil {
		return 0, err
	}
	if err := imageio.WriteAtomic(out, dst, enc); err != nil {
		return len(lay.Lines), err
	}
	return len(lay.Lines), nil
}
