/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package config loads and validates a quotecard job.
//
// A job is read from a YAML or TOML file (missing default file = defaults), then
// environment variables are applied as read-only overrides. Validate checks
// the merged job against an embedded JSON schema.
package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"quotecard/internal/palette"
	"quotecard/internal/textlayout"
)

// DefaultPath is the job file looked up when no explicit path is given.
const DefaultPath = "quotecard.yaml"

// ErrInvalidConfig is returned when a job violates the schema.
var ErrInvalidConfig = errors.New("invalid configuration")

type BatchConfig struct {
	Workers         int  `yaml:"workers" toml:"workers" json:"workers"`
	ContinueOnError bool `yaml:"continue_on_error" toml:"continue_on_error" json:"continue_on_error"`
}

type OutputConfig struct {
	Format      string `yaml:"format" toml:"format" json:"format"`
	JPEGQuality int    `yaml:"jpeg_quality" toml:"jpeg_quality" json:"jpeg_quality"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level" json:"level"`
	Format string `yaml:"format" toml:"format" json:"format"`
	Source bool   `yaml:"source" toml:"source" json:"source"`
	File   string `yaml:"file" toml:"file" json:"file"`
}

// Job is everything a batch run needs. Directories are plain parameters; the
// render core never sees any of them.
type Job struct {
	ConfigVersion int    `yaml:"config_version" toml:"config_version" json:"config_version"`
	InputDir      string `yaml:"input_dir" toml:"input_dir" json:"input_dir"`
	OutputDir     string `yaml:"output_dir" toml:"output_dir" json:"output_dir"`
	FontsDir      string `yaml:"fonts_dir" toml:"fonts_dir" json:"fonts_dir"`

	// Font is a path, a file name inside FontsDir, or builtin:<name>.
	// When empty, FontIndex selects from the fonts found in FontsDir.
	Font       string   `yaml:"font" toml:"font" json:"font"`
	FontIndex  int      `yaml:"font_index" toml:"font_index" json:"font_index"`
	FontSize   int      `yaml:"font_size" toml:"font_size" json:"font_size"`
	Scheme     int      `yaml:"scheme" toml:"scheme" json:"scheme"`
	Placement  string   `yaml:"placement" toml:"placement" json:"placement"`
	Quotes     []string `yaml:"quotes" toml:"quotes" json:"quotes"`
	QuotesFile string   `yaml:"quotes_file" toml:"quotes_file" json:"quotes_file"`

	Batch   BatchConfig   `yaml:"batch" toml:"batch" json:"batch"`
	Output  OutputConfig  `yaml:"output" toml:"output" json:"output"`
	Logging LoggingConfig `yaml:"logging" toml:"logging" json:"logging"`
}

// Defaults returns the job defaults.
func Defaults() Job {
	return Job{
		ConfigVersion: 1,
		InputDir:      "input",
		OutputDir:     "output",
		FontsDir:      "fonts",
		FontSize:      40,
		Scheme:        5,
		Placement:     "bottom",
		Batch:         BatchConfig{Workers: 1},
		Output:        OutputConfig{Format: "jpg", JPEGQuality: 95},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvInputDir  = "QC_INPUT_DIR"
	EnvOutputDir = "QC_OUTPUT_DIR"
	EnvFontsDir  = "QC_FONTS_DIR"
	EnvFont      = "QC_FONT"
	EnvFontSize  = "QC_FONT_SIZE"
	EnvScheme    = "QC_SCHEME"
	EnvPlacement = "QC_PLACEMENT"
	EnvWorkers   = "QC_WORKERS"
	// Logging, shared with internal/log.
	EnvLogLevel  = "QC_LOG_LEVEL"
	EnvLogFormat = "QC_LOG_FORMAT"
	EnvLogSource = "QC_LOG_SOURCE"
	EnvLogFile   = "QC_LOG_FILE"
)

// Load reads the job at path, applies defaults and merges environment overrides.
// An empty path means DefaultPath, which may be absent; an explicit path must exist.
func Load(path string) (Job, error) {
	job := Defaults()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileJob Job
		if err := decode(path, data, &fileJob); err != nil {
			return job, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
		}
		mergeInto(&job, &fileJob)
	case explicit || !errors.Is(err, os.ErrNotExist):
		return job, fmt.Errorf("read config %s: %w", path, err)
	}
	applyEnvOverrides(&job)
	return job, nil
}

// Save writes job to path, as TOML for a .toml extension and YAML otherwise.
func Save(job Job, path string) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(job); err != nil {
			return err
		}
		data = buf.Bytes()
	} else {
		var err error
		if data, err = yaml.Marshal(job); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func isTOML(path string) bool { return strings.EqualFold(filepath.Ext(path), ".toml") }

func decode(path string, data []byte, job *Job) error {
	if isTOML(path) {
		_, err := toml.Decode(string(data), job)
		return err
	}
	return yaml.Unmarshal(data, job)
}

func mergeInto(dst *Job, src *Job) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	setString(&dst.InputDir, src.InputDir)
	setString(&dst.OutputDir, src.OutputDir)
	setString(&dst.FontsDir, src.FontsDir)
	setString(&dst.Font, src.Font)
	if src.FontIndex != 0 {
		dst.FontIndex = src.FontIndex
	}
	if src.FontSize != 0 {
		dst.FontSize = src.FontSize
	}
	if src.Scheme != 0 {
		dst.Scheme = src.Scheme
	}
	setString(&dst.Placement, src.Placement)
	if len(src.Quotes) > 0 {
		dst.Quotes = append([]string(nil), src.Quotes...)
	}
	setString(&dst.QuotesFile, src.QuotesFile)
	// batch
	if src.Batch.Workers != 0 {
		dst.Batch.Workers = src.Batch.Workers
	}
	dst.Batch.ContinueOnError = src.Batch.ContinueOnError
	// output
	if strings.TrimSpace(src.Output.Format) != "" {
		dst.Output.Format = strings.ToLower(strings.TrimSpace(src.Output.Format))
	}
	if src.Output.JPEGQuality != 0 {
		dst.Output.JPEGQuality = src.Output.JPEGQuality
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	setString(&dst.Logging.File, src.Logging.File)
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func applyEnvOverrides(job *Job) {
	envString(&job.InputDir, EnvInputDir)
	envString(&job.OutputDir, EnvOutputDir)
	envString(&job.FontsDir, EnvFontsDir)
	envString(&job.Font, EnvFont)
	envInt(&job.FontSize, EnvFontSize)
	envInt(&job.Scheme, EnvScheme)
	envString(&job.Placement, EnvPlacement)
	envInt(&job.Batch.Workers, EnvWorkers)
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		job.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		job.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		job.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	envString(&job.Logging.File, EnvLogFile)
}

func envString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func envInt(dst *int, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// Prepare appends the lines of QuotesFile to Quotes, sanitizes every quote
// (dropping the ones that end up empty) and validates the job.
func (j *Job) Prepare() error {
	if f := strings.TrimSpace(j.QuotesFile); f != "" {
		lines, err := readLines(f)
		if err != nil {
			return fmt.Errorf("read quotes file: %w", err)
		}
		j.Quotes = append(j.Quotes, lines...)
	}
	j.Quotes = textlayout.SanitizeAll(j.Quotes)
	return j.Validate()
}

// Gradient resolves the job's color scheme.
func (j Job) Gradient() (palette.Gradient, error) { return palette.Scheme(j.Scheme) }

// PlacementValue maps the placement setting, falling back to Bottom.
func (j Job) PlacementValue() textlayout.Placement { return textlayout.ParsePlacement(j.Placement) }

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}
