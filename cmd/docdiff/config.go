// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"znkr.io/docdiff/render/color"
)

// FileConfig is the content of a configuration file. Every field is optional, command line flags
// take precedence over values from the file.
//
// Example:
//
//	ignore:
//	  whitespace: true
//	  reflow: true
//	blocks: false
//	format: side
//	width: 120
//	context: 3
//	color: auto
//	colors:
//	  added: bold green
//	  deleted: red
//	timeout: 30s
type FileConfig struct {
	Ignore struct {
		Whitespace  *bool `yaml:"whitespace"`
		Punctuation *bool `yaml:"punctuation"`
		Reflow      *bool `yaml:"reflow"`
	} `yaml:"ignore"`
	Blocks  *bool          `yaml:"blocks"`
	Format  *string        `yaml:"format"`
	Width   *int           `yaml:"width"`
	Context *int           `yaml:"context"`
	Color   *string        `yaml:"color"`
	Colors  ColorsConfig   `yaml:"colors"`
	Timeout *time.Duration `yaml:"timeout"`
}

// ColorsConfig holds color specifications as understood by [color.Parse].
type ColorsConfig struct {
	Added    *string `yaml:"added"`
	Deleted  *string `yaml:"deleted"`
	Modified *string `yaml:"modified"`
	Gutter   *string `yaml:"gutter"`
}

// ConfigLoader defines the interface for loading configuration files.
type ConfigLoader interface {
	// Load loads the configuration from a YAML file.
	Load(path string) (*FileConfig, error)
	// Validate validates the configuration.
	Validate(cfg *FileConfig) error
}

// Loader handles loading configuration files.
type Loader struct{}

var _ ConfigLoader = (*Loader)(nil)

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load loads the configuration from a YAML file.
func (l *Loader) Load(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate validates the configuration.
func (l *Loader) Validate(cfg *FileConfig) error {
	if cfg.Format != nil {
		if err := validateFormat(*cfg.Format); err != nil {
			return err
		}
	}
	if cfg.Color != nil {
		if err := validateColorMode(*cfg.Color); err != nil {
			return err
		}
	}
	if cfg.Width != nil && *cfg.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", *cfg.Width)
	}
	if cfg.Context != nil && *cfg.Context < 0 {
		return fmt.Errorf("context must not be negative, got %d", *cfg.Context)
	}
	if cfg.Timeout != nil && *cfg.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %v", *cfg.Timeout)
	}
	for name, spec := range map[string]*string{
		"added":    cfg.Colors.Added,
		"deleted":  cfg.Colors.Deleted,
		"modified": cfg.Colors.Modified,
		"gutter":   cfg.Colors.Gutter,
	} {
		if spec == nil {
			continue
		}
		if _, err := color.Parse(*spec); err != nil {
			return fmt.Errorf("colors.%s: %w", name, err)
		}
	}
	return nil
}

// colorOptions turns the color specifications into options for the renderers.
func (c *ColorsConfig) colorOptions() []color.Option {
	var opts []color.Option
	add := func(spec *string, fn func(...int) color.Option) {
		if spec == nil {
			return
		}
		params, err := color.Parse(*spec)
		if err != nil {
			return // rejected by Validate
		}
		opts = append(opts, fn(params...))
	}
	add(c.Added, color.Added)
	add(c.Deleted, color.Deleted)
	add(c.Modified, color.Modified)
	add(c.Gutter, color.Gutter)
	return opts
}

func validateFormat(format string) error {
	switch format {
	case formatSide, formatInline, formatUnified, formatJSON:
		return nil
	default:
		return fmt.Errorf("format must be one of %s, %s, %s, %s, got: %s", formatSide, formatInline, formatUnified, formatJSON, format)
	}
}

func validateColorMode(mode string) error {
	switch mode {
	case colorAuto, colorAlways, colorNever:
		return nil
	default:
		return fmt.Errorf("color must be one of %s, %s, %s, got: %s", colorAuto, colorAlways, colorNever, mode)
	}
}
