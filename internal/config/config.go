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

// Package config provides shared configuration mechanisms for packages in this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// docdiff.Option, docdiff.Flags and color.Option.
package config

// Granularity describes how runs of changes are turned into hunks.
type Granularity int

const (
	// Deleted and inserted units are paired one by one. Surplus units get a hunk each.
	GranularityLine Granularity = iota

	// A maximal run of deletions and insertions becomes a single hunk.
	GranularityBlock
)

// Config collects all configurable parameters for comparison functions in this module.
type Config struct {
	// Granularity of the hunks returned.
	Granularity Granularity

	// Normalization applied to the comparison keys, never to the reported offsets.
	IgnoreWhitespace  bool
	IgnorePunctuation bool
	IgnoreReflow      bool
}

// Default is the default configuration.
var Default = Config{
	Granularity:       GranularityLine,
	IgnoreWhitespace:  false,
	IgnorePunctuation: false,
	IgnoreReflow:      false,
}

// Flag describes a single config entry. This is used to detect if configurations are being set
// that are not supported by an entry point.
type Flag int

const (
	Blocks Flag = 1 << iota
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case Blocks:
		return "docdiff.Blocks"
	default:
		panic("never reached")
	}
}

// ColorConfig holds the SGR sequences used by the renderers. An empty string disables coloring
// for that element.
type ColorConfig struct {
	Added    string
	Deleted  string
	Modified string
	Gutter   string
	Reset    string
}

// DefaultColors are the colors used when coloring is enabled and no color options are given.
var DefaultColors = ColorConfig{
	Added:    "\033[32m",
	Deleted:  "\033[31m",
	Modified: "\033[33m",
	Gutter:   "\033[2m",
	Reset:    "\033[0m",
}

// NoColors disables all coloring.
var NoColors = ColorConfig{}
