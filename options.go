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

package docdiff

import "znkr.io/docdiff/internal/config"

// Option configures the behavior of comparison functions.
type Option = config.Option

// Blocks reports every maximal block of changed lines as a single hunk instead of pairing deleted
// and inserted lines one by one.
//
// A block with deleted and inserted lines becomes one [Modified] hunk, a block with only deleted
// (or only inserted) lines one [Deleted] (or [Added]) hunk. The ranges of a block hunk span the
// newlines between its lines.
func Blocks() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Granularity = config.GranularityBlock
		return config.Blocks
	}
}
