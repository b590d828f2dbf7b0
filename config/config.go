// Copyright (c) 2024 The Clperf Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package config resolves the core's configuration knobs from
// built-in defaults, an optional YAML file, and caller overrides
// (typically CLI flags), in increasing priority.
package config

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/sba1/clperf/frame"
	"github.com/sba1/clperf/histogram"
	"github.com/sba1/clperf/sortx"
)

// Config holds the knobs a run of the core needs: paged-store sizing,
// histogram resolution, and merge fan-in tuning.
type Config struct {
	// BlockBytes is the input block size in bytes.
	BlockBytes int `json:"block_bytes,omitempty"`
	// HistogramBuckets is the bucket count B for ROC/Precision-Recall
	// histograms.
	HistogramBuckets int `json:"histogram_buckets,omitempty"`
	// BackingFilename is the scratch-file path for the paged store.
	BackingFilename string `json:"backing_filename,omitempty"`
	// MergeBlockBytes bounds the per-run buffer during the external
	// sorter's k-way merge phase.
	MergeBlockBytes int `json:"merge_block_bytes,omitempty"`
	// HasHeader, if non-nil, overrides the ASCII loader's
	// header-detection heuristic.
	HasHeader *bool `json:"has_header,omitempty"`
}

// Default returns a Config populated with the core's built-in
// defaults.
func Default() Config {
	return Config{
		BlockBytes:       frame.DefaultBlockBytes,
		HistogramBuckets: histogram.DefaultBuckets,
		BackingFilename:  frame.DefaultBackingFilename,
		MergeBlockBytes:  sortx.DefaultMergeBlockBytes,
	}
}

// Load reads path as a YAML (or JSON, a subset of YAML) document and
// merges it over Default(), returning a configuration error if the
// file is unreadable or malformed.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %q: %w", path, err)
	}
	if cfg.BlockBytes <= 0 {
		return Config{}, fmt.Errorf("config: block_bytes must be positive, got %d", cfg.BlockBytes)
	}
	if cfg.HistogramBuckets <= 0 {
		return Config{}, fmt.Errorf("config: histogram_buckets must be positive, got %d", cfg.HistogramBuckets)
	}
	if cfg.BackingFilename == "" {
		return Config{}, fmt.Errorf("config: backing_filename must not be empty")
	}
	return cfg, nil
}
