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

// Command clperf evaluates a binary classifier's predictions, read
// from a tab-separated ASCII table, and emits ROC and Precision/Recall
// curves as a gnuplot script plus companion data files.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/sba1/clperf/config"
	"github.com/sba1/clperf/frame"
	"github.com/sba1/clperf/plot"
	"github.com/sba1/clperf/stat"
	"github.com/sba1/clperf/xsv"
)

const version = "0.1.0"

var (
	dashLabel    string
	dashScore    string
	dashOut      string
	dashConfig   string
	dashBlock    int
	dashBuckets  int
	dashBacking  string
	dashGzip     bool
	dashHeader   string
	dashProgress bool
	dashVersion  bool
	dashHelp     bool
)

func init() {
	flag.StringVar(&dashLabel, "label", "0", "label column (0-based index)")
	flag.StringVar(&dashScore, "score", "1", "score column (0-based index)")
	flag.StringVar(&dashOut, "out", "clperf", "output prefix for generated .dat/.plot files")
	flag.StringVar(&dashConfig, "config", "", "optional YAML config file")
	flag.IntVar(&dashBlock, "block-bytes", 0, "override input block size in bytes")
	flag.IntVar(&dashBuckets, "buckets", 0, "override histogram bucket count")
	flag.StringVar(&dashBacking, "backing", "", "override scratch backing-file path")
	flag.BoolVar(&dashGzip, "gzip", false, "force gzip decompression of the input")
	flag.StringVar(&dashHeader, "has-header", "", "override header detection: true or false")
	flag.BoolVar(&dashProgress, "progress", false, "print a periodic row-count progress line to stderr")
	flag.BoolVar(&dashVersion, "version", false, "print version and exit")
	flag.BoolVar(&dashHelp, "h", false, "show usage")
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] INPUT\n", os.Args[0])
	flag.PrintDefaults()
}

func exitf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	flag.Parse()

	if dashHelp {
		usage()
		return
	}
	if dashVersion {
		fmt.Println(version)
		return
	}

	args := flag.Args()
	if len(args) != 1 {
		usage()
		os.Exit(1)
	}
	input := args[0]

	cfg := config.Default()
	if dashConfig != "" {
		var err error
		cfg, err = config.Load(dashConfig)
		if err != nil {
			exitf("clperf: %s", err)
		}
	}
	if dashBlock > 0 {
		cfg.BlockBytes = dashBlock
	}
	if dashBuckets > 0 {
		cfg.HistogramBuckets = dashBuckets
	}
	if dashBacking != "" {
		cfg.BackingFilename = dashBacking
	}
	if dashHeader != "" {
		v, err := strconv.ParseBool(dashHeader)
		if err != nil {
			exitf("clperf: -has-header: %s", err)
		}
		cfg.HasHeader = &v
	}

	logger := log.New(os.Stderr, "clperf: ", log.LstdFlags)

	df, err := xsv.Load(input, xsv.Options{
		HasHeader:       cfg.HasHeader,
		Gzip:            dashGzip,
		BlockBytes:      cfg.BlockBytes,
		BackingFilename: cfg.BackingFilename,
		Logger:          logger,
	})
	if err != nil {
		exitf("clperf: loading %q: %s", input, err)
	}
	defer df.Close()

	labelCol, err := columnIndex(df.Schema(), dashLabel)
	if err != nil {
		exitf("clperf: -label: %s", err)
	}
	scoreCol, err := columnIndex(df.Schema(), dashScore)
	if err != nil {
		exitf("clperf: -score: %s", err)
	}

	lastReport := time.Now()
	onRank := func(p, n, tp, fp int64) error {
		if dashProgress && time.Since(lastReport) > time.Second {
			fmt.Fprintf(os.Stderr, "clperf: rank tp=%d fp=%d\n", tp, fp)
			lastReport = time.Now()
		}
		return nil
	}

	eval, err := stat.Evaluate(df, labelCol, scoreCol, cfg.HistogramBuckets, stat.Options{
		MergeBlockBytes: cfg.MergeBlockBytes,
		OnRank:          onRank,
	})
	if err != nil {
		exitf("clperf: evaluating: %s", err)
	}

	if err := plot.Emit(dashOut, eval.ROC(), eval.PrecisionRecall()); err != nil {
		exitf("clperf: emitting plot: %s", err)
	}

	fmt.Fprintf(os.Stderr, "clperf: %d rows, P=%d N=%d, wrote %s.plot\n", df.NumRows(), eval.P(), eval.N(), dashOut)
}

// columnIndex resolves a -label/-score flag value to a column index.
// Only numeric indices are supported, matching the core's column-index
// contract; a header-name lookup is left to a future revision.
func columnIndex(schema *frame.Schema, spec string) (int, error) {
	idx, err := strconv.Atoi(spec)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid column index", spec)
	}
	if _, _, err := schema.Column(idx); err != nil {
		return 0, err
	}
	return idx, nil
}
