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

// Package stat implements the stat engine: it drives the external
// sorter on a single score column and walks the resulting ascending
// order, emitting cumulative (P, N, TP, FP) tuples per rank.
package stat

import (
	"fmt"

	"github.com/sba1/clperf/frame"
	"github.com/sba1/clperf/sortx"
)

// Options configures a Run call beyond its required arguments.
type Options struct {
	// MergeBlockBytes overrides the sorter's merge buffer size; zero
	// means sortx.DefaultMergeBlockBytes.
	MergeBlockBytes int
	// OnRank, if non-nil, is invoked once per row in ascending score
	// order with the cumulative (P, N, TP, FP) tuple for that rank.
	OnRank func(p, n, tp, fp int64) error
}

// Run sorts df ascending by scoreCol (interpreted as DOUBLE) and walks
// the sorted rows, invoking opts.OnRank once per rank. It returns the
// final (P, N) pair: P is the count of rows with labelCol > 0, N the
// remainder.
func Run(df *frame.DataFrame, labelCol, scoreCol int, opts Options) (p, n int64, err error) {
	schema := df.Schema()
	if _, _, err := schema.Column(labelCol); err != nil {
		return 0, 0, fmt.Errorf("stat: label column: %w", err)
	}
	if t, _, _ := schema.Column(labelCol); t != frame.Int32 {
		return 0, 0, fmt.Errorf("stat: label column %d must be INT32, got %s", labelCol, t)
	}

	numRows := df.NumRows()
	labelOff := schema.Offset(labelCol)

	var labelSum int64
	var tp, rank int64
	sortOpts := sortx.Options{
		MergeBlockBytes: opts.MergeBlockBytes,
		LabelSumOut:     &labelSum,
		OnRow: func(row []byte) error {
			if frame.DecodeInt32(row, labelOff) > 0 {
				tp++
			}
			rank++
			fp := rank - tp
			if opts.OnRank != nil {
				return opts.OnRank(labelSum, numRows-labelSum, tp, fp)
			}
			return nil
		},
	}

	if _, err := sortx.Sort(df, []int{scoreCol}, labelCol, sortOpts); err != nil {
		return 0, 0, fmt.Errorf("stat: %w", err)
	}
	return labelSum, numRows - labelSum, nil
}
