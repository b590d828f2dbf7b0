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

package stat

import (
	"fmt"

	"github.com/sba1/clperf/frame"
	"github.com/sba1/clperf/histogram"
)

// Evaluation is the result of a stat-with-histogram pass: the ROC and
// Precision/Recall histograms populated from one ranked traversal,
// plus the (P, N) totals, answering curve queries afterward.
type Evaluation struct {
	roc     *histogram.Histogram
	precall *histogram.Histogram
	p, n    int64
}

// Evaluate runs the stat engine on labelCol/scoreCol and feeds every
// rank's (tpr, fpr) and (recall, precision) pair into a pair of
// buckets-bucket histograms. opts.OnRank, if set, still fires for
// every rank, after the histogram puts.
func Evaluate(df *frame.DataFrame, labelCol, scoreCol, buckets int, opts Options) (*Evaluation, error) {
	roc, err := histogram.New(buckets)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	precall, err := histogram.New(buckets)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}

	userOnRank := opts.OnRank
	opts.OnRank = func(p, n, tp, fp int64) error {
		if p > 0 {
			recall := float64(tp) / float64(p)
			if n > 0 {
				fpr := float64(fp) / float64(n)
				roc.Put(fpr, recall)
			}
			precision := float64(tp) / float64(tp+fp)
			precall.Put(recall, precision)
		}
		if userOnRank != nil {
			return userOnRank(p, n, tp, fp)
		}
		return nil
	}

	p, n, err := Run(df, labelCol, scoreCol, opts)
	if err != nil {
		return nil, err
	}
	roc.Average()
	precall.Average()
	return &Evaluation{roc: roc, precall: precall, p: p, n: n}, nil
}

// P returns the positive-example count from the evaluation pass.
func (e *Evaluation) P() int64 { return e.p }

// N returns the negative-example count from the evaluation pass.
func (e *Evaluation) N() int64 { return e.n }

// ROC exposes the underlying true-positive-rate-vs-false-positive-rate
// histogram, e.g. for the plot emitter.
func (e *Evaluation) ROC() *histogram.Histogram { return e.roc }

// PrecisionRecall exposes the underlying precision-vs-recall
// histogram, e.g. for the plot emitter.
func (e *Evaluation) PrecisionRecall() *histogram.Histogram { return e.precall }

// TprAt returns the interpolated true positive rate at false positive
// rate fpr. It fails with ErrHistogramEmpty if the ROC histogram never
// received a single sample (e.g. all labels were zero).
func (e *Evaluation) TprAt(fpr float64) (float64, error) {
	if e.roc.Empty() {
		return 0, ErrHistogramEmpty
	}
	return e.roc.Get(fpr), nil
}

// PrecisionAt returns the interpolated precision at recall. It fails
// with ErrHistogramEmpty if the Precision/Recall histogram never
// received a single sample.
func (e *Evaluation) PrecisionAt(recall float64) (float64, error) {
	if e.precall.Empty() {
		return 0, ErrHistogramEmpty
	}
	return e.precall.Get(recall), nil
}
