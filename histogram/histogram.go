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

// Package histogram implements a fixed-bucket one-dimensional
// accumulator: B buckets spanning x in [0, 1], each averaging the y
// values put into it, with nearest-non-empty-bucket interpolation on
// lookup. It compresses an O(num_rows) stream of (x, y) samples into B
// points suitable for plotting.
package histogram

import "fmt"

// DefaultBuckets is the default bucket count B.
const DefaultBuckets = 1001

// Histogram is a B-bucket accumulator over x in [0, 1].
type Histogram struct {
	buckets  []float64 // running sum, then running mean after Average
	counts   []int64
	averaged bool
	total    int64
}

// New allocates a histogram with b buckets. b must be at least 1.
func New(b int) (*Histogram, error) {
	if b < 1 {
		return nil, fmt.Errorf("histogram: bucket count must be at least 1, got %d", b)
	}
	return &Histogram{
		buckets: make([]float64, b),
		counts:  make([]int64, b),
	}, nil
}

// Buckets returns the bucket count B.
func (h *Histogram) Buckets() int { return len(h.buckets) }

// Empty reports whether no sample has ever been put into h.
func (h *Histogram) Empty() bool { return h.total == 0 }

// Reset clears all buckets for reuse, without reallocating the
// underlying slices.
func (h *Histogram) Reset() {
	for i := range h.buckets {
		h.buckets[i] = 0
		h.counts[i] = 0
	}
	h.averaged = false
	h.total = 0
}

// slot maps x into its bucket index, clamped to [0, B-1].
func (h *Histogram) slot(x float64) int {
	b := len(h.buckets)
	s := int(x * float64(b-1))
	if s < 0 {
		s = 0
	}
	if s >= b {
		s = b - 1
	}
	return s
}

// Put appends y to the bucket covering x. Once Average has been
// called, Put is no longer valid; callers must Reset first.
func (h *Histogram) Put(x, y float64) {
	s := h.slot(x)
	h.buckets[s] += y
	h.counts[s]++
	h.total++
}

// Average replaces each non-empty bucket's accumulated sum with its
// mean. Idempotent.
func (h *Histogram) Average() {
	if h.averaged {
		return
	}
	for i, c := range h.counts {
		if c > 0 {
			h.buckets[i] /= float64(c)
		}
	}
	h.averaged = true
}

// Get returns the interpolated y value at x: the bucket's own mean if
// non-empty, else the average of the nearest non-empty bucket to the
// left and right (or whichever one exists), else 0 if no bucket in
// the histogram has ever been populated. Average is called implicitly
// on first use if not already.
func (h *Histogram) Get(x float64) float64 {
	h.Average()
	s := h.slot(x)
	if h.counts[s] > 0 {
		return h.buckets[s]
	}
	left, leftOK := h.nearest(s, -1)
	right, rightOK := h.nearest(s, 1)
	switch {
	case leftOK && rightOK:
		return (left + right) / 2
	case leftOK:
		return left
	case rightOK:
		return right
	default:
		return 0
	}
}

func (h *Histogram) nearest(from, step int) (float64, bool) {
	for i := from + step; i >= 0 && i < len(h.buckets); i += step {
		if h.counts[i] > 0 {
			return h.buckets[i], true
		}
	}
	return 0, false
}
