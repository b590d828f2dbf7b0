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

// Package sortx implements the external sorter: an in-place quicksort
// per input-block window (run generation), followed by a single k-way
// merge pass across the on-disk runs, streaming the globally ordered
// row sequence through a caller-supplied callback.
package sortx

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/sba1/clperf/frame"
)

// DefaultMergeBlockBytes bounds the per-run buffer used during the
// k-way merge phase, per spec's open question on fan-in sizing.
const DefaultMergeBlockBytes = 64 * 1024

// Options configures a Sort call beyond its required arguments.
type Options struct {
	// MergeBlockBytes overrides the per-run merge buffer size.
	// Zero means DefaultMergeBlockBytes.
	MergeBlockBytes int
	// OnRow, if non-nil, is invoked once per row in final sorted
	// order, after that row has been written (not synced) to the
	// sorted output file that replaces the backing file once the
	// merge completes.
	OnRow func(row []byte) error
	// LabelSumOut, if non-nil, receives the label sum as soon as it is
	// final (phase 1 completes before phase 2 starts, so it is already
	// settled by the time OnRow starts firing) — collaborators whose
	// OnRow needs the total in scope, such as the stat engine's running
	// P count, read through this pointer from inside their callback.
	LabelSumOut *int64
}

// Sort reorders df's backing rows into non-descending lexicographic
// order of the key columns (interpreted as DOUBLE, compared in the
// order given), invoking opts.OnRow for each row in the new order if
// set. It returns the integer sum of the label column's values,
// accumulated as a side effect of the first sort pass; since labels
// are 0/1, this equals the count of positive examples.
func Sort(df *frame.DataFrame, keyCols []int, labelCol int, opts Options) (labelSum int64, err error) {
	schema := df.Schema()
	if err := schema.ColumnsOfType(keyCols, frame.Double); err != nil {
		return 0, fmt.Errorf("sortx: %w", err)
	}
	if _, _, err := schema.Column(labelCol); err != nil {
		return 0, fmt.Errorf("sortx: label column: %w", err)
	}
	if t, _, _ := schema.Column(labelCol); t != frame.Int32 {
		return 0, fmt.Errorf("sortx: label column %d must be INT32, got %s", labelCol, t)
	}

	store := df.Store()
	rowWidth := store.RowWidth()
	numRows := df.NumRows()
	if numRows == 0 {
		return 0, nil
	}

	cmp := newComparator(schema, keyCols)
	labelOff := schema.Offset(labelCol)

	capacity := int64(store.BlockCapacity())
	k := (numRows + capacity - 1) / capacity

	// Phase 1: run generation. Sort each block-aligned window in
	// place, accumulate the label sum while it is already in memory,
	// then spill it back as a sorted run.
	for rowOffset := int64(0); rowOffset < numRows; rowOffset += capacity {
		if err := store.LoadBlockAt(rowOffset); err != nil {
			return 0, fmt.Errorf("sortx: loading run at row %d: %w", rowOffset, err)
		}
		b := store.Block()
		sortBlock(b, rowWidth, cmp)
		for r := 0; r < b.Filled; r++ {
			labelSum += int64(frame.DecodeInt32(b.Row(r), labelOff))
		}
		if err := store.SpillBlock(); err != nil {
			return 0, fmt.Errorf("sortx: spilling run at row %d: %w", rowOffset, err)
		}
	}

	if opts.LabelSumOut != nil {
		*opts.LabelSumOut = labelSum
	}

	sortedName := fmt.Sprintf("%s-sorted-%s", store.Filename(), uuid.NewString())
	if err := runMerge(store, rowWidth, numRows, k, capacity, mergeBlockBytes(opts), cmp, sortedName, opts.OnRow); err != nil {
		return 0, err
	}
	if err := store.SwapBackingFile(sortedName); err != nil {
		return 0, fmt.Errorf("sortx: finalizing sort: %w", err)
	}
	return labelSum, nil
}

func mergeBlockBytes(opts Options) int {
	if opts.MergeBlockBytes > 0 {
		return opts.MergeBlockBytes
	}
	return DefaultMergeBlockBytes
}

// blockSorter adapts a frame.Block's filled rows to sort.Interface,
// swapping whole rows through a scratch buffer.
type blockSorter struct {
	b        *frame.Block
	rowWidth int
	cmp      *comparator
	scratch  []byte
}

func (s *blockSorter) Len() int { return s.b.Filled }

func (s *blockSorter) Less(i, j int) bool {
	return s.cmp.compare(s.b.Row(i), s.b.Row(j)) < 0
}

func (s *blockSorter) Swap(i, j int) {
	ri, rj := s.b.Row(i), s.b.Row(j)
	copy(s.scratch, ri)
	copy(ri, rj)
	copy(rj, s.scratch)
}

func sortBlock(b *frame.Block, rowWidth int, cmp *comparator) {
	s := &blockSorter{b: b, rowWidth: rowWidth, cmp: cmp, scratch: make([]byte, rowWidth)}
	sort.Sort(s)
}
