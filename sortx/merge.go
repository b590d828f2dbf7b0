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

package sortx

import (
	"fmt"

	"github.com/sba1/clperf/frame"
	"github.com/sba1/clperf/pagefile"
)

// runMerge performs phase 2: if k==1 the table is already globally
// sorted and is streamed straight through; otherwise a k-way merge is
// performed across the on-disk runs produced by phase 1. Either way,
// every row is appended, in final order, to a freshly created file
// named sortedName, and passed to onRow if set.
func runMerge(store *frame.Store, rowWidth int, numRows, k, capacity int64, mergeBlockBytes int, cmp *comparator, sortedName string, onRow func([]byte) error) error {
	sortedFile, err := pagefile.Create(sortedName)
	if err != nil {
		return fmt.Errorf("sortx: creating sorted output %q: %w", sortedName, err)
	}
	defer sortedFile.Close()

	writeOffset := int64(0)
	deliver := func(row []byte) error {
		if _, err := sortedFile.WriteAt(row, writeOffset); err != nil {
			return fmt.Errorf("sortx: writing sorted row at offset %#x: %w", writeOffset, err)
		}
		writeOffset += int64(rowWidth)
		if onRow != nil {
			return onRow(row)
		}
		return nil
	}

	if k <= 1 {
		if err := store.LoadBlockAt(0); err != nil {
			return fmt.Errorf("sortx: re-reading sorted single run: %w", err)
		}
		b := store.Block()
		for r := 0; r < b.Filled; r++ {
			if err := deliver(b.Row(r)); err != nil {
				return err
			}
		}
		return nil
	}

	return kWayMerge(store, rowWidth, numRows, k, capacity, mergeBlockBytes, cmp, deliver)
}

// run tracks one phase-1 run's merge progress: a small priming buffer
// over the absolute row range [start, start+length).
type run struct {
	block  *frame.Block
	start  int64
	length int64
}

func kWayMerge(store *frame.Store, rowWidth int, numRows, k, capacity int64, mergeBlockBytes int, cmp *comparator, deliver func([]byte) error) error {
	f, err := store.File()
	if err != nil {
		return fmt.Errorf("sortx: opening backing file for merge: %w", err)
	}

	// Phase 1 sorted block-aligned windows of capacity rows, so every
	// run but the last is exactly capacity rows long.
	rowsPerRun := capacity
	bufRows := mergeBlockBytes / rowWidth
	if bufRows < 1 {
		bufRows = 1
	}

	runs := make([]*run, k)
	for i := int64(0); i < k; i++ {
		start := i * rowsPerRun
		length := numRows - start
		if length > rowsPerRun {
			length = rowsPerRun
		}
		if length < 0 {
			length = 0
		}
		capRows := bufRows
		if int64(capRows) > length && length > 0 {
			capRows = int(length)
		}
		if capRows < 1 {
			capRows = 1
		}
		b, err := frame.NewBlock(rowWidth, capRows*rowWidth)
		if err != nil {
			return fmt.Errorf("sortx: allocating merge buffer for run %d: %w", i, err)
		}
		b.RowOffset = start
		if length > 0 {
			n, err := f.ReadAt(b.Bytes(), start*int64(rowWidth))
			if err != nil {
				return fmt.Errorf("sortx: priming run %d at row %d: %w", i, start, err)
			}
			b.Filled = n / rowWidth
		}
		runs[i] = &run{block: b, start: start, length: length}
	}

	for m := int64(0); m < numRows; m++ {
		sk := -1
		for i, r := range runs {
			if r.block.CurrentRow >= r.length {
				continue
			}
			if r.block.CurrentRelativeRow == r.block.Filled {
				if err := refill(f, r, rowWidth); err != nil {
					return fmt.Errorf("sortx: refilling run %d: %w", i, err)
				}
			}
			if sk == -1 || cmp.compare(r.block.Row(r.block.CurrentRelativeRow), runs[sk].block.Row(runs[sk].block.CurrentRelativeRow)) < 0 {
				sk = i
			}
		}
		if sk == -1 {
			return fmt.Errorf("sortx: merge exhausted all runs after %d of %d rows", m, numRows)
		}
		chosen := runs[sk].block
		if err := deliver(chosen.Row(chosen.CurrentRelativeRow)); err != nil {
			return err
		}
		chosen.CurrentRelativeRow++
		chosen.CurrentRow++
	}
	return nil
}

func refill(f *pagefile.File, r *run, rowWidth int) error {
	nextOffset := r.block.RowOffset + int64(r.block.Filled)
	remaining := r.length - r.block.CurrentRow
	toRead := int64(r.block.Capacity())
	if toRead > remaining {
		toRead = remaining
	}
	if toRead <= 0 {
		r.block.Filled = 0
		r.block.RowOffset = nextOffset
		r.block.CurrentRelativeRow = 0
		return nil
	}
	n, err := f.ReadAt(r.block.Bytes()[:toRead*int64(rowWidth)], nextOffset*int64(rowWidth))
	if err != nil {
		return err
	}
	r.block.RowOffset = nextOffset
	r.block.Filled = n / rowWidth
	r.block.CurrentRelativeRow = 0
	return nil
}
