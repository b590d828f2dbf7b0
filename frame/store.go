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

package frame

import (
	"fmt"
	"log"
	"os"

	"github.com/sba1/clperf/pagefile"
)

// Store is the paged store: it presents the logical table as
// random-access by (row, column) while holding at most one block in
// memory, paging it against a single backing scratch file. The file is
// created lazily on the first spill.
type Store struct {
	rowWidth   int
	blockBytes int
	filename   string
	logger     *log.Logger

	file *pagefile.File
	ib   *Block
}

// NewStore creates a paged store for rows of rowWidth bytes, backed by
// an input block of blockBytes and a lazily-created scratch file named
// filename. logger may be nil.
func NewStore(rowWidth, blockBytes int, filename string, logger *log.Logger) *Store {
	return &Store{
		rowWidth:   rowWidth,
		blockBytes: blockBytes,
		filename:   filename,
		logger:     logger,
	}
}

func (s *Store) logf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

// RowWidth returns the fixed row width in bytes.
func (s *Store) RowWidth() int { return s.rowWidth }

// Filename returns the scratch file's current path.
func (s *Store) Filename() string { return s.filename }

// BlockCapacity returns rows_per_block, allocating the input block on
// first use if necessary.
func (s *Store) BlockCapacity() int {
	s.ensureBlock()
	return s.ib.capacity
}

// Block exposes the live input block for direct inspection, e.g. by
// the external sorter during run generation.
func (s *Store) Block() *Block {
	s.ensureBlock()
	return s.ib
}

func (s *Store) ensureBlock() {
	if s.ib != nil {
		return
	}
	b, err := NewBlock(s.rowWidth, s.blockBytes)
	if err != nil {
		// rowWidth is always positive by construction (schemas with
		// zero columns are rejected at NewSchema), so this cannot fail.
		panic(err)
	}
	s.ib = b
}

func (s *Store) ensureFile() error {
	if s.file != nil {
		return nil
	}
	f, err := pagefile.Create(s.filename)
	if err != nil {
		return fmt.Errorf("frame: creating backing file %q: %w", s.filename, err)
	}
	s.file = f
	return nil
}

// File returns the backing file handle, creating it if this is the
// first time it is needed.
func (s *Store) File() (*pagefile.File, error) {
	if err := s.ensureFile(); err != nil {
		return nil, err
	}
	return s.file, nil
}

// InsertRow copies row (exactly RowWidth() bytes) into the next
// logical slot, spilling the current input block to the backing file
// first if it is already full.
func (s *Store) InsertRow(row []byte) error {
	s.ensureBlock()
	if s.ib.CurrentRelativeRow >= s.ib.capacity {
		if err := s.SpillBlock(); err != nil {
			return fmt.Errorf("frame: spilling input block: %w", err)
		}
		s.ib.RowOffset += int64(s.ib.capacity)
		s.ib.CurrentRelativeRow = 0
		s.ib.Filled = 0
	}
	copy(s.ib.Row(s.ib.CurrentRelativeRow), row)
	s.ib.CurrentRelativeRow++
	if s.ib.CurrentRelativeRow > s.ib.Filled {
		s.ib.Filled = s.ib.CurrentRelativeRow
	}
	return nil
}

// SpillBlock writes the input block's currently filled rows back to
// the backing file at its RowOffset. It is a no-op if the block holds
// no valid rows.
func (s *Store) SpillBlock() error {
	return s.spillBlock(s.ib)
}

func (s *Store) spillBlock(b *Block) error {
	if b.Filled == 0 {
		return nil
	}
	if err := s.ensureFile(); err != nil {
		return err
	}
	off := b.RowOffset * int64(s.rowWidth)
	s.logf("spilling block at row %d (%d bytes) to offset %#x", b.RowOffset, len(b.FilledBytes()), off)
	n, err := s.file.WriteAt(b.FilledBytes(), off)
	if err != nil {
		return err
	}
	if n != len(b.FilledBytes()) {
		return fmt.Errorf("frame: short write (%d of %d bytes) spilling block at row %d", n, len(b.FilledBytes()), b.RowOffset)
	}
	return nil
}

// LoadBlockAt loads a block-aligned window of up to capacity rows
// starting at absolute row rowOffset into the input block, first
// spilling whatever the input block currently holds. A short read at
// EOF is allowed: it marks the final, partial window.
func (s *Store) LoadBlockAt(rowOffset int64) error {
	s.ensureBlock()
	if err := s.spillBlock(s.ib); err != nil {
		return err
	}
	if err := s.ensureFile(); err != nil {
		return err
	}
	off := rowOffset * int64(s.rowWidth)
	n, err := s.file.ReadAt(s.ib.Bytes(), off)
	if err != nil {
		return fmt.Errorf("frame: reading block at row %d: %w", rowOffset, err)
	}
	s.ib.RowOffset = rowOffset
	s.ib.Filled = n / s.rowWidth
	s.ib.CurrentRelativeRow = 0
	s.ib.CurrentRow = 0
	return nil
}

// ensureWindow makes sure the window covering absolute row i is loaded
// into the input block, per spec: w = floor(i/capacity)*capacity.
func (s *Store) ensureWindow(i int64) error {
	s.ensureBlock()
	capacity := int64(s.ib.capacity)
	w := (i / capacity) * capacity
	if w == s.ib.RowOffset && int64(s.ib.Filled) > i-w {
		return nil
	}
	return s.LoadBlockAt(w)
}

// CellBytes returns the width-byte slice for column offset off of row
// i, paging in the covering window first if necessary. The returned
// slice aliases the input block and is only valid until the next call
// that changes the loaded window.
func (s *Store) CellBytes(i int64, off, width int) ([]byte, error) {
	if err := s.ensureWindow(i); err != nil {
		return nil, err
	}
	rel := int(i - s.ib.RowOffset)
	row := s.ib.Row(rel)
	return row[off : off+width], nil
}

// SwapBackingFile finalizes an external sort: it closes the current
// backing file (if open), deletes it, renames sortedName into its
// place, reopens it for read/write, and reloads the input block from
// row 0.
func (s *Store) SwapBackingFile(sortedName string) error {
	if s.file != nil {
		if err := s.file.Close(); err != nil {
			return fmt.Errorf("frame: closing backing file before swap: %w", err)
		}
		s.file = nil
	}
	if err := removeIfExists(s.filename); err != nil {
		return fmt.Errorf("frame: removing old backing file: %w", err)
	}
	sorted, err := pagefile.Open(sortedName)
	if err != nil {
		return fmt.Errorf("frame: reopening sorted file %q: %w", sortedName, err)
	}
	if err := sorted.Rename(s.filename); err != nil {
		sorted.Close()
		return fmt.Errorf("frame: renaming %q to %q: %w", sortedName, s.filename, err)
	}
	s.file = sorted
	if s.ib != nil {
		s.ib.Reset()
	}
	return s.LoadBlockAt(0)
}

// Close releases the backing file handle, if one was opened, and
// removes the scratch file from disk.
func (s *Store) Close() error {
	if s.file == nil {
		return nil
	}
	name := s.filename
	if err := s.file.Close(); err != nil {
		return err
	}
	s.file = nil
	return removeIfExists(name)
}

func removeIfExists(name string) error {
	err := os.Remove(name)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
