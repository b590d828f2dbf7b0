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

// Package frame implements the out-of-core columnar data frame: a
// fixed-size input block paged against a backing scratch file, with
// typed row insert and cell access on top.
package frame

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// ColumnType is the declared type of a data frame column.
type ColumnType int

const (
	// Unknown is only legal while a schema is under construction.
	Unknown ColumnType = iota
	// Int32 is a 4-byte signed integer, host byte order.
	Int32
	// Double is an 8-byte IEEE-754 float, host byte order.
	Double
)

// Width returns the on-disk/in-block byte width of t, or 0 for Unknown.
func (t ColumnType) Width() int {
	switch t {
	case Int32:
		return 4
	case Double:
		return 8
	default:
		return 0
	}
}

func (t ColumnType) String() string {
	switch t {
	case Int32:
		return "INT32"
	case Double:
		return "DOUBLE"
	default:
		return "UNKNOWN"
	}
}

// Schema is an ordered, immutable sequence of column types plus the
// parallel sequence of byte offsets at which each column starts within
// a row. It is set exactly once per data frame.
type Schema struct {
	types    []ColumnType
	offsets  []int
	rowWidth int
}

// NewSchema builds a Schema from the supplied column types, in
// declaration order. Every column must have a concrete type: Unknown
// is only legal as a transient placeholder during inference and is
// rejected here.
func NewSchema(types []ColumnType) (*Schema, error) {
	if len(types) == 0 {
		return nil, fmt.Errorf("frame: schema must have at least one column")
	}
	s := &Schema{
		types:   append([]ColumnType(nil), types...),
		offsets: make([]int, len(types)),
	}
	off := 0
	for i, t := range s.types {
		if t == Unknown {
			return nil, fmt.Errorf("frame: column %d has no concrete type", i)
		}
		s.offsets[i] = off
		off += t.Width()
	}
	s.rowWidth = off
	return s, nil
}

// NumColumns returns the number of columns in the schema.
func (s *Schema) NumColumns() int { return len(s.types) }

// RowWidth returns the total byte width of one row.
func (s *Schema) RowWidth() int { return s.rowWidth }

// Type returns the declared type of column col.
func (s *Schema) Type(col int) ColumnType { return s.types[col] }

// Offset returns the byte offset of column col within a row.
func (s *Schema) Offset(col int) int { return s.offsets[col] }

// Column bounds-checks col against the schema, returning a
// configuration error if it is out of range or negative.
func (s *Schema) Column(col int) (ColumnType, int, error) {
	if col < 0 || col >= len(s.types) {
		return Unknown, 0, fmt.Errorf("%w: column %d (have %d columns)", ErrColumnOutOfRange, col, len(s.types))
	}
	return s.types[col], s.offsets[col], nil
}

// ColumnsOfType validates that every column in cols exists, is
// non-negative, and has type want, returning a configuration error
// naming the first column that fails. It also rejects an empty or
// duplicate-containing list, since a repeated key column can never
// change the lexicographic comparison it appears twice in.
func (s *Schema) ColumnsOfType(cols []int, want ColumnType) error {
	if len(cols) == 0 {
		return fmt.Errorf("%w: column list must not be empty", ErrColumnOutOfRange)
	}
	seen := make([]int, 0, len(cols))
	for _, c := range cols {
		typ, _, err := s.Column(c)
		if err != nil {
			return err
		}
		if typ != want {
			return fmt.Errorf("%w: column %d is %s, want %s", ErrTypeMismatch, c, typ, want)
		}
		if slices.Contains(seen, c) {
			return fmt.Errorf("%w: column %d repeated in column list", ErrColumnOutOfRange, c)
		}
		seen = append(seen, c)
	}
	return nil
}
