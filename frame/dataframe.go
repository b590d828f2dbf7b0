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
)

const (
	// DefaultBlockBytes is the default input-block size in bytes.
	DefaultBlockBytes = 10 * 1024 * 1024
	// DefaultBackingFilename is the default scratch-file path.
	DefaultBackingFilename = "out"
)

// DataFrame owns a schema, the logical row count, and the paged store
// backing it. It accepts typed row inserts and exposes typed cell
// access; after a sort, cell access reflects the sorted order.
type DataFrame struct {
	schema *Schema
	store  *Store
	numRows int64
	logger  *log.Logger
}

// Option configures a DataFrame at construction time.
type Option func(*dfConfig)

type dfConfig struct {
	blockBytes int
	filename   string
	logger     *log.Logger
}

// WithBlockBytes overrides the input block size in bytes.
func WithBlockBytes(n int) Option {
	return func(c *dfConfig) { c.blockBytes = n }
}

// WithBackingFilename overrides the scratch file path.
func WithBackingFilename(name string) Option {
	return func(c *dfConfig) { c.filename = name }
}

// WithLogger attaches a diagnostic logger, used for paging/spill
// tracing. A nil logger (the default) disables diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *dfConfig) { c.logger = l }
}

// New creates a DataFrame with the given schema.
func New(schema *Schema, opts ...Option) (*DataFrame, error) {
	if schema == nil {
		return nil, ErrSchemaNotSet
	}
	cfg := dfConfig{
		blockBytes: DefaultBlockBytes,
		filename:   DefaultBackingFilename,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	store := NewStore(schema.RowWidth(), cfg.blockBytes, cfg.filename, cfg.logger)
	return &DataFrame{
		schema: schema,
		store:  store,
		logger: cfg.logger,
	}, nil
}

// Schema returns the data frame's (immutable) schema.
func (df *DataFrame) Schema() *Schema { return df.schema }

// NumRows returns the number of rows inserted so far.
func (df *DataFrame) NumRows() int64 { return df.numRows }

// Store exposes the underlying paged store for use by collaborating
// packages (the external sorter, the stat engine).
func (df *DataFrame) Store() *Store { return df.store }

// Close releases the backing scratch file.
func (df *DataFrame) Close() error {
	return df.store.Close()
}

// InsertRow appends one row, given one Value per column in schema
// order. Each value's type must match its column's declared type.
func (df *DataFrame) InsertRow(values ...Value) error {
	if len(values) != df.schema.NumColumns() {
		return fmt.Errorf("%w: schema has %d columns, got %d values", ErrWrongArity, df.schema.NumColumns(), len(values))
	}
	row := make([]byte, df.schema.RowWidth())
	for col, v := range values {
		want := df.schema.Type(col)
		if v.Type() != want {
			return fmt.Errorf("%w: column %d is %s, got %s", ErrTypeMismatch, col, want, v.Type())
		}
		off := df.schema.Offset(col)
		v.putInto(row[off : off+want.Width()])
	}
	if err := df.store.InsertRow(row); err != nil {
		return err
	}
	df.numRows++
	return nil
}

// GetInt32 returns the Int32 value at (row, col).
func (df *DataFrame) GetInt32(row int64, col int) (int32, error) {
	b, err := df.cellBytes(row, col, Int32)
	if err != nil {
		return 0, err
	}
	return int32FromBytes(b), nil
}

// GetDouble returns the Double value at (row, col).
func (df *DataFrame) GetDouble(row int64, col int) (float64, error) {
	b, err := df.cellBytes(row, col, Double)
	if err != nil {
		return 0, err
	}
	return doubleFromBytes(b), nil
}

func (df *DataFrame) cellBytes(row int64, col int, want ColumnType) ([]byte, error) {
	if row < 0 || row >= df.numRows {
		return nil, fmt.Errorf("%w: row %d (have %d rows)", ErrRowOutOfRange, row, df.numRows)
	}
	typ, off, err := df.schema.Column(col)
	if err != nil {
		return nil, err
	}
	if typ != want {
		return nil, fmt.Errorf("%w: column %d is %s, requested %s", ErrTypeMismatch, col, typ, want)
	}
	return df.store.CellBytes(row, off, typ.Width())
}
