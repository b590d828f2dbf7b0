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
	"path/filepath"
	"testing"
)

// scenarioRow mirrors one row of the twelve-row worked example:
// [INT32 label, DOUBLE p1, DOUBLE p2, INT32 o1, INT32 o2, INT32 o3].
type scenarioRow struct {
	label          int32
	p1, p2         float64
	o1, o2, o3     int32
}

var scenarioRows = []scenarioRow{
	{0, 0.11, 0.12, 3, 3, 0},
	{0, 0.24, 0.11, 5, 2, 0},
	{0, 0.14, 0.43, 4, 6, 0},
	{0, 0.33, 0.56, 6, 9, 0},
	{0, 0.45, 0.44, 7, 7, 0},
	{1, 0.68, 0.49, 11, 8, 0},
	{1, 0.58, 0.59, 9, 10, 0},
	{0, 0.59, 0.68, 10, 11, 0},
	{0, 0.51, 0.42, 8, 5, 0},
	{0, 0.09, 0.09, 2, 1, 0},
	{0, 0.08, 0.08, 1, 0, 0},
	{0, 0.01, 0.13, 0, 4, 0},
}

func newScenarioFrame(t *testing.T, blockBytes int) *DataFrame {
	t.Helper()
	schema, err := NewSchema([]ColumnType{Int32, Double, Double, Int32, Int32, Int32})
	if err != nil {
		t.Fatalf("NewSchema: %s", err)
	}
	backing := filepath.Join(t.TempDir(), "scenario")
	opts := []Option{WithBackingFilename(backing)}
	if blockBytes > 0 {
		opts = append(opts, WithBlockBytes(blockBytes))
	}
	df, err := New(schema, opts...)
	if err != nil {
		t.Fatalf("New: %s", err)
	}
	t.Cleanup(func() { df.Close() })

	for i, r := range scenarioRows {
		err := df.InsertRow(
			Int32Value(r.label),
			DoubleValue(r.p1),
			DoubleValue(r.p2),
			Int32Value(r.o1),
			Int32Value(r.o2),
			Int32Value(r.o3),
		)
		if err != nil {
			t.Fatalf("InsertRow(%d): %s", i, err)
		}
	}
	return df
}

func TestInsertRowCountsAndUnsortedReads(t *testing.T) {
	for _, blockBytes := range []int{0, 64} {
		blockBytes := blockBytes
		t.Run(fmt.Sprintf("block_bytes=%d", blockBytes), func(t *testing.T) {
			df := newScenarioFrame(t, blockBytes)
			if df.NumRows() != int64(len(scenarioRows)) {
				t.Fatalf("NumRows() = %d, want %d", df.NumRows(), len(scenarioRows))
			}

			label0, err := df.GetInt32(0, 0)
			if err != nil || label0 != 0 {
				t.Errorf("cell(0,0) = %d, %v; want 0, nil", label0, err)
			}
			label5, err := df.GetInt32(5, 0)
			if err != nil || label5 != 1 {
				t.Errorf("cell(5,0) = %d, %v; want 1, nil", label5, err)
			}
			p1_0, err := df.GetDouble(0, 1)
			if err != nil || p1_0 != 0.11 {
				t.Errorf("cell(0,1) = %v, %v; want 0.11, nil", p1_0, err)
			}
			p1_11, err := df.GetDouble(11, 1)
			if err != nil || p1_11 != 0.01 {
				t.Errorf("cell(11,1) = %v, %v; want 0.01, nil", p1_11, err)
			}

			// every value, read back in insertion order, must match
			// exactly regardless of whether inserts crossed a spill
			// boundary.
			for i, r := range scenarioRows {
				row := int64(i)
				if v, err := df.GetInt32(row, 0); err != nil || v != r.label {
					t.Errorf("row %d label = %d, %v; want %d", i, v, err, r.label)
				}
				if v, err := df.GetDouble(row, 1); err != nil || v != r.p1 {
					t.Errorf("row %d p1 = %v, %v; want %v", i, v, err, r.p1)
				}
				if v, err := df.GetDouble(row, 2); err != nil || v != r.p2 {
					t.Errorf("row %d p2 = %v, %v; want %v", i, v, err, r.p2)
				}
				if v, err := df.GetInt32(row, 3); err != nil || v != r.o1 {
					t.Errorf("row %d o1 = %d, %v; want %d", i, v, err, r.o1)
				}
			}
		})
	}
}

func TestInsertRowWrongArity(t *testing.T) {
	schema, err := NewSchema([]ColumnType{Int32, Double})
	if err != nil {
		t.Fatalf("NewSchema: %s", err)
	}
	df, err := New(schema, WithBackingFilename(filepath.Join(t.TempDir(), "arity")))
	if err != nil {
		t.Fatalf("New: %s", err)
	}
	defer df.Close()

	if err := df.InsertRow(Int32Value(1)); err == nil {
		t.Fatal("expected error for wrong arity")
	}
}

func TestInsertRowTypeMismatch(t *testing.T) {
	schema, err := NewSchema([]ColumnType{Int32, Double})
	if err != nil {
		t.Fatalf("NewSchema: %s", err)
	}
	df, err := New(schema, WithBackingFilename(filepath.Join(t.TempDir(), "mismatch")))
	if err != nil {
		t.Fatalf("New: %s", err)
	}
	defer df.Close()

	if err := df.InsertRow(DoubleValue(1), DoubleValue(2)); err == nil {
		t.Fatal("expected error for type mismatch")
	}
}

func TestGetRowOutOfRange(t *testing.T) {
	df := newScenarioFrame(t, 0)
	if _, err := df.GetInt32(-1, 0); err == nil {
		t.Error("expected error for negative row")
	}
	if _, err := df.GetInt32(df.NumRows(), 0); err == nil {
		t.Error("expected error for row beyond NumRows()")
	}
}

func TestBlockBytesExactlyOneRow(t *testing.T) {
	schema, err := NewSchema([]ColumnType{Int32})
	if err != nil {
		t.Fatalf("NewSchema: %s", err)
	}
	df, err := New(schema,
		WithBackingFilename(filepath.Join(t.TempDir(), "single")),
		WithBlockBytes(schema.RowWidth()),
	)
	if err != nil {
		t.Fatalf("New: %s", err)
	}
	defer df.Close()

	for i := int32(0); i < 5; i++ {
		if err := df.InsertRow(Int32Value(i)); err != nil {
			t.Fatalf("InsertRow(%d): %s", i, err)
		}
	}
	for i := int32(0); i < 5; i++ {
		v, err := df.GetInt32(int64(i), 0)
		if err != nil || v != i {
			t.Errorf("row %d = %d, %v; want %d, nil", i, v, err, i)
		}
	}
}
