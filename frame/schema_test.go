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
	"errors"
	"testing"
)

func testSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := NewSchema([]ColumnType{Int32, Double, Double, Int32, Int32, Int32})
	if err != nil {
		t.Fatalf("NewSchema: %s", err)
	}
	return s
}

func TestNewSchemaOffsets(t *testing.T) {
	s := testSchema(t)
	want := []int{0, 4, 12, 20, 24, 28}
	for i, w := range want {
		if got := s.Offset(i); got != w {
			t.Errorf("column %d: offset = %d, want %d", i, got, w)
		}
	}
	if s.RowWidth() != 32 {
		t.Errorf("RowWidth() = %d, want 32", s.RowWidth())
	}
}

func TestNewSchemaRejectsEmpty(t *testing.T) {
	if _, err := NewSchema(nil); err == nil {
		t.Fatal("expected error for empty schema")
	}
}

func TestNewSchemaRejectsUnknown(t *testing.T) {
	if _, err := NewSchema([]ColumnType{Int32, Unknown}); err == nil {
		t.Fatal("expected error for Unknown column type")
	}
}

func TestSchemaColumnOutOfRange(t *testing.T) {
	s := testSchema(t)
	if _, _, err := s.Column(-1); !errors.Is(err, ErrColumnOutOfRange) {
		t.Errorf("Column(-1) err = %v, want ErrColumnOutOfRange", err)
	}
	if _, _, err := s.Column(s.NumColumns()); !errors.Is(err, ErrColumnOutOfRange) {
		t.Errorf("Column(NumColumns()) err = %v, want ErrColumnOutOfRange", err)
	}
}

func TestColumnsOfType(t *testing.T) {
	s := testSchema(t)
	if err := s.ColumnsOfType([]int{1, 2}, Double); err != nil {
		t.Errorf("ColumnsOfType([1,2], Double) = %v, want nil", err)
	}
	if err := s.ColumnsOfType([]int{0}, Double); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("ColumnsOfType([0], Double) err = %v, want ErrTypeMismatch", err)
	}
	if err := s.ColumnsOfType([]int{1, 1}, Double); err == nil {
		t.Error("expected error for duplicate key column")
	}
	if err := s.ColumnsOfType(nil, Double); err == nil {
		t.Error("expected error for empty key column list")
	}
}
