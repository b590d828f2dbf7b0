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

package xsv

import (
	"testing"

	"github.com/sba1/clperf/frame"
)

func TestDetectHeaderHeuristic(t *testing.T) {
	if !detectHeader("label\tp1\tp2", nil) {
		t.Error("expected symbolic first line to be detected as a header")
	}
	if detectHeader("0\t0.11\t0.12", nil) {
		t.Error("expected purely numeric first line to not be a header")
	}
}

func TestDetectHeaderOverride(t *testing.T) {
	trueV, falseV := true, false
	if !detectHeader("0\t0.11", &trueV) {
		t.Error("override=true should force header=true even for numeric data")
	}
	if detectHeader("label\tp1", &falseV) {
		t.Error("override=false should force header=false even for symbolic data")
	}
}

func TestColumnCount(t *testing.T) {
	if got := columnCount("a\tb\tc"); got != 3 {
		t.Errorf("columnCount = %d, want 3", got)
	}
	if got := columnCount("a"); got != 1 {
		t.Errorf("columnCount = %d, want 1", got)
	}
}

func TestInferTypes(t *testing.T) {
	lines := []string{
		"0\t0.11\t3",
		"1\t0.68\t11",
	}
	types := inferTypes(lines, 3)
	want := []frame.ColumnType{frame.Int32, frame.Double, frame.Int32}
	for i, w := range want {
		if types[i] != w {
			t.Errorf("column %d = %s, want %s", i, types[i], w)
		}
	}
}

func TestInferTypesAnyRowVotesDouble(t *testing.T) {
	lines := []string{
		"3",
		"4.5",
		"6",
	}
	types := inferTypes(lines, 1)
	if types[0] != frame.Double {
		t.Errorf("column 0 = %s, want DOUBLE (one row voted DOUBLE)", types[0])
	}
}
