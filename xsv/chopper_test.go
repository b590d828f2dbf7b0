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
	"io"
	"strings"
	"testing"
)

func TestChopperSplitsFields(t *testing.T) {
	r := strings.NewReader("0\t0.11\t0.12\n1\t0.68\t0.49\n")
	c := &Chopper{}

	fields, err := c.GetNext(r)
	if err != nil {
		t.Fatalf("GetNext: %s", err)
	}
	want := []string{"0", "0.11", "0.12"}
	if len(fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(fields), len(want))
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("field %d = %q, want %q", i, fields[i], want[i])
		}
	}

	fields, err = c.GetNext(r)
	if err != nil {
		t.Fatalf("GetNext (second line): %s", err)
	}
	if fields[0] != "1" {
		t.Errorf("second line field 0 = %q, want %q", fields[0], "1")
	}

	if _, err := c.GetNext(r); err != io.EOF {
		t.Errorf("GetNext at end = %v, want io.EOF", err)
	}
}

func TestChopperSkipsRecords(t *testing.T) {
	r := strings.NewReader("label\tp1\n0\t0.11\n1\t0.68\n")
	c := &Chopper{SkipRecords: 1}

	fields, err := c.GetNext(r)
	if err != nil {
		t.Fatalf("GetNext: %s", err)
	}
	if fields[0] != "0" {
		t.Errorf("first non-skipped field = %q, want %q (header skipped)", fields[0], "0")
	}
}

func TestChopperEmptyFields(t *testing.T) {
	r := strings.NewReader("a\t\tb\n")
	c := &Chopper{}
	fields, err := c.GetNext(r)
	if err != nil {
		t.Fatalf("GetNext: %s", err)
	}
	want := []string{"a", "", "b"}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("field %d = %q, want %q", i, fields[i], want[i])
		}
	}
}
