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
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/sba1/clperf/frame"
)

const sampleWithHeader = "label\tp1\tp2\n" +
	"0\t0.11\t0.12\n" +
	"1\t0.68\t0.49\n" +
	"0\t0.09\t0.09\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %q: %s", path, err)
	}
	return path
}

func TestLoadDetectsHeaderAndTypes(t *testing.T) {
	path := writeFile(t, "sample.tsv", sampleWithHeader)
	df, err := Load(path, Options{BackingFilename: filepath.Join(t.TempDir(), "out")})
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	defer df.Close()

	if df.NumRows() != 3 {
		t.Fatalf("NumRows() = %d, want 3 (header skipped)", df.NumRows())
	}
	if df.Schema().Type(0) != frame.Int32 {
		t.Errorf("column 0 inferred as %s, want INT32", df.Schema().Type(0))
	}
	if df.Schema().Type(1) != frame.Double {
		t.Errorf("column 1 inferred as %s, want DOUBLE", df.Schema().Type(1))
	}
	v, err := df.GetDouble(1, 1)
	if err != nil || v != 0.68 {
		t.Errorf("row 1 column 1 = %v, %v; want 0.68", v, err)
	}
}

func TestLoadHasHeaderOverride(t *testing.T) {
	// A purely numeric first line that the heuristic would treat as
	// data; force it to be skipped as a header instead.
	content := "9\t9.9\n0\t0.11\n1\t0.68\n"
	path := writeFile(t, "noheader.tsv", content)

	trueVal := true
	df, err := Load(path, Options{
		HasHeader:       &trueVal,
		BackingFilename: filepath.Join(t.TempDir(), "out"),
	})
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	defer df.Close()

	if df.NumRows() != 2 {
		t.Fatalf("NumRows() = %d, want 2 (first line forced as header)", df.NumRows())
	}
}

func TestLoadGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.tsv.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating gzip file: %s", err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(sampleWithHeader)); err != nil {
		t.Fatalf("writing gzip content: %s", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("closing gzip writer: %s", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing gzip file: %s", err)
	}

	df, err := Load(path, Options{BackingFilename: filepath.Join(t.TempDir(), "out")})
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	defer df.Close()

	if df.NumRows() != 3 {
		t.Fatalf("NumRows() = %d, want 3", df.NumRows())
	}
}

func TestLoadEmptyInput(t *testing.T) {
	path := writeFile(t, "empty.tsv", "")
	if _, err := Load(path, Options{BackingFilename: filepath.Join(t.TempDir(), "out")}); err != ErrEmptyInput {
		t.Errorf("Load(empty) = %v, want ErrEmptyInput", err)
	}
}
