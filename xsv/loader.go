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
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/sba1/clperf/frame"
)

// ErrEmptyInput is returned when the input file has no lines at all.
var ErrEmptyInput = errors.New("xsv: empty input")

// Options configures Load.
type Options struct {
	// HasHeader overrides the header-detection heuristic when non-nil.
	HasHeader *bool
	// Gzip forces gzip decompression regardless of the filename
	// suffix. By default a ".gz" suffix auto-detects it.
	Gzip bool
	// BlockBytes, BackingFilename and Logger configure the resulting
	// DataFrame's paged store; zero values take frame's own defaults.
	BlockBytes      int
	BackingFilename string
	Logger          *log.Logger
}

// Load opens path (or stdin, if path is "-"), infers a schema from a
// lookahead of up to LookaheadLines lines, then streams the whole file
// into a freshly built frame.DataFrame.
func Load(path string, opts Options) (*frame.DataFrame, error) {
	var src io.ReadCloser
	if path == "-" {
		src = io.NopCloser(os.Stdin)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("xsv: opening %q: %w", path, err)
		}
		src = f
	}
	defer src.Close()

	var r io.Reader = src
	if opts.Gzip || strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("xsv: opening gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	br := bufio.NewReaderSize(r, 64*1024)
	rawLines, lines, err := peekLines(br, LookaheadLines)
	if err != nil {
		return nil, fmt.Errorf("xsv: reading lookahead lines: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}

	hasHeader := detectHeader(lines[0], opts.HasHeader)
	dataLines := lines
	if hasHeader {
		dataLines = lines[1:]
	}
	ncols := columnCount(lines[0])
	types := inferTypes(dataLines, ncols)

	schema, err := frame.NewSchema(types)
	if err != nil {
		return nil, fmt.Errorf("xsv: %w", err)
	}

	var dfOpts []frame.Option
	if opts.BlockBytes > 0 {
		dfOpts = append(dfOpts, frame.WithBlockBytes(opts.BlockBytes))
	}
	if opts.BackingFilename != "" {
		dfOpts = append(dfOpts, frame.WithBackingFilename(opts.BackingFilename))
	}
	if opts.Logger != nil {
		dfOpts = append(dfOpts, frame.WithLogger(opts.Logger))
	}
	df, err := frame.New(schema, dfOpts...)
	if err != nil {
		return nil, fmt.Errorf("xsv: %w", err)
	}

	rest := io.MultiReader(strings.NewReader(strings.Join(rawLines, "")), br)
	chopper := &Chopper{}
	if hasHeader {
		chopper.SkipRecords = 1
	}

	lineNr := 0
	for {
		fields, err := chopper.GetNext(rest)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("xsv: reading line %d: %w", lineNr, err)
		}
		lineNr++
		values, err := parseRow(fields, types)
		if err != nil {
			return nil, fmt.Errorf("xsv: line %d: %w", lineNr, err)
		}
		if err := df.InsertRow(values...); err != nil {
			return nil, fmt.Errorf("xsv: line %d: %w", lineNr, err)
		}
	}
	return df, nil
}

// peekLines reads up to n lines from br, returning both the raw bytes
// (newline included, for reconstructing the stream) and the
// newline-trimmed text (for inference).
func peekLines(br *bufio.Reader, n int) (raw []string, trimmed []string, err error) {
	for i := 0; i < n; i++ {
		line, rerr := br.ReadString('\n')
		if len(line) == 0 && rerr != nil {
			break
		}
		raw = append(raw, line)
		trimmed = append(trimmed, strings.TrimSuffix(line, "\n"))
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				break
			}
			return nil, nil, rerr
		}
	}
	return raw, trimmed, nil
}

func parseRow(fields []string, types []frame.ColumnType) ([]frame.Value, error) {
	values := make([]frame.Value, len(types))
	for col, typ := range types {
		var tok string
		if col < len(fields) {
			tok = fields[col]
		}
		switch typ {
		case frame.Int32:
			v, err := strconv.ParseInt(tok, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("column %d: invalid INT32 %q: %w", col, tok, err)
			}
			values[col] = frame.Int32Value(int32(v))
		case frame.Double:
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fmt.Errorf("column %d: invalid DOUBLE %q: %w", col, tok, err)
			}
			values[col] = frame.DoubleValue(v)
		default:
			return nil, fmt.Errorf("column %d: unknown column type", col)
		}
	}
	return values, nil
}
