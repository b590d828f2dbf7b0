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

// Package xsv implements the ASCII loader: tab-separated schema
// inference by lookahead, followed by a streaming chopper/parser that
// inserts rows into a frame.DataFrame.
package xsv

import (
	"bufio"
	"bytes"
	"io"

	"golang.org/x/exp/slices"
)

const tabSeparator = '\t'

// Chopper splits tab-separated lines into fields. Unlike the richer
// CSV/TSV choppers this format supports no quoting and no escape
// sequences: a tab always ends a field and a newline always ends a
// record.
type Chopper struct {
	// SkipRecords skips the first N records, for a detected header.
	SkipRecords int

	r      io.Reader
	s      *bufio.Scanner
	lineNr int
	starts []int
	ends   []int
	fields []string
}

// GetNext fetches one line and splits it into its tab-separated
// fields. Returns io.EOF once the reader is exhausted.
func (c *Chopper) GetNext(r io.Reader) ([]string, error) {
	c.init(r)

	for {
		if !c.s.Scan() {
			if err := c.s.Err(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		c.lineNr++
		if c.lineNr > c.SkipRecords || c.s.Text() == "" {
			break
		}
	}

	line := c.s.Bytes()
	c.fields = c.fields[:0]
	c.starts = c.starts[:0]
	c.ends = c.ends[:0]

	col := 0
	for {
		start := col
		next := bytes.IndexByte(line[col:], tabSeparator)
		if next == -1 {
			col = len(line)
		} else {
			col += next
		}
		c.starts = append(c.starts, start)
		c.ends = append(c.ends, col)
		if col == len(line) {
			break
		}
		col++
	}

	if cap(c.fields) < len(c.starts) {
		c.fields = slices.Grow(c.fields[:0], len(c.starts))
	}
	text := string(line)
	for i := range c.starts {
		c.fields = append(c.fields, text[c.starts[i]:c.ends[i]])
	}
	return c.fields, nil
}

func (c *Chopper) init(r io.Reader) {
	if c.r != r {
		c.r = r
		c.lineNr = 0
		c.s = bufio.NewScanner(c.r)
		c.s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	}
}
