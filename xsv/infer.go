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
	"strings"

	"github.com/sba1/clperf/frame"
)

// LookaheadLines is the number of lines read into the schema-inference
// buffer before the file is re-streamed for parsing.
const LookaheadLines = 8

func isDataChar(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c == '-' || c == 'e' || c == 'E' || c == '.':
		return true
	default:
		return false
	}
}

// detectHeader tallies line's characters (excluding tabs): digit/'-'/
// 'e'/'E'/'.' support "this is data", everything else supports "this
// is header". The line is a header iff the header tally strictly
// exceeds the data tally. override, if non-nil, bypasses the
// heuristic entirely.
func detectHeader(line string, override *bool) bool {
	if override != nil {
		return *override
	}
	var headerTally, dataTally int
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == tabSeparator {
			continue
		}
		if isDataChar(c) {
			dataTally++
		} else {
			headerTally++
		}
	}
	return headerTally > dataTally
}

// columnCount returns 1 + the number of tab characters in line.
func columnCount(line string) int {
	return 1 + strings.Count(line, string(tabSeparator))
}

// inferTypes marks each of ncols columns DOUBLE if any row's token for
// that column contains '-', 'e', 'E' or '.', else INT32. A short row
// (fewer tokens than ncols) votes nothing for its missing columns.
func inferTypes(lines []string, ncols int) []frame.ColumnType {
	types := make([]frame.ColumnType, ncols)
	for i := range types {
		types[i] = frame.Int32
	}
	for _, line := range lines {
		start := 0
		col := 0
		for col < ncols {
			end := strings.IndexByte(line[start:], tabSeparator)
			var tok string
			if end == -1 {
				tok = line[start:]
			} else {
				end += start
				tok = line[start:end]
			}
			if tokenIsDouble(tok) {
				types[col] = frame.Double
			}
			if end == -1 {
				break
			}
			start = end + 1
			col++
		}
	}
	return types
}

func tokenIsDouble(tok string) bool {
	for i := 0; i < len(tok); i++ {
		switch tok[i] {
		case '-', 'e', 'E', '.':
			return true
		}
	}
	return false
}
