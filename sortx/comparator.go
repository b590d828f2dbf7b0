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

package sortx

import "github.com/sba1/clperf/frame"

// comparator lexicographically compares two raw rows over a fixed list
// of DOUBLE key-column byte offsets. NaN ordering is left to Go's
// normal float64 comparison operators, which is as unspecified as the
// spec allows: callers must not supply NaN key values.
type comparator struct {
	offsets []int
}

func newComparator(schema *frame.Schema, keyCols []int) *comparator {
	offsets := make([]int, len(keyCols))
	for i, c := range keyCols {
		offsets[i] = schema.Offset(c)
	}
	return &comparator{offsets: offsets}
}

// compare returns -1, 0 or 1 as a's key tuple is less than, equal to,
// or greater than b's.
func (c *comparator) compare(a, b []byte) int {
	for _, off := range c.offsets {
		da := frame.DecodeDouble(a, off)
		db := frame.DecodeDouble(b, off)
		if da < db {
			return -1
		}
		if da > db {
			return 1
		}
	}
	return 0
}
