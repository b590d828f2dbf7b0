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

import "encoding/binary"
import "math"

// Value is a single typed cell, tagged by its ColumnType. The source
// material exposes row insert as a variadic, type-unsafe argument
// list; Value replaces it with a small strongly typed tagged union so
// InsertRow can validate each value against the schema before writing
// any bytes.
type Value struct {
	typ ColumnType
	i32 int32
	f64 float64
}

// Int32Value wraps v as an Int32-typed cell value.
func Int32Value(v int32) Value { return Value{typ: Int32, i32: v} }

// DoubleValue wraps v as a Double-typed cell value.
func DoubleValue(v float64) Value { return Value{typ: Double, f64: v} }

// Type reports the value's column type.
func (v Value) Type() ColumnType { return v.typ }

// Int32 returns the wrapped int32; only meaningful if Type() == Int32.
func (v Value) Int32() int32 { return v.i32 }

// Double returns the wrapped float64; only meaningful if Type() == Double.
func (v Value) Double() float64 { return v.f64 }

// putInto writes v's bytes into dst, which must be exactly
// v.typ.Width() bytes long, in host byte order.
func (v Value) putInto(dst []byte) {
	switch v.typ {
	case Int32:
		binary.NativeEndian.PutUint32(dst, uint32(v.i32))
	case Double:
		binary.NativeEndian.PutUint64(dst, math.Float64bits(v.f64))
	}
}

func int32FromBytes(b []byte) int32 {
	return int32(binary.NativeEndian.Uint32(b))
}

func doubleFromBytes(b []byte) float64 {
	return math.Float64frombits(binary.NativeEndian.Uint64(b))
}

// DecodeInt32 reads an Int32 cell directly out of a raw row buffer at
// byte offset off. It is exported for collaborators (the external
// sorter, the stat engine) that work with whole in-memory block rows
// rather than going through a DataFrame's paged random access.
func DecodeInt32(row []byte, off int) int32 {
	return int32FromBytes(row[off : off+Int32.Width()])
}

// DecodeDouble reads a Double cell directly out of a raw row buffer at
// byte offset off. See DecodeInt32.
func DecodeDouble(row []byte, off int) float64 {
	return doubleFromBytes(row[off : off+Double.Width()])
}
