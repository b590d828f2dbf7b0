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

import "errors"

// Sentinel configuration errors, checked with errors.Is by callers.
var (
	ErrSchemaNotSet     = errors.New("frame: schema not set")
	ErrSchemaAlreadySet = errors.New("frame: schema already set")
	ErrColumnOutOfRange = errors.New("frame: column index out of range")
	ErrRowOutOfRange    = errors.New("frame: row index out of range")
	ErrTypeMismatch     = errors.New("frame: value type does not match column type")
	ErrWrongArity       = errors.New("frame: wrong number of values for row")
)
