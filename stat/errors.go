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

package stat

import "errors"

// ErrHistogramEmpty is returned by a curve query (Evaluation.TprAt,
// Evaluation.PrecisionAt) made before any stat-with-histogram pass has
// ever populated the underlying histogram.
var ErrHistogramEmpty = errors.New("stat: curve queried before histogram populated")
