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

// Package plot is a thin collaborator that writes the ROC and
// Precision/Recall histograms out as gnuplot-ready data files plus a
// gnuplot script plotting both.
package plot

import (
	"bufio"
	"fmt"
	"os"

	"github.com/sba1/clperf/histogram"
)

// Emit writes "<prefix>-roc.dat", "<prefix>-precall.dat" and
// "<prefix>.plot" from roc and precall. Each .dat file holds one
// tab-separated (x, y) sample per histogram bucket index, interpolated
// per histogram.Histogram.Get so the series has no gaps.
func Emit(prefix string, roc, precall *histogram.Histogram) error {
	if err := writeDat(prefix+"-roc.dat", roc); err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	if err := writeDat(prefix+"-precall.dat", precall); err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	if err := writeScript(prefix); err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	return nil
}

func writeDat(name string, h *histogram.Histogram) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	b := h.Buckets()
	for i := 0; i < b; i++ {
		x := float64(i) / float64(b-1)
		if _, err := fmt.Fprintf(w, "%g\t%g\n", x, h.Get(x)); err != nil {
			return err
		}
	}
	return w.Flush()
}

func writeScript(prefix string) error {
	f, err := os.Create(prefix + ".plot")
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "set terminal pngcairo size 1200,600\n")
	fmt.Fprintf(w, "set output %q\n", prefix+".png")
	fmt.Fprintf(w, "set multiplot layout 1,2\n")
	fmt.Fprintf(w, "set xlabel \"False Positive Rate\"\n")
	fmt.Fprintf(w, "set ylabel \"True Positive Rate\"\n")
	fmt.Fprintf(w, "plot %q using 1:2 with lines title \"ROC\"\n", prefix+"-roc.dat")
	fmt.Fprintf(w, "set xlabel \"Recall\"\n")
	fmt.Fprintf(w, "set ylabel \"Precision\"\n")
	fmt.Fprintf(w, "plot %q using 1:2 with lines title \"Precision/Recall\"\n", prefix+"-precall.dat")
	fmt.Fprintf(w, "unset multiplot\n")
	return w.Flush()
}
