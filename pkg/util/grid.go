package util

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"

	"reacfit/pkg/rate"
)

// T9Grid returns n linearly spaced temperatures covering [lo, hi].
func T9Grid(lo, hi float64, n int) []float64 {
	grid := make([]float64, n)
	floats.Span(grid, lo, hi)
	return grid
}

// T9LogGrid returns n log-spaced temperatures covering [lo, hi]. Both bounds
// must be positive.
func T9LogGrid(lo, hi float64, n int) []float64 {
	grid := make([]float64, n)
	floats.LogSpan(grid, lo, hi)
	return grid
}

// Tabulate writes the rate over the given temperatures as an aligned table.
func Tabulate(w io.Writer, r *rate.Rate, t9s []float64) error {
	if _, err := fmt.Fprintf(w, "%-12s %s\n", "T9", "rate"); err != nil {
		return err
	}
	for _, t9 := range t9s {
		if _, err := fmt.Fprintf(w, "%s  %s\n", FormatTemperature(t9), FormatRate(r.At(t9))); err != nil {
			return err
		}
	}
	return nil
}
