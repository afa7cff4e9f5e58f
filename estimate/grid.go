package estimate

import "gonum.org/v1/gonum/floats"

// Span returns n evenly spaced values from lo to hi inclusive.
// Returns nil for n <= 0 and a single-element slice for n == 1.
func Span(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// Tabulate evaluates f at every grid point and returns the resulting
// surface, aligned index-for-index with grid.
func Tabulate(grid []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(grid))
	for i, v := range grid {
		out[i] = f(v)
	}
	return out
}

// Tabulate2D evaluates f over the cartesian product of rows and cols and
// returns a flat row-major surface: entry i*len(cols)+j holds
// f(rows[i], cols[j]).
func Tabulate2D(rows, cols []float64, f func(row, col float64) float64) []float64 {
	out := make([]float64, len(rows)*len(cols))
	for i, r := range rows {
		for j, c := range cols {
			out[i*len(cols)+j] = f(r, c)
		}
	}
	return out
}
