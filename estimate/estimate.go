// Package estimate provides Maximum Likelihood (MLE) and Maximum A
// Posteriori (MAP) point estimation by brute-force grid search over a
// 1-D or 2-D parameter grid.
//
// Callers supply the grid of candidate parameter values and a
// log-likelihood surface with one entry per grid point; MAP estimation
// additionally takes a log-prior surface of the same shape. Surfaces are
// combined by log-space addition, never by probability multiplication,
// so long observation sequences cannot underflow. Any prior shape is
// accepted, including improper or non-normalized ones: a grid point with
// zero prior density contributes -Inf and simply never wins the argmax.
//
// All functions are pure. Inputs are never mutated and no state is kept
// between calls.
package estimate

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidInput is returned when a grid or surface is empty, or when a
// surface length does not match the grid cardinality.
var ErrInvalidInput = errors.New("invalid grid or surface")

// ErrShapeMismatch is returned when the log-prior surface length differs
// from the log-likelihood surface length.
var ErrShapeMismatch = errors.New("log-prior shape does not match log-likelihood")

// MLE returns the grid value at the maximum of logLik.
//
// Ties resolve to the first maximal position. NaN entries are never
// selected; a surface that is entirely -Inf (or NaN) is a degenerate
// input and yields the first grid value rather than an error.
func MLE(grid, logLik []float64) (float64, error) {
	if err := checkSurface(grid, logLik); err != nil {
		return 0, err
	}
	return grid[floats.MaxIdx(logLik)], nil
}

// MAP returns the grid value maximizing the elementwise sum
// logLik + logPrior. Tie-break and degenerate-input behavior match MLE.
func MAP(grid, logLik, logPrior []float64) (float64, error) {
	if err := checkSurface(grid, logLik); err != nil {
		return 0, err
	}
	if len(logPrior) != len(logLik) {
		return 0, fmt.Errorf("log-prior has %d entries, log-likelihood has %d: %w",
			len(logPrior), len(logLik), ErrShapeMismatch)
	}
	logPost := make([]float64, len(logLik))
	floats.AddTo(logPost, logLik, logPrior)
	return grid[floats.MaxIdx(logPost)], nil
}

// MLE2D returns the (row, col) grid values at the maximum of a flat
// row-major logLik surface of length len(rows)*len(cols), where entry
// i*len(cols)+j corresponds to (rows[i], cols[j]).
//
// Ties resolve to the first maximal position in row-major scan order,
// where the inner (col) index advances fastest.
func MLE2D(rows, cols, logLik []float64) (float64, float64, error) {
	if err := checkSurface2D(rows, cols, logLik); err != nil {
		return 0, 0, err
	}
	idx := floats.MaxIdx(logLik)
	return rows[idx/len(cols)], cols[idx%len(cols)], nil
}

// MAP2D returns the (row, col) grid values maximizing the elementwise sum
// logLik + logPrior over a flat row-major 2-D surface. Tie-break and
// degenerate-input behavior match MLE2D.
func MAP2D(rows, cols, logLik, logPrior []float64) (float64, float64, error) {
	if err := checkSurface2D(rows, cols, logLik); err != nil {
		return 0, 0, err
	}
	if len(logPrior) != len(logLik) {
		return 0, 0, fmt.Errorf("log-prior has %d entries, log-likelihood has %d: %w",
			len(logPrior), len(logLik), ErrShapeMismatch)
	}
	logPost := make([]float64, len(logLik))
	floats.AddTo(logPost, logLik, logPrior)
	idx := floats.MaxIdx(logPost)
	return rows[idx/len(cols)], cols[idx%len(cols)], nil
}

func checkSurface(grid, surface []float64) error {
	if len(grid) == 0 {
		return fmt.Errorf("empty grid: %w", ErrInvalidInput)
	}
	if len(surface) == 0 {
		return fmt.Errorf("empty surface: %w", ErrInvalidInput)
	}
	if len(surface) != len(grid) {
		return fmt.Errorf("surface has %d entries for %d grid points: %w",
			len(surface), len(grid), ErrInvalidInput)
	}
	return nil
}

func checkSurface2D(rows, cols, surface []float64) error {
	if len(rows) == 0 || len(cols) == 0 {
		return fmt.Errorf("empty grid dimension: %w", ErrInvalidInput)
	}
	if len(surface) == 0 {
		return fmt.Errorf("empty surface: %w", ErrInvalidInput)
	}
	if len(surface) != len(rows)*len(cols) {
		return fmt.Errorf("surface has %d entries for %dx%d grid: %w",
			len(surface), len(rows), len(cols), ErrInvalidInput)
	}
	return nil
}
