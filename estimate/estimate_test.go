package estimate

import (
	"errors"
	"math"
	"testing"
)

func TestMLE(t *testing.T) {
	negInf := math.Inf(-1)

	testCases := []struct {
		name     string
		grid     []float64
		logLik   []float64
		expected float64
	}{
		{"unique_max", []float64{0.1, 0.2, 0.3}, []float64{-3, -1, -2}, 0.2},
		{"max_at_start", []float64{0.1, 0.2, 0.3}, []float64{-1, -2, -3}, 0.1},
		{"max_at_end", []float64{0.1, 0.2, 0.3}, []float64{-3, -2, -1}, 0.3},
		{"tie_returns_first", []float64{0.1, 0.2, 0.3, 0.4}, []float64{-5, -1, -1, -1}, 0.2},
		{"single_point", []float64{7.5}, []float64{-2}, 7.5},
		{"neg_inf_never_wins", []float64{0.1, 0.2, 0.3}, []float64{negInf, -4, negInf}, 0.2},
		{"all_neg_inf_degenerates_to_first", []float64{0.1, 0.2, 0.3}, []float64{negInf, negInf, negInf}, 0.1},
		{"nan_skipped", []float64{0.1, 0.2, 0.3}, []float64{math.NaN(), -4, -9}, 0.2},
		{"nan_would_be_max_position", []float64{0.1, 0.2, 0.3}, []float64{-1, math.NaN(), -2}, 0.1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MLE(tc.grid, tc.logLik)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("MLE mismatch: expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestMLE_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		grid   []float64
		logLik []float64
	}{
		{"empty_grid", nil, []float64{-1}},
		{"empty_surface", []float64{0.5}, nil},
		{"both_empty", nil, nil},
		{"surface_too_short", []float64{0.1, 0.2, 0.3}, []float64{-1, -2}},
		{"surface_too_long", []float64{0.1, 0.2}, []float64{-1, -2, -3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := MLE(tc.grid, tc.logLik)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestMAP(t *testing.T) {
	negInf := math.Inf(-1)

	testCases := []struct {
		name     string
		grid     []float64
		logLik   []float64
		logPrior []float64
		expected float64
	}{
		{
			"prior_moves_the_max",
			[]float64{0.1, 0.2, 0.3},
			[]float64{-1, -2, -3},
			[]float64{0, 0, 3},
			0.3,
		},
		{
			"zero_density_prior_suppresses_likelihood_max",
			[]float64{0.1, 0.2, 0.3},
			[]float64{-1, -5, -6},
			[]float64{negInf, 0, 0},
			0.2,
		},
		{
			"all_zero_density_prior_degenerates_to_first",
			[]float64{0.1, 0.2, 0.3},
			[]float64{-1, -2, -3},
			[]float64{negInf, negInf, negInf},
			0.1,
		},
		{
			"tie_after_sum_returns_first",
			[]float64{0.1, 0.2, 0.3},
			[]float64{-2, -1, -3},
			[]float64{0, -1, 1},
			0.1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MAP(tc.grid, tc.logLik, tc.logPrior)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("MAP mismatch: expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestMAP_UniformPriorMatchesMLE(t *testing.T) {
	grid := Span(0.001, 1, 200)
	// Binomial-shaped surface; the th=1 endpoint is log(0) = -Inf and
	// must flow through both paths without error.
	logLik := Tabulate(grid, func(th float64) float64 {
		return math.Log(th) + 4*math.Log(1-th)
	})
	flat := make([]float64, len(grid)) // log(1) = 0 everywhere

	mle, err := MLE(grid, logLik)
	if err != nil {
		t.Fatalf("MLE failed: %v", err)
	}
	mapEst, err := MAP(grid, logLik, flat)
	if err != nil {
		t.Fatalf("MAP failed: %v", err)
	}
	if mle != mapEst {
		t.Errorf("MAP under uniform prior should equal MLE: got %v vs %v", mapEst, mle)
	}
}

func TestMAP_SummationCommutes(t *testing.T) {
	grid := []float64{1, 2, 3, 4, 5}
	a := []float64{-3, -1, -4, -1, -5}
	b := []float64{0.5, -0.5, 2, -2, 1}

	ab, err := MAP(grid, a, b)
	if err != nil {
		t.Fatalf("MAP(a,b) failed: %v", err)
	}
	ba, err := MAP(grid, b, a)
	if err != nil {
		t.Fatalf("MAP(b,a) failed: %v", err)
	}
	if ab != ba {
		t.Errorf("MAP should commute in its surfaces: got %v vs %v", ab, ba)
	}
}

func TestMAP_Errors(t *testing.T) {
	grid := []float64{0.1, 0.2, 0.3}
	logLik := []float64{-1, -2, -3}

	testCases := []struct {
		name     string
		grid     []float64
		logLik   []float64
		logPrior []float64
		want     error
	}{
		{"prior_too_short", grid, logLik, []float64{0, 0}, ErrShapeMismatch},
		{"prior_too_long", grid, logLik, []float64{0, 0, 0, 0}, ErrShapeMismatch},
		{"prior_empty", grid, logLik, nil, ErrShapeMismatch},
		{"empty_grid", nil, logLik, logLik, ErrInvalidInput},
		{"empty_likelihood", grid, nil, []float64{0, 0, 0}, ErrInvalidInput},
		{"likelihood_grid_mismatch", grid, []float64{-1}, []float64{0}, ErrInvalidInput},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := MAP(tc.grid, tc.logLik, tc.logPrior)
			if !errors.Is(err, tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestMAP_DoesNotMutateInputs(t *testing.T) {
	grid := []float64{0.1, 0.2, 0.3}
	logLik := []float64{-1, -2, -3}
	logPrior := []float64{0.5, 1.5, -0.5}
	likCopy := append([]float64(nil), logLik...)
	priorCopy := append([]float64(nil), logPrior...)

	if _, err := MAP(grid, logLik, logPrior); err != nil {
		t.Fatalf("MAP failed: %v", err)
	}

	for i := range logLik {
		if logLik[i] != likCopy[i] {
			t.Errorf("logLik mutated at index %d: %v -> %v", i, likCopy[i], logLik[i])
		}
	}
	for i := range logPrior {
		if logPrior[i] != priorCopy[i] {
			t.Errorf("logPrior mutated at index %d: %v -> %v", i, priorCopy[i], logPrior[i])
		}
	}
}

func TestMLE_TieBreakIsDeterministic(t *testing.T) {
	grid := []float64{1, 2, 3, 4}
	logLik := []float64{-7, -2, -2, -2}

	first, err := MLE(grid, logLik)
	if err != nil {
		t.Fatalf("MLE failed: %v", err)
	}
	for i := 0; i < 100; i++ {
		got, err := MLE(grid, logLik)
		if err != nil {
			t.Fatalf("MLE failed on call %d: %v", i, err)
		}
		if got != first {
			t.Fatalf("Tie-break not deterministic: call %d returned %v, first call returned %v", i, got, first)
		}
	}
	if first != 2 {
		t.Errorf("Tie should resolve to first maximal position: expected 2, got %v", first)
	}
}

func TestMLE2D(t *testing.T) {
	negInf := math.Inf(-1)
	rows := []float64{10, 20}
	cols := []float64{1, 2, 3}

	testCases := []struct {
		name    string
		logLik  []float64
		wantRow float64
		wantCol float64
	}{
		// Surfaces are row-major: index i*len(cols)+j -> (rows[i], cols[j]).
		{"unique_max_first_row", []float64{-5, -1, -4, -6, -7, -8}, 10, 2},
		{"unique_max_second_row", []float64{-5, -9, -4, -6, -1, -8}, 20, 2},
		{"tie_returns_first_row_major", []float64{-5, -1, -4, -1, -1, -8}, 10, 2},
		{"tie_within_row", []float64{-1, -1, -4, -6, -7, -8}, 10, 1},
		{"all_neg_inf_degenerates_to_origin", []float64{negInf, negInf, negInf, negInf, negInf, negInf}, 10, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gotRow, gotCol, err := MLE2D(rows, cols, tc.logLik)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if gotRow != tc.wantRow || gotCol != tc.wantCol {
				t.Errorf("Expected (%v, %v), got (%v, %v)", tc.wantRow, tc.wantCol, gotRow, gotCol)
			}
		})
	}
}

func TestMLE2D_Errors(t *testing.T) {
	rows := []float64{10, 20}
	cols := []float64{1, 2, 3}

	testCases := []struct {
		name   string
		rows   []float64
		cols   []float64
		logLik []float64
	}{
		{"empty_rows", nil, cols, []float64{-1, -2, -3}},
		{"empty_cols", rows, nil, []float64{-1, -2}},
		{"empty_surface", rows, cols, nil},
		{"wrong_cardinality", rows, cols, []float64{-1, -2, -3, -4}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := MLE2D(tc.rows, tc.cols, tc.logLik)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestMAP2D(t *testing.T) {
	rows := []float64{0.1, 0.2}
	cols := []float64{3.0, 3.5, 4.0}
	logLik := []float64{
		-4, -1, -5,
		-6, -2, -7,
	}

	t.Run("flat_prior_matches_mle", func(t *testing.T) {
		flat := make([]float64, len(logLik))
		mleRow, mleCol, err := MLE2D(rows, cols, logLik)
		if err != nil {
			t.Fatalf("MLE2D failed: %v", err)
		}
		mapRow, mapCol, err := MAP2D(rows, cols, logLik, flat)
		if err != nil {
			t.Fatalf("MAP2D failed: %v", err)
		}
		if mapRow != mleRow || mapCol != mleCol {
			t.Errorf("Flat prior should not move the estimate: got (%v, %v), want (%v, %v)",
				mapRow, mapCol, mleRow, mleCol)
		}
	})

	t.Run("prior_moves_the_max", func(t *testing.T) {
		prior := []float64{
			0, 0, 0,
			0, 0, 7,
		}
		gotRow, gotCol, err := MAP2D(rows, cols, logLik, prior)
		if err != nil {
			t.Fatalf("MAP2D failed: %v", err)
		}
		if gotRow != 0.2 || gotCol != 4.0 {
			t.Errorf("Expected (0.2, 4), got (%v, %v)", gotRow, gotCol)
		}
	})

	t.Run("shape_mismatch", func(t *testing.T) {
		_, _, err := MAP2D(rows, cols, logLik, []float64{0, 0})
		if !errors.Is(err, ErrShapeMismatch) {
			t.Errorf("Expected ErrShapeMismatch, got %v", err)
		}
	})

	t.Run("summation_commutes", func(t *testing.T) {
		prior := []float64{1, -1, 0.5, 2, -2, 0}
		abRow, abCol, err := MAP2D(rows, cols, logLik, prior)
		if err != nil {
			t.Fatalf("MAP2D(lik, prior) failed: %v", err)
		}
		baRow, baCol, err := MAP2D(rows, cols, prior, logLik)
		if err != nil {
			t.Fatalf("MAP2D(prior, lik) failed: %v", err)
		}
		if abRow != baRow || abCol != baCol {
			t.Errorf("MAP2D should commute in its surfaces: got (%v, %v) vs (%v, %v)",
				abRow, abCol, baRow, baCol)
		}
	})
}
