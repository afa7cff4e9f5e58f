// Package scenario builds the two worked estimation examples: a binomial
// success-probability estimate (coin) compared under Beta and uniform
// priors, and a 2-D Gaussian weight estimate (weight) with a Normal prior
// on the weight and an Inverse-Gamma prior on the measurement error.
// Scenarios construct grids and log surfaces from gonum distributions and
// run the grid-search estimators over them.
package scenario

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pnsuau/MAP/estimate"
)

// CoinParams configures the binomial success-probability example.
type CoinParams struct {
	Trials     int     // coin flips observed
	Successes  int     // heads among those flips
	GridSize   int     // candidate probabilities spanning [GridMin, 1]
	GridMin    float64 // smallest candidate probability
	PriorAlpha float64 // Beta prior alpha
	PriorBeta  float64 // Beta prior beta
}

// DefaultCoinParams reproduces the reference example: 1 success in 5
// flips over 1000 candidate probabilities in [0.001, 1] with a Beta(5,1)
// prior favoring high success probabilities.
func DefaultCoinParams() CoinParams {
	return CoinParams{
		Trials:     5,
		Successes:  1,
		GridSize:   1000,
		GridMin:    0.001,
		PriorAlpha: 5,
		PriorBeta:  1,
	}
}

// CoinResult carries the grid, surfaces, and point estimates of the coin
// scenario so callers can persist and plot them.
type CoinResult struct {
	Params          CoinParams
	Grid            []float64
	LogLik          []float64
	LogPriorBeta    []float64
	LogPriorUniform []float64
	MLE             float64
	MAPBeta         float64
	MAPUniform      float64
}

// RunCoin evaluates the binomial log-likelihood of the observed flips at
// every candidate probability and estimates the success probability three
// ways: by maximum likelihood, under the Beta prior, and under a uniform
// prior on [0, 1].
func RunCoin(p CoinParams) (*CoinResult, error) {
	grid := estimate.Span(p.GridMin, 1, p.GridSize)

	logLik := estimate.Tabulate(grid, func(theta float64) float64 {
		return distuv.Binomial{N: float64(p.Trials), P: theta}.LogProb(float64(p.Successes))
	})

	beta := distuv.Beta{Alpha: p.PriorAlpha, Beta: p.PriorBeta}
	logPriorBeta := estimate.Tabulate(grid, beta.LogProb)

	uniform := distuv.Uniform{Min: 0, Max: 1}
	logPriorUniform := estimate.Tabulate(grid, uniform.LogProb)

	mle, err := estimate.MLE(grid, logLik)
	if err != nil {
		return nil, fmt.Errorf("coin MLE failed: %w", err)
	}
	mapBeta, err := estimate.MAP(grid, logLik, logPriorBeta)
	if err != nil {
		return nil, fmt.Errorf("coin MAP under Beta prior failed: %w", err)
	}
	mapUniform, err := estimate.MAP(grid, logLik, logPriorUniform)
	if err != nil {
		return nil, fmt.Errorf("coin MAP under uniform prior failed: %w", err)
	}

	return &CoinResult{
		Params:          p,
		Grid:            grid,
		LogLik:          logLik,
		LogPriorBeta:    logPriorBeta,
		LogPriorUniform: logPriorUniform,
		MLE:             mle,
		MAPBeta:         mapBeta,
		MAPUniform:      mapUniform,
	}, nil
}
