package scenario

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pnsuau/MAP/estimate"
)

// WeightParams configures the 2-D weight estimation example: repeated
// noisy weighings of an object whose true weight and scale error are
// recovered jointly over an (error, weight) grid.
type WeightParams struct {
	TrueWeight   float64 // weight the observations are drawn around
	TrueSigma    float64 // scale error the observations are drawn with
	Observations int     // number of weighings to simulate
	Seed         uint64  // PCG seed for the simulated weighings

	WeightGridSize       int // candidate weights spanning [WeightMin, WeightMax]
	WeightMin, WeightMax float64
	ErrorGridSize        int // candidate scale errors spanning [ErrorMin, ErrorMax]
	ErrorMin, ErrorMax   float64

	WeightPriorMu    float64 // Normal prior on the weight
	WeightPriorSigma float64
	ErrorPriorAlpha  float64 // Inverse-Gamma prior on the scale error
	ErrorPriorBeta   float64
}

// DefaultWeightParams reproduces the reference example: 10 weighings of a
// 3.5 kg object on a scale with 0.1 kg error, estimated over 101 candidate
// weights in [3, 4] and 100 candidate errors in [0.1, 0.5], with a tight
// Normal(3.5, 0.05) prior on the weight and an InverseGamma(3, 0.5) prior
// on the error.
func DefaultWeightParams() WeightParams {
	return WeightParams{
		TrueWeight:       3.5,
		TrueSigma:        0.1,
		Observations:     10,
		Seed:             42,
		WeightGridSize:   101,
		WeightMin:        3,
		WeightMax:        4,
		ErrorGridSize:    100,
		ErrorMin:         0.1,
		ErrorMax:         0.5,
		WeightPriorMu:    3.5,
		WeightPriorSigma: 0.05,
		ErrorPriorAlpha:  3,
		ErrorPriorBeta:   0.5,
	}
}

// WeightResult carries the grids, surfaces, observations, and point
// estimates of the weight scenario. Surfaces are flat row-major slices
// over (error, weight): entry i*len(WeightGrid)+j corresponds to
// (ErrorGrid[i], WeightGrid[j]).
type WeightResult struct {
	Params       WeightParams
	Observations []float64
	ErrorGrid    []float64
	WeightGrid   []float64
	LogLik       []float64
	LogPrior     []float64
	MLEError     float64
	MLEWeight    float64
	MAPError     float64
	MAPWeight    float64
}

// RunWeight simulates the weighings with a seeded generator, evaluates the
// joint Gaussian log-likelihood over the (error, weight) grid, forms the
// log-prior as the outer sum of the weight and error priors, and estimates
// the pair both by maximum likelihood and a posteriori.
func RunWeight(p WeightParams) (*WeightResult, error) {
	src := rand.NewPCG(p.Seed, p.Seed)
	noise := distuv.Normal{Mu: p.TrueWeight, Sigma: p.TrueSigma, Src: src}
	obs := make([]float64, p.Observations)
	for i := range obs {
		obs[i] = noise.Rand()
	}

	errorGrid := estimate.Span(p.ErrorMin, p.ErrorMax, p.ErrorGridSize)
	weightGrid := estimate.Span(p.WeightMin, p.WeightMax, p.WeightGridSize)

	logLik := estimate.Tabulate2D(errorGrid, weightGrid, func(sigma, weight float64) float64 {
		model := distuv.Normal{Mu: weight, Sigma: sigma}
		var sum float64
		for _, x := range obs {
			sum += model.LogProb(x)
		}
		return sum
	})

	weightPrior := distuv.Normal{Mu: p.WeightPriorMu, Sigma: p.WeightPriorSigma}
	errorPrior := distuv.InverseGamma{Alpha: p.ErrorPriorAlpha, Beta: p.ErrorPriorBeta}
	logPrior := estimate.Tabulate2D(errorGrid, weightGrid, func(sigma, weight float64) float64 {
		return weightPrior.LogProb(weight) + errorPrior.LogProb(sigma)
	})

	mleError, mleWeight, err := estimate.MLE2D(errorGrid, weightGrid, logLik)
	if err != nil {
		return nil, fmt.Errorf("weight MLE failed: %w", err)
	}
	mapError, mapWeight, err := estimate.MAP2D(errorGrid, weightGrid, logLik, logPrior)
	if err != nil {
		return nil, fmt.Errorf("weight MAP failed: %w", err)
	}

	return &WeightResult{
		Params:       p,
		Observations: obs,
		ErrorGrid:    errorGrid,
		WeightGrid:   weightGrid,
		LogLik:       logLik,
		LogPrior:     logPrior,
		MLEError:     mleError,
		MLEWeight:    mleWeight,
		MAPError:     mapError,
		MAPWeight:    mapWeight,
	}, nil
}
