package report

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/pnsuau/MAP/internal/scenario"
)

// Curve and marker colors shared across the PNG plots.
var (
	likColor  = color.RGBA{R: 31, G: 119, B: 180, A: 255}  // blue
	priColor  = color.RGBA{R: 255, G: 127, B: 14, A: 255}  // orange
	postColor = color.RGBA{R: 44, G: 160, B: 44, A: 255}   // green
	mleColor  = color.RGBA{R: 214, G: 39, B: 40, A: 255}   // red
	mapColor  = color.RGBA{R: 148, G: 103, B: 189, A: 255} // purple
)

// WriteCoinPlot renders the coin scenario's log-likelihood, log Beta prior,
// and log posterior over the probability grid, with dashed vertical rules at
// the MLE and the MAP estimate. It returns the path of the PNG written.
func WriteCoinPlot(dir string, res *scenario.CoinResult) (string, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Coin flips: %d successes in %d trials", res.Params.Successes, res.Params.Trials)
	p.X.Label.Text = "Success probability"
	p.Y.Label.Text = "Log density"

	logPost := make([]float64, len(res.LogLik))
	floats.AddTo(logPost, res.LogLik, res.LogPriorBeta)

	if err := addCurve(p, res.Grid, res.LogLik, "log-likelihood", likColor); err != nil {
		return "", err
	}
	priorLabel := fmt.Sprintf("log Beta(%g,%g) prior", res.Params.PriorAlpha, res.Params.PriorBeta)
	if err := addCurve(p, res.Grid, res.LogPriorBeta, priorLabel, priColor); err != nil {
		return "", err
	}
	if err := addCurve(p, res.Grid, logPost, "log posterior", postColor); err != nil {
		return "", err
	}

	lo, hi := finiteRange(res.LogLik, res.LogPriorBeta, logPost)
	if err := addMarker(p, res.MLE, lo, hi, fmt.Sprintf("MLE %.3f", res.MLE), mleColor); err != nil {
		return "", err
	}
	if err := addMarker(p, res.MAPBeta, lo, hi, fmt.Sprintf("MAP %.3f", res.MAPBeta), mapColor); err != nil {
		return "", err
	}

	p.Legend.Top = true
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	file := filepath.Join(dir, "coin_posterior.png")
	if err := p.Save(10*vg.Inch, 6*vg.Inch, file); err != nil {
		return "", fmt.Errorf("save coin plot: %w", err)
	}
	return file, nil
}

// WriteWeightPlots renders profile curves through the 2-D weight surfaces:
// log-likelihood and log posterior along the weight grid at the MAP error,
// and along the error grid at the MAP weight. It returns the paths of the
// two PNGs written.
func WriteWeightPlots(dir string, res *scenario.WeightResult) ([]string, error) {
	logPost := make([]float64, len(res.LogLik))
	floats.AddTo(logPost, res.LogLik, res.LogPrior)

	errRow := gridIndex(res.ErrorGrid, res.MAPError)
	weightCol := gridIndex(res.WeightGrid, res.MAPWeight)
	if errRow < 0 || weightCol < 0 {
		return nil, fmt.Errorf("MAP estimate (%v, %v) is not on its grid", res.MAPError, res.MAPWeight)
	}

	cols := len(res.WeightGrid)
	var written []string

	// Profile along the weight grid at the MAP error row.
	pw := plot.New()
	pw.Title.Text = fmt.Sprintf("Weight profile at error %.3f", res.MAPError)
	pw.X.Label.Text = "Weight (kg)"
	pw.Y.Label.Text = "Log density"

	likWeight := res.LogLik[errRow*cols : (errRow+1)*cols]
	postWeight := logPost[errRow*cols : (errRow+1)*cols]
	if err := addCurve(pw, res.WeightGrid, likWeight, "log-likelihood", likColor); err != nil {
		return nil, err
	}
	if err := addCurve(pw, res.WeightGrid, postWeight, "log posterior", postColor); err != nil {
		return nil, err
	}
	lo, hi := finiteRange(likWeight, postWeight)
	if err := addMarker(pw, res.MLEWeight, lo, hi, fmt.Sprintf("MLE %.3f", res.MLEWeight), mleColor); err != nil {
		return nil, err
	}
	if err := addMarker(pw, res.MAPWeight, lo, hi, fmt.Sprintf("MAP %.3f", res.MAPWeight), mapColor); err != nil {
		return nil, err
	}
	pw.Legend.Top = true
	pw.Legend.XOffs = -10
	pw.Legend.YOffs = -10

	weightFile := filepath.Join(dir, "weight_profile_weight.png")
	if err := pw.Save(10*vg.Inch, 6*vg.Inch, weightFile); err != nil {
		return nil, fmt.Errorf("save weight profile: %w", err)
	}
	written = append(written, weightFile)

	// Profile along the error grid at the MAP weight column.
	pe := plot.New()
	pe.Title.Text = fmt.Sprintf("Error profile at weight %.3f", res.MAPWeight)
	pe.X.Label.Text = "Scale error (kg)"
	pe.Y.Label.Text = "Log density"

	likError := profileCol(res.LogLik, weightCol, cols, len(res.ErrorGrid))
	postError := profileCol(logPost, weightCol, cols, len(res.ErrorGrid))
	if err := addCurve(pe, res.ErrorGrid, likError, "log-likelihood", likColor); err != nil {
		return nil, err
	}
	if err := addCurve(pe, res.ErrorGrid, postError, "log posterior", postColor); err != nil {
		return nil, err
	}
	lo, hi = finiteRange(likError, postError)
	if err := addMarker(pe, res.MLEError, lo, hi, fmt.Sprintf("MLE %.3f", res.MLEError), mleColor); err != nil {
		return nil, err
	}
	if err := addMarker(pe, res.MAPError, lo, hi, fmt.Sprintf("MAP %.3f", res.MAPError), mapColor); err != nil {
		return nil, err
	}
	pe.Legend.Top = true
	pe.Legend.XOffs = -10
	pe.Legend.YOffs = -10

	errorFile := filepath.Join(dir, "weight_profile_error.png")
	if err := pe.Save(10*vg.Inch, 6*vg.Inch, errorFile); err != nil {
		return nil, fmt.Errorf("save error profile: %w", err)
	}
	written = append(written, errorFile)

	return written, nil
}

// addCurve adds the finite points of a surface to the plot as a line.
// Non-finite log densities (zero-density or undefined points) are skipped
// because the plotter rejects them.
func addCurve(p *plot.Plot, grid, vals []float64, label string, c color.Color) error {
	pts := make(plotter.XYs, 0, len(grid))
	for i, x := range grid {
		y := vals[i]
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: x, Y: y})
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = c
	line.Width = vg.Points(1)
	p.Add(line)
	p.Legend.Add(label, line)
	return nil
}

// addMarker draws a dashed vertical rule at x spanning [ymin, ymax].
func addMarker(p *plot.Plot, x, ymin, ymax float64, label string, c color.Color) error {
	line, err := plotter.NewLine(plotter.XYs{{X: x, Y: ymin}, {X: x, Y: ymax}})
	if err != nil {
		return err
	}
	line.Color = c
	line.Width = vg.Points(1)
	line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(line)
	p.Legend.Add(label, line)
	return nil
}

// finiteRange returns the smallest and largest finite values across the
// surfaces, so markers can span the plotted data.
func finiteRange(surfaces ...[]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range surfaces {
		for _, v := range s {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if lo > hi {
		lo, hi = 0, 1
	}
	return lo, hi
}

// profileCol extracts one column of a flat row-major surface.
func profileCol(s []float64, col, cols, rows int) []float64 {
	out := make([]float64, rows)
	for i := range out {
		out[i] = s[i*cols+col]
	}
	return out
}

// gridIndex finds the position of an estimate on its grid. Estimates are
// grid values, so exact comparison is safe. Returns -1 if absent.
func gridIndex(grid []float64, v float64) int {
	for i, g := range grid {
		if g == v {
			return i
		}
	}
	return -1
}
