package report

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/floats"

	"github.com/pnsuau/MAP/internal/scenario"
)

// WriteComparisonPage renders an HTML page of interactive charts comparing
// the two scenarios: the coin surfaces, the weight profile, the simulated
// weighings, and a bar chart of every point estimate.
func WriteComparisonPage(path string, coin *scenario.CoinResult, weight *scenario.WeightResult) error {
	page := components.NewPage()
	page.PageTitle = "Prior comparison"
	page.AddCharts(
		coinChart(coin),
		weightChart(weight),
		observationChart(weight),
		estimateChart(coin, weight),
	)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart page: %w", err)
	}
	if err := page.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to render charts: %w", err)
	}
	return f.Close()
}

// coinChart plots the coin scenario's log surfaces over the probability grid.
func coinChart(res *scenario.CoinResult) *charts.Line {
	logPost := make([]float64, len(res.LogLik))
	floats.AddTo(logPost, res.LogLik, res.LogPriorBeta)

	xs := make([]string, len(res.Grid))
	for i, theta := range res.Grid {
		xs[i] = strconv.FormatFloat(theta, 'f', 3, 64)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Coin scenario",
			Subtitle: fmt.Sprintf("MLE=%.3f MAP(beta)=%.3f MAP(uniform)=%.3f", res.MLE, res.MAPBeta, res.MAPUniform),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "success probability"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "log density"}),
	)
	line.SetXAxis(xs).
		AddSeries("log-likelihood", lineData(res.LogLik)).
		AddSeries("log prior (beta)", lineData(res.LogPriorBeta)).
		AddSeries("log posterior (beta)", lineData(logPost))
	return line
}

// weightChart plots the weight-grid profile of the 2-D surfaces at the MAP
// error row, matching the PNG profile plot.
func weightChart(res *scenario.WeightResult) *charts.Line {
	logPost := make([]float64, len(res.LogLik))
	floats.AddTo(logPost, res.LogLik, res.LogPrior)

	cols := len(res.WeightGrid)
	errRow := gridIndex(res.ErrorGrid, res.MAPError)
	if errRow < 0 {
		errRow = 0
	}

	xs := make([]string, cols)
	for i, w := range res.WeightGrid {
		xs[i] = strconv.FormatFloat(w, 'f', 3, 64)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Weight scenario",
			Subtitle: fmt.Sprintf("profile at error %.3f; MLE=%.3f MAP=%.3f", res.MAPError, res.MLEWeight, res.MAPWeight),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "weight (kg)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "log density"}),
	)
	line.SetXAxis(xs).
		AddSeries("log-likelihood", lineData(res.LogLik[errRow*cols:(errRow+1)*cols])).
		AddSeries("log posterior", lineData(logPost[errRow*cols:(errRow+1)*cols]))
	return line
}

// observationChart scatters the simulated weighings the weight scenario was
// estimated from.
func observationChart(res *scenario.WeightResult) *charts.Scatter {
	pts := make([]opts.ScatterData, 0, len(res.Observations))
	for i, obs := range res.Observations {
		pts = append(pts, opts.ScatterData{Value: []interface{}{i + 1, obs}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Simulated weighings",
			Subtitle: fmt.Sprintf("true weight %.2f, true error %.2f, seed %d", res.Params.TrueWeight, res.Params.TrueSigma, res.Params.Seed),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: float64(len(res.Observations) + 1), Name: "weighing"}),
		charts.WithYAxisOpts(opts.YAxis{Min: res.Params.WeightMin, Max: res.Params.WeightMax, Name: "kg"}),
	)
	scatter.AddSeries("observations", pts, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))
	return scatter
}

// estimateChart bars every point estimate side by side.
func estimateChart(coin *scenario.CoinResult, weight *scenario.WeightResult) *charts.Bar {
	x := []string{
		"coin MLE", "coin MAP (beta)", "coin MAP (uniform)",
		"weight MLE", "weight MAP", "error MLE", "error MAP",
	}
	y := []opts.BarData{
		{Value: coin.MLE},
		{Value: coin.MAPBeta},
		{Value: coin.MAPUniform},
		{Value: weight.MLEWeight},
		{Value: weight.MAPWeight},
		{Value: weight.MLEError},
		{Value: weight.MAPError},
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Point estimates"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).
		AddSeries("estimates", y,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

// lineData converts a surface to chart points, marking non-finite log
// densities as missing so the chart leaves a gap instead of breaking.
func lineData(vals []float64) []opts.LineData {
	data := make([]opts.LineData, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			data[i] = opts.LineData{Value: "-"}
			continue
		}
		data[i] = opts.LineData{Value: v}
	}
	return data
}
