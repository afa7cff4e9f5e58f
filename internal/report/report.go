// Package report renders estimation results into files: PNG curve plots of
// the log surfaces, an HTML page of interactive comparison charts, and a CSV
// summary of the point estimates.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pnsuau/MAP/internal/scenario"
)

// WriteAll renders every report artifact into dir, creating the directory if
// needed. It returns the paths of the files written.
func WriteAll(dir string, coin *scenario.CoinResult, weight *scenario.WeightResult) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	var written []string

	coinPlot, err := WriteCoinPlot(dir, coin)
	if err != nil {
		return written, fmt.Errorf("coin plot: %w", err)
	}
	written = append(written, coinPlot)

	weightPlots, err := WriteWeightPlots(dir, weight)
	if err != nil {
		return written, fmt.Errorf("weight plots: %w", err)
	}
	written = append(written, weightPlots...)

	chartPage := filepath.Join(dir, "comparison.html")
	if err := WriteComparisonPage(chartPage, coin, weight); err != nil {
		return written, fmt.Errorf("comparison page: %w", err)
	}
	written = append(written, chartPage)

	csvFile := filepath.Join(dir, "estimates.csv")
	if err := writeSummaryFile(csvFile, coin, weight); err != nil {
		return written, fmt.Errorf("estimate summary: %w", err)
	}
	written = append(written, csvFile)

	return written, nil
}

// writeSummaryFile writes the CSV estimate summary to path.
func writeSummaryFile(path string, coin *scenario.CoinResult, weight *scenario.WeightResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary file: %w", err)
	}

	w := NewSummaryWriter(f)
	w.WriteHeader()
	w.WriteCoin(coin)
	w.WriteWeight(weight)
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write summary rows: %w", err)
	}
	return f.Close()
}
