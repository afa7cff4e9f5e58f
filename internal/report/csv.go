package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/pnsuau/MAP/internal/scenario"
)

// SummaryWriter wraps csv.Writer with methods for estimate summary output.
type SummaryWriter struct {
	w *csv.Writer
}

// NewSummaryWriter creates a SummaryWriter emitting CSV to w.
func NewSummaryWriter(w io.Writer) *SummaryWriter {
	return &SummaryWriter{w: csv.NewWriter(w)}
}

// WriteHeader writes the summary column names.
func (s *SummaryWriter) WriteHeader() {
	s.w.Write([]string{"scenario", "estimator", "prior", "parameter", "value"})
}

// WriteRow writes a single estimate row.
func (s *SummaryWriter) WriteRow(scenario, estimator, prior, parameter string, value float64) {
	s.w.Write([]string{scenario, estimator, prior, parameter, fmt.Sprintf("%.6f", value)})
}

// WriteCoin writes the coin scenario's three estimates.
func (s *SummaryWriter) WriteCoin(res *scenario.CoinResult) {
	s.WriteRow("coin", "mle", "", "theta", res.MLE)
	s.WriteRow("coin", "map", "beta", "theta", res.MAPBeta)
	s.WriteRow("coin", "map", "uniform", "theta", res.MAPUniform)
}

// WriteWeight writes the weight scenario's four estimates.
func (s *SummaryWriter) WriteWeight(res *scenario.WeightResult) {
	s.WriteRow("weight", "mle", "", "weight", res.MLEWeight)
	s.WriteRow("weight", "mle", "", "error", res.MLEError)
	s.WriteRow("weight", "map", "normal", "weight", res.MAPWeight)
	s.WriteRow("weight", "map", "invgamma", "error", res.MAPError)
}

// Flush flushes buffered rows and reports any write error.
func (s *SummaryWriter) Flush() error {
	s.w.Flush()
	return s.w.Error()
}
