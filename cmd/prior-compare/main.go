// Package main provides the prior comparison driver. It runs the coin and
// weight estimation scenarios, persists the point estimates, and writes the
// report artifacts (PNG plots, HTML charts, CSV summary) to the output
// directory.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/pnsuau/MAP/internal/config"
	"github.com/pnsuau/MAP/internal/report"
	"github.com/pnsuau/MAP/internal/scenario"
	"github.com/pnsuau/MAP/internal/store"
	"github.com/pnsuau/MAP/internal/version"
)

// Config holds the resolved CLI options.
type Config struct {
	ConfigFile  string
	OutputDir   string
	DBPath      string
	Seed        uint64
	ShowVersion bool
}

func parseFlags() Config {
	cfg := Config{}

	flag.StringVar(&cfg.ConfigFile, "config", "", "Path to JSON config file (optional)")
	flag.StringVar(&cfg.OutputDir, "out", "", "Output directory for report artifacts (overrides config)")
	flag.StringVar(&cfg.DBPath, "db", "", "SQLite database path (overrides config)")
	flag.Uint64Var(&cfg.Seed, "seed", 0, "Weighing simulation seed (0 keeps the configured seed)")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Print version and exit")

	flag.Parse()

	return cfg
}

func main() {
	cli := parseFlags()

	if cli.ShowVersion {
		fmt.Printf("prior-compare %s\n", version.String())
		return
	}
	log.Printf("prior-compare %s", version.String())

	cfg := config.EmptyCompareConfig()
	if cli.ConfigFile != "" {
		var err error
		cfg, err = config.LoadCompareConfig(cli.ConfigFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	outputDir := cfg.GetOutputDir()
	if cli.OutputDir != "" {
		outputDir = cli.OutputDir
	}
	dbPath := cfg.GetDBPath()
	if cli.DBPath != "" {
		dbPath = cli.DBPath
	}

	weightParams := cfg.WeightParams()
	if cli.Seed != 0 {
		weightParams.Seed = cli.Seed
	}

	coin, err := scenario.RunCoin(cfg.CoinParams())
	if err != nil {
		log.Fatalf("Coin scenario failed: %v", err)
	}
	weight, err := scenario.RunWeight(weightParams)
	if err != nil {
		log.Fatalf("Weight scenario failed: %v", err)
	}

	runID := uuid.NewString()
	if err := persistEstimates(dbPath, runID, coin, weight); err != nil {
		log.Fatalf("Failed to persist estimates: %v", err)
	}

	written, err := report.WriteAll(outputDir, coin, weight)
	if err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
	for _, path := range written {
		log.Printf("Wrote %s", path)
	}

	printResults(runID, coin, weight)
}

// persistEstimates records every point estimate of the run in the store.
func persistEstimates(dbPath, runID string, coin *scenario.CoinResult, weight *scenario.WeightResult) error {
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.MigrateUp(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	estimates := []store.Estimate{
		{RunID: runID, Scenario: "coin", Estimator: "mle", Parameter: "theta", Value: coin.MLE},
		{RunID: runID, Scenario: "coin", Estimator: "map", Prior: "beta", Parameter: "theta", Value: coin.MAPBeta},
		{RunID: runID, Scenario: "coin", Estimator: "map", Prior: "uniform", Parameter: "theta", Value: coin.MAPUniform},
		{RunID: runID, Scenario: "weight", Estimator: "mle", Parameter: "weight", Value: weight.MLEWeight},
		{RunID: runID, Scenario: "weight", Estimator: "mle", Parameter: "error", Value: weight.MLEError},
		{RunID: runID, Scenario: "weight", Estimator: "map", Prior: "normal", Parameter: "weight", Value: weight.MAPWeight},
		{RunID: runID, Scenario: "weight", Estimator: "map", Prior: "invgamma", Parameter: "error", Value: weight.MAPError},
	}
	for _, e := range estimates {
		if _, err := s.InsertEstimate(e); err != nil {
			return fmt.Errorf("insert estimate: %w", err)
		}
	}
	return nil
}

func printResults(runID string, coin *scenario.CoinResult, weight *scenario.WeightResult) {
	fmt.Println("\n=== Prior Comparison Results ===")
	fmt.Printf("Run ID: %s\n", runID)

	fmt.Println("\n--- Coin scenario ---")
	fmt.Printf("Observed: %d successes in %d trials\n", coin.Params.Successes, coin.Params.Trials)
	fmt.Printf("MLE:                 %.4f\n", coin.MLE)
	fmt.Printf("MAP Beta(%g,%g) prior: %.4f\n", coin.Params.PriorAlpha, coin.Params.PriorBeta, coin.MAPBeta)
	fmt.Printf("MAP uniform prior:   %.4f\n", coin.MAPUniform)

	fmt.Println("\n--- Weight scenario ---")
	fmt.Printf("Observations: %d weighings around %.2f kg (seed %d)\n",
		len(weight.Observations), weight.Params.TrueWeight, weight.Params.Seed)
	fmt.Printf("MLE: weight %.4f, error %.4f\n", weight.MLEWeight, weight.MLEError)
	fmt.Printf("MAP: weight %.4f, error %.4f\n", weight.MAPWeight, weight.MAPError)
}
