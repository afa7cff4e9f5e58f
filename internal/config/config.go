// Package config loads the JSON configuration of the prior comparison
// runs. Fields omitted from the file fall back to the reference scenario
// parameters, so partial configs are safe and the zero config reproduces
// the reference results exactly.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pnsuau/MAP/internal/scenario"
)

// CompareConfig represents the root configuration for a comparison run.
type CompareConfig struct {
	// Coin scenario params
	CoinTrials     *int     `json:"coin_trials,omitempty"`
	CoinSuccesses  *int     `json:"coin_successes,omitempty"`
	CoinGridSize   *int     `json:"coin_grid_size,omitempty"`
	CoinGridMin    *float64 `json:"coin_grid_min,omitempty"`
	CoinPriorAlpha *float64 `json:"coin_prior_alpha,omitempty"`
	CoinPriorBeta  *float64 `json:"coin_prior_beta,omitempty"`

	// Weight scenario params
	TrueWeight       *float64 `json:"true_weight,omitempty"`
	TrueSigma        *float64 `json:"true_sigma,omitempty"`
	Observations     *int     `json:"observations,omitempty"`
	Seed             *uint64  `json:"seed,omitempty"`
	WeightGridSize   *int     `json:"weight_grid_size,omitempty"`
	WeightMin        *float64 `json:"weight_min,omitempty"`
	WeightMax        *float64 `json:"weight_max,omitempty"`
	ErrorGridSize    *int     `json:"error_grid_size,omitempty"`
	ErrorMin         *float64 `json:"error_min,omitempty"`
	ErrorMax         *float64 `json:"error_max,omitempty"`
	WeightPriorMu    *float64 `json:"weight_prior_mu,omitempty"`
	WeightPriorSigma *float64 `json:"weight_prior_sigma,omitempty"`
	ErrorPriorAlpha  *float64 `json:"error_prior_alpha,omitempty"`
	ErrorPriorBeta   *float64 `json:"error_prior_beta,omitempty"`

	// Output params
	OutputDir *string `json:"output_dir,omitempty"`
	DBPath    *string `json:"db_path,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }
func ptrUint64(v uint64) *uint64    { return &v }

// EmptyCompareConfig returns a CompareConfig with all fields set to nil,
// which reproduces the reference scenarios.
func EmptyCompareConfig() *CompareConfig {
	return &CompareConfig{}
}

// LoadCompareConfig loads a CompareConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadCompareConfig(path string) (*CompareConfig, error) {
	// Validate the config file path.
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse JSON into empty config. The accessor methods provide fallback
	// defaults for any fields not specified in the JSON.
	cfg := EmptyCompareConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *CompareConfig) Validate() error {
	if c.CoinTrials != nil && *c.CoinTrials < 1 {
		return fmt.Errorf("coin_trials must be positive, got %d", *c.CoinTrials)
	}
	if c.CoinSuccesses != nil {
		if *c.CoinSuccesses < 0 {
			return fmt.Errorf("coin_successes must be non-negative, got %d", *c.CoinSuccesses)
		}
		trials := c.CoinParams().Trials
		if *c.CoinSuccesses > trials {
			return fmt.Errorf("coin_successes (%d) cannot exceed coin_trials (%d)", *c.CoinSuccesses, trials)
		}
	}
	if c.CoinGridSize != nil && *c.CoinGridSize < 2 {
		return fmt.Errorf("coin_grid_size must be at least 2, got %d", *c.CoinGridSize)
	}
	if c.CoinGridMin != nil && (*c.CoinGridMin <= 0 || *c.CoinGridMin >= 1) {
		return fmt.Errorf("coin_grid_min must be in (0, 1), got %f", *c.CoinGridMin)
	}

	if c.TrueSigma != nil && *c.TrueSigma <= 0 {
		return fmt.Errorf("true_sigma must be positive, got %f", *c.TrueSigma)
	}
	if c.Observations != nil && *c.Observations < 1 {
		return fmt.Errorf("observations must be positive, got %d", *c.Observations)
	}
	if c.WeightGridSize != nil && *c.WeightGridSize < 2 {
		return fmt.Errorf("weight_grid_size must be at least 2, got %d", *c.WeightGridSize)
	}
	if c.ErrorGridSize != nil && *c.ErrorGridSize < 2 {
		return fmt.Errorf("error_grid_size must be at least 2, got %d", *c.ErrorGridSize)
	}

	wp := c.WeightParams()
	if wp.WeightMin >= wp.WeightMax {
		return fmt.Errorf("weight_min (%f) must be below weight_max (%f)", wp.WeightMin, wp.WeightMax)
	}
	if wp.ErrorMin >= wp.ErrorMax {
		return fmt.Errorf("error_min (%f) must be below error_max (%f)", wp.ErrorMin, wp.ErrorMax)
	}
	if wp.ErrorMin <= 0 {
		return fmt.Errorf("error_min must be positive, got %f", wp.ErrorMin)
	}
	if wp.WeightPriorSigma <= 0 {
		return fmt.Errorf("weight_prior_sigma must be positive, got %f", wp.WeightPriorSigma)
	}

	return nil
}

// CoinParams returns the coin scenario parameters with config overrides
// applied over the reference defaults.
func (c *CompareConfig) CoinParams() scenario.CoinParams {
	p := scenario.DefaultCoinParams()
	if c.CoinTrials != nil {
		p.Trials = *c.CoinTrials
	}
	if c.CoinSuccesses != nil {
		p.Successes = *c.CoinSuccesses
	}
	if c.CoinGridSize != nil {
		p.GridSize = *c.CoinGridSize
	}
	if c.CoinGridMin != nil {
		p.GridMin = *c.CoinGridMin
	}
	if c.CoinPriorAlpha != nil {
		p.PriorAlpha = *c.CoinPriorAlpha
	}
	if c.CoinPriorBeta != nil {
		p.PriorBeta = *c.CoinPriorBeta
	}
	return p
}

// WeightParams returns the weight scenario parameters with config
// overrides applied over the reference defaults.
func (c *CompareConfig) WeightParams() scenario.WeightParams {
	p := scenario.DefaultWeightParams()
	if c.TrueWeight != nil {
		p.TrueWeight = *c.TrueWeight
	}
	if c.TrueSigma != nil {
		p.TrueSigma = *c.TrueSigma
	}
	if c.Observations != nil {
		p.Observations = *c.Observations
	}
	if c.Seed != nil {
		p.Seed = *c.Seed
	}
	if c.WeightGridSize != nil {
		p.WeightGridSize = *c.WeightGridSize
	}
	if c.WeightMin != nil {
		p.WeightMin = *c.WeightMin
	}
	if c.WeightMax != nil {
		p.WeightMax = *c.WeightMax
	}
	if c.ErrorGridSize != nil {
		p.ErrorGridSize = *c.ErrorGridSize
	}
	if c.ErrorMin != nil {
		p.ErrorMin = *c.ErrorMin
	}
	if c.ErrorMax != nil {
		p.ErrorMax = *c.ErrorMax
	}
	if c.WeightPriorMu != nil {
		p.WeightPriorMu = *c.WeightPriorMu
	}
	if c.WeightPriorSigma != nil {
		p.WeightPriorSigma = *c.WeightPriorSigma
	}
	if c.ErrorPriorAlpha != nil {
		p.ErrorPriorAlpha = *c.ErrorPriorAlpha
	}
	if c.ErrorPriorBeta != nil {
		p.ErrorPriorBeta = *c.ErrorPriorBeta
	}
	return p
}

// GetOutputDir returns the output_dir value or the default.
func (c *CompareConfig) GetOutputDir() string {
	if c.OutputDir == nil || *c.OutputDir == "" {
		return "out"
	}
	return *c.OutputDir
}

// GetDBPath returns the db_path value or the default.
func (c *CompareConfig) GetDBPath() string {
	if c.DBPath == nil || *c.DBPath == "" {
		return "estimates.db"
	}
	return *c.DBPath
}
