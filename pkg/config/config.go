// Package config holds the pipeline parameters. Defaults come from the
// struct tags, may be overridden by COELUTE_* environment variables
// (optionally via a .env file), and finally by command-line flags.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Parameters is the configuration surface consumed by the core stages.
type Parameters struct {
	// Monomer detection: a fraction whose calibrated mass is at least
	// ComplexThresholdFactor times the monomeric mass is attributed to
	// complex assembly, never called a monomer.
	ComplexThresholdFactor float64 `envconfig:"COMPLEX_THRESHOLD_FACTOR" default:"2.0"`

	// Feature scoring.
	MinimumPeptides int `envconfig:"MINIMUM_PEPTIDES" default:"4"`
	MaximumPeptides int `envconfig:"MAXIMUM_PEPTIDES" default:"4"`
	MinimumOverlap  int `envconfig:"MINIMUM_OVERLAP" default:"5"`
	ChunkSize       int `envconfig:"CHUNK_SIZE" default:"50000"`

	// Significance assessment.
	MinimumMassRatio float64 `envconfig:"MINIMUM_MASS_RATIO" default:"0.2"`
	MaximumSecLag    float64 `envconfig:"MAXIMUM_SEC_LAG" default:"2.0"`

	// Quantification: interactions with q-value above this cut are not
	// carried into the quantitative matrix.
	MaximumQValue float64 `envconfig:"MAXIMUM_QVALUE" default:"0.05"`

	// Preprocessing / decoy generation.
	DecoyIntensityBins       int     `envconfig:"DECOY_INTENSITY_BINS" default:"1"`
	DecoyLeftSecBins         int     `envconfig:"DECOY_LEFT_SEC_BINS" default:"1"`
	DecoyRightSecBins        int     `envconfig:"DECOY_RIGHT_SEC_BINS" default:"1"`
	MinInteractionConfidence float64 `envconfig:"MIN_INTERACTION_CONFIDENCE" default:"0.0"`
	DecoySeed                int64   `envconfig:"DECOY_SEED" default:"4711"`
}

// Load returns the parameters with defaults and environment overrides
// applied. A missing .env file is not an error.
func Load() (Parameters, error) {
	_ = godotenv.Load()
	var p Parameters
	if err := envconfig.Process("coelute", &p); err != nil {
		return p, fmt.Errorf("failed to process environment: %w", err)
	}
	return p, nil
}

// Validate rejects invalid parameter combinations before any stage runs.
func (p Parameters) Validate() error {
	if p.ComplexThresholdFactor <= 1 {
		return fmt.Errorf("complex_threshold_factor must be greater than 1, got %g", p.ComplexThresholdFactor)
	}
	if p.MinimumPeptides < 1 {
		return fmt.Errorf("minimum_peptides must be at least 1, got %d", p.MinimumPeptides)
	}
	if p.MinimumPeptides > p.MaximumPeptides {
		return fmt.Errorf("minimum_peptides (%d) must not exceed maximum_peptides (%d)", p.MinimumPeptides, p.MaximumPeptides)
	}
	if p.MinimumOverlap < 1 {
		return fmt.Errorf("minimum_overlap must be at least 1, got %d", p.MinimumOverlap)
	}
	if p.ChunkSize < 1 {
		return fmt.Errorf("chunck_size must be positive, got %d", p.ChunkSize)
	}
	if p.MinimumMassRatio < 0 || p.MinimumMassRatio > 1 {
		return fmt.Errorf("minimum_mass_ratio must be within [0,1], got %g", p.MinimumMassRatio)
	}
	if p.MaximumSecLag < 0 {
		return fmt.Errorf("maximum_sec_lag must be non-negative, got %g", p.MaximumSecLag)
	}
	if p.MaximumQValue <= 0 || p.MaximumQValue > 1 {
		return fmt.Errorf("maximum_qvalue must be within (0,1], got %g", p.MaximumQValue)
	}
	if p.DecoyIntensityBins < 1 || p.DecoyLeftSecBins < 1 || p.DecoyRightSecBins < 1 {
		return fmt.Errorf("decoy bin counts must be at least 1")
	}
	if p.MinInteractionConfidence < 0 || p.MinInteractionConfidence > 1 {
		return fmt.Errorf("min_interaction_confidence must be within [0,1], got %g", p.MinInteractionConfidence)
	}
	return nil
}
