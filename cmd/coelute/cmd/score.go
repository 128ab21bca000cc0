package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coelute/coelute/pkg/score"
	"github.com/coelute/coelute/pkg/store"
)

var (
	scoreIn  string
	scoreOut string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score protein and interaction features in SEC data",
	Long: `Detect monomer elution points, score every candidate interaction
(true and decoy) for MIC/TIC co-elution per condition and replicate,
and assess statistical significance against the decoy null.

Writes the MONOMER, FEATURE, and FEATURE_SCORED tables, replacing any
prior content.

Examples:
  # Score in place with default thresholds
  coelute score --in experiment.coelute

  # Score into a copy with stricter filtering
  coelute score --in experiment.coelute --out scored.coelute \
    --minimum_peptides 3 --maximum_sec_lag 1`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreIn, "in", "i", "", "Input store file (required)")
	scoreCmd.Flags().StringVarP(&scoreOut, "out", "o", "", "Output store file (defaults to --in, modified in place)")
	scoreCmd.Flags().Float64Var(&params.ComplexThresholdFactor, "complex_threshold_factor", params.ComplexThresholdFactor, "Factor threshold to consider a feature a complex rather than a monomer")
	scoreCmd.Flags().IntVar(&params.MinimumPeptides, "minimum_peptides", params.MinimumPeptides, "Minimum number of peptides required to score an interaction")
	scoreCmd.Flags().IntVar(&params.MaximumPeptides, "maximum_peptides", params.MaximumPeptides, "Maximum number of peptides used to score an interaction")
	scoreCmd.Flags().IntVar(&params.MinimumOverlap, "minimum_overlap", params.MinimumOverlap, "Minimum number of overlapping fractions required to score an interaction")
	scoreCmd.Flags().Float64Var(&params.MinimumMassRatio, "minimum_mass_ratio", params.MinimumMassRatio, "Minimum ratio of observed to expected combined mass")
	scoreCmd.Flags().Float64Var(&params.MaximumSecLag, "maximum_sec_lag", params.MaximumSecLag, "Maximum lag in SEC units between interaction subunits")
	scoreCmd.Flags().IntVar(&params.ChunkSize, "chunck_size", params.ChunkSize, "Chunck size for candidate batch processing")

	scoreCmd.MarkFlagRequired("in")
}

func runScore(cmd *cobra.Command, args []string) error {
	outfile, err := resolveOutfile(scoreIn, scoreOut)
	if err != nil {
		return err
	}

	s, err := store.Open(outfile)
	if err != nil {
		return err
	}
	defer s.Close()

	proteins, err := s.Proteins()
	if err != nil {
		return err
	}
	fractions, err := s.Fractions()
	if err != nil {
		return err
	}
	quant, err := s.Quantifications()
	if err != nil {
		return err
	}
	peptideMeta, err := s.PeptideMeta()
	if err != nil {
		return err
	}
	queries, err := s.Queries()
	if err != nil {
		return err
	}

	logger.Info("detecting monomers", zap.String("store", outfile))
	monomers := score.DetectMonomers(score.MonomerInput{
		Proteins:       proteins,
		Fractions:      fractions,
		Quantification: quant,
	}, score.MonomerParams{
		ComplexThresholdFactor: params.ComplexThresholdFactor,
	}, logger)
	if err := s.ReplaceMonomers(monomers); err != nil {
		return err
	}

	logger.Info("scoring features")
	features := score.ScoreFeatures(score.ScoringInput{
		Queries:        queries,
		Fractions:      fractions,
		Quantification: quant,
		PeptideMeta:    peptideMeta,
	}, score.ScoringParams{
		MinimumPeptides: params.MinimumPeptides,
		MaximumPeptides: params.MaximumPeptides,
		MinimumOverlap:  params.MinimumOverlap,
		ChunkSize:       params.ChunkSize,
	}, logger)
	if err := s.ReplaceFeatures(features); err != nil {
		return err
	}

	logger.Info("assessing significance")
	scored := score.AssessSignificance(score.SignificanceInput{
		Features:  features,
		Proteins:  proteins,
		Fractions: fractions,
		Monomers:  monomers,
	}, score.SignificanceParams{
		MinimumMassRatio: params.MinimumMassRatio,
		MaximumSecLag:    params.MaximumSecLag,
	}, logger)
	if err := s.ReplaceScoredFeatures(scored); err != nil {
		return err
	}

	logger.Info("scoring finished", zap.String("store", outfile))
	return nil
}
