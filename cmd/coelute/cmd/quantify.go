package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coelute/coelute/pkg/quantify"
	"github.com/coelute/coelute/pkg/store"
)

var (
	quantifyIn  string
	quantifyOut string
)

var quantifyCmd = &cobra.Command{
	Use:   "quantify",
	Short: "Quantify protein and interaction features in SEC data",
	Long: `Build the complex-region quantitative matrix from significant
interactions and test abundance differences between every pair of
conditions, for edges and nodes, at pooled and replicate level.

Writes the COMPLEX_QM, EDGE_DIRECTIONAL, EDGE, EDGE_LEVEL, NODE, and
NODE_LEVEL tables, replacing any prior content.`,
	RunE: runQuantify,
}

func init() {
	quantifyCmd.Flags().StringVarP(&quantifyIn, "in", "i", "", "Input store file (required)")
	quantifyCmd.Flags().StringVarP(&quantifyOut, "out", "o", "", "Output store file (defaults to --in, modified in place)")
	quantifyCmd.Flags().Float64Var(&params.MaximumQValue, "maximum_qvalue", params.MaximumQValue, "Maximum interaction q-value carried into the quantitative matrix")

	quantifyCmd.MarkFlagRequired("in")
}

func runQuantify(cmd *cobra.Command, args []string) error {
	outfile, err := resolveOutfile(quantifyIn, quantifyOut)
	if err != nil {
		return err
	}

	s, err := store.Open(outfile)
	if err != nil {
		return err
	}
	defer s.Close()

	scored, err := s.ScoredFeatures()
	if err != nil {
		return err
	}
	monomers, err := s.Monomers()
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

	logger.Info("building quantitative matrix", zap.String("store", outfile))
	m := quantify.BuildMatrix(quantify.MatrixInput{
		Scored:         scored,
		Monomers:       monomers,
		Fractions:      fractions,
		Quantification: quant,
	}, quantify.MatrixParams{
		MaximumQValue: params.MaximumQValue,
	}, logger)
	if err := s.ReplaceComplexQM(m.Entries); err != nil {
		return err
	}

	logger.Info("assessing differential features")
	res := quantify.RunDifferentialTests(m, logger)
	if err := s.ReplaceDifferential("EDGE_DIRECTIONAL", res.EdgeDirectional, false, true); err != nil {
		return err
	}
	if err := s.ReplaceDifferential("EDGE", res.Edge, false, false); err != nil {
		return err
	}
	if err := s.ReplaceDifferential("EDGE_LEVEL", res.EdgeLevel, true, false); err != nil {
		return err
	}
	if err := s.ReplaceDifferential("NODE", res.Node, false, false); err != nil {
		return err
	}
	if err := s.ReplaceDifferential("NODE_LEVEL", res.NodeLevel, true, false); err != nil {
		return err
	}

	logger.Info("quantification finished", zap.String("store", outfile))
	return nil
}
