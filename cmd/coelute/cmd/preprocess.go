package cmd

import (
	"fmt"
	"os"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coelute/coelute/pkg/core"
	"github.com/coelute/coelute/pkg/preprocess"
	"github.com/coelute/coelute/pkg/store"
)

var (
	preprocessOut     string
	secFile           string
	netFile           string
	uniprotFile       string
	columnSpec        string
	defaultColumnSpec = strings.Join([]string{
		"run_id", "sec_id", "sec_mw", "condition_id", "replicate_id",
		"run_id", "protein_id", "peptide_id", "peptide_intensity",
	}, ",")
)

var preprocessCmd = &cobra.Command{
	Use:   "preprocess [quantification files...]",
	Short: "Import and preprocess SEC-MS data into a store file",
	Long: `Import the protein catalog (UniProt XML), the reference interaction
network, the SEC fraction calibration, and one or more peptide
quantification files into a fresh store file, derive peptide/protein
metadata, and build the candidate interaction universe including
decoys.

Examples:
  coelute preprocess pepquant1.tsv pepquant2.tsv \
    --out experiment.coelute --sec calibration.csv \
    --net string_interactions.tsv --uniprot proteome.xml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPreprocess,
}

func init() {
	preprocessCmd.Flags().StringVarP(&preprocessOut, "out", "o", "", "Output store file (required)")
	preprocessCmd.Flags().StringVar(&secFile, "sec", "", "SEC calibration file (required)")
	preprocessCmd.Flags().StringVar(&netFile, "net", "", "Reference interaction network file (required)")
	preprocessCmd.Flags().StringVar(&uniprotFile, "uniprot", "", "Reference molecular weights file in UniProt XML format (required)")
	preprocessCmd.Flags().StringVar(&columnSpec, "columns", defaultColumnSpec, "Comma-separated column names for the SEC and quantification files")
	preprocessCmd.Flags().IntVar(&params.DecoyIntensityBins, "decoy_intensity_bins", params.DecoyIntensityBins, "Number of decoy bins for intensity")
	preprocessCmd.Flags().IntVar(&params.DecoyLeftSecBins, "decoy_left_sec_bins", params.DecoyLeftSecBins, "Number of decoy bins for the left SEC boundary")
	preprocessCmd.Flags().IntVar(&params.DecoyRightSecBins, "decoy_right_sec_bins", params.DecoyRightSecBins, "Number of decoy bins for the right SEC boundary")
	preprocessCmd.Flags().Float64Var(&params.MinInteractionConfidence, "min_interaction_confidence", params.MinInteractionConfidence, "Minimum interaction confidence for network edges")
	preprocessCmd.Flags().Int64Var(&params.DecoySeed, "decoy_seed", params.DecoySeed, "Seed for deterministic decoy generation")

	preprocessCmd.MarkFlagRequired("out")
	preprocessCmd.MarkFlagRequired("sec")
	preprocessCmd.MarkFlagRequired("net")
	preprocessCmd.MarkFlagRequired("uniprot")
}

// parseColumnSpec validates the 9-name column list (5 SEC columns, 4
// quantification columns, in the documented order).
func parseColumnSpec(spec string) (preprocess.ColumnMap, error) {
	names := strings.Split(spec, ",")
	if len(names) != 9 {
		return preprocess.ColumnMap{}, fmt.Errorf("--columns needs exactly 9 names, got %d", len(names))
	}
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
		if names[i] == "" {
			return preprocess.ColumnMap{}, fmt.Errorf("--columns name %d is empty", i+1)
		}
	}
	return preprocess.ColumnMap{
		RunID:            names[0],
		SecID:            names[1],
		SecMW:            names[2],
		ConditionID:      names[3],
		ReplicateID:      names[4],
		ProteinID:        names[6],
		PeptideID:        names[7],
		PeptideIntensity: names[8],
	}, nil
}

func runPreprocess(cmd *cobra.Command, args []string) error {
	cm, err := parseColumnSpec(columnSpec)
	if err != nil {
		return err
	}

	proteins, err := readUniProtFile(uniprotFile)
	if err != nil {
		return err
	}
	logger.Info("parsed protein catalog", zap.String("file", uniprotFile), zap.Int("proteins", len(proteins)))

	network, err := readNetworkFile(netFile)
	if err != nil {
		return err
	}
	logger.Info("parsed interaction network", zap.String("file", netFile), zap.Int("edges", len(network)))

	fractions, err := readSecFile(secFile, cm)
	if err != nil {
		return err
	}
	logger.Info("parsed SEC calibration", zap.String("file", secFile), zap.Int("fractions", len(fractions)))

	validRuns := mapset.NewThreadUnsafeSet[string]()
	for _, f := range fractions {
		validRuns.Add(f.RunID)
	}

	var quant []core.Quantification
	for _, infile := range args {
		rows, err := readQuantFile(infile, cm, validRuns)
		if err != nil {
			return err
		}
		logger.Info("parsed peptide quantification", zap.String("file", infile), zap.Int("rows", len(rows)))
		quant = append(quant, rows...)
	}

	// Restrict every table to what the LC-MS/MS data actually covers.
	observed := mapset.NewThreadUnsafeSet[string]()
	usedRuns := mapset.NewThreadUnsafeSet[string]()
	for _, q := range quant {
		observed.Add(q.ProteinID)
		usedRuns.Add(q.RunID)
	}
	proteins = filterSlice(proteins, func(p core.Protein) bool { return observed.Contains(p.ProteinID) })
	network = filterSlice(network, func(e core.NetworkEdge) bool {
		return observed.Contains(e.BaitID) && observed.Contains(e.PreyID)
	})
	fractions = filterSlice(fractions, func(f core.SecFraction) bool { return usedRuns.Contains(f.RunID) })

	meta := preprocess.DeriveMeta(quant, fractions, preprocess.MetaParams{
		IntensityBins: params.DecoyIntensityBins,
		LeftSecBins:   params.DecoyLeftSecBins,
		RightSecBins:  params.DecoyRightSecBins,
	})
	queries := preprocess.BuildQueries(network, meta, observed, params.DecoySeed)
	logger.Info("built candidate universe",
		zap.Int("queries", len(queries)),
		zap.Int("peptide_meta", len(meta.PeptideMeta)),
		zap.Int("protein_meta", len(meta.ProteinMeta)))

	// Fresh store; a stale file from an earlier run is discarded.
	if err := os.Remove(preprocessOut); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing %s: %w", preprocessOut, err)
	}
	s, err := store.Open(preprocessOut)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.ReplaceProteins(proteins); err != nil {
		return err
	}
	if err := s.ReplaceNetwork(network); err != nil {
		return err
	}
	if err := s.ReplaceFractions(fractions); err != nil {
		return err
	}
	if err := s.ReplaceQuantifications(quant); err != nil {
		return err
	}
	if err := s.ReplacePeptideMeta(meta.PeptideMeta); err != nil {
		return err
	}
	if err := s.ReplaceProteinMeta(meta.ProteinMeta); err != nil {
		return err
	}
	if err := s.ReplaceQueries(queries); err != nil {
		return err
	}

	logger.Info("preprocessing finished", zap.String("store", preprocessOut))
	return nil
}

func readUniProtFile(path string) ([]core.Protein, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open UniProt file: %w", err)
	}
	defer f.Close()
	return preprocess.ReadUniProt(f)
}

func readNetworkFile(path string) ([]core.NetworkEdge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open network file: %w", err)
	}
	defer f.Close()
	return preprocess.ReadNetwork(f, params.MinInteractionConfidence)
}

func readSecFile(path string, cm preprocess.ColumnMap) ([]core.SecFraction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SEC file: %w", err)
	}
	defer f.Close()
	return preprocess.ReadFractions(f, cm)
}

func readQuantFile(path string, cm preprocess.ColumnMap, validRuns mapset.Set[string]) ([]core.Quantification, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open quantification file: %w", err)
	}
	defer f.Close()
	return preprocess.ReadQuantifications(f, cm, validRuns)
}

func filterSlice[T any](in []T, keep func(T) bool) []T {
	out := in[:0]
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
