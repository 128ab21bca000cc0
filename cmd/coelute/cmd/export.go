package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coelute/coelute/pkg/store"
)

var exportIn string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export result tables to CSV files",
	Long: `Flatten the differential result tables to CSV files next to the
store: <base>_nodes.csv, <base>_nodes_level.csv,
<base>_edges_directional.csv, <base>_edges.csv, <base>_edges_level.csv.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportIn, "in", "i", "", "Input store file (required)")
	exportCmd.MarkFlagRequired("in")
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := store.Open(exportIn)
	if err != nil {
		return err
	}
	defer s.Close()

	base := strings.TrimSuffix(exportIn, filepath.Ext(exportIn))
	exports := []struct {
		table  string
		suffix string
	}{
		{"NODE", "_nodes.csv"},
		{"NODE_LEVEL", "_nodes_level.csv"},
		{"EDGE_DIRECTIONAL", "_edges_directional.csv"},
		{"EDGE", "_edges.csv"},
		{"EDGE_LEVEL", "_edges_level.csv"},
	}

	for _, e := range exports {
		outfile := base + e.suffix
		if err := exportTable(s, e.table, outfile); err != nil {
			return err
		}
		logger.Info("exported table", zap.String("table", e.table), zap.String("file", outfile))
	}
	return nil
}

func exportTable(s *store.Store, table, outfile string) error {
	header, records, err := s.ReadTable(table)
	if err != nil {
		return err
	}

	f, err := os.Create(outfile)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outfile, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", outfile, err)
	}
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("failed to write %s row: %w", outfile, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", outfile, err)
	}
	return nil
}
