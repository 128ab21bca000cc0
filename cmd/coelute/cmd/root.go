// Package cmd provides CLI command implementations
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coelute/coelute/pkg/config"
)

var (
	verbose bool
	logger  *zap.Logger

	// params starts from environment-aware defaults; command flags
	// override individual fields before validation.
	params, paramsErr = config.Load()
)

var rootCmd = &cobra.Command{
	Use:   "coelute",
	Short: "coelute - SEC-MS co-elution analysis toolkit",
	Long: `coelute analyzes size-exclusion chromatography mass-spectrometry
(SEC-MS) co-elution profiles to infer protein complex assembly and to
statistically test candidate protein-protein interactions across
conditions and replicates.

Pipeline commands run in order against one store file:

  preprocess  import reference and quantification data
  score       detect monomers, score candidate pairs, assess significance
  quantify    build the complex quantitative matrix and test conditions
  export      flatten result tables to CSV`,
	Version: "1.0.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if paramsErr != nil {
			return paramsErr
		}
		if err := params.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose (development) log output")

	rootCmd.AddCommand(preprocessCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(quantifyCmd)
	rootCmd.AddCommand(exportCmd)
}

// resolveOutfile implements the shared --in/--out convention: with no
// --out the input store is modified in place, otherwise the input file
// is copied to the output path and all writes go there.
func resolveOutfile(infile, outfile string) (string, error) {
	if outfile == "" || outfile == infile {
		return infile, nil
	}
	if err := copyFile(infile, outfile); err != nil {
		return "", err
	}
	return outfile, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return out.Sync()
}
