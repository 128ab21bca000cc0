package score

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/coelute/coelute/pkg/core"
)

// fixture accumulates the reference tables of a synthetic experiment.
// Runs are keyed by (condition, replicate, fraction) with one run per
// fraction, which is how SEC acquisitions are laid out in practice.
type fixture struct {
	fractions []core.SecFraction
	quant     []core.Quantification
	meta      []core.PeptideMeta
	proteins  []core.Protein
}

func testRunID(cond, rep string, secID int) string {
	return fmt.Sprintf("%s_%s_%02d", cond, rep, secID)
}

func (fx *fixture) addFraction(cond, rep string, secID int, secMW float64) {
	fx.fractions = append(fx.fractions, core.SecFraction{
		RunID:       testRunID(cond, rep, secID),
		SecID:       secID,
		SecMW:       secMW,
		ConditionID: cond,
		ReplicateID: rep,
	})
}

// addPeptide records one peptide's trace, scaled, and registers its rank.
func (fx *fixture) addPeptide(cond, rep, proteinID, peptideID string, rank int, trace map[int]float64, scale float64) {
	for secID, v := range trace {
		fx.quant = append(fx.quant, core.Quantification{
			RunID:            testRunID(cond, rep, secID),
			ProteinID:        proteinID,
			PeptideID:        peptideID,
			PeptideIntensity: v * scale,
		})
	}
	for _, m := range fx.meta {
		if m.PeptideID == peptideID && m.ProteinID == proteinID {
			return
		}
	}
	fx.meta = append(fx.meta, core.PeptideMeta{
		PeptideID:   peptideID,
		ProteinID:   proteinID,
		PeptideRank: rank,
	})
}

func (fx *fixture) addProtein(proteinID string, mw float64) {
	fx.proteins = append(fx.proteins, core.Protein{
		ProteinID:   proteinID,
		ProteinName: proteinID,
		ProteinMW:   mw,
	})
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
