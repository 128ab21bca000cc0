package score

import (
	"sort"

	"go.uber.org/zap"

	"github.com/coelute/coelute/pkg/core"
)

// MonomerParams configures monomer detection.
type MonomerParams struct {
	// ComplexThresholdFactor excludes fractions whose calibrated mass is
	// at least this multiple of the monomeric mass: elution there is
	// attributed to complex assembly, not free monomer.
	ComplexThresholdFactor float64
}

// MonomerInput is the reference data monomer detection reads.
type MonomerInput struct {
	Proteins       []core.Protein
	Fractions      []core.SecFraction
	Quantification []core.Quantification
}

// DetectMonomers locates, per (protein, condition, replicate), the SEC
// fraction of the protein's unassembled elution peak: the intensity
// apex among fractions whose calibrated mass stays below
// ComplexThresholdFactor times the monomeric mass. Proteins without a
// catalog mass, without usable signal, or whose only peaks sit in the
// complex range are skipped.
func DetectMonomers(in MonomerInput, params MonomerParams, logger *zap.Logger) []core.MonomerRecord {
	catalog := make(map[string]float64, len(in.Proteins))
	for _, p := range in.Proteins {
		if p.ProteinMW > 0 {
			catalog[p.ProteinID] = p.ProteinMW
		}
	}

	indexes := buildRunIndexes(in.Fractions, in.Quantification)

	var records []core.MonomerRecord
	var skipped int
	for _, idx := range indexes {
		proteinIDs := make([]string, 0, len(idx.protein))
		for pid := range idx.protein {
			proteinIDs = append(proteinIDs, pid)
		}
		sort.Strings(proteinIDs)

		for _, pid := range proteinIDs {
			mw, ok := catalog[pid]
			if !ok {
				skipped++
				continue
			}
			threshold := params.ComplexThresholdFactor * mw

			monomeric := make(map[int]float64)
			for secID, intensity := range idx.protein[pid] {
				if idx.secMW[secID] < threshold {
					monomeric[secID] = intensity
				}
			}
			apex, ok := apexFraction(monomeric)
			if !ok {
				skipped++
				continue
			}
			records = append(records, core.MonomerRecord{
				ProteinID:    pid,
				ConditionID:  idx.tag.ConditionID,
				ReplicateID:  idx.tag.ReplicateID,
				MonomerSecID: apex,
			})
		}
	}

	logger.Info("monomer detection finished",
		zap.Int("records", len(records)),
		zap.Int("skipped", skipped),
		zap.Float64("complex_threshold_factor", params.ComplexThresholdFactor))
	return records
}
