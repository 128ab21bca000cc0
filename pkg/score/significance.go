package score

import (
	"go.uber.org/zap"

	"github.com/coelute/coelute/pkg/core"
	"github.com/coelute/coelute/pkg/stats"
)

// SignificanceParams configures the pre-model filters.
type SignificanceParams struct {
	// MinimumMassRatio is the smallest accepted ratio of observed
	// combined mass to the sum of the two monomeric masses.
	MinimumMassRatio float64
	// MaximumSecLag is the largest accepted offset, in SEC fractions,
	// between the bait's and prey's elution peaks.
	MaximumSecLag float64
}

// SignificanceInput is the data the assessor reads. Monomers may lack
// entries for some proteins; the catalog mass then stands in for the
// calibrated monomer mass.
type SignificanceInput struct {
	Features  []core.FeatureRecord
	Proteins  []core.Protein
	Fractions []core.SecFraction
	Monomers  []core.MonomerRecord
}

// AssessSignificance applies the mass-ratio and lag filters, builds the
// empirical null from surviving decoy scores, and attaches p-value,
// q-value, and posterior error probability to every surviving feature.
// Filtered candidates are omitted from the output entirely. Target and
// decoy rows pass through identical filters; q-values and PEPs are
// computed within each label population so decoys never dilute target
// FDR. A null below stats.MinimumNullSize pins pi0 to 1 and logs a
// warning instead of silently producing optimistic q-values.
func AssessSignificance(in SignificanceInput, params SignificanceParams, logger *zap.Logger) []core.ScoredFeature {
	calibration := make(map[Tag]map[int]float64)
	for _, f := range in.Fractions {
		tag := Tag{ConditionID: f.ConditionID, ReplicateID: f.ReplicateID}
		if calibration[tag] == nil {
			calibration[tag] = make(map[int]float64)
		}
		calibration[tag][f.SecID] = f.SecMW
	}

	monomers := make(map[Tag]map[string]int)
	for _, m := range in.Monomers {
		tag := Tag{ConditionID: m.ConditionID, ReplicateID: m.ReplicateID}
		if monomers[tag] == nil {
			monomers[tag] = make(map[string]int)
		}
		monomers[tag][m.ProteinID] = m.MonomerSecID
	}

	catalog := make(map[string]float64, len(in.Proteins))
	for _, p := range in.Proteins {
		catalog[p.ProteinID] = p.ProteinMW
	}

	// monomerMass prefers the calibrated mass at the detected monomer
	// fraction and falls back to the catalog mass when no monomer
	// baseline exists for the protein in this tag.
	monomerMass := func(tag Tag, proteinID string) float64 {
		if secID, ok := monomers[tag][proteinID]; ok {
			if mw, ok := calibration[tag][secID]; ok {
				return mw
			}
		}
		return catalog[proteinID]
	}

	var survivors []core.FeatureRecord
	var massFiltered, lagFiltered int
	for _, f := range in.Features {
		tag := Tag{ConditionID: f.ConditionID, ReplicateID: f.ReplicateID}

		observed, ok := calibration[tag][f.JointApexSecID]
		if !ok {
			continue
		}
		expected := monomerMass(tag, f.BaitID) + monomerMass(tag, f.PreyID)
		if expected <= 0 || observed/expected < params.MinimumMassRatio {
			massFiltered++
			continue
		}
		if f.SecLag() > params.MaximumSecLag {
			lagFiltered++
			continue
		}
		survivors = append(survivors, f)
	}

	var targets, decoys []core.FeatureRecord
	for _, f := range survivors {
		if f.Label.IsDecoy() {
			decoys = append(decoys, f)
		} else {
			targets = append(targets, f)
		}
	}

	null := make([]float64, len(decoys))
	for i := range decoys {
		null[i] = decoys[i].Score()
	}

	nullUnreliable := len(null) < stats.MinimumNullSize
	if nullUnreliable {
		logger.Warn("decoy null too small, forcing pi0 to 1",
			zap.Int("decoys", len(null)),
			zap.Int("required", stats.MinimumNullSize),
			zap.Error(stats.ErrNullTooSmall))
	}

	scored := make([]core.ScoredFeature, 0, len(survivors))
	scored = append(scored, assessGroup(targets, null, nullUnreliable)...)
	scored = append(scored, assessGroup(decoys, null, true)...)

	logger.Info("significance assessment finished",
		zap.Int("features", len(in.Features)),
		zap.Int("mass_ratio_filtered", massFiltered),
		zap.Int("lag_filtered", lagFiltered),
		zap.Int("targets", len(targets)),
		zap.Int("decoys", len(decoys)))
	return scored
}

// assessGroup computes the statistics for one label population against
// the shared decoy null. forcePi0 pins pi0 to 1 (conservative) for the
// decoy population and for untrustworthy nulls.
func assessGroup(features []core.FeatureRecord, null []float64, forcePi0 bool) []core.ScoredFeature {
	if len(features) == 0 {
		return nil
	}

	scores := make([]float64, len(features))
	for i := range features {
		scores[i] = features[i].Score()
	}

	pvalues := stats.EmpiricalPValues(scores, null)
	pi0 := 1.0
	if !forcePi0 {
		pi0 = stats.EstimatePi0(pvalues, stats.DefaultLambdas())
	}
	qvalues := stats.QValues(pvalues, pi0)
	peps := stats.PosteriorErrorProbabilities(scores, null, pi0)

	out := make([]core.ScoredFeature, len(features))
	for i, f := range features {
		out[i] = core.ScoredFeature{
			FeatureRecord: f,
			PValue:        pvalues[i],
			QValue:        qvalues[i],
			PEP:           peps[i],
		}
	}
	return out
}
