package score

import (
	"math"
	"testing"

	"github.com/coelute/coelute/pkg/core"
)

// significanceFixture calibrates fractions 1..20 from 480 kDa down to
// 100 kDa for one condition/replicate.
func significanceFixture() []core.SecFraction {
	var fractions []core.SecFraction
	for secID := 1; secID <= 20; secID++ {
		fractions = append(fractions, core.SecFraction{
			RunID:       testRunID("c1", "r1", secID),
			SecID:       secID,
			SecMW:       500 - 20*float64(secID),
			ConditionID: "c1",
			ReplicateID: "r1",
		})
	}
	return fractions
}

func feature(bait, prey string, label core.Label, score float64, baitApex, preyApex, jointApex int) core.FeatureRecord {
	return core.FeatureRecord{
		BaitID:         bait,
		PreyID:         prey,
		Label:          label,
		ConditionID:    "c1",
		ReplicateID:    "r1",
		MIC:            score,
		TIC:            score,
		BaitPeptides:   2,
		PreyPeptides:   2,
		Overlap:        10,
		BaitApexSecID:  baitApex,
		PreyApexSecID:  preyApex,
		JointApexSecID: jointApex,
	}
}

func TestAssessSignificanceSecLagBoundary(t *testing.T) {
	tests := []struct {
		name     string
		preyApex int
		want     int
	}{
		{name: "at the limit", preyApex: 12, want: 1},
		{name: "beyond the limit", preyApex: 13, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := SignificanceInput{
				Features: []core.FeatureRecord{
					feature("P1", "P2", core.Target, 0.9, 10, tt.preyApex, 10),
				},
				Proteins: []core.Protein{
					{ProteinID: "P1", ProteinMW: 100},
					{ProteinID: "P2", ProteinMW: 100},
				},
				Fractions: significanceFixture(),
			}
			got := AssessSignificance(in, SignificanceParams{MaximumSecLag: 2}, testLogger())
			if len(got) != tt.want {
				t.Errorf("expected %d scored features, got %d", tt.want, len(got))
			}
		})
	}
}

func TestAssessSignificanceMassRatioFilter(t *testing.T) {
	tests := []struct {
		name string
		mw   float64
		want int
	}{
		// Joint apex at fraction 20 is calibrated to 100 kDa.
		{name: "ratio above minimum", mw: 100, want: 1},
		{name: "ratio below minimum", mw: 300, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := SignificanceInput{
				Features: []core.FeatureRecord{
					feature("P1", "P2", core.Target, 0.9, 20, 20, 20),
				},
				Proteins: []core.Protein{
					{ProteinID: "P1", ProteinMW: tt.mw},
					{ProteinID: "P2", ProteinMW: tt.mw},
				},
				Fractions: significanceFixture(),
			}
			got := AssessSignificance(in, SignificanceParams{MinimumMassRatio: 0.2, MaximumSecLag: 2}, testLogger())
			if len(got) != tt.want {
				t.Errorf("expected %d scored features, got %d", tt.want, len(got))
			}
		})
	}
}

func TestAssessSignificanceMonomerCalibratedMass(t *testing.T) {
	// Catalog masses alone would fail the ratio filter; the calibrated
	// monomer fractions pull the expected mass down below it.
	in := SignificanceInput{
		Features: []core.FeatureRecord{
			feature("P1", "P2", core.Target, 0.9, 20, 20, 20),
		},
		Proteins: []core.Protein{
			{ProteinID: "P1", ProteinMW: 300},
			{ProteinID: "P2", ProteinMW: 300},
		},
		Fractions: significanceFixture(),
		Monomers: []core.MonomerRecord{
			{ProteinID: "P1", ConditionID: "c1", ReplicateID: "r1", MonomerSecID: 18},
			{ProteinID: "P2", ConditionID: "c1", ReplicateID: "r1", MonomerSecID: 18},
		},
	}
	got := AssessSignificance(in, SignificanceParams{MinimumMassRatio: 0.2, MaximumSecLag: 2}, testLogger())
	if len(got) != 1 {
		t.Errorf("expected the monomer-calibrated feature to survive, got %d", len(got))
	}
}

func TestAssessSignificanceStatistics(t *testing.T) {
	var features []core.FeatureRecord
	features = append(features,
		feature("A", "B", core.Target, 0.9, 10, 10, 10),
		feature("C", "D", core.Target, 0.15, 10, 10, 10),
	)
	decoyScores := []float64{0.10, 0.11, 0.12, 0.13, 0.14, 0.16, 0.17, 0.18, 0.19, 0.20, 0.21, 0.22}
	for i, s := range decoyScores {
		bait := string(rune('a' + i))
		features = append(features, feature(bait, "z", core.Decoy, s, 10, 10, 10))
	}

	in := SignificanceInput{
		Features:  features,
		Proteins:  proteinsFor(features),
		Fractions: significanceFixture(),
	}
	got := AssessSignificance(in, SignificanceParams{MinimumMassRatio: 0, MaximumSecLag: 2}, testLogger())
	if len(got) != len(features) {
		t.Fatalf("expected all %d features scored, got %d", len(features), len(got))
	}

	var top, low *core.ScoredFeature
	var decoys int
	for i := range got {
		f := &got[i]
		if f.PValue <= 0 || f.PValue > 1 {
			t.Errorf("p-value out of range: %f", f.PValue)
		}
		if f.QValue < 0 || f.QValue > 1 {
			t.Errorf("q-value out of range: %f", f.QValue)
		}
		switch {
		case f.Label.IsDecoy():
			decoys++
		case f.BaitID == "A":
			top = f
		case f.BaitID == "C":
			low = f
		}
	}
	if decoys != len(decoyScores) {
		t.Fatalf("expected %d decoy rows, got %d", len(decoyScores), decoys)
	}

	// 12 decoys, none at or above 0.9: p = 1/13.
	if math.Abs(top.PValue-1.0/13.0) > 1e-12 {
		t.Errorf("expected p=1/13 for the top target, got %f", top.PValue)
	}
	// 7 decoys at or above 0.15: p = 8/13.
	if math.Abs(low.PValue-8.0/13.0) > 1e-12 {
		t.Errorf("expected p=8/13 for the low target, got %f", low.PValue)
	}
	if top.QValue > low.QValue {
		t.Errorf("expected q-values monotone in p: %f > %f", top.QValue, low.QValue)
	}
	if top.PEP > low.PEP {
		t.Errorf("expected pep monotone in score: %f > %f", top.PEP, low.PEP)
	}
}

func TestAssessSignificanceSmallNull(t *testing.T) {
	// Three decoys are below the trusted minimum; the features are still
	// scored, just conservatively.
	features := []core.FeatureRecord{
		feature("A", "B", core.Target, 0.9, 10, 10, 10),
		feature("a", "z", core.Decoy, 0.1, 10, 10, 10),
		feature("b", "z", core.Decoy, 0.2, 10, 10, 10),
		feature("c", "z", core.Decoy, 0.3, 10, 10, 10),
	}
	in := SignificanceInput{
		Features:  features,
		Proteins:  proteinsFor(features),
		Fractions: significanceFixture(),
	}
	got := AssessSignificance(in, SignificanceParams{MinimumMassRatio: 0, MaximumSecLag: 2}, testLogger())
	if len(got) != 4 {
		t.Fatalf("expected 4 scored features, got %d", len(got))
	}
	if got[0].PValue != 0.25 {
		t.Errorf("expected p=1/4 for the target, got %f", got[0].PValue)
	}
}

func proteinsFor(features []core.FeatureRecord) []core.Protein {
	seen := make(map[string]bool)
	var proteins []core.Protein
	for _, f := range features {
		for _, pid := range []string{f.BaitID, f.PreyID} {
			if !seen[pid] {
				seen[pid] = true
				proteins = append(proteins, core.Protein{ProteinID: pid, ProteinMW: 100})
			}
		}
	}
	return proteins
}
