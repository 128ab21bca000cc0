package core

import (
	"testing"
)

func TestLabel(t *testing.T) {
	if Target.IsDecoy() || !Decoy.IsDecoy() {
		t.Error("label predicates inverted")
	}
	if Target.String() != "target" || Decoy.String() != "decoy" {
		t.Errorf("unexpected label names %q/%q", Target, Decoy)
	}
	if LabelFromDecoyFlag(0) != Target || LabelFromDecoyFlag(1) != Decoy {
		t.Error("decoy flag conversion broken")
	}
}

func TestInteractionID(t *testing.T) {
	id := InteractionID("P1", "P2")
	if id != "P1_P2" {
		t.Errorf("unexpected id %q", id)
	}
	bait, prey := SplitInteractionID(id)
	if bait != "P1" || prey != "P2" {
		t.Errorf("split returned %q/%q", bait, prey)
	}
}

func TestFeatureRecordScore(t *testing.T) {
	f := FeatureRecord{MIC: 0.8, TIC: 0.6, BaitApexSecID: 15, PreyApexSecID: 18}
	if got := f.Score(); got != 0.7 {
		t.Errorf("expected score 0.7, got %f", got)
	}
	if got := f.SecLag(); got != 3 {
		t.Errorf("expected lag 3, got %f", got)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "valid protein", err: (&Protein{ProteinID: "P1", ProteinMW: 66.5}).Validate()},
		{name: "protein without id", err: (&Protein{ProteinMW: 66.5}).Validate(), wantErr: true},
		{name: "protein without mass", err: (&Protein{ProteinID: "P1"}).Validate(), wantErr: true},
		{
			name: "valid fraction",
			err: (&SecFraction{
				RunID: "run01", SecID: 1, SecMW: 480, ConditionID: "c1", ReplicateID: "r1",
			}).Validate(),
		},
		{
			name: "fraction without replicate",
			err: (&SecFraction{
				RunID: "run01", SecID: 1, SecMW: 480, ConditionID: "c1",
			}).Validate(),
			wantErr: true,
		},
		{
			name: "valid quantification",
			err: (&Quantification{
				RunID: "run01", ProteinID: "P1", PeptideID: "P1_pep1", PeptideIntensity: 10,
			}).Validate(),
		},
		{
			name: "negative intensity",
			err: (&Quantification{
				RunID: "run01", ProteinID: "P1", PeptideID: "P1_pep1", PeptideIntensity: -1,
			}).Validate(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr && tt.err == nil {
				t.Error("expected a validation error")
			}
			if !tt.wantErr && tt.err != nil {
				t.Errorf("unexpected validation error: %v", tt.err)
			}
		})
	}
}
