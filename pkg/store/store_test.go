package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coelute/coelute/pkg/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.coelute"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testFeatures() []core.FeatureRecord {
	return []core.FeatureRecord{
		{
			BaitID: "P1", PreyID: "P2", Label: core.Target,
			ConditionID: "c1", ReplicateID: "r1",
			MIC: 0.91, TIC: 0.84,
			BaitPeptides: 4, PreyPeptides: 3, Overlap: 12,
			BaitApexSecID: 15, PreyApexSecID: 16, JointApexSecID: 15,
		},
		{
			BaitID: "P1", PreyID: "P9", Label: core.Decoy,
			ConditionID: "c1", ReplicateID: "r1",
			MIC: 0.22, TIC: 0.18,
			BaitPeptides: 4, PreyPeptides: 4, Overlap: 9,
			BaitApexSecID: 15, PreyApexSecID: 14, JointApexSecID: 14,
		},
	}
}

func TestStoreRoundtrip(t *testing.T) {
	s := openTestStore(t)

	t.Run("proteins", func(t *testing.T) {
		want := []core.Protein{
			{ProteinID: "P1", ProteinName: "ALBU_HUMAN", ProteinMW: 66.5},
			{ProteinID: "P2", ProteinName: "TRFE_HUMAN", ProteinMW: 77.0},
		}
		if err := s.ReplaceProteins(want); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		got, err := s.Proteins()
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("roundtrip mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("network", func(t *testing.T) {
		want := []core.NetworkEdge{
			{BaitID: "P1", PreyID: "P2", Confidence: 0.92},
			{BaitID: "P2", PreyID: "P3", Confidence: 0.41},
		}
		if err := s.ReplaceNetwork(want); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		got, err := s.Network()
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("roundtrip mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("fractions", func(t *testing.T) {
		want := []core.SecFraction{
			{RunID: "run01", SecID: 1, SecMW: 480, ConditionID: "c1", ReplicateID: "r1"},
			{RunID: "run02", SecID: 2, SecMW: 440, ConditionID: "c1", ReplicateID: "r1"},
		}
		if err := s.ReplaceFractions(want); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		got, err := s.Fractions()
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("roundtrip mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("quantifications", func(t *testing.T) {
		want := []core.Quantification{
			{RunID: "run01", ProteinID: "P1", PeptideID: "P1_pep1", PeptideIntensity: 1250.5},
			{RunID: "run01", ProteinID: "P1", PeptideID: "P1_pep2", PeptideIntensity: 431.25},
		}
		if err := s.ReplaceQuantifications(want); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		got, err := s.Quantifications()
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("roundtrip mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("queries", func(t *testing.T) {
		want := []core.CandidateQuery{
			{BaitID: "P1", PreyID: "P2", Label: core.Target},
			{BaitID: "P1", PreyID: "P9", Label: core.Decoy},
		}
		if err := s.ReplaceQueries(want); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		got, err := s.Queries()
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("roundtrip mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("monomers", func(t *testing.T) {
		want := []core.MonomerRecord{
			{ProteinID: "P1", ConditionID: "c1", ReplicateID: "r1", MonomerSecID: 22},
			{ProteinID: "P2", ConditionID: "c1", ReplicateID: "r1", MonomerSecID: 19},
		}
		if err := s.ReplaceMonomers(want); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		got, err := s.Monomers()
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("roundtrip mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("features", func(t *testing.T) {
		want := testFeatures()
		if err := s.ReplaceFeatures(want); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		got, err := s.Features()
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("roundtrip mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("scored features", func(t *testing.T) {
		features := testFeatures()
		want := []core.ScoredFeature{
			{FeatureRecord: features[0], PValue: 0.002, QValue: 0.01, PEP: 0.05},
			{FeatureRecord: features[1], PValue: 0.8, QValue: 1, PEP: 1},
		}
		if err := s.ReplaceScoredFeatures(want); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		got, err := s.ScoredFeatures()
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("roundtrip mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestStoreReplaceIsWholesale(t *testing.T) {
	s := openTestStore(t)

	first := testFeatures()
	if err := s.ReplaceFeatures(first); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	second := first[:1]
	if err := s.ReplaceFeatures(second); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	got, err := s.Features()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if diff := cmp.Diff(second, got); diff != "" {
		t.Errorf("expected only the last write to survive (-want +got):\n%s", diff)
	}
}

func TestStoreRewriteReproducesOutput(t *testing.T) {
	s := openTestStore(t)

	rows := testFeatures()
	if err := s.ReplaceFeatures(rows); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	once, err := s.Features()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if err := s.ReplaceFeatures(once); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	twice, err := s.Features()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("rewriting unchanged rows altered the table (-first +second):\n%s", diff)
	}
}

func TestStoreMissingTable(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Features(); !errors.Is(err, ErrMissingTable) {
		t.Errorf("expected ErrMissingTable, got %v", err)
	}
	if _, _, err := s.ReadTable("NODE"); !errors.Is(err, ErrMissingTable) {
		t.Errorf("expected ErrMissingTable, got %v", err)
	}
}

func TestStoreHasTable(t *testing.T) {
	s := openTestStore(t)

	ok, err := s.HasTable("FEATURE")
	if err != nil {
		t.Fatalf("schema inspection failed: %v", err)
	}
	if ok {
		t.Error("expected FEATURE to be absent")
	}
	if err := s.ReplaceFeatures(nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	ok, err = s.HasTable("FEATURE")
	if err != nil {
		t.Fatalf("schema inspection failed: %v", err)
	}
	if !ok {
		t.Error("expected FEATURE to exist after write")
	}
}

func TestStoreReplaceDifferential(t *testing.T) {
	s := openTestStore(t)

	rows := []core.DifferentialResult{
		{Condition1: "c1", Condition2: "c2", BaitID: "P1", PreyID: "P2", Level: "r1", Log2FC: 1.5, PValue: 0.01, QValue: 0.02},
	}

	tests := []struct {
		name           string
		table          string
		withLevel      bool
		withFoldChange bool
		wantHeader     []string
	}{
		{
			name: "pooled", table: "EDGE",
			wantHeader: []string{"condition_1", "condition_2", "bait_id", "prey_id", "pvalue", "qvalue"},
		},
		{
			name: "level", table: "EDGE_LEVEL", withLevel: true,
			wantHeader: []string{"condition_1", "condition_2", "bait_id", "prey_id", "level", "pvalue", "qvalue"},
		},
		{
			name: "directional", table: "EDGE_DIRECTIONAL", withFoldChange: true,
			wantHeader: []string{"condition_1", "condition_2", "bait_id", "prey_id", "log2fc", "pvalue", "qvalue"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.ReplaceDifferential(tt.table, rows, tt.withLevel, tt.withFoldChange); err != nil {
				t.Fatalf("write failed: %v", err)
			}
			header, records, err := s.ReadTable(tt.table)
			if err != nil {
				t.Fatalf("read failed: %v", err)
			}
			if diff := cmp.Diff(tt.wantHeader, header); diff != "" {
				t.Errorf("header mismatch (-want +got):\n%s", diff)
			}
			if len(records) != 1 {
				t.Fatalf("expected 1 record, got %d", len(records))
			}
			if records[0][0] != "c1" || records[0][2] != "P1" {
				t.Errorf("unexpected record %v", records[0])
			}
		})
	}
}
