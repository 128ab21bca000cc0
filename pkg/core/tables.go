// Package core provides the row types shared by all pipeline stages.
// Stages exchange slices of these values directly; the SQLite store is
// only a serialization boundary between commands.
package core

import (
	"fmt"
	"math"
	"strings"
)

// Label distinguishes candidates drawn from the reference network from
// synthetic decoys. Decoy rows are structurally identical to target
// rows everywhere in the pipeline; only the label differs.
type Label int

const (
	Target Label = iota
	Decoy
)

func (l Label) IsDecoy() bool {
	return l == Decoy
}

func (l Label) String() string {
	if l == Decoy {
		return "decoy"
	}
	return "target"
}

// LabelFromDecoyFlag converts the stored 0/1 decoy column back to a Label.
func LabelFromDecoyFlag(decoy int) Label {
	if decoy != 0 {
		return Decoy
	}
	return Target
}

// Protein is one catalog entry. ProteinMW is the monomeric molecular
// weight in kDa.
type Protein struct {
	ProteinID   string
	ProteinName string
	ProteinMW   float64
}

// NetworkEdge is a prior-knowledge interaction from the reference network.
type NetworkEdge struct {
	BaitID     string
	PreyID     string
	Confidence float64
	Label      Label
}

// SecFraction maps one LC-MS run to its SEC fraction. SecMW is the
// calibrated mass (kDa) eluting at that fraction; earlier fractions
// carry larger species.
type SecFraction struct {
	RunID       string
	SecID       int
	SecMW       float64
	ConditionID string
	ReplicateID string
}

// Quantification is one peptide's intensity in one run (= one fraction).
type Quantification struct {
	RunID            string
	ProteinID        string
	PeptideID        string
	PeptideIntensity float64
}

// PeptideMeta ranks a peptide within its protein; rank 1 is the most
// intense peptide summed over all runs.
type PeptideMeta struct {
	PeptideID   string
	ProteinID   string
	PeptideRank int
}

// ProteinMeta carries the decoy bin assignment of a protein.
type ProteinMeta struct {
	ProteinID    string
	IntensityBin int
	LeftSecBin   int
	RightSecBin  int
}

// CandidateQuery is one (bait, prey) pair to be scored.
type CandidateQuery struct {
	BaitID string
	PreyID string
	Label  Label
}

// MonomerRecord is the inferred monomeric elution point of a protein in
// one condition/replicate. Unique per (ProteinID, ConditionID, ReplicateID).
type MonomerRecord struct {
	ProteinID    string
	ConditionID  string
	ReplicateID  string
	MonomerSecID int
}

// FeatureRecord is one scored candidate in one condition/replicate.
type FeatureRecord struct {
	BaitID      string
	PreyID      string
	Label       Label
	ConditionID string
	ReplicateID string

	MIC float64
	TIC float64

	BaitPeptides int
	PreyPeptides int
	Overlap      int

	// Apex fractions: per-protein elution peaks over the full profile,
	// and the peak of the combined profile inside the overlap window.
	BaitApexSecID  int
	PreyApexSecID  int
	JointApexSecID int
}

// Score is the ranking score used against the decoy null.
func (f *FeatureRecord) Score() float64 {
	return (f.MIC + f.TIC) / 2
}

// SecLag is the fraction offset between the bait's and prey's elution peaks.
func (f *FeatureRecord) SecLag() float64 {
	return math.Abs(float64(f.BaitApexSecID - f.PreyApexSecID))
}

// ScoredFeature is a FeatureRecord with its statistical assessment.
// PValue is always populated on emitted rows.
type ScoredFeature struct {
	FeatureRecord
	PValue float64
	QValue float64
	PEP    float64
}

// EntityKind tags quantitative matrix entries and differential results
// as interaction-level (edge) or protein-level (node).
type EntityKind int

const (
	EntityEdge EntityKind = iota
	EntityNode
)

func (k EntityKind) String() string {
	if k == EntityNode {
		return "node"
	}
	return "edge"
}

// QuantMatrixEntry is a complex-region abundance for one entity in one
// condition/replicate.
type QuantMatrixEntry struct {
	EntityID    string
	Kind        EntityKind
	ConditionID string
	ReplicateID string
	Value       float64
}

// DifferentialResult is one cross-condition test outcome. PreyID is
// empty for node rows; Level is empty for pooled rows and carries the
// replicate id for level rows; Log2FC is populated only in the
// directional edge table.
type DifferentialResult struct {
	Condition1 string
	Condition2 string
	BaitID     string
	PreyID     string
	Level      string
	Log2FC     float64
	PValue     float64
	QValue     float64
}

// InteractionID is the canonical identifier of a (bait, prey) pair.
func InteractionID(baitID, preyID string) string {
	return baitID + "_" + preyID
}

// SplitInteractionID is the inverse of InteractionID for well-formed ids.
func SplitInteractionID(id string) (baitID, preyID string) {
	if i := strings.Index(id, "_"); i >= 0 {
		return id[:i], id[i+1:]
	}
	return id, ""
}

// ValidationError reports an invalid input row.
type ValidationError struct {
	Table   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Table, e.Message)
}

// Validate checks a protein catalog row.
func (p *Protein) Validate() error {
	var errs []string
	if p.ProteinID == "" {
		errs = append(errs, "protein_id is required")
	}
	if math.IsNaN(p.ProteinMW) || math.IsInf(p.ProteinMW, 0) || p.ProteinMW <= 0 {
		errs = append(errs, "protein_mw must be positive and finite")
	}
	if len(errs) > 0 {
		return &ValidationError{Table: "PROTEIN", Message: strings.Join(errs, "; ")}
	}
	return nil
}

// Validate checks a SEC calibration row.
func (s *SecFraction) Validate() error {
	var errs []string
	if s.RunID == "" {
		errs = append(errs, "run_id is required")
	}
	if s.SecID < 0 {
		errs = append(errs, "sec_id must be non-negative")
	}
	if math.IsNaN(s.SecMW) || math.IsInf(s.SecMW, 0) || s.SecMW <= 0 {
		errs = append(errs, "sec_mw must be positive and finite")
	}
	if s.ConditionID == "" || s.ReplicateID == "" {
		errs = append(errs, "condition_id and replicate_id are required")
	}
	if len(errs) > 0 {
		return &ValidationError{Table: "SEC", Message: strings.Join(errs, "; ")}
	}
	return nil
}

// Validate checks a quantification row.
func (q *Quantification) Validate() error {
	var errs []string
	if q.RunID == "" {
		errs = append(errs, "run_id is required")
	}
	if q.ProteinID == "" {
		errs = append(errs, "protein_id is required")
	}
	if q.PeptideID == "" {
		errs = append(errs, "peptide_id is required")
	}
	if math.IsNaN(q.PeptideIntensity) || math.IsInf(q.PeptideIntensity, 0) || q.PeptideIntensity < 0 {
		errs = append(errs, "peptide_intensity must be non-negative and finite")
	}
	if len(errs) > 0 {
		return &ValidationError{Table: "QUANTIFICATION", Message: strings.Join(errs, "; ")}
	}
	return nil
}
