// Package score implements the scoring stages of the pipeline: monomer
// detection, pairwise MIC/TIC feature scoring, and decoy-based
// significance assessment.
package score

import (
	"sort"

	"github.com/coelute/coelute/pkg/core"
)

// Tag identifies one (condition, replicate) pair.
type Tag struct {
	ConditionID string
	ReplicateID string
}

// runIndex holds the read-only per-tag reference data every stage works
// from: the fraction calibration and the peptide/protein intensity
// profiles across fractions.
type runIndex struct {
	tag     Tag
	secMW   map[int]float64
	secIDs  []int
	peptide map[string]map[int]float64
	protein map[string]map[int]float64
}

// buildRunIndexes groups the SEC calibration by tag and accumulates the
// quantification into per-peptide and per-protein fraction profiles.
// Quantification rows referencing unknown runs are dropped. The result
// is ordered by (condition, replicate) so that all downstream iteration
// is deterministic.
func buildRunIndexes(fractions []core.SecFraction, quant []core.Quantification) []*runIndex {
	type runKey struct {
		tag   Tag
		secID int
	}
	runs := make(map[string]runKey)
	byTag := make(map[Tag]*runIndex)

	for _, f := range fractions {
		tag := Tag{ConditionID: f.ConditionID, ReplicateID: f.ReplicateID}
		runs[f.RunID] = runKey{tag: tag, secID: f.SecID}
		idx := byTag[tag]
		if idx == nil {
			idx = &runIndex{
				tag:     tag,
				secMW:   make(map[int]float64),
				peptide: make(map[string]map[int]float64),
				protein: make(map[string]map[int]float64),
			}
			byTag[tag] = idx
		}
		idx.secMW[f.SecID] = f.SecMW
	}

	for _, q := range quant {
		rk, ok := runs[q.RunID]
		if !ok || q.PeptideIntensity <= 0 {
			continue
		}
		idx := byTag[rk.tag]

		pep := idx.peptide[q.PeptideID]
		if pep == nil {
			pep = make(map[int]float64)
			idx.peptide[q.PeptideID] = pep
		}
		pep[rk.secID] += q.PeptideIntensity

		prot := idx.protein[q.ProteinID]
		if prot == nil {
			prot = make(map[int]float64)
			idx.protein[q.ProteinID] = prot
		}
		prot[rk.secID] += q.PeptideIntensity
	}

	out := make([]*runIndex, 0, len(byTag))
	for _, idx := range byTag {
		idx.secIDs = sortedKeys(idx.secMW)
		out = append(out, idx)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].tag.ConditionID != out[b].tag.ConditionID {
			return out[a].tag.ConditionID < out[b].tag.ConditionID
		}
		return out[a].tag.ReplicateID < out[b].tag.ReplicateID
	})
	return out
}

// apexFraction returns the fraction with the highest intensity, ties
// broken toward the lower sec_id (the higher calibrated mass).
func apexFraction(profile map[int]float64) (int, bool) {
	best := -1
	var bestIntensity float64
	for _, secID := range sortedKeys(profile) {
		if v := profile[secID]; v > bestIntensity {
			best = secID
			bestIntensity = v
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

func sortedKeys(m map[int]float64) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
