// Package quantify builds the complex-region quantitative matrix from
// significant interactions and tests abundance differences between
// conditions, at pooled and replicate level, for edges and nodes.
package quantify

import (
	"sort"

	"go.uber.org/zap"

	"github.com/coelute/coelute/pkg/core"
)

// MatrixParams configures the quantitative matrix build.
type MatrixParams struct {
	// MaximumQValue is the significance cut deciding which target
	// interactions enter the matrix.
	MaximumQValue float64
}

// MatrixInput is the data the builder reads.
type MatrixInput struct {
	Scored         []core.ScoredFeature
	Monomers       []core.MonomerRecord
	Fractions      []core.SecFraction
	Quantification []core.Quantification
}

type tag struct {
	conditionID string
	replicateID string
}

type entityKey struct {
	kind     core.EntityKind
	entityID string
	tag      tag
}

// Matrix holds the scalar complex-region abundances plus the
// per-fraction profiles the level tests run on. Only Entries are
// persisted; profiles live for the duration of the quantify stage.
type Matrix struct {
	Entries  []core.QuantMatrixEntry
	profiles map[entityKey]map[int]float64
}

// BuildMatrix aggregates, for every passing interaction and every
// involved protein, the intensity over the complex-region fractions
// (the higher-mass side of the monomer peak) into one abundance value
// per (entity, condition, replicate). A missing monomer baseline
// widens the region to the full profile. Edge abundance covers the
// intersection of the two proteins' complex regions.
func BuildMatrix(in MatrixInput, params MatrixParams, logger *zap.Logger) *Matrix {
	edges := make(map[string][2]string)
	nodes := make(map[string]bool)
	for _, s := range in.Scored {
		if s.Label.IsDecoy() || s.QValue > params.MaximumQValue {
			continue
		}
		edges[core.InteractionID(s.BaitID, s.PreyID)] = [2]string{s.BaitID, s.PreyID}
		nodes[s.BaitID] = true
		nodes[s.PreyID] = true
	}

	profiles, tags := proteinProfiles(in.Fractions, in.Quantification)

	monomers := make(map[tag]map[string]int)
	for _, m := range in.Monomers {
		t := tag{conditionID: m.ConditionID, replicateID: m.ReplicateID}
		if monomers[t] == nil {
			monomers[t] = make(map[string]int)
		}
		monomers[t][m.ProteinID] = m.MonomerSecID
	}

	m := &Matrix{profiles: make(map[entityKey]map[int]float64)}

	nodeIDs := sortedStrings(nodes)
	edgeIDs := make([]string, 0, len(edges))
	for id := range edges {
		edgeIDs = append(edgeIDs, id)
	}
	sort.Strings(edgeIDs)

	for _, t := range tags {
		for _, pid := range nodeIDs {
			region := complexRegion(profiles[t][pid], monomers[t][pid], hasMonomer(monomers[t], pid))
			m.add(entityKey{kind: core.EntityNode, entityID: pid, tag: t}, region)
		}
		for _, id := range edgeIDs {
			pair := edges[id]
			bait := complexRegion(profiles[t][pair[0]], monomers[t][pair[0]], hasMonomer(monomers[t], pair[0]))
			prey := complexRegion(profiles[t][pair[1]], monomers[t][pair[1]], hasMonomer(monomers[t], pair[1]))

			shared := make(map[int]float64)
			for secID, v := range bait {
				if pv, ok := prey[secID]; ok {
					shared[secID] = v + pv
				}
			}
			m.add(entityKey{kind: core.EntityEdge, entityID: id, tag: t}, shared)
		}
	}

	logger.Info("quantitative matrix built",
		zap.Int("edges", len(edgeIDs)),
		zap.Int("nodes", len(nodeIDs)),
		zap.Int("entries", len(m.Entries)))
	return m
}

func (m *Matrix) add(key entityKey, region map[int]float64) {
	var total float64
	for _, v := range region {
		total += v
	}
	if total <= 0 {
		return
	}
	m.profiles[key] = region
	m.Entries = append(m.Entries, core.QuantMatrixEntry{
		EntityID:    key.entityID,
		Kind:        key.kind,
		ConditionID: key.tag.conditionID,
		ReplicateID: key.tag.replicateID,
		Value:       total,
	})
}

func hasMonomer(m map[string]int, proteinID string) bool {
	_, ok := m[proteinID]
	return ok
}

// complexRegion restricts a profile to fractions eluting before the
// monomer peak, i.e. at higher calibrated mass. Without a monomer
// baseline the whole profile is kept.
func complexRegion(profile map[int]float64, monomerSecID int, bounded bool) map[int]float64 {
	region := make(map[int]float64)
	for secID, v := range profile {
		if !bounded || secID < monomerSecID {
			region[secID] = v
		}
	}
	return region
}

// proteinProfiles sums peptide intensity per protein and fraction for
// every (condition, replicate), returning the tags in sorted order.
func proteinProfiles(fractions []core.SecFraction, quant []core.Quantification) (map[tag]map[string]map[int]float64, []tag) {
	type runKey struct {
		t     tag
		secID int
	}
	runs := make(map[string]runKey)
	profiles := make(map[tag]map[string]map[int]float64)
	for _, f := range fractions {
		t := tag{conditionID: f.ConditionID, replicateID: f.ReplicateID}
		runs[f.RunID] = runKey{t: t, secID: f.SecID}
		if profiles[t] == nil {
			profiles[t] = make(map[string]map[int]float64)
		}
	}
	for _, q := range quant {
		rk, ok := runs[q.RunID]
		if !ok || q.PeptideIntensity <= 0 {
			continue
		}
		prot := profiles[rk.t][q.ProteinID]
		if prot == nil {
			prot = make(map[int]float64)
			profiles[rk.t][q.ProteinID] = prot
		}
		prot[rk.secID] += q.PeptideIntensity
	}

	tags := make([]tag, 0, len(profiles))
	for t := range profiles {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(a, b int) bool {
		if tags[a].conditionID != tags[b].conditionID {
			return tags[a].conditionID < tags[b].conditionID
		}
		return tags[a].replicateID < tags[b].replicateID
	})
	return profiles, tags
}

func sortedStrings(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
