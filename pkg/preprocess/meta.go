package preprocess

import (
	"math/rand"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/coelute/coelute/pkg/core"
)

// MetaParams configures metadata derivation.
type MetaParams struct {
	IntensityBins int
	LeftSecBins   int
	RightSecBins  int
}

// Meta carries the derived peptide ranking and protein decoy bin
// assignment.
type Meta struct {
	PeptideMeta []core.PeptideMeta
	ProteinMeta []core.ProteinMeta
}

// DeriveMeta computes, over all conditions and replicates, the
// intensity rank of each peptide within its protein and the decoy bin
// triple of each protein (total intensity, leftmost and rightmost
// detected fraction, each cut into equal-frequency bins).
func DeriveMeta(quant []core.Quantification, fractions []core.SecFraction, params MetaParams) Meta {
	runSec := make(map[string]int, len(fractions))
	for _, f := range fractions {
		runSec[f.RunID] = f.SecID
	}

	type pepKey struct{ proteinID, peptideID string }
	pepTotal := make(map[pepKey]float64)
	protTotal := make(map[string]float64)
	protLeft := make(map[string]float64)
	protRight := make(map[string]float64)

	for _, q := range quant {
		secID, ok := runSec[q.RunID]
		if !ok || q.PeptideIntensity <= 0 {
			continue
		}
		pepTotal[pepKey{q.ProteinID, q.PeptideID}] += q.PeptideIntensity
		if _, seen := protTotal[q.ProteinID]; !seen {
			protLeft[q.ProteinID] = float64(secID)
			protRight[q.ProteinID] = float64(secID)
		}
		protTotal[q.ProteinID] += q.PeptideIntensity
		if float64(secID) < protLeft[q.ProteinID] {
			protLeft[q.ProteinID] = float64(secID)
		}
		if float64(secID) > protRight[q.ProteinID] {
			protRight[q.ProteinID] = float64(secID)
		}
	}

	var meta Meta

	byProtein := make(map[string][]pepKey)
	for k := range pepTotal {
		byProtein[k.proteinID] = append(byProtein[k.proteinID], k)
	}
	for _, pid := range sortedMapKeys(byProtein) {
		peps := byProtein[pid]
		sort.Slice(peps, func(a, b int) bool {
			ta, tb := pepTotal[peps[a]], pepTotal[peps[b]]
			if ta != tb {
				return ta > tb
			}
			return peps[a].peptideID < peps[b].peptideID
		})
		for rank, k := range peps {
			meta.PeptideMeta = append(meta.PeptideMeta, core.PeptideMeta{
				PeptideID:   k.peptideID,
				ProteinID:   pid,
				PeptideRank: rank + 1,
			})
		}
	}

	intensityBin := assignBins(protTotal, params.IntensityBins)
	leftBin := assignBins(protLeft, params.LeftSecBins)
	rightBin := assignBins(protRight, params.RightSecBins)
	for _, pid := range sortedMapKeys(protTotal) {
		meta.ProteinMeta = append(meta.ProteinMeta, core.ProteinMeta{
			ProteinID:    pid,
			IntensityBin: intensityBin[pid],
			LeftSecBin:   leftBin[pid],
			RightSecBin:  rightBin[pid],
		})
	}
	return meta
}

// assignBins cuts the proteins into k equal-frequency bins along the
// metric, ties broken by protein id so assignment is deterministic.
func assignBins(values map[string]float64, k int) map[string]int {
	ids := sortedMapKeys(values)
	sort.SliceStable(ids, func(a, b int) bool {
		return values[ids[a]] < values[ids[b]]
	})
	bins := make(map[string]int, len(ids))
	for pos, id := range ids {
		bins[id] = pos * k / len(ids)
	}
	return bins
}

// BuildQueries derives the candidate interaction universe: one target
// query per network edge with both proteins observed, plus one decoy
// per target generated by remapping the prey to a random protein from
// the same decoy bin triple. Decoys never duplicate a real edge, a
// self-pair, or another decoy. Generation is deterministic for a fixed
// seed.
func BuildQueries(network []core.NetworkEdge, meta Meta, observed mapset.Set[string], seed int64) []core.CandidateQuery {
	binOf := make(map[string][3]int, len(meta.ProteinMeta))
	binGroup := make(map[[3]int][]string)
	for _, pm := range meta.ProteinMeta {
		key := [3]int{pm.IntensityBin, pm.LeftSecBin, pm.RightSecBin}
		binOf[pm.ProteinID] = key
		if observed.Contains(pm.ProteinID) {
			binGroup[key] = append(binGroup[key], pm.ProteinID)
		}
	}
	for _, group := range binGroup {
		sort.Strings(group)
	}

	var targets []core.CandidateQuery
	edgeKeys := mapset.NewThreadUnsafeSet[string]()
	for _, e := range network {
		if !observed.Contains(e.BaitID) || !observed.Contains(e.PreyID) || e.BaitID == e.PreyID {
			continue
		}
		key := core.InteractionID(e.BaitID, e.PreyID)
		if edgeKeys.Contains(key) {
			continue
		}
		edgeKeys.Add(key)
		// Both orientations count as the same known interaction.
		edgeKeys.Add(core.InteractionID(e.PreyID, e.BaitID))
		targets = append(targets, core.CandidateQuery{BaitID: e.BaitID, PreyID: e.PreyID, Label: core.Target})
	}
	sort.Slice(targets, func(a, b int) bool {
		if targets[a].BaitID != targets[b].BaitID {
			return targets[a].BaitID < targets[b].BaitID
		}
		return targets[a].PreyID < targets[b].PreyID
	})

	rng := rand.New(rand.NewSource(seed))
	used := mapset.NewThreadUnsafeSet[string]()
	queries := make([]core.CandidateQuery, 0, 2*len(targets))
	for _, t := range targets {
		queries = append(queries, t)

		group := binGroup[binOf[t.PreyID]]
		if len(group) < 2 {
			continue
		}
		// Bounded resampling; a dense bin group may still collide on
		// every draw, in which case the target goes without a decoy.
		for attempt := 0; attempt < 10; attempt++ {
			prey := group[rng.Intn(len(group))]
			key := core.InteractionID(t.BaitID, prey)
			if prey == t.BaitID || prey == t.PreyID || edgeKeys.Contains(key) || used.Contains(key) {
				continue
			}
			used.Add(key)
			queries = append(queries, core.CandidateQuery{BaitID: t.BaitID, PreyID: prey, Label: core.Decoy})
			break
		}
	}
	return queries
}

func sortedMapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
