package score

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"

	"github.com/coelute/coelute/pkg/core"
	"github.com/coelute/coelute/pkg/stats"
)

// ScoringParams configures pairwise feature scoring.
type ScoringParams struct {
	MinimumPeptides int
	MaximumPeptides int
	MinimumOverlap  int
	ChunkSize       int
}

// ScoringInput is the reference data the scorer reads. Queries carry
// both target and decoy candidates; both flow through identical code.
type ScoringInput struct {
	Queries        []core.CandidateQuery
	Fractions      []core.SecFraction
	Quantification []core.Quantification
	PeptideMeta    []core.PeptideMeta
}

// scoringRef is the read-only state shared by all chunks.
type scoringRef struct {
	indexes []*runIndex
	ranked  map[string][]string
	params  ScoringParams
}

// ScoreFeatures computes MIC/TIC co-elution scores for every candidate
// pair and (condition, replicate) tag. The candidate universe is
// partitioned into ChunkSize chunks processed independently against the
// shared read-only indexes and concatenated in chunk order, so output
// is identical for any chunk size. Candidates failing the peptide or
// overlap requirements in a tag are absent from the output for that
// tag; that is a filtering outcome, not an error.
func ScoreFeatures(in ScoringInput, params ScoringParams, logger *zap.Logger) []core.FeatureRecord {
	ref := &scoringRef{
		indexes: buildRunIndexes(in.Fractions, in.Quantification),
		ranked:  rankedPeptides(in.PeptideMeta),
		params:  params,
	}

	var records []core.FeatureRecord
	chunks := 0
	for start := 0; start < len(in.Queries); start += params.ChunkSize {
		end := start + params.ChunkSize
		if end > len(in.Queries) {
			end = len(in.Queries)
		}
		records = append(records, scoreChunk(in.Queries[start:end], ref)...)
		chunks++
	}

	logger.Info("feature scoring finished",
		zap.Int("candidates", len(in.Queries)),
		zap.Int("chunks", chunks),
		zap.Int("features", len(records)))
	return records
}

// rankedPeptides maps each protein to its peptide ids ordered by
// intensity rank, ties broken by peptide id.
func rankedPeptides(meta []core.PeptideMeta) map[string][]string {
	byProtein := make(map[string][]core.PeptideMeta)
	for _, m := range meta {
		byProtein[m.ProteinID] = append(byProtein[m.ProteinID], m)
	}
	ranked := make(map[string][]string, len(byProtein))
	for pid, ms := range byProtein {
		sort.Slice(ms, func(a, b int) bool {
			if ms[a].PeptideRank != ms[b].PeptideRank {
				return ms[a].PeptideRank < ms[b].PeptideRank
			}
			return ms[a].PeptideID < ms[b].PeptideID
		})
		ids := make([]string, len(ms))
		for i, m := range ms {
			ids[i] = m.PeptideID
		}
		ranked[pid] = ids
	}
	return ranked
}

// scoreChunk scores one candidate partition. It only reads from ref.
func scoreChunk(chunk []core.CandidateQuery, ref *scoringRef) []core.FeatureRecord {
	var out []core.FeatureRecord
	for _, q := range chunk {
		for _, idx := range ref.indexes {
			if rec, ok := scoreCandidate(q, idx, ref); ok {
				out = append(out, rec)
			}
		}
	}
	return out
}

func scoreCandidate(q core.CandidateQuery, idx *runIndex, ref *scoringRef) (core.FeatureRecord, bool) {
	baitPeps := selectPeptides(ref.ranked[q.BaitID], idx, ref.params.MaximumPeptides)
	preyPeps := selectPeptides(ref.ranked[q.PreyID], idx, ref.params.MaximumPeptides)
	if len(baitPeps) < ref.params.MinimumPeptides || len(preyPeps) < ref.params.MinimumPeptides {
		return core.FeatureRecord{}, false
	}

	window := overlapWindow(idx.protein[q.BaitID], idx.protein[q.PreyID])
	if len(window) < ref.params.MinimumOverlap {
		return core.FeatureRecord{}, false
	}

	var mics, tics []float64
	for _, bp := range baitPeps {
		x := trace(idx.peptide[bp], window)
		for _, pp := range preyPeps {
			y := trace(idx.peptide[pp], window)
			mic, tic, ok := stats.MICTIC(x, y)
			if !ok {
				// Zero-variance trace over the window: undefined
				// coefficient, excluded rather than propagated.
				continue
			}
			mics = append(mics, mic)
			tics = append(tics, tic)
		}
	}
	if len(mics) == 0 {
		return core.FeatureRecord{}, false
	}

	baitApex, _ := apexFraction(idx.protein[q.BaitID])
	preyApex, _ := apexFraction(idx.protein[q.PreyID])
	jointApex := jointApexFraction(idx.protein[q.BaitID], idx.protein[q.PreyID], window)

	return core.FeatureRecord{
		BaitID:         q.BaitID,
		PreyID:         q.PreyID,
		Label:          q.Label,
		ConditionID:    idx.tag.ConditionID,
		ReplicateID:    idx.tag.ReplicateID,
		MIC:            median(mics),
		TIC:            mean(tics),
		BaitPeptides:   len(baitPeps),
		PreyPeptides:   len(preyPeps),
		Overlap:        len(window),
		BaitApexSecID:  baitApex,
		PreyApexSecID:  preyApex,
		JointApexSecID: jointApex,
	}, true
}

// selectPeptides returns up to max top-ranked peptides of a protein
// that carry signal in this tag.
func selectPeptides(ranked []string, idx *runIndex, max int) []string {
	var selected []string
	for _, pepID := range ranked {
		if len(selected) == max {
			break
		}
		if len(idx.peptide[pepID]) > 0 {
			selected = append(selected, pepID)
		}
	}
	return selected
}

// overlapWindow returns the sorted fractions where both proteins have
// intensity.
func overlapWindow(bait, prey map[int]float64) []int {
	bs := mapset.NewThreadUnsafeSet[int]()
	for secID, v := range bait {
		if v > 0 {
			bs.Add(secID)
		}
	}
	ps := mapset.NewThreadUnsafeSet[int]()
	for secID, v := range prey {
		if v > 0 {
			ps.Add(secID)
		}
	}
	window := bs.Intersect(ps).ToSlice()
	sort.Ints(window)
	return window
}

// trace samples a profile over the window, zero where absent.
func trace(profile map[int]float64, window []int) []float64 {
	t := make([]float64, len(window))
	for i, secID := range window {
		t[i] = profile[secID]
	}
	return t
}

// jointApexFraction returns the window fraction maximizing the combined
// intensity, ties broken toward the lower sec_id.
func jointApexFraction(bait, prey map[int]float64, window []int) int {
	best := window[0]
	var bestIntensity float64
	for _, secID := range window {
		if v := bait[secID] + prey[secID]; v > bestIntensity {
			best = secID
			bestIntensity = v
		}
	}
	return best
}

func median(v []float64) float64 {
	s := make([]float64, len(v))
	copy(s, v)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

func mean(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}
