package quantify

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/coelute/coelute/pkg/core"
	"github.com/coelute/coelute/pkg/stats"
)

// TestResults holds the five differential output tables. Each table is
// q-value corrected independently.
type TestResults struct {
	EdgeDirectional []core.DifferentialResult
	Edge            []core.DifferentialResult
	EdgeLevel       []core.DifferentialResult
	Node            []core.DifferentialResult
	NodeLevel       []core.DifferentialResult
}

// RunDifferentialTests compares abundance between every unordered pair
// of conditions for every edge and node in the matrix.
//
// Pooled tables (EDGE, NODE, EDGE_DIRECTIONAL) use Welch's t-test
// across replicate scalars and require at least two replicates per
// side. Level tables (EDGE_LEVEL, NODE_LEVEL) carry one row per
// replicate present in both conditions, from a paired t-test over the
// common complex-region fractions; the level tag is the replicate id.
// The directional table keeps the upper-tail p-value and a log2 fold
// change (pseudo-count 1); symmetric tables keep the two-sided p.
func RunDifferentialTests(m *Matrix, logger *zap.Logger) *TestResults {
	scalars := make(map[entityKey]float64, len(m.Entries))
	conditions := make(map[string]bool)
	replicates := make(map[string]map[string]bool)
	entities := make(map[core.EntityKind]map[string]bool)
	for _, e := range m.Entries {
		key := entityKey{kind: e.Kind, entityID: e.EntityID, tag: tag{conditionID: e.ConditionID, replicateID: e.ReplicateID}}
		scalars[key] = e.Value
		conditions[e.ConditionID] = true
		if replicates[e.ConditionID] == nil {
			replicates[e.ConditionID] = make(map[string]bool)
		}
		replicates[e.ConditionID][e.ReplicateID] = true
		if entities[e.Kind] == nil {
			entities[e.Kind] = make(map[string]bool)
		}
		entities[e.Kind][e.EntityID] = true
	}

	conds := sortedStrings(conditions)
	res := &TestResults{}

	for i := 0; i < len(conds); i++ {
		for j := i + 1; j < len(conds); j++ {
			c1, c2 := conds[i], conds[j]
			reps1 := sortedStrings(replicates[c1])
			reps2 := sortedStrings(replicates[c2])

			for _, id := range sortedStrings(entities[core.EntityEdge]) {
				baitID, preyID := core.SplitInteractionID(id)
				pooled, directional := pooledTest(scalars, core.EntityEdge, id, c1, c2, reps1, reps2)
				if pooled != nil {
					pooled.BaitID, pooled.PreyID = baitID, preyID
					res.Edge = append(res.Edge, *pooled)
					directional.BaitID, directional.PreyID = baitID, preyID
					res.EdgeDirectional = append(res.EdgeDirectional, *directional)
				}
				for _, lr := range levelTests(m, core.EntityEdge, id, c1, c2, reps1, reps2) {
					lr.BaitID, lr.PreyID = baitID, preyID
					res.EdgeLevel = append(res.EdgeLevel, lr)
				}
			}

			for _, id := range sortedStrings(entities[core.EntityNode]) {
				pooled, _ := pooledTest(scalars, core.EntityNode, id, c1, c2, reps1, reps2)
				if pooled != nil {
					pooled.BaitID = id
					res.Node = append(res.Node, *pooled)
				}
				for _, lr := range levelTests(m, core.EntityNode, id, c1, c2, reps1, reps2) {
					lr.BaitID = id
					res.NodeLevel = append(res.NodeLevel, lr)
				}
			}
		}
	}

	correct(res.EdgeDirectional)
	correct(res.Edge)
	correct(res.EdgeLevel)
	correct(res.Node)
	correct(res.NodeLevel)

	logger.Info("differential testing finished",
		zap.Int("edge_directional", len(res.EdgeDirectional)),
		zap.Int("edge", len(res.Edge)),
		zap.Int("edge_level", len(res.EdgeLevel)),
		zap.Int("node", len(res.Node)),
		zap.Int("node_level", len(res.NodeLevel)))
	return res
}

// pooledTest runs Welch's t-test on the replicate scalars of one entity
// for one condition pair. It returns nil when either side has fewer
// than two replicate values (insufficient evidence, not an error).
func pooledTest(scalars map[entityKey]float64, kind core.EntityKind, entityID, c1, c2 string, reps1, reps2 []string) (*core.DifferentialResult, *core.DifferentialResult) {
	collect := func(cond string, reps []string) []float64 {
		var vals []float64
		for _, r := range reps {
			key := entityKey{kind: kind, entityID: entityID, tag: tag{conditionID: cond, replicateID: r}}
			if v, ok := scalars[key]; ok {
				vals = append(vals, v)
			}
		}
		return vals
	}

	a := collect(c1, reps1)
	b := collect(c2, reps2)
	t, ok := stats.WelchTTest(a, b)
	if !ok {
		return nil, nil
	}

	pooled := &core.DifferentialResult{Condition1: c1, Condition2: c2, PValue: t.PTwo}
	directional := &core.DifferentialResult{
		Condition1: c1,
		Condition2: c2,
		PValue:     t.PUpper,
		Log2FC:     math.Log2((meanOf(a) + 1) / (meanOf(b) + 1)),
	}
	return pooled, directional
}

// levelTests runs, per replicate present in both conditions, a paired
// t-test over the fractions shared by the two complex-region profiles.
func levelTests(m *Matrix, kind core.EntityKind, entityID, c1, c2 string, reps1, reps2 []string) []core.DifferentialResult {
	common := make(map[string]bool)
	for _, r := range reps1 {
		common[r] = true
	}

	var out []core.DifferentialResult
	for _, r := range reps2 {
		if !common[r] {
			continue
		}
		p1 := m.profiles[entityKey{kind: kind, entityID: entityID, tag: tag{conditionID: c1, replicateID: r}}]
		p2 := m.profiles[entityKey{kind: kind, entityID: entityID, tag: tag{conditionID: c2, replicateID: r}}]
		if p1 == nil || p2 == nil {
			continue
		}

		var secIDs []int
		for secID := range p1 {
			if _, ok := p2[secID]; ok {
				secIDs = append(secIDs, secID)
			}
		}
		sort.Ints(secIDs)

		a := make([]float64, len(secIDs))
		b := make([]float64, len(secIDs))
		for i, secID := range secIDs {
			a[i] = p1[secID]
			b[i] = p2[secID]
		}
		t, ok := stats.PairedTTest(a, b)
		if !ok {
			continue
		}
		out = append(out, core.DifferentialResult{
			Condition1: c1,
			Condition2: c2,
			Level:      r,
			PValue:     t.PTwo,
		})
	}
	return out
}

// correct applies the Storey pi0/q-value procedure within one table.
func correct(rows []core.DifferentialResult) {
	if len(rows) == 0 {
		return
	}
	pvalues := make([]float64, len(rows))
	for i := range rows {
		pvalues[i] = rows[i].PValue
	}
	pi0 := stats.EstimatePi0(pvalues, stats.DefaultLambdas())
	qvalues := stats.QValues(pvalues, pi0)
	for i := range rows {
		rows[i].QValue = qvalues[i]
	}
}

func meanOf(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}
