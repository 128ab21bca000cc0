package stats

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ErrNullTooSmall reports a decoy null too small to support a
// trustworthy pi0 estimate. Callers keep going with pi0 = 1 (maximally
// conservative) but must surface a warning rather than produce
// misleadingly small q-values.
var ErrNullTooSmall = errors.New("null model too small to estimate pi0")

// MinimumNullSize is the smallest decoy null accepted without warning.
const MinimumNullSize = 10

// DefaultLambdas is the Storey lambda sweep grid.
func DefaultLambdas() []float64 {
	l := make([]float64, 0, 19)
	for lam := 0.05; lam < 0.96; lam += 0.05 {
		l = append(l, lam)
	}
	return l
}

// EmpiricalPValues ranks each score against the null, one-sided with
// higher scores more significant:
//
//	p = (1 + #{null >= score}) / (1 + #null)
//
// The +1 offsets keep p strictly positive.
func EmpiricalPValues(scores, null []float64) []float64 {
	sorted := make([]float64, len(null))
	copy(sorted, null)
	sort.Float64s(sorted)

	p := make([]float64, len(scores))
	for i, s := range scores {
		// Number of null scores >= s.
		ge := len(sorted) - sort.SearchFloat64s(sorted, s)
		p[i] = float64(1+ge) / float64(1+len(sorted))
	}
	return p
}

// EstimatePi0 estimates the proportion of true nulls from a p-value
// distribution via the lambda-sweep regression method: pi0(lambda) =
// #{p > lambda} / (m * (1 - lambda)), fitted with a least-squares line
// and evaluated at the largest lambda, clamped to (0, 1].
func EstimatePi0(pvalues, lambdas []float64) float64 {
	m := len(pvalues)
	if m == 0 || len(lambdas) == 0 {
		return 1
	}

	pi0s := make([]float64, len(lambdas))
	for i, lam := range lambdas {
		var count int
		for _, p := range pvalues {
			if p > lam {
				count++
			}
		}
		pi0s[i] = float64(count) / (float64(m) * (1 - lam))
	}
	if len(lambdas) == 1 {
		return clampPi0(pi0s[0], m)
	}

	alpha, beta := stat.LinearRegression(lambdas, pi0s, nil, false)
	pi0 := alpha + beta*lambdas[len(lambdas)-1]
	return clampPi0(pi0, m)
}

func clampPi0(pi0 float64, m int) float64 {
	if pi0 > 1 || math.IsNaN(pi0) {
		return 1
	}
	floor := 1 / float64(m)
	if pi0 < floor {
		return floor
	}
	return pi0
}

// QValues converts p-values to Storey q-values: q = pi0 * m * p / rank,
// monotonized by cumulative minimum from the largest p-value downward.
// The result is aligned with the input order and non-decreasing in p.
func QValues(pvalues []float64, pi0 float64) []float64 {
	m := len(pvalues)
	if m == 0 {
		return nil
	}

	idx := make([]int, m)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return pvalues[idx[a]] < pvalues[idx[b]]
	})

	q := make([]float64, m)
	running := math.Inf(1)
	for rank := m; rank >= 1; rank-- {
		i := idx[rank-1]
		raw := pi0 * float64(m) * pvalues[i] / float64(rank)
		if raw > 1 {
			raw = 1
		}
		if raw < running {
			running = raw
		}
		q[i] = running
	}
	return q
}

// PosteriorErrorProbabilities derives a local false-discovery-rate
// estimate per score from the histogram densities of the observed and
// null score distributions: pep = pi0 * f0(s) / f(s), with 0.5
// pseudo-counts per bin, clamped to [0, 1] and monotonized so that pep
// never increases with score.
func PosteriorErrorProbabilities(scores, null []float64, pi0 float64) []float64 {
	if len(scores) == 0 {
		return nil
	}

	lo, hi := scores[0], scores[0]
	for _, s := range scores {
		lo = math.Min(lo, s)
		hi = math.Max(hi, s)
	}
	for _, s := range null {
		lo = math.Min(lo, s)
		hi = math.Max(hi, s)
	}

	const bins = 20
	width := (hi - lo) / bins
	binOf := func(s float64) int {
		if width == 0 {
			return 0
		}
		b := int((s - lo) / width)
		if b >= bins {
			b = bins - 1
		}
		return b
	}

	var obsCount, nullCount [bins]int
	for _, s := range scores {
		obsCount[binOf(s)]++
	}
	for _, s := range null {
		nullCount[binOf(s)]++
	}

	pep := make([]float64, bins)
	obsTotal := float64(len(scores)) + 0.5*bins
	nullTotal := float64(len(null)) + 0.5*bins
	for b := 0; b < bins; b++ {
		f := (float64(obsCount[b]) + 0.5) / obsTotal
		f0 := (float64(nullCount[b]) + 0.5) / nullTotal
		pep[b] = math.Min(1, pi0*f0/f)
	}
	// Higher score must never carry a higher error probability.
	for b := bins - 2; b >= 0; b-- {
		pep[b] = math.Max(pep[b], pep[b+1])
	}

	out := make([]float64, len(scores))
	for i, s := range scores {
		out[i] = pep[binOf(s)]
	}
	return out
}
