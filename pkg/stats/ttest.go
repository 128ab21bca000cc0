package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TTestResult holds a t statistic with its two-sided and upper-tail
// p-values. PUpper is the probability of a statistic at least as large
// as T, so small values support mean(a) > mean(b).
type TTestResult struct {
	T      float64
	DF     float64
	PTwo   float64
	PUpper float64
}

// WelchTTest compares two independent samples without assuming equal
// variance. ok is false when either side has fewer than two values.
func WelchTTest(a, b []float64) (TTestResult, bool) {
	na, nb := float64(len(a)), float64(len(b))
	if len(a) < 2 || len(b) < 2 {
		return TTestResult{}, false
	}

	ma := stat.Mean(a, nil)
	mb := stat.Mean(b, nil)
	va := stat.Variance(a, nil)
	vb := stat.Variance(b, nil)

	sea := va / na
	seb := vb / nb
	se2 := sea + seb
	if se2 == 0 {
		// Both samples constant; equal means carry no evidence at all.
		if ma == mb {
			return TTestResult{T: 0, DF: na + nb - 2, PTwo: 1, PUpper: 0.5}, true
		}
		r := TTestResult{DF: na + nb - 2, PTwo: 0, PUpper: 1}
		if ma > mb {
			r.T = math.Inf(1)
			r.PUpper = 0
		} else {
			r.T = math.Inf(-1)
		}
		return r, true
	}

	t := (ma - mb) / math.Sqrt(se2)
	df := se2 * se2 / (sea*sea/(na-1) + seb*seb/(nb-1))
	return tPValues(t, df), true
}

// PairedTTest compares two matched samples through their differences.
// ok is false for fewer than two pairs or mismatched lengths.
func PairedTTest(a, b []float64) (TTestResult, bool) {
	if len(a) != len(b) || len(a) < 2 {
		return TTestResult{}, false
	}

	d := make([]float64, len(a))
	for i := range a {
		d[i] = a[i] - b[i]
	}
	n := float64(len(d))
	md := stat.Mean(d, nil)
	sd := math.Sqrt(stat.Variance(d, nil))
	df := n - 1

	if sd == 0 {
		if md == 0 {
			return TTestResult{T: 0, DF: df, PTwo: 1, PUpper: 0.5}, true
		}
		r := TTestResult{DF: df, PTwo: 0, PUpper: 1}
		if md > 0 {
			r.T = math.Inf(1)
			r.PUpper = 0
		} else {
			r.T = math.Inf(-1)
		}
		return r, true
	}

	t := md / (sd / math.Sqrt(n))
	return tPValues(t, df), true
}

func tPValues(t, df float64) TTestResult {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	upper := dist.Survival(t)
	two := 2 * dist.Survival(math.Abs(t))
	if two > 1 {
		two = 1
	}
	return TTestResult{T: t, DF: df, PTwo: two, PUpper: upper}
}
