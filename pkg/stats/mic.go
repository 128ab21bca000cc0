// Package stats implements the statistical kernels of the pipeline:
// the MIC/TIC co-elution coefficients, decoy-based false discovery
// rate estimation, and the differential t-tests.
package stats

import (
	"math"
	"sort"
)

// MICTIC computes the maximal and mean normalized mutual information
// between two paired traces over equal-frequency grid partitions.
//
// For every grid shape (kx, ky) with kx, ky >= 2 and kx*ky <= B, where
// B = max(4, n^0.6), both axes are partitioned into equal-frequency
// bins and the mutual information of the joint histogram is normalized
// by log(min(kx, ky)). MIC is the maximum over grids, TIC the mean.
// Both lie in [0, 1].
//
// ok is false when the coefficients are undefined: fewer than two
// points, or a trace with zero variance. Callers must treat that as a
// non-match rather than a score.
func MICTIC(x, y []float64) (mic, tic float64, ok bool) {
	n := len(x)
	if n != len(y) || n < 2 {
		return 0, 0, false
	}
	if constant(x) || constant(y) {
		return 0, 0, false
	}

	bmax := int(math.Max(4, math.Pow(float64(n), 0.6)))

	xo := rankOrder(x)
	yo := rankOrder(y)

	var sum float64
	var grids int
	for kx := 2; kx*2 <= bmax; kx++ {
		for ky := 2; kx*ky <= bmax; ky++ {
			mi := gridMI(xo, yo, kx, ky)
			norm := mi / math.Log(math.Min(float64(kx), float64(ky)))
			if norm > 1 {
				norm = 1
			}
			if norm > mic {
				mic = norm
			}
			sum += norm
			grids++
		}
	}
	if grids == 0 {
		return 0, 0, false
	}
	return mic, sum / float64(grids), true
}

func constant(v []float64) bool {
	for i := 1; i < len(v); i++ {
		if v[i] != v[0] {
			return false
		}
	}
	return true
}

// rankOrder returns for each sample its position in the value ordering,
// ties broken by index so that binning is deterministic.
func rankOrder(v []float64) []int {
	idx := make([]int, len(v))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return v[idx[a]] < v[idx[b]]
	})
	order := make([]int, len(v))
	for pos, i := range idx {
		order[i] = pos
	}
	return order
}

// gridMI computes the mutual information of the joint histogram with kx
// equal-frequency bins on x and ky on y.
func gridMI(xo, yo []int, kx, ky int) float64 {
	n := len(xo)
	joint := make([]int, kx*ky)
	mx := make([]int, kx)
	my := make([]int, ky)
	for i := 0; i < n; i++ {
		bx := xo[i] * kx / n
		by := yo[i] * ky / n
		joint[bx*ky+by]++
		mx[bx]++
		my[by]++
	}

	fn := float64(n)
	var mi float64
	for bx := 0; bx < kx; bx++ {
		for by := 0; by < ky; by++ {
			c := joint[bx*ky+by]
			if c == 0 {
				continue
			}
			pxy := float64(c) / fn
			px := float64(mx[bx]) / fn
			py := float64(my[by]) / fn
			mi += pxy * math.Log(pxy/(px*py))
		}
	}
	if mi < 0 {
		mi = 0
	}
	return mi
}
