package stats

import (
	"math"
	"testing"
)

func TestMICTICPerfectRelation(t *testing.T) {
	// A strictly monotone relation is a perfect functional dependence:
	// every equal-frequency grid assigns matching bins, so MIC is 1.
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	y := []float64{10, 20, 30, 40, 50, 60, 70, 80}

	mic, tic, ok := MICTIC(x, y)
	if !ok {
		t.Fatal("expected coefficients to be defined")
	}
	if math.Abs(mic-1) > 1e-9 {
		t.Errorf("expected MIC 1 for monotone relation, got %f", mic)
	}
	if tic <= 0 || tic > 1 {
		t.Errorf("expected TIC in (0,1], got %f", tic)
	}
	if tic > mic {
		t.Errorf("TIC (%f) must not exceed MIC (%f)", tic, mic)
	}
}

func TestMICTICAntiMonotone(t *testing.T) {
	// Mutual information is symmetric in direction: a decreasing
	// functional relation scores exactly like an increasing one.
	x := []float64{1, 2, 3, 4, 5, 6}
	y := []float64{60, 50, 40, 30, 20, 10}

	mic, _, ok := MICTIC(x, y)
	if !ok {
		t.Fatal("expected coefficients to be defined")
	}
	if math.Abs(mic-1) > 1e-9 {
		t.Errorf("expected MIC 1 for anti-monotone relation, got %f", mic)
	}
}

func TestMICTICMisalignedRanks(t *testing.T) {
	// Alternating high/low y against ascending x spreads the joint
	// histogram across all grid cells; the coefficient must stay well
	// below a perfect relation.
	x := make([]float64, 24)
	y := make([]float64, 24)
	for i := range x {
		x[i] = float64(i)
		y[i] = float64(i%2)*50 + 0.1*float64(i)
	}

	mic, _, ok := MICTIC(x, y)
	if !ok {
		t.Fatal("expected coefficients to be defined")
	}
	if mic > 0.5 {
		t.Errorf("expected low MIC for misaligned ranks, got %f", mic)
	}
}

func TestMICTICDegenerate(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		y    []float64
	}{
		{name: "constant x", x: []float64{3, 3, 3, 3, 3}, y: []float64{1, 2, 3, 4, 5}},
		{name: "constant y", x: []float64{1, 2, 3, 4, 5}, y: []float64{0, 0, 0, 0, 0}},
		{name: "too short", x: []float64{1}, y: []float64{2}},
		{name: "length mismatch", x: []float64{1, 2, 3}, y: []float64{1, 2}},
		{name: "empty", x: nil, y: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, ok := MICTIC(tt.x, tt.y); ok {
				t.Error("expected undefined coefficients")
			}
		})
	}
}

func TestMICTICSymmetric(t *testing.T) {
	x := []float64{5, 40, 100, 20, 7, 80, 3, 15}
	y := []float64{6, 50, 120, 20, 9, 70, 4, 11}

	micXY, ticXY, okXY := MICTIC(x, y)
	micYX, ticYX, okYX := MICTIC(y, x)
	if !okXY || !okYX {
		t.Fatal("expected coefficients to be defined")
	}
	if micXY != micYX || ticXY != ticYX {
		t.Errorf("expected symmetric coefficients, got (%f,%f) vs (%f,%f)", micXY, ticXY, micYX, ticYX)
	}
}

func TestMICTICDeterministic(t *testing.T) {
	x := []float64{5, 40, 100, 20, 7, 80}
	y := []float64{6, 50, 120, 20, 9, 70}

	mic1, tic1, _ := MICTIC(x, y)
	mic2, tic2, _ := MICTIC(x, y)
	if mic1 != mic2 || tic1 != tic2 {
		t.Error("expected identical results for identical input")
	}
}
