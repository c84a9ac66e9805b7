package mlkit

import (
	"math"
	"testing"
)

func TestFitScoreOneClass_LowScoreForDistantRow(t *testing.T) {
	matrix := [][]float64{
		{1.0, 1.1}, {0.9, 1.0}, {1.1, 0.9}, {1.0, 0.95},
		{0.95, 1.05}, {1.05, 1.0}, {0.9, 0.9}, {1.1, 1.1},
		{20, 20},
	}
	scores := FitScoreOneClass(matrix, OneClassParams{Nu: 0.05, Gamma: "scale"})

	last := len(matrix) - 1
	for i := 0; i < last; i++ {
		if scores[i] <= scores[last] {
			t.Errorf("cluster row %d scored %v, not above distant row's %v", i, scores[i], scores[last])
		}
	}
	if scores[last] >= 0 {
		t.Errorf("distant row score = %v, want negative", scores[last])
	}
}

func TestFitScoreOneClass_Finite(t *testing.T) {
	matrix := [][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0.5, 0.5}}
	for _, gamma := range []string{"scale", "auto"} {
		for i, s := range FitScoreOneClass(matrix, OneClassParams{Nu: 0.1, Gamma: gamma}) {
			if math.IsNaN(s) || math.IsInf(s, 0) {
				t.Errorf("gamma %q: scores[%d] = %v, want finite", gamma, i, s)
			}
		}
	}
}

func TestFitScoreOneClass_ConstantMatrix(t *testing.T) {
	matrix := [][]float64{{2, 2}, {2, 2}, {2, 2}}
	scores := FitScoreOneClass(matrix, OneClassParams{Nu: 0.05, Gamma: "scale"})

	// Zero variance falls back to the auto scale; identical rows are all
	// maximally similar, so every decision score is zero.
	for i, s := range scores {
		if s != 0 {
			t.Errorf("scores[%d] = %v, want 0 for identical rows", i, s)
		}
	}
}

func TestFitScoreOneClass_InvalidNuDefaults(t *testing.T) {
	matrix := [][]float64{{0}, {1}, {2}}
	a := FitScoreOneClass(matrix, OneClassParams{Nu: 0, Gamma: "auto"})
	b := FitScoreOneClass(matrix, OneClassParams{Nu: 0.05, Gamma: "auto"})
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("scores[%d] = %v with nu=0, want default-nu %v", i, a[i], b[i])
		}
	}
}

func TestFitScoreOneClass_Empty(t *testing.T) {
	if got := FitScoreOneClass(nil, OneClassParams{}); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}
