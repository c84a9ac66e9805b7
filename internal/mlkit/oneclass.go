package mlkit

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// OneClassParams configures the kernel one-class scorer. Nu is the target
// fraction of rows pushed below a zero decision score; Gamma selects the
// RBF kernel scale: "scale" uses 1/(nFeatures*variance), "auto" uses
// 1/nFeatures.
type OneClassParams struct {
	Nu    float64
	Gamma string
}

// FitScoreOneClass scores each row by its mean RBF similarity to the whole
// matrix, offset so that roughly the Nu fraction with the lowest similarity
// receives a negative decision score. Rows far from the bulk of the data
// score low.
func FitScoreOneClass(matrix [][]float64, p OneClassParams) []float64 {
	n := len(matrix)
	if n == 0 {
		return nil
	}

	nu := p.Nu
	if nu <= 0 || nu > 1 {
		nu = 0.05
	}
	gamma := kernelScale(matrix, p.Gamma)

	sims := make([]float64, n)
	for i := range matrix {
		var sum float64
		for j := range matrix {
			sum += math.Exp(-gamma * squaredDistance(matrix[i], matrix[j]))
		}
		sims[i] = sum / float64(n)
	}

	sorted := append([]float64(nil), sims...)
	sort.Float64s(sorted)
	offset := interpQuantile(nu, sorted)

	scores := make([]float64, n)
	for i, s := range sims {
		scores[i] = s - offset
	}
	return scores
}

func kernelScale(matrix [][]float64, mode string) float64 {
	nFeatures := len(matrix[0])
	if nFeatures == 0 {
		return 1
	}
	if mode == "auto" {
		return 1 / float64(nFeatures)
	}

	// "scale": 1 / (nFeatures * variance of all entries).
	var values []float64
	for _, row := range matrix {
		values = append(values, row...)
	}
	variance := stat.Variance(values, nil)
	if variance <= 0 || math.IsNaN(variance) {
		return 1 / float64(nFeatures)
	}
	return 1 / (float64(nFeatures) * variance)
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
