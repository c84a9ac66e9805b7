package mlkit

import "sort"

// RobustScale standardizes each column with its median and interquartile
// range, which keeps outlying months from dominating the scale. Columns
// with a zero IQR are centered but left unscaled.
func RobustScale(matrix [][]float64) [][]float64 {
	if len(matrix) == 0 {
		return nil
	}
	nFeatures := len(matrix[0])

	medians := make([]float64, nFeatures)
	scales := make([]float64, nFeatures)
	col := make([]float64, len(matrix))
	for f := 0; f < nFeatures; f++ {
		for i, row := range matrix {
			col[i] = row[f]
		}
		sorted := append([]float64(nil), col...)
		sort.Float64s(sorted)

		medians[f] = interpQuantile(0.5, sorted)
		iqr := interpQuantile(0.75, sorted) - interpQuantile(0.25, sorted)
		if iqr == 0 {
			iqr = 1
		}
		scales[f] = iqr
	}

	scaled := make([][]float64, len(matrix))
	for i, row := range matrix {
		out := make([]float64, nFeatures)
		for f, v := range row {
			out[f] = (v - medians[f]) / scales[f]
		}
		scaled[i] = out
	}
	return scaled
}
