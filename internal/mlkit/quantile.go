package mlkit

import "math"

// interpQuantile returns the p-quantile of sorted with linear interpolation
// between order statistics. Unlike an empirical quantile it does not collapse
// to the minimum for p below 1/n, which matters for the small sample sizes
// the decision offsets are computed on.
func interpQuantile(p float64, sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
