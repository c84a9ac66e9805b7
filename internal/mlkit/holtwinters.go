package mlkit

import (
	"errors"
	"fmt"
	"math"
)

// HoltWintersParams configures the seasonal smoother: additive trend,
// multiplicative seasonality, optional damped trend.
type HoltWintersParams struct {
	SeasonalPeriods int
	DampedTrend     bool
}

const dampingFactor = 0.98

// ForecastHoltWinters fits Holt-Winters exponential smoothing to the series
// and returns the horizon-step forecast. Smoothing parameters are chosen by
// grid search on one-step squared error. The fit fails — with an error the
// caller is expected to absorb — when the history is shorter than two full
// seasonal cycles, when any value is non-positive (multiplicative
// seasonality), or when the recursion turns numerically unstable.
func ForecastHoltWinters(series []float64, horizon int, p HoltWintersParams) ([]float64, error) {
	m := p.SeasonalPeriods
	if m < 2 {
		return nil, fmt.Errorf("seasonal period %d is too short", m)
	}
	if len(series) < 2*m {
		return nil, fmt.Errorf("need at least %d observations for %d seasonal periods, have %d",
			2*m, m, len(series))
	}
	for _, v := range series {
		if v <= 0 {
			return nil, errors.New("multiplicative seasonality requires positive values")
		}
	}
	if horizon < 1 {
		horizon = 1
	}

	phi := 1.0
	if p.DampedTrend {
		phi = dampingFactor
	}

	grid := []float64{0.1, 0.3, 0.5, 0.7, 0.9}
	bestSSE := math.Inf(1)
	var best state
	found := false
	for _, alpha := range grid {
		for _, beta := range grid {
			for _, gamma := range grid {
				st, sse, ok := smooth(series, m, alpha, beta, gamma, phi)
				if ok && sse < bestSSE {
					bestSSE = sse
					best = st
					found = true
				}
			}
		}
	}
	if !found {
		return nil, errors.New("smoothing recursion did not converge")
	}

	forecast := make([]float64, horizon)
	damp := 0.0
	for k := 1; k <= horizon; k++ {
		damp += math.Pow(phi, float64(k))
		seasonal := best.seasonal[(k-1)%m]
		forecast[k-1] = (best.level + damp*best.trend) * seasonal
	}
	return forecast, nil
}

// state holds the smoothed components at the end of the series. seasonal
// holds the last m seasonal indices in forecast order.
type state struct {
	level    float64
	trend    float64
	seasonal []float64
}

func smooth(y []float64, m int, alpha, beta, gamma, phi float64) (state, float64, bool) {
	n := len(y)

	// Classical initialization from the first two seasons.
	var firstSum, secondSum float64
	for i := 0; i < m; i++ {
		firstSum += y[i]
		secondSum += y[m+i]
	}
	level := firstSum / float64(m)
	trend := (secondSum - firstSum) / float64(m*m)

	secondMean := secondSum / float64(m)
	seasonal := make([]float64, n+m)
	for i := 0; i < m; i++ {
		seasonal[i] = (y[i]/level + y[m+i]/secondMean) / 2
	}
	normalizeSeason(seasonal[:m])

	var sse float64
	for t := m; t < n; t++ {
		base := level + phi*trend
		sIdx := t - m
		if seasonal[sIdx] == 0 || math.Abs(base) < 1e-12 {
			return state{}, 0, false
		}

		pred := base * seasonal[sIdx]
		err := y[t] - pred
		sse += err * err

		prevLevel := level
		level = alpha*(y[t]/seasonal[sIdx]) + (1-alpha)*base
		trend = beta*(level-prevLevel) + (1-beta)*phi*trend
		seasonal[t] = gamma*(y[t]/base) + (1-gamma)*seasonal[sIdx]

		if math.IsNaN(level) || math.IsInf(level, 0) ||
			math.IsNaN(trend) || math.IsInf(trend, 0) {
			return state{}, 0, false
		}
	}

	last := make([]float64, m)
	for k := 0; k < m; k++ {
		last[k] = seasonal[n-m+k]
	}
	return state{level: level, trend: trend, seasonal: last}, sse, true
}

// normalizeSeason scales the initial indices so they average to one.
func normalizeSeason(s []float64) {
	var sum float64
	for _, v := range s {
		sum += v
	}
	if sum == 0 {
		return
	}
	factor := float64(len(s)) / sum
	for i := range s {
		s[i] *= factor
	}
}
