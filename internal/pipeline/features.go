package pipeline

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"finsight/internal/config"
	"finsight/internal/model"
)

const day = 24 * time.Hour

// EngineerFeatures attaches rolling-window and monthly aggregate features to
// classified transactions. All features are recomputed from timestamp order,
// so permuting the input rows cannot change the results, and every feature
// depends only on history up to and including the record's own timestamp.
func EngineerFeatures(classified []model.Transaction, cfg config.Config) []model.Transaction {
	txns := make([]model.Transaction, len(classified))
	copy(txns, classified)
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Timestamp.Before(txns[j].Timestamp)
	})
	if len(txns) == 0 {
		return txns
	}

	n := len(txns)
	times := make([]time.Time, n)
	expense := make([]float64, n) // signed amount when expense, else 0
	income := make([]float64, n)  // signed amount when income/refund, else 0
	for i, t := range txns {
		times[i] = t.Timestamp
		if t.Type == model.Expense {
			expense[i] = t.Amount
		} else {
			income[i] = t.Amount
		}
	}

	spend7 := trailingSum(times, expense, 7*day)
	spend30 := trailingSum(times, expense, 30*day)
	spend90 := trailingSum(times, expense, 90*day)
	income7 := trailingSum(times, income, 7*day)
	income30 := trailingSum(times, income, 30*day)

	zByDay := dailySpendZScores(txns, expense)

	monthExpense := make(map[time.Time]float64)
	monthIncome := make(map[time.Time]float64)
	for i, t := range txns {
		monthExpense[t.Month] += expense[i]
		monthIncome[t.Month] += income[i]
	}

	for i := range txns {
		t := &txns[i]
		t.Rolling7dSpend = spend7[i]
		t.Rolling30dSpend = spend30[i]
		t.Rolling90dSpend = spend90[i]
		t.Rolling7dIncome = income7[i]
		t.Rolling30dIncome = income30[i]
		t.DailySpendZScore = zByDay[t.DateOnly]
		t.MonthTotalExpense = monthExpense[t.Month]
		t.MonthTotalIncome = monthIncome[t.Month]
	}

	return txns
}

// trailingSum computes, for each record, the sum of values whose timestamp
// lies in the left-open window (t-window, t]. The record's own value is
// always included, so every sum has at least one observation.
func trailingSum(times []time.Time, values []float64, window time.Duration) []float64 {
	out := make([]float64, len(values))
	start := 0
	var sum float64
	for i := range values {
		sum += values[i]
		cutoff := times[i].Add(-window)
		for !times[start].After(cutoff) {
			sum -= values[start]
			start++
		}
		out[i] = sum
	}
	return out
}

// dailySpendZScores resamples the expense series onto a daily grid and
// scores each day against a 30-observation trailing mean and population
// standard deviation, requiring at least 7 observations. Days where the
// score is undefined map to zero.
func dailySpendZScores(txns []model.Transaction, expense []float64) map[time.Time]float64 {
	first := txns[0].DateOnly
	last := txns[len(txns)-1].DateOnly

	totals := make(map[time.Time]float64)
	for i, t := range txns {
		totals[t.DateOnly] += expense[i]
	}

	var days []time.Time
	var daily []float64
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
		daily = append(daily, totals[d])
	}

	scores := make(map[time.Time]float64, len(days))
	for i, d := range days {
		lo := i - 29
		if lo < 0 {
			lo = 0
		}
		window := daily[lo : i+1]
		if len(window) < 7 {
			scores[d] = 0
			continue
		}
		mean := stat.Mean(window, nil)
		std := math.Sqrt(stat.PopVariance(window, nil))
		if std == 0 {
			scores[d] = 0
			continue
		}
		scores[d] = (daily[i] - mean) / std
	}
	return scores
}
