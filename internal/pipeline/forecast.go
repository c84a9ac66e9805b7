package pipeline

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"finsight/internal/config"
	"finsight/internal/mlkit"
	"finsight/internal/model"
)

// ForecastExpenses aggregates expense magnitudes by calendar month and
// projects the configured horizon forward. With fewer than three months of
// history the seasonal model is statistically meaningless, so the
// historical mean is projected instead. A seasonal fit that fails for any
// reason is absorbed the same way: the result always carries a full-length
// forecast and a summary describing which strategy produced it.
func ForecastExpenses(classified []model.Transaction, cfg config.Config) model.ForecastSeries {
	history := monthlyExpenses(classified)
	horizon := cfg.Forecast.HorizonMonths
	if horizon < 1 {
		horizon = 1
	}

	if len(history) < 3 {
		return meanFallback(history, horizon,
			"historical mean projection: fewer than 3 months of history")
	}

	values := make([]float64, len(history))
	for i, mv := range history {
		values[i] = mv.Value
	}

	forecast, err := mlkit.ForecastHoltWinters(values, horizon, mlkit.HoltWintersParams{
		SeasonalPeriods: cfg.Forecast.SeasonalPeriods,
		DampedTrend:     cfg.Forecast.DampedTrend,
	})
	if err != nil {
		return meanFallback(history, horizon,
			fmt.Sprintf("holt-winters fit failed (%v); falling back to historical mean", err))
	}

	last := history[len(history)-1].Month
	return model.ForecastSeries{
		History:  history,
		Forecast: monthSeries(last, forecast),
		ModelSummary: fmt.Sprintf(
			"holt-winters: additive trend, multiplicative seasonality, m=%d, damped=%t",
			cfg.Forecast.SeasonalPeriods, cfg.Forecast.DampedTrend),
	}
}

// monthlyExpenses sums expense magnitudes (positive sign) per calendar
// month, ascending.
func monthlyExpenses(txns []model.Transaction) []model.MonthValue {
	totals := make(map[time.Time]float64)
	for _, t := range txns {
		if t.Type != model.Expense {
			continue
		}
		month := t.Month
		if month.IsZero() {
			month = monthOf(t.Timestamp)
		}
		totals[month] += -t.Amount
	}

	series := make([]model.MonthValue, 0, len(totals))
	for month, total := range totals {
		series = append(series, model.MonthValue{Month: month, Value: total})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Month.Before(series[j].Month)
	})
	return series
}

func meanFallback(history []model.MonthValue, horizon int, summary string) model.ForecastSeries {
	var mean float64
	last := monthOf(time.Now().UTC())
	if len(history) > 0 {
		values := make([]float64, len(history))
		for i, mv := range history {
			values[i] = mv.Value
		}
		mean = stat.Mean(values, nil)
		last = history[len(history)-1].Month
	}

	flat := make([]float64, horizon)
	for i := range flat {
		flat[i] = mean
	}
	return model.ForecastSeries{
		History:      history,
		Forecast:     monthSeries(last, flat),
		ModelSummary: summary,
		Fallback:     true,
	}
}

// monthSeries attaches consecutive months after last to the values.
func monthSeries(last time.Time, values []float64) []model.MonthValue {
	out := make([]model.MonthValue, len(values))
	for i, v := range values {
		out[i] = model.MonthValue{Month: last.AddDate(0, i+1, 0), Value: v}
	}
	return out
}
