package pipeline

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"finsight/internal/config"
	"finsight/internal/mlkit"
	"finsight/internal/model"
)

// QualityResult holds the monthly summaries plus the scoring threshold that
// produced the flags.
type QualityResult struct {
	Summaries []model.MonthlySummary
	Threshold float64
}

// AssessQuality aggregates transactions into monthly summaries and flags
// months whose statistical profile deviates from the rest. With fewer than
// the configured minimum of months there is no "typical" month to model, so
// every month scores zero and nothing is flagged. Zero transactions yield
// an empty summary, not an error.
func AssessQuality(txns []model.Transaction, cfg config.Config) QualityResult {
	result := QualityResult{Threshold: cfg.Quality.ScoreThreshold}
	result.Summaries = buildMonthlySummaries(txns)
	if len(result.Summaries) == 0 {
		return result
	}
	if len(result.Summaries) < cfg.Quality.MinMonths {
		return result
	}

	matrix := make([][]float64, len(result.Summaries))
	for i, s := range result.Summaries {
		matrix[i] = monthlyFeatureVector(s)
	}

	scores := mlkit.FitScoreOneClass(mlkit.RobustScale(matrix), mlkit.OneClassParams{
		Nu:    cfg.Quality.Nu,
		Gamma: cfg.Quality.Gamma,
	})
	for i := range result.Summaries {
		result.Summaries[i].QualityScore = scores[i]
		result.Summaries[i].QualityFlag = scores[i] < cfg.Quality.ScoreThreshold
	}
	return result
}

func buildMonthlySummaries(txns []model.Transaction) []model.MonthlySummary {
	type bucket struct {
		expenses  []float64 // positive magnitudes, zero for non-expense rows
		incomes   []float64
		absValues []float64
		weekend   int
		subs      int
		refunds   int
		anomalies int
		missing   int
	}

	buckets := make(map[time.Time]*bucket)
	for _, t := range txns {
		month := t.Month
		if month.IsZero() {
			month = monthOf(t.Timestamp)
		}
		b, ok := buckets[month]
		if !ok {
			b = &bucket{}
			buckets[month] = b
		}

		var expenseVal, incomeVal float64
		if t.Type == model.Expense {
			expenseVal = -t.Amount
		} else {
			incomeVal = t.Amount
		}
		b.expenses = append(b.expenses, expenseVal)
		b.incomes = append(b.incomes, incomeVal)
		b.absValues = append(b.absValues, t.AbsAmount)

		if t.IsWeekend {
			b.weekend++
		}
		if t.IsSubscription {
			b.subs++
		}
		if t.Type == model.Refund {
			b.refunds++
		}
		if t.IsAnomaly {
			b.anomalies++
		}
		if t.MissingAmount {
			b.missing++
		}
	}

	summaries := make([]model.MonthlySummary, 0, len(buckets))
	for month, b := range buckets {
		n := len(b.expenses)
		count := float64(n)

		s := model.MonthlySummary{
			Month:              month,
			TotalTransactions:  n,
			ExpenseSum:         sum(b.expenses),
			IncomeSum:          sum(b.incomes),
			AvgExpense:         stat.Mean(b.expenses, nil),
			StdExpense:         sampleStd(b.expenses),
			AvgIncome:          stat.Mean(b.incomes, nil),
			StdIncome:          sampleStd(b.incomes),
			AvgAbsAmount:       stat.Mean(b.absValues, nil),
			StdAbsAmount:       sampleStd(b.absValues),
			WeekendRatio:       float64(b.weekend) / count,
			SubscriptionRatio:  float64(b.subs) / count,
			RefundRatio:        float64(b.refunds) / count,
			AnomalyRatio:       float64(b.anomalies) / count,
			MissingAmountRatio: float64(b.missing) / count,
			LargestExpense:     maxValue(b.expenses),
		}
		s.NetCashflow = s.IncomeSum - s.ExpenseSum
		s.ExpensePerTransaction = s.ExpenseSum / count
		s.IncomePerTransaction = s.IncomeSum / count
		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Month.Before(summaries[j].Month)
	})
	return summaries
}

// monthlyFeatureVector lists the aggregates fed to the novelty model, in a
// fixed order.
func monthlyFeatureVector(s model.MonthlySummary) []float64 {
	return []float64{
		float64(s.TotalTransactions),
		s.ExpenseSum, s.IncomeSum,
		s.AvgExpense, s.StdExpense,
		s.AvgIncome, s.StdIncome,
		s.AvgAbsAmount, s.StdAbsAmount,
		s.WeekendRatio, s.SubscriptionRatio, s.RefundRatio,
		s.AnomalyRatio, s.MissingAmountRatio,
		s.LargestExpense, s.NetCashflow,
		s.ExpensePerTransaction, s.IncomePerTransaction,
	}
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// sampleStd is the n-1 standard deviation, zero for a single observation.
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sd := stat.StdDev(values, nil)
	if math.IsNaN(sd) {
		return 0
	}
	return sd
}

func maxValue(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
