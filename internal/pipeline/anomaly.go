package pipeline

import (
	"math"

	"finsight/internal/config"
	"finsight/internal/mlkit"
	"finsight/internal/model"
)

// ScoreAnomalies fits a seeded isolation forest on the configured feature
// columns and attaches a decision score and outlier flag to every record.
// The model is fitted fresh on each invocation; the same feature matrix and
// seed always produce the same scores.
func ScoreAnomalies(features []model.Transaction, cfg config.Config) []model.Transaction {
	txns := make([]model.Transaction, len(features))
	copy(txns, features)
	if len(txns) == 0 {
		return txns
	}

	matrix := make([][]float64, len(txns))
	for i, t := range txns {
		row := make([]float64, len(cfg.Anomaly.FeatureColumns))
		for f, name := range cfg.Anomaly.FeatureColumns {
			v := featureValue(t, name)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = 0
			}
			row[f] = v
		}
		matrix[i] = row
	}

	res := mlkit.FitScoreIsolationForest(matrix, mlkit.IsolationForestParams{
		Trees:         cfg.Anomaly.Trees,
		SampleSize:    cfg.Anomaly.SampleSize,
		Contamination: cfg.Anomaly.Contamination,
		Seed:          cfg.Anomaly.Seed,
	})

	for i := range txns {
		txns[i].AnomalyScore = res.Scores[i]
		txns[i].IsAnomaly = res.Outliers[i]
	}
	return txns
}

// featureValue resolves a configured feature column name against a record.
// Unknown columns read as zero, mirroring the zero imputation applied to
// missing values.
func featureValue(t model.Transaction, name string) float64 {
	switch name {
	case "amount":
		return t.Amount
	case "abs_amount":
		return t.AbsAmount
	case "rolling_7d_spend":
		return t.Rolling7dSpend
	case "rolling_30d_spend":
		return t.Rolling30dSpend
	case "rolling_90d_spend":
		return t.Rolling90dSpend
	case "rolling_7d_income":
		return t.Rolling7dIncome
	case "rolling_30d_income":
		return t.Rolling30dIncome
	case "daily_spend_zscore":
		return t.DailySpendZScore
	case "month_total_expense":
		return t.MonthTotalExpense
	case "month_total_income":
		return t.MonthTotalIncome
	case "day_of_week":
		return float64(t.DayOfWeek)
	case "is_weekend":
		return boolToFloat(t.IsWeekend)
	case "hour":
		return float64(t.Hour)
	case "running_balance":
		return t.RunningBalance
	default:
		return 0
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
