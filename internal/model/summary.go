package model

import "time"

// MonthlySummary holds the per-month aggregates used by the quality
// assessor. Expense sums are stored as positive magnitudes.
type MonthlySummary struct {
	Month time.Time

	TotalTransactions int
	ExpenseSum        float64
	IncomeSum         float64
	AvgExpense        float64
	StdExpense        float64
	AvgIncome         float64
	StdIncome         float64
	AvgAbsAmount      float64
	StdAbsAmount      float64

	WeekendRatio       float64
	SubscriptionRatio  float64
	RefundRatio        float64
	AnomalyRatio       float64
	MissingAmountRatio float64

	LargestExpense        float64
	NetCashflow           float64
	ExpensePerTransaction float64
	IncomePerTransaction  float64

	QualityScore float64
	QualityFlag  bool
}

// MonthValue is one point of a monthly series.
type MonthValue struct {
	Month time.Time
	Value float64
}

// ForecastSeries splits a monthly expense series into the observed history
// and the projected horizon. ModelSummary describes which fitting strategy
// produced the projection; Fallback is set when that strategy was the
// historical mean rather than the seasonal model.
type ForecastSeries struct {
	History      []MonthValue
	Forecast     []MonthValue
	ModelSummary string
	Fallback     bool
}

// CategoryTotal is one row of the category breakdown.
type CategoryTotal struct {
	Category     string
	Total        float64
	Transactions int
}

// MerchantTotal is one row of the recurring-merchant table.
type MerchantTotal struct {
	Merchant     string
	Total        float64
	Transactions int
	LastPayment  time.Time
}

// CashflowMetrics holds the scalar cashflow figures for the report.
type CashflowMetrics struct {
	TotalExpense      float64
	TotalIncome       float64
	NetCashflow       float64
	AverageDailySpend float64
}

// InsightReport is the consolidated, human-readable analysis output.
type InsightReport struct {
	Headline           string
	Highlights         []string
	CategoryBreakdown  []CategoryTotal
	RecurringMerchants []MerchantTotal
	Cashflow           CashflowMetrics
	Anomalies          []Transaction
	Forecast           ForecastSeries
	MonthlySummaries   []MonthlySummary
}
