// Package model defines the records exchanged between pipeline stages.
package model

import "time"

// TransactionType labels the direction of a statement line.
type TransactionType string

const (
	Expense TransactionType = "expense"
	Income  TransactionType = "income"
	Refund  TransactionType = "refund"
)

// Transaction is one statement line plus every derived attribute the
// pipeline attaches. Amount is raw on ingestion and signed after
// classification: expenses negative, income and refunds non-negative.
type Transaction struct {
	Timestamp   time.Time
	Description string
	Amount      float64
	Source      string

	// MissingAmount marks rows whose amount column was blank or unparsable.
	// Such rows carry a zero amount through the numeric stages.
	MissingAmount bool

	// Set by the classifier.
	Type           TransactionType
	Category       string
	IsSubscription bool
	AbsAmount      float64
	DayOfWeek      int // Monday=0 .. Sunday=6
	IsWeekend      bool
	DateOnly       time.Time
	Month          time.Time // first of month
	Year           int
	Hour           int
	Merchant       string
	RunningBalance float64

	// Set by the feature engine. Spend features carry the sign convention
	// of the classified amount, so rolling spend sums are negative.
	Rolling7dSpend    float64
	Rolling30dSpend   float64
	Rolling90dSpend   float64
	Rolling7dIncome   float64
	Rolling30dIncome  float64
	DailySpendZScore  float64
	MonthTotalExpense float64
	MonthTotalIncome  float64

	// Set by the anomaly scorer.
	AnomalyScore float64
	IsAnomaly    bool
}
