// Package pipeline implements the transaction-to-insight analysis: classify,
// feature engineering, anomaly scoring, quality assessment, forecasting,
// and insight composition. Each stage consumes the previous stage's output
// and returns a fresh slice; no stage mutates its input.
package pipeline

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"finsight/internal/config"
	"finsight/internal/model"
)

var merchantClean = regexp.MustCompile(`[^a-zA-Z0-9 ]`)

// Classify normalizes raw transactions: it resolves the transaction type
// and signed amount, assigns a category and subscription flag, fills the
// calendar fields, and computes the running balance over ascending
// timestamp order. The input slice is not modified.
func Classify(raw []model.Transaction, cfg config.Config) []model.Transaction {
	txns := make([]model.Transaction, len(raw))
	copy(txns, raw)

	// Ties on identical timestamps keep ingestion order.
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Timestamp.Before(txns[j].Timestamp)
	})

	var balance float64
	for i := range txns {
		t := &txns[i]
		if strings.TrimSpace(t.Description) == "" {
			t.Description = config.UnknownDescription
		}

		t.Type, t.Amount = classifyAmount(t.Description, t.Amount, cfg)
		t.Category = cfg.CategoryFor(t.Description)
		t.IsSubscription = config.MatchesAny(t.Description, cfg.SubscriptionKeywords)

		t.AbsAmount = math.Abs(t.Amount)
		t.DayOfWeek = mondayIndexed(t.Timestamp.Weekday())
		t.IsWeekend = t.DayOfWeek >= 5
		t.DateOnly = dayOf(t.Timestamp)
		t.Month = monthOf(t.Timestamp)
		t.Year = t.Timestamp.Year()
		t.Hour = t.Timestamp.Hour()
		t.Merchant = strings.TrimSpace(merchantClean.ReplaceAllString(t.Description, ""))

		balance += t.Amount
		t.RunningBalance = balance
	}

	return txns
}

// classifyAmount resolves the transaction type and the signed amount. A
// negative raw amount denotes a credit on this statement format and always
// classifies as income, even when a refund keyword matches.
func classifyAmount(description string, amount float64, cfg config.Config) (model.TransactionType, float64) {
	abs := math.Abs(amount)
	if amount < 0 || config.MatchesAny(description, cfg.IncomeKeywords) {
		return model.Income, abs
	}
	if config.MatchesAny(description, cfg.RefundKeywords) {
		return model.Refund, abs
	}
	return model.Expense, -abs
}

// mondayIndexed converts Go's Sunday-first weekday to Monday=0..Sunday=6.
func mondayIndexed(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

func monthOf(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, ts.Location())
}

func dayOf(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
}
