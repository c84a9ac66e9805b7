package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"finsight/internal/config"
	"finsight/internal/model"
)

// ComposeInsights combines the scored transactions, forecast, and quality
// summaries into a report. Every highlight is best-effort: a highlight
// whose precondition data is absent is simply omitted, so composition
// never fails.
func ComposeInsights(txns []model.Transaction, forecast model.ForecastSeries,
	quality QualityResult, cfg config.Config) model.InsightReport {

	breakdown := categoryBreakdown(txns)
	recurring := recurringMerchants(txns)
	cashflow := cashflowMetrics(txns)
	anomalies := anomalyTable(txns)

	report := model.InsightReport{
		Headline:           "Consolidated financial overview",
		CategoryBreakdown:  breakdown,
		RecurringMerchants: recurring,
		Cashflow:           cashflow,
		Anomalies:          anomalies,
		Forecast:           forecast,
		MonthlySummaries:   quality.Summaries,
	}
	report.Highlights = buildHighlights(report, cfg)
	return report
}

func categoryBreakdown(txns []model.Transaction) []model.CategoryTotal {
	totals := make(map[string]*model.CategoryTotal)
	for _, t := range txns {
		if t.Type != model.Expense {
			continue
		}
		ct, ok := totals[t.Category]
		if !ok {
			ct = &model.CategoryTotal{Category: t.Category}
			totals[t.Category] = ct
		}
		ct.Total += -t.Amount
		ct.Transactions++
	}

	breakdown := make([]model.CategoryTotal, 0, len(totals))
	for _, ct := range totals {
		breakdown = append(breakdown, *ct)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Total != breakdown[j].Total {
			return breakdown[i].Total > breakdown[j].Total
		}
		return breakdown[i].Category < breakdown[j].Category
	})
	return breakdown
}

// recurringMerchants groups expenses by normalized merchant name and keeps
// merchants with at least three transactions, largest total first.
func recurringMerchants(txns []model.Transaction) []model.MerchantTotal {
	totals := make(map[string]*model.MerchantTotal)
	for _, t := range txns {
		if t.Type != model.Expense {
			continue
		}
		mt, ok := totals[t.Merchant]
		if !ok {
			mt = &model.MerchantTotal{Merchant: t.Merchant}
			totals[t.Merchant] = mt
		}
		mt.Total += -t.Amount
		mt.Transactions++
		if t.Timestamp.After(mt.LastPayment) {
			mt.LastPayment = t.Timestamp
		}
	}

	var recurring []model.MerchantTotal
	for _, mt := range totals {
		if mt.Transactions >= 3 {
			recurring = append(recurring, *mt)
		}
	}
	sort.Slice(recurring, func(i, j int) bool {
		if recurring[i].Total != recurring[j].Total {
			return recurring[i].Total > recurring[j].Total
		}
		return recurring[i].Merchant < recurring[j].Merchant
	})
	return recurring
}

func cashflowMetrics(txns []model.Transaction) model.CashflowMetrics {
	var m model.CashflowMetrics
	dayTotals := make(map[string]float64)
	for _, t := range txns {
		if t.Type == model.Expense {
			m.TotalExpense += -t.Amount
			dayTotals[t.DateOnly.Format("2006-01-02")] += -t.Amount
		} else {
			m.TotalIncome += t.Amount
		}
	}
	m.NetCashflow = m.TotalIncome - m.TotalExpense

	if len(dayTotals) > 0 {
		var total float64
		for _, v := range dayTotals {
			total += v
		}
		m.AverageDailySpend = total / float64(len(dayTotals))
	}
	return m
}

func anomalyTable(txns []model.Transaction) []model.Transaction {
	var anomalies []model.Transaction
	for _, t := range txns {
		if t.IsAnomaly {
			anomalies = append(anomalies, t)
		}
	}
	// Most anomalous first: decision scores are more negative for outliers.
	sort.SliceStable(anomalies, func(i, j int) bool {
		return anomalies[i].AnomalyScore < anomalies[j].AnomalyScore
	})
	return anomalies
}

func buildHighlights(r model.InsightReport, cfg config.Config) []string {
	var highlights []string

	if len(r.CategoryBreakdown) > 0 {
		top := r.CategoryBreakdown[0]
		highlights = append(highlights, fmt.Sprintf(
			"Largest spending category: %s at %s %.2f.",
			top.Category, cfg.Currency, top.Total))
	}

	highlights = append(highlights, fmt.Sprintf(
		"Average daily spend: %s %.2f.", cfg.Currency, r.Cashflow.AverageDailySpend))

	if len(r.Forecast.Forecast) > 0 {
		highlights = append(highlights, fmt.Sprintf(
			"Projected spend for next month: %s %.2f.",
			cfg.Currency, r.Forecast.Forecast[0].Value))
	}

	if len(r.Anomalies) > 0 {
		highlights = append(highlights, fmt.Sprintf(
			"Found %d unusual transactions (largest merchant total %s %.2f).",
			len(r.Anomalies), cfg.Currency, largestAnomalousMerchantTotal(r.Anomalies)))
	}

	if flagged := flaggedMonths(r.MonthlySummaries); len(flagged) > 0 {
		highlights = append(highlights, fmt.Sprintf(
			"Months with possible data inconsistencies: %s.",
			strings.Join(flagged, ", ")))
	}

	return highlights
}

func largestAnomalousMerchantTotal(anomalies []model.Transaction) float64 {
	totals := make(map[string]float64)
	for _, t := range anomalies {
		totals[t.Merchant] += t.Amount
	}
	var largest float64
	for _, v := range totals {
		if abs := absFloat(v); abs > largest {
			largest = abs
		}
	}
	return largest
}

func flaggedMonths(summaries []model.MonthlySummary) []string {
	var flagged []string
	for _, s := range summaries {
		if s.QualityFlag {
			flagged = append(flagged, s.Month.Format("2006-01"))
		}
	}
	return flagged
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
