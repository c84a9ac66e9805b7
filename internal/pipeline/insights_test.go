package pipeline

import (
	"strings"
	"testing"
	"time"

	"finsight/internal/config"
	"finsight/internal/model"
)

func TestComposeInsights_CategoryBreakdown(t *testing.T) {
	cfg := config.Default()

	classified := Classify([]model.Transaction{
		tx("2024-03-01", "Uber Trip", 30),
		tx("2024-03-02", "Uber Trip", 20),
		tx("2024-03-03", "Padaria", 40),
		tx("2024-03-04", "Pagamento recebido", -500),
	}, cfg)
	got := ComposeInsights(classified, model.ForecastSeries{}, QualityResult{}, cfg)

	if len(got.CategoryBreakdown) != 2 {
		t.Fatalf("len(CategoryBreakdown) = %d, want 2 (income excluded)", len(got.CategoryBreakdown))
	}
	first := got.CategoryBreakdown[0]
	if first.Category != "Transportation" || first.Total != 50 || first.Transactions != 2 {
		t.Errorf("top category = %+v, want Transportation/50/2", first)
	}
	if got.CategoryBreakdown[1].Category != "Food" {
		t.Errorf("second category = %q, want Food", got.CategoryBreakdown[1].Category)
	}
}

func TestComposeInsights_RecurringMerchants(t *testing.T) {
	cfg := config.Default()

	classified := Classify([]model.Transaction{
		tx("2024-03-01", "Uber Trip", 10),
		tx("2024-03-02", "Uber Trip", 10),
		tx("2024-03-03", "Uber Trip", 10),
		tx("2024-03-04", "Padaria", 10),
		tx("2024-03-05", "Padaria", 10),
	}, cfg)
	got := ComposeInsights(classified, model.ForecastSeries{}, QualityResult{}, cfg)

	if len(got.RecurringMerchants) != 1 {
		t.Fatalf("len(RecurringMerchants) = %d, want 1 (three-transaction minimum)", len(got.RecurringMerchants))
	}
	mt := got.RecurringMerchants[0]
	if mt.Merchant != "Uber Trip" || mt.Transactions != 3 || mt.Total != 30 {
		t.Errorf("recurring merchant = %+v, want Uber Trip/3/30", mt)
	}
	if mt.LastPayment.Day() != 3 {
		t.Errorf("LastPayment day = %d, want 3", mt.LastPayment.Day())
	}
}

func TestComposeInsights_Cashflow(t *testing.T) {
	cfg := config.Default()

	// Two expense days (30 and 40) and one income-only day.
	classified := Classify([]model.Transaction{
		tx("2024-03-01", "Padaria", 10),
		tx("2024-03-01", "Uber Trip", 20),
		tx("2024-03-02", "Mercado", 40),
		tx("2024-03-03", "Pagamento recebido", -100),
	}, cfg)
	got := ComposeInsights(classified, model.ForecastSeries{}, QualityResult{}, cfg)

	cf := got.Cashflow
	if cf.TotalExpense != 70 {
		t.Errorf("TotalExpense = %v, want 70", cf.TotalExpense)
	}
	if cf.TotalIncome != 100 {
		t.Errorf("TotalIncome = %v, want 100", cf.TotalIncome)
	}
	if cf.NetCashflow != 30 {
		t.Errorf("NetCashflow = %v, want 30", cf.NetCashflow)
	}
	if cf.AverageDailySpend != 35 {
		t.Errorf("AverageDailySpend = %v, want 35 (days with expenses only)", cf.AverageDailySpend)
	}
}

func TestComposeInsights_AnomaliesSortedMostAnomalousFirst(t *testing.T) {
	cfg := config.Default()

	txns := []model.Transaction{
		{Description: "a", AnomalyScore: -0.1, IsAnomaly: true},
		{Description: "b", AnomalyScore: 0.2},
		{Description: "c", AnomalyScore: -0.5, IsAnomaly: true},
	}
	got := ComposeInsights(txns, model.ForecastSeries{}, QualityResult{}, cfg)

	if len(got.Anomalies) != 2 {
		t.Fatalf("len(Anomalies) = %d, want 2", len(got.Anomalies))
	}
	if got.Anomalies[0].Description != "c" || got.Anomalies[1].Description != "a" {
		t.Errorf("anomaly order = %q, %q; want c, a",
			got.Anomalies[0].Description, got.Anomalies[1].Description)
	}
}

func TestComposeInsights_Highlights(t *testing.T) {
	cfg := config.Default()

	classified := Classify([]model.Transaction{
		tx("2024-03-01", "Uber Trip", 30),
		tx("2024-03-02", "Padaria", 10),
	}, cfg)
	forecast := model.ForecastSeries{
		Forecast: []model.MonthValue{{Value: 123.45}},
	}
	quality := QualityResult{Summaries: []model.MonthlySummary{
		{Month: mustMonth("2024-02"), QualityFlag: true},
		{Month: mustMonth("2024-03")},
	}}
	got := ComposeInsights(classified, forecast, quality, cfg)

	joined := strings.Join(got.Highlights, "\n")
	for _, want := range []string{
		"Largest spending category: Transportation",
		"Average daily spend",
		"Projected spend for next month: BRL 123.45",
		"2024-02",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("highlights missing %q:\n%s", want, joined)
		}
	}
	if strings.Contains(joined, "unusual transactions") {
		t.Errorf("anomaly highlight present without anomalies:\n%s", joined)
	}
}

func TestComposeInsights_EmptyInput(t *testing.T) {
	cfg := config.Default()

	got := ComposeInsights(nil, model.ForecastSeries{}, QualityResult{}, cfg)
	if got.Headline == "" {
		t.Error("Headline empty")
	}
	if len(got.CategoryBreakdown) != 0 || len(got.Anomalies) != 0 {
		t.Error("expected empty breakdown and anomalies")
	}
	// The daily-spend highlight is unconditional.
	if len(got.Highlights) == 0 {
		t.Error("expected at least one highlight")
	}
}

func mustMonth(s string) time.Time {
	m, err := time.Parse("2006-01", s)
	if err != nil {
		panic(err)
	}
	return m
}
