package pipeline

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"finsight/internal/config"
	"finsight/internal/model"
)

func TestEngineerFeatures_RollingSpend(t *testing.T) {
	cfg := config.Default()

	classified := Classify([]model.Transaction{
		tx("2024-03-01", "Padaria", 10),
		tx("2024-03-05", "Uber Trip", 20),
		tx("2024-03-09", "Mercado", 30),
	}, cfg)
	got := EngineerFeatures(classified, cfg)

	// Windows are left-open (t-7d, t]: the 2024-03-01 row falls outside the
	// window ending 2024-03-09 but inside the one ending 2024-03-05.
	tests := []struct {
		i      int
		want7  float64
		want30 float64
	}{
		{0, -10, -10},
		{1, -30, -30},
		{2, -50, -60},
	}
	for _, tt := range tests {
		if got[tt.i].Rolling7dSpend != tt.want7 {
			t.Errorf("Rolling7dSpend[%d] = %v, want %v", tt.i, got[tt.i].Rolling7dSpend, tt.want7)
		}
		if got[tt.i].Rolling30dSpend != tt.want30 {
			t.Errorf("Rolling30dSpend[%d] = %v, want %v", tt.i, got[tt.i].Rolling30dSpend, tt.want30)
		}
	}
}

func TestEngineerFeatures_IncomeExcludedFromSpend(t *testing.T) {
	cfg := config.Default()

	classified := Classify([]model.Transaction{
		tx("2024-03-01", "Padaria", 10),
		tx("2024-03-02", "Pagamento recebido", -500),
	}, cfg)
	got := EngineerFeatures(classified, cfg)

	if got[1].Rolling7dSpend != -10 {
		t.Errorf("Rolling7dSpend = %v, want -10 (income must not count)", got[1].Rolling7dSpend)
	}
	if got[1].Rolling7dIncome != 500 {
		t.Errorf("Rolling7dIncome = %v, want 500", got[1].Rolling7dIncome)
	}
}

func TestEngineerFeatures_PermutationInvariant(t *testing.T) {
	cfg := config.Default()

	var raw []model.Transaction
	rng := rand.New(rand.NewSource(7))
	days := []string{"01", "03", "05", "08", "12", "15", "19", "22", "26", "28"}
	for _, d := range days {
		raw = append(raw, tx("2024-03-"+d, "Mercado", 10+rng.Float64()*90))
	}

	shuffled := make([]model.Transaction, len(raw))
	copy(shuffled, raw)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	a := EngineerFeatures(Classify(raw, cfg), cfg)
	b := EngineerFeatures(Classify(shuffled, cfg), cfg)

	for i := range a {
		if a[i].Rolling30dSpend != b[i].Rolling30dSpend {
			t.Errorf("Rolling30dSpend[%d] = %v after shuffle, want %v",
				i, b[i].Rolling30dSpend, a[i].Rolling30dSpend)
		}
		if a[i].DailySpendZScore != b[i].DailySpendZScore {
			t.Errorf("DailySpendZScore[%d] = %v after shuffle, want %v",
				i, b[i].DailySpendZScore, a[i].DailySpendZScore)
		}
		if a[i].RunningBalance != b[i].RunningBalance {
			t.Errorf("RunningBalance[%d] = %v after shuffle, want %v",
				i, b[i].RunningBalance, a[i].RunningBalance)
		}
	}
}

func TestEngineerFeatures_ZScoreShortHistory(t *testing.T) {
	cfg := config.Default()

	// Only 3 calendar days of history: below the 7-observation minimum,
	// so every z-score is zero.
	classified := Classify([]model.Transaction{
		tx("2024-03-01", "Padaria", 10),
		tx("2024-03-02", "Padaria", 200),
		tx("2024-03-03", "Padaria", 10),
	}, cfg)
	got := EngineerFeatures(classified, cfg)

	for i, g := range got {
		if g.DailySpendZScore != 0 {
			t.Errorf("DailySpendZScore[%d] = %v, want 0", i, g.DailySpendZScore)
		}
	}
}

func TestEngineerFeatures_ZScoreFlagsSpike(t *testing.T) {
	cfg := config.Default()

	var raw []model.Transaction
	for d := 1; d <= 14; d++ {
		amount := 10.0
		if d == 14 {
			amount = 500.0
		}
		raw = append(raw, tx(dayStamp(2024, 3, d), "Mercado", amount))
	}
	got := EngineerFeatures(Classify(raw, cfg), cfg)

	z := got[len(got)-1].DailySpendZScore
	if !(z < -2) {
		t.Errorf("DailySpendZScore on spike day = %v, want < -2", z)
	}
	if math.IsNaN(z) || math.IsInf(z, 0) {
		t.Errorf("DailySpendZScore = %v, want finite", z)
	}
}

func TestEngineerFeatures_MonthTotals(t *testing.T) {
	cfg := config.Default()

	classified := Classify([]model.Transaction{
		tx("2024-03-01", "Padaria", 10),
		tx("2024-03-20", "Mercado", 40),
		tx("2024-04-02", "Padaria", 5),
		tx("2024-03-10", "Pagamento recebido", -100),
	}, cfg)
	got := EngineerFeatures(classified, cfg)

	for _, g := range got {
		switch g.Month.Month() {
		case 3:
			if g.MonthTotalExpense != -50 {
				t.Errorf("MonthTotalExpense (March) = %v, want -50", g.MonthTotalExpense)
			}
			if g.MonthTotalIncome != 100 {
				t.Errorf("MonthTotalIncome (March) = %v, want 100", g.MonthTotalIncome)
			}
		case 4:
			if g.MonthTotalExpense != -5 {
				t.Errorf("MonthTotalExpense (April) = %v, want -5", g.MonthTotalExpense)
			}
		}
	}
}

func TestEngineerFeatures_Empty(t *testing.T) {
	cfg := config.Default()
	got := EngineerFeatures(nil, cfg)
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func dayStamp(year, month, d int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, d)
}
