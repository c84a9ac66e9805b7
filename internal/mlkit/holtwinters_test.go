package mlkit

import (
	"math"
	"testing"
)

func TestForecastHoltWinters_ConstantSeries(t *testing.T) {
	series := make([]float64, 24)
	for i := range series {
		series[i] = 100
	}

	got, err := ForecastHoltWinters(series, 6, HoltWintersParams{SeasonalPeriods: 12, DampedTrend: true})
	if err != nil {
		t.Fatalf("ForecastHoltWinters: %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("len = %d, want 6", len(got))
	}
	for i, v := range got {
		if math.Abs(v-100) > 1e-9 {
			t.Errorf("forecast[%d] = %v, want 100", i, v)
		}
	}
}

func TestForecastHoltWinters_RepeatingSeason(t *testing.T) {
	pattern := []float64{80, 100, 120, 100}
	var series []float64
	for i := 0; i < 4; i++ {
		series = append(series, pattern...)
	}

	got, err := ForecastHoltWinters(series, 4, HoltWintersParams{SeasonalPeriods: 4})
	if err != nil {
		t.Fatalf("ForecastHoltWinters: %v", err)
	}
	for i, want := range pattern {
		if math.Abs(got[i]-want) > 1e-6 {
			t.Errorf("forecast[%d] = %v, want %v", i, got[i], want)
		}
	}
}

func TestForecastHoltWinters_TrendingSeries(t *testing.T) {
	// Linear growth, no seasonality: the fit must stay stable.
	var series []float64
	for i := 0; i < 24; i++ {
		series = append(series, 100+10*float64(i))
	}

	got, err := ForecastHoltWinters(series, 6, HoltWintersParams{SeasonalPeriods: 12})
	if err != nil {
		t.Fatalf("ForecastHoltWinters: %v", err)
	}
	for i, v := range got {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("forecast[%d] = %v, want finite", i, v)
		}
		if v <= 0 {
			t.Errorf("forecast[%d] = %v, want positive for a rising series", i, v)
		}
	}
}

func TestForecastHoltWinters_Errors(t *testing.T) {
	constant := func(n int, v float64) []float64 {
		s := make([]float64, n)
		for i := range s {
			s[i] = v
		}
		return s
	}

	tests := []struct {
		name    string
		series  []float64
		horizon int
		p       HoltWintersParams
	}{
		{"seasonal period too short", constant(24, 100), 6, HoltWintersParams{SeasonalPeriods: 1}},
		{"history shorter than two cycles", constant(23, 100), 6, HoltWintersParams{SeasonalPeriods: 12}},
		{"zero value", append(constant(23, 100), 0), 6, HoltWintersParams{SeasonalPeriods: 12}},
		{"negative value", append(constant(23, 100), -5), 6, HoltWintersParams{SeasonalPeriods: 12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ForecastHoltWinters(tt.series, tt.horizon, tt.p); err == nil {
				t.Error("err = nil, want failure")
			}
		})
	}
}

func TestForecastHoltWinters_MinimumHorizon(t *testing.T) {
	series := make([]float64, 24)
	for i := range series {
		series[i] = 100
	}
	got, err := ForecastHoltWinters(series, 0, HoltWintersParams{SeasonalPeriods: 12})
	if err != nil {
		t.Fatalf("ForecastHoltWinters: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("len = %d, want 1 for horizon 0", len(got))
	}
}
