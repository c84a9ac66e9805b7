package cli

import (
	"strings"
	"testing"
)

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Top categories",
		Headers: []string{"Category", "Total"},
		Rows: [][]string{
			{"Food", "120.00"},
			{"Transportation", "80.00"},
		},
	})

	for _, want := range []string{"Top categories", "Category", "Food", "Transportation", "80.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "╭") || !strings.Contains(out, "╯") {
		t.Errorf("output missing border corners:\n%s", out)
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if out := RenderTable(Table{}); out != "" {
		t.Errorf("empty table rendered %q, want empty string", out)
	}
}

func TestRenderSparkline(t *testing.T) {
	out := RenderSparkline([]float64{0, 50, 100})
	runes := []rune(out)
	if len(runes) != 3 {
		t.Fatalf("len = %d runes, want 3", len(runes))
	}
	if runes[0] != '▁' {
		t.Errorf("first rune = %q, want lowest block", runes[0])
	}
	if runes[2] != '█' {
		t.Errorf("last rune = %q, want full block", runes[2])
	}

	if out := RenderSparkline(nil); out != "" {
		t.Errorf("empty series rendered %q, want empty string", out)
	}
}

func TestRenderHighlight(t *testing.T) {
	out := RenderHighlight("Average daily spend: BRL 35.00.")
	if !strings.Contains(out, "•") {
		t.Errorf("output missing bullet: %q", out)
	}
	if !strings.Contains(out, "Average daily spend") {
		t.Errorf("output missing text: %q", out)
	}
}
