// Package cli provides formatting and rendering utilities for the terminal
// report surfaces.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatMoney formats an amount with its currency code, keeping two
// decimals. e.g., FormatMoney("BRL", 1234.5) -> "BRL 1,234.50"
func FormatMoney(currency string, v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	whole := int64(v)
	cents := int64((v-float64(whole))*100 + 0.5)
	if cents >= 100 {
		whole++
		cents -= 100
	}

	s := fmt.Sprintf("%s %s.%02d", currency, FormatNumber(whole), cents)
	if neg {
		return "-" + s
	}
	return s
}

// FormatNumber formats an integer with thousands separators.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := strings.Join(parts, ",")
	if neg {
		return "-" + out
	}
	return out
}

// FormatPercent formats a 0..1 ratio as a percentage.
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

// FormatScore formats a model decision score.
func FormatScore(score float64) string {
	return fmt.Sprintf("%+.4f", score)
}

// FormatMonth formats a month bucket as YYYY-MM.
func FormatMonth(month time.Time) string {
	return month.Format("2006-01")
}

// FormatFlag renders a boolean flag as a compact marker.
func FormatFlag(flagged bool) string {
	if flagged {
		return "!"
	}
	return ""
}
