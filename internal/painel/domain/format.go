package domain

import (
	"math"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders v as Brazilian currency, e.g. "R$ 1.234,50".
func FormatBRL(v float64) string {
	return "R$ " + brPrinter.Sprintf("%.2f", v)
}

// FormatDecimal renders v with one decimal and a comma, e.g. "23,1".
func FormatDecimal(v float64) string {
	return brPrinter.Sprintf("%.1f", v)
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	http.TimeFormat,
	time.RFC1123,
}

// FormatDate renders an API date as dd/mm/yyyy. Values it cannot parse are
// returned unchanged; empty values become "-".
func FormatDate(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return v
}

// InputDate renders an API date as yyyy-mm-dd for <input type="date">.
func InputDate(v string) string {
	v = strings.TrimSpace(v)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// ClampProgress keeps a progress value inside 0..100.
func ClampProgress(p int) int {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

// ProgressPercent rounds a progress reported by the API and keeps it inside
// 0..100.
func ProgressPercent(p float64) int {
	switch {
	case math.IsNaN(p) || p <= 0:
		return 0
	case p >= 100:
		return 100
	default:
		return int(math.Round(p))
	}
}
