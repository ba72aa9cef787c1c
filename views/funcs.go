package views

import (
	"fmt"
	"html/template"
	"math"
	"strings"
	"time"
)

// FormatPrice renders amount with two decimals and thousands separators, prefixed by the
// currency code.
func FormatPrice(currency string, amount float64) string {
	negative := amount < 0
	cents := int64(math.Round(math.Abs(amount) * 100))
	whole, frac := cents/100, cents%100

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	sign := ""
	if negative && cents > 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s %s%s.%02d", currency, sign, b.String(), frac)
}

// Stars maps a rating onto five slots of "full", "half" or "empty".
func Stars(rating float64) []string {
	slots := make([]string, 5)
	for i := range slots {
		pos := float64(i)
		switch {
		case rating >= pos+1:
			slots[i] = "full"
		case rating >= pos+0.5:
			slots[i] = "half"
		default:
			slots[i] = "empty"
		}
	}
	return slots
}

// FormatDate renders an API timestamp as "January 2, 2006". Unparseable input is returned
// unchanged.
func FormatDate(v any) string {
	var t time.Time
	switch d := v.(type) {
	case time.Time:
		t = d
	case *time.Time:
		if d == nil {
			return ""
		}
		t = *d
	case string:
		if d == "" {
			return ""
		}
		parsed, err := time.Parse(time.RFC3339, d)
		if err != nil {
			return d
		}
		t = parsed
	default:
		return fmt.Sprint(v)
	}
	return t.Format("January 2, 2006")
}

// Pages lists 1..n for pagination links.
func Pages(n int) []int {
	out := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, i)
	}
	return out
}

// FuncMap is the helper set every template is parsed with.
func FuncMap(currency string) template.FuncMap {
	return template.FuncMap{
		"formatPrice": func(amount float64) string { return FormatPrice(currency, amount) },
		"stars":       Stars,
		"formatDate":  FormatDate,
		"pages":       Pages,
		"add":         func(a, b int) int { return a + b },
		"sub":         func(a, b int) int { return a - b },
		"mul":         func(a float64, b int) float64 { return a * float64(b) },
		"marked":      func(set map[string]bool, id string) bool { return set[id] },
		"truncate": func(s string, n int) string {
			r := []rune(s)
			if len(r) <= n {
				return s
			}
			return string(r[:n]) + "…"
		},
	}
}
