package model

import (
	"math"
	"strconv"
	"strings"
)

// FormatPrice renders a ruble amount the way the storefront shows it:
// thousands grouped with spaces and a ruble sign, or "По запросу" for
// price-on-request items.
func FormatPrice(price float64) string {
	if price <= 0 {
		return "По запросу"
	}
	return groupDigits(int64(math.Round(price))) + " ₽"
}

func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
