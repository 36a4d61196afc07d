package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatCurrency renders a whole-unit amount with thousand separators
// and a currency code prefix, e.g. FormatCurrency("MMK", 1234000)
// returns "MMK 1,234,000".
func FormatCurrency(code string, amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatFloat(amount, 'f', 0, 64)

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s %s%s", code, sign, b.String())
}
