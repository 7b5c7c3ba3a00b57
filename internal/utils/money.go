package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatAmount renders an amount the way the public site shows prices,
// e.g. 1234.5 RON -> "1.234,50 RON".
func FormatAmount(amount float64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	cents := int64(math.Round(amount * 100))
	out := fmt.Sprintf("%s%s,%02d", sign, formatThousand(cents/100), cents%100)
	if c := strings.ToUpper(strings.TrimSpace(currency)); c != "" {
		out += " " + c
	}
	return out
}

// ToMinorUnits converts a major-unit amount into integer minor units (bani, cents).
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}
