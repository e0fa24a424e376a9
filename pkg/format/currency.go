// Package format renders monetary amounts for reports.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency returns a currency string with a euro sign and thousands separators (e.g., "-€1,234.56").
func Currency(amount float64) string {
	sign, formatted := split(amount)
	return sign + "€" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	sign, formatted := split(amount)
	return sign + formatted
}

// Cents rounds amount half away from zero to two decimal places.
func Cents(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(2)
}

func split(amount float64) (string, string) {
	d := Cents(amount)
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign, group(d.Abs().StringFixed(2))
}

func group(fixed string) string {
	intPart, decPart, _ := strings.Cut(fixed, ".")
	if len(intPart) <= 3 {
		return intPart + "." + decPart
	}

	var builder strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	return builder.String() + "." + decPart
}
