package utils

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds x to 2 decimal places (banking-style simple round).
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ToCents converts a currency amount to integer minor units.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// ParseMoneyBRL parses localized money input into cents. Accepts plain
// decimals ("1234.56") and Brazilian formatting with an optional currency
// prefix ("R$ 1.234,56", "1234,56").
func ParseMoneyBRL(s string) (int64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "R$")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount")
	}
	if strings.Contains(cleaned, ",") {
		// Brazilian format: dot is the thousands separator, comma the decimal.
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// FormatBRL renders cents as a Brazilian currency string for exports.
func FormatBRL(cents int64) string {
	d := decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
	parts := strings.SplitN(d.StringFixed(2), ".", 2)
	intPart, frac := parts[0], parts[1]
	negative := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var grouped []string
	for len(intPart) > 3 {
		grouped = append([]string{intPart[len(intPart)-3:]}, grouped...)
		intPart = intPart[:len(intPart)-3]
	}
	grouped = append([]string{intPart}, grouped...)

	out := "R$ " + strings.Join(grouped, ".") + "," + frac
	if negative {
		out = "-" + out
	}
	return out
}
