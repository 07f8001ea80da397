package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders a decimal with thousand separators and exactly two
// fraction digits, matching the en-GH presentation used on printed reports.
func FormatMoney(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return moneyPrinter.Sprint(number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// ParseAmount parses a caller-supplied amount string strictly: empty input
// and negatives are rejected rather than coerced to zero.
func ParseAmount(field string, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, NewValidationError(field + " is required")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, NewValidationError(field + " must be a valid number")
	}
	if d.IsNegative() {
		return decimal.Zero, NewValidationError(field + " must be a non-negative number")
	}
	return d, nil
}
