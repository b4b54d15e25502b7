package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CommissionSplit divides a booking amount into the marketplace commission
// and the operator receivable. Both sides round to 2 decimal places; the
// operator side absorbs the rounding remainder so the two always sum back to
// the original amount.
func CommissionSplit(amount, pct decimal.Decimal) (commission, operatorNet decimal.Decimal) {
	commission = amount.Mul(pct).Div(decimal.NewFromInt(100)).Round(2)
	operatorNet = amount.Sub(commission)
	return commission, operatorNet
}

// ParseAmount parses a monetary string, rejecting negatives.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount: %w", err)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("amount must not be negative")
	}
	return d, nil
}

// FormatAmount renders an amount with its currency code for documents.
func FormatAmount(d decimal.Decimal, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return d.StringFixed(2)
	}
	return currency + " " + d.StringFixed(2)
}
