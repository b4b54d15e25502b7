package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCommissionSplitSumsBackToAmount(t *testing.T) {
	cases := []struct {
		amount, pct string
	}{
		{"2500.00", "10"},
		{"999.99", "12.5"},
		{"0.01", "15"},
		{"1234.56", "0"},
	}
	for _, c := range cases {
		amount := decimal.RequireFromString(c.amount)
		pct := decimal.RequireFromString(c.pct)
		commission, net := CommissionSplit(amount, pct)
		if !commission.Add(net).Equal(amount) {
			t.Fatalf("%s at %s%%: %s + %s != %s", c.amount, c.pct, commission, net, c.amount)
		}
		if commission.Exponent() < -2 {
			t.Fatalf("commission not rounded to 2dp: %s", commission)
		}
	}
}

func TestCommissionSplitKnownValues(t *testing.T) {
	commission, net := CommissionSplit(decimal.RequireFromString("2500.00"), decimal.NewFromInt(10))
	if !commission.Equal(decimal.RequireFromString("250")) {
		t.Fatalf("commission = %s", commission)
	}
	if !net.Equal(decimal.RequireFromString("2250")) {
		t.Fatalf("net = %s", net)
	}
}

func TestParseAmount(t *testing.T) {
	if _, err := ParseAmount("-5"); err == nil {
		t.Fatalf("negative amount should be rejected")
	}
	if _, err := ParseAmount("abc"); err == nil {
		t.Fatalf("non-numeric amount should be rejected")
	}
	d, err := ParseAmount(" 120.50 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Equal(decimal.RequireFromString("120.50")) {
		t.Fatalf("got %s", d)
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(decimal.RequireFromString("2500"), "usd"); got != "USD 2500.00" {
		t.Fatalf("got %q", got)
	}
	if got := FormatAmount(decimal.RequireFromString("10.5"), ""); got != "10.50" {
		t.Fatalf("got %q", got)
	}
}
