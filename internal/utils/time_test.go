package utils

import "testing"

func TestValidDateRange(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{"2026-06-01", "2026-06-08", true},
		{"2026-06-08", "2026-06-08", true},
		{"2026-06-08", "2026-06-01", false},
		{"06/01/2026", "2026-06-08", false},
		{"", "2026-06-08", false},
	}
	for _, c := range cases {
		if got := ValidDateRange(c.from, c.to); got != c.want {
			t.Fatalf("ValidDateRange(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
