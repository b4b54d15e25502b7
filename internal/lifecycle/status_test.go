package lifecycle

import "testing"

func TestParseStatusRejectsUnknown(t *testing.T) {
	if _, err := ParseStatus("shipped"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
	s, err := ParseStatus("payment_verified")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != StatusPaymentVerified {
		t.Fatalf("got %s", s)
	}
}

func TestPaymentRegresses(t *testing.T) {
	cases := []struct {
		from, to PaymentStatus
		want     bool
	}{
		{PaymentUnpaid, PaymentProofSubmitted, false},
		{PaymentProofSubmitted, PaymentDepositPaid, false},
		{PaymentDepositPaid, PaymentPaidInFull, false},
		{PaymentPaidInFull, PaymentDepositPaid, true},
		{PaymentDepositPaid, PaymentUnpaid, true},
		{PaymentProofSubmitted, PaymentProofSubmitted, false},
	}
	for _, c := range cases {
		if got := PaymentRegresses(c.from, c.to); got != c.want {
			t.Fatalf("PaymentRegresses(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if StatusConfirmed.IsTerminal() {
		t.Fatalf("confirmed must not be terminal, completion still follows")
	}
	if !StatusCompleted.IsTerminal() || !StatusCancelled.IsTerminal() {
		t.Fatalf("completed and cancelled must be terminal")
	}
}
