// Package lifecycle is the single source of truth for the booking status
// machine and the payment status ladder. Every surface (traveller, operator,
// finance, admin) interprets bookings through this package; the transition
// authority in services validates against it before persisting anything.
package lifecycle

import "fmt"

// Status is the booking lifecycle state. It is a strict linear chain with
// cancellation reachable from every non-terminal state.
type Status string

const (
	StatusPendingPayment   Status = "pending_payment"
	StatusPaymentSubmitted Status = "payment_submitted"
	StatusPaymentVerified  Status = "payment_verified"
	StatusConfirmed        Status = "confirmed"
	StatusCompleted        Status = "completed"
	StatusCancelled        Status = "cancelled"
)

// Initial is the state every booking is created in.
const Initial = StatusPendingPayment

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPendingPayment, StatusPaymentSubmitted, StatusPaymentVerified,
		StatusConfirmed, StatusCompleted, StatusCancelled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown booking status: %q", s)
	}
}

// IsTerminal reports whether no further transitions may leave s.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// PaymentStatus tracks money independently of the booking status. A booking
// can be paid_in_full while still pending operator confirmation; the two
// fields are correlated but never merged.
type PaymentStatus string

const (
	PaymentUnpaid         PaymentStatus = "unpaid"
	PaymentProofSubmitted PaymentStatus = "proof_submitted"
	PaymentDepositPaid    PaymentStatus = "deposit_paid"
	PaymentPaidInFull     PaymentStatus = "paid_in_full"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentUnpaid, PaymentProofSubmitted, PaymentDepositPaid, PaymentPaidInFull:
		return PaymentStatus(s), nil
	default:
		return "", fmt.Errorf("unknown payment status: %q", s)
	}
}

// paymentRank orders payment states for the no-regression rule only. The
// ranks say nothing about amounts: deposit_paid -> paid_in_full is a label
// progression, not arithmetic.
var paymentRank = map[PaymentStatus]int{
	PaymentUnpaid:         0,
	PaymentProofSubmitted: 1,
	PaymentDepositPaid:    2,
	PaymentPaidInFull:     3,
}

// PaymentRegresses reports whether moving from -> to walks the ladder
// backwards. Regression requires an explicit admin override.
func PaymentRegresses(from, to PaymentStatus) bool {
	return paymentRank[to] < paymentRank[from]
}
