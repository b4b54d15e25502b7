package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment records a proof submission or a finance verification against a
// booking. The authoritative payment state lives on the booking row; these
// rows are the audit trail the back-office works from.
const (
	PaymentRecordSubmitted = "submitted"
	PaymentRecordVerified  = "verified"
	PaymentRecordRejected  = "rejected"
)

type Payment struct {
	ID        int64           `json:"id"`
	BookingID int64           `json:"booking_id"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Status    string          `json:"status"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"created_at"`
}
