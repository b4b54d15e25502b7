package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteRequest (enquiry) is a traveller's initial pricing ask against a trip.
type QuoteRequest struct {
	ID          int64     `json:"id"`
	TripID      int64     `json:"trip_id"`
	OperatorID  int64     `json:"operator_id"`
	TravellerID int64     `json:"traveller_id"`
	DateFrom    string    `json:"date_from"`
	DateTo      string    `json:"date_to"`
	Pax         int       `json:"pax"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// Quote lifecycle: an operator may re-quote an enquiry; issuing a new quote
// marks the previous active one superseded. At most one active quote exists
// per enquiry/operator pair.
const (
	QuoteActive     = "active"
	QuoteSuperseded = "superseded"
	QuoteAccepted   = "accepted"
)

type Quote struct {
	ID             int64           `json:"id"`
	QuoteRequestID int64           `json:"quote_request_id"`
	OperatorID     int64           `json:"operator_id"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	ValidUntil     string          `json:"valid_until"`
	Notes          string          `json:"notes"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}
