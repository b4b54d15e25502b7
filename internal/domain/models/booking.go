package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking is a traveller's purchase record for a trip. Status and
// PaymentStatus are independent enumerations owned by the lifecycle package;
// they are stored here as raw labels and parsed at the transition authority.
type Booking struct {
	ID             int64           `json:"id"`
	TripID         int64           `json:"trip_id"`
	OperatorID     int64           `json:"operator_id"`
	TravellerID    int64           `json:"traveller_id"`
	QuoteID        int64           `json:"quote_id,omitempty"`
	QuoteRequestID int64           `json:"quote_request_id,omitempty"`
	DateFrom       string          `json:"date_from"`
	DateTo         string          `json:"date_to"`
	Pax            int             `json:"pax"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	CommissionPct  decimal.Decimal `json:"commission_pct"`
	Commission     decimal.Decimal `json:"commission_amount"`
	OperatorNet    decimal.Decimal `json:"operator_net"`
	Status         string          `json:"status"`
	PaymentStatus  string          `json:"payment_status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// BookingFilter narrows booking listings per surface.
type BookingFilter struct {
	TravellerID   int64
	OperatorID    int64
	Status        string
	PaymentStatus string
}
