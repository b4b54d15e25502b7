package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trip is an itinerary listing owned by one operator.
type Trip struct {
	ID           int64          `json:"id"`
	OperatorID   int64          `json:"operator_id"`
	Title        string         `json:"title"`
	Summary      string         `json:"summary"`
	Country      string         `json:"country"`
	DurationDays int            `json:"duration_days"`
	MinPax       int            `json:"min_pax"`
	MaxPax       int            `json:"max_pax"`
	Published    bool           `json:"published"`
	Days         []TripDay      `json:"days,omitempty"`
	Rates        []SeasonalRate `json:"rates,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// TripDay is one day-by-day itinerary row.
type TripDay struct {
	ID        int64  `json:"id,omitempty"`
	TripID    int64  `json:"trip_id,omitempty"`
	DayNumber int    `json:"day_number"`
	Title     string `json:"title"`
	Detail    string `json:"detail"`
}

// SeasonalRate prices a trip per pax for a date window.
type SeasonalRate struct {
	ID          int64           `json:"id,omitempty"`
	TripID      int64           `json:"trip_id,omitempty"`
	SeasonStart string          `json:"season_start"`
	SeasonEnd   string          `json:"season_end"`
	PricePerPax decimal.Decimal `json:"price_per_pax"`
	Currency    string          `json:"currency"`
}
