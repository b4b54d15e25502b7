package handlers

import (
	"safariconnector/internal/domain/models"

	"github.com/shopspring/decimal"
)

type tripDayRequest struct {
	DayNumber int    `json:"day_number"`
	Title     string `json:"title"`
	Detail    string `json:"detail"`
}

type tripRateRequest struct {
	SeasonStart string `json:"season_start"`
	SeasonEnd   string `json:"season_end"`
	PricePerPax string `json:"price_per_pax"`
	Currency    string `json:"currency"`
}

type tripRequest struct {
	Title        string            `json:"title"`
	Summary      string            `json:"summary"`
	Country      string            `json:"country"`
	DurationDays int               `json:"duration_days"`
	MinPax       int               `json:"min_pax"`
	MaxPax       int               `json:"max_pax"`
	Published    bool              `json:"published"`
	Days         []tripDayRequest  `json:"days"`
	Rates        []tripRateRequest `json:"rates"`
}

func (in tripRequest) toModel(id int64) models.Trip {
	t := models.Trip{
		ID:           id,
		Title:        in.Title,
		Summary:      in.Summary,
		Country:      in.Country,
		DurationDays: in.DurationDays,
		MinPax:       in.MinPax,
		MaxPax:       in.MaxPax,
		Published:    in.Published,
	}
	for _, d := range in.Days {
		t.Days = append(t.Days, models.TripDay{DayNumber: d.DayNumber, Title: d.Title, Detail: d.Detail})
	}
	for _, r := range in.Rates {
		price, err := decimal.NewFromString(r.PricePerPax)
		if err != nil {
			price = decimal.Zero
		}
		t.Rates = append(t.Rates, models.SeasonalRate{
			SeasonStart: r.SeasonStart,
			SeasonEnd:   r.SeasonEnd,
			PricePerPax: price,
			Currency:    r.Currency,
		})
	}
	return t
}
