package services

import (
	"fmt"
	"strings"

	"safariconnector/internal/domain"
	"safariconnector/internal/domain/models"
	"safariconnector/internal/lifecycle"
	"safariconnector/internal/repositories"
	"safariconnector/internal/utils"

	"github.com/shopspring/decimal"
)

// QuoteService handles the enquiry -> quote -> booking funnel.
type QuoteService struct {
	QuoteRepo    repositories.QuoteRepository
	TripRepo     repositories.TripRepository
	OperatorRepo repositories.OperatorRepository
	BookingRepo  repositories.BookingRepository
	MessageRepo  repositories.MessageRepository
	// CommissionPct is the marketplace commission applied to bookings
	// created from accepted quotes.
	CommissionPct decimal.Decimal
	RequestID     string
}

type EnquiryInput struct {
	TripID   int64  `json:"trip_id"`
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
	Pax      int    `json:"pax"`
	Notes    string `json:"notes"`
}

// CreateEnquiry opens an enquiry against a published trip of an approved
// operator and seeds the chat thread with the traveller's notes.
func (s QuoteService) CreateEnquiry(actor domain.Actor, in EnquiryInput) (models.QuoteRequest, error) {
	if in.Pax < 1 {
		return models.QuoteRequest{}, domain.ValidationError{Field: "pax", Msg: "must be at least 1"}
	}
	if !utils.ValidDateRange(in.DateFrom, in.DateTo) {
		return models.QuoteRequest{}, domain.ValidationError{Field: "date_from", Msg: "invalid date range"}
	}

	trip, err := s.TripRepo.GetByID(in.TripID)
	if err != nil {
		return models.QuoteRequest{}, err
	}
	if !trip.Published {
		return models.QuoteRequest{}, domain.NotFoundError{Resource: "trip"}
	}
	op, err := s.OperatorRepo.GetByID(trip.OperatorID)
	if err != nil {
		return models.QuoteRequest{}, err
	}
	if op.Status != models.OperatorApproved {
		return models.QuoteRequest{}, domain.NotFoundError{Resource: "trip"}
	}

	q := models.QuoteRequest{
		TripID:      trip.ID,
		OperatorID:  trip.OperatorID,
		TravellerID: actor.UserID,
		DateFrom:    in.DateFrom,
		DateTo:      in.DateTo,
		Pax:         in.Pax,
		Notes:       strings.TrimSpace(in.Notes),
	}
	id, err := s.QuoteRepo.CreateEnquiry(q)
	if err != nil {
		return models.QuoteRequest{}, domain.InternalError{Msg: "failed to create enquiry", Err: err}
	}
	q.ID = id

	if q.Notes != "" {
		if _, err := s.MessageRepo.Create(models.Message{
			QuoteRequestID: id,
			SenderRole:     string(domain.RoleTraveller),
			SenderID:       actor.UserID,
			Body:           q.Notes,
		}); err != nil {
			utils.LogEvent(s.RequestID, "quote", "enquiry", "seed message warning: "+err.Error())
		}
	}
	return q, nil
}

type QuoteInput struct {
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	ValidUntil string `json:"valid_until"`
	Notes      string `json:"notes"`
}

// IssueQuote prices an enquiry. Any previous active quote on the enquiry is
// marked superseded in the same transaction as the insert.
func (s QuoteService) IssueQuote(actor domain.Actor, enquiryID int64, in QuoteInput) (models.Quote, error) {
	enquiry, err := s.QuoteRepo.GetEnquiryByID(enquiryID)
	if err != nil {
		return models.Quote{}, err
	}
	if actor.OperatorID != enquiry.OperatorID {
		return models.Quote{}, domain.PreconditionFailedError{Msg: "enquiry belongs to a different operator", Actor: true}
	}

	amount, err := utils.ParseAmount(in.Amount)
	if err != nil {
		return models.Quote{}, domain.ValidationError{Field: "amount", Msg: err.Error()}
	}
	if amount.IsZero() {
		return models.Quote{}, domain.ValidationError{Field: "amount", Msg: "must be positive"}
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if len(currency) != 3 {
		return models.Quote{}, domain.ValidationError{Field: "currency", Msg: "must be a 3-letter code"}
	}

	q := models.Quote{
		QuoteRequestID: enquiryID,
		OperatorID:     actor.OperatorID,
		Amount:         amount,
		Currency:       currency,
		ValidUntil:     strings.TrimSpace(in.ValidUntil),
		Notes:          strings.TrimSpace(in.Notes),
		Status:         models.QuoteActive,
	}
	id, err := s.QuoteRepo.CreateQuote(q)
	if err != nil {
		return models.Quote{}, domain.InternalError{Msg: "failed to issue quote", Err: err}
	}
	q.ID = id

	if _, err := s.MessageRepo.Create(models.Message{
		QuoteRequestID: enquiryID,
		SenderRole:     string(domain.RoleSystem),
		Body:           fmt.Sprintf("Operator sent a quote of %s.", utils.FormatAmount(amount, currency)),
	}); err != nil {
		utils.LogEvent(s.RequestID, "quote", "issue", "system message warning: "+err.Error())
	}
	return q, nil
}

// AcceptQuote turns an active quote into a booking in its initial lifecycle
// state. Double-accepts race on the quote's status guard and lose with a
// conflict.
func (s QuoteService) AcceptQuote(actor domain.Actor, quoteID int64) (models.Booking, error) {
	quote, err := s.QuoteRepo.GetQuoteByID(quoteID)
	if err != nil {
		return models.Booking{}, err
	}
	enquiry, err := s.QuoteRepo.GetEnquiryByID(quote.QuoteRequestID)
	if err != nil {
		return models.Booking{}, err
	}
	if actor.UserID != enquiry.TravellerID {
		return models.Booking{}, domain.PreconditionFailedError{Msg: "quote belongs to a different traveller", Actor: true}
	}
	if quote.Status != models.QuoteActive {
		return models.Booking{}, domain.ConflictError{Resource: "quote", Msg: "quote is no longer active"}
	}

	if err := s.QuoteRepo.MarkQuoteAccepted(quoteID); err != nil {
		return models.Booking{}, err
	}

	commission, operatorNet := utils.CommissionSplit(quote.Amount, s.CommissionPct)
	b := models.Booking{
		TripID:         enquiry.TripID,
		OperatorID:     enquiry.OperatorID,
		TravellerID:    enquiry.TravellerID,
		QuoteID:        quote.ID,
		QuoteRequestID: enquiry.ID,
		DateFrom:       enquiry.DateFrom,
		DateTo:         enquiry.DateTo,
		Pax:            enquiry.Pax,
		Amount:         quote.Amount,
		Currency:       quote.Currency,
		CommissionPct:  s.CommissionPct,
		Commission:     commission,
		OperatorNet:    operatorNet,
		Status:         string(lifecycle.Initial),
		PaymentStatus:  string(lifecycle.PaymentUnpaid),
	}
	id, err := s.BookingRepo.Create(b)
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to create booking", Err: err}
	}
	b.ID = id

	if _, err := s.MessageRepo.Create(models.Message{
		QuoteRequestID: enquiry.ID,
		SenderRole:     string(domain.RoleSystem),
		Body:           fmt.Sprintf("Quote accepted. Booking #%d created, awaiting payment.", id),
	}); err != nil {
		utils.LogEvent(s.RequestID, "quote", "accept", "system message warning: "+err.Error())
	}
	return b, nil
}
