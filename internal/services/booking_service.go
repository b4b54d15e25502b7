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

// BookingService is the transition authority: the only place a booking status
// or payment status is allowed to change. Handlers never write booking rows
// directly.
type BookingService struct {
	BookingRepo repositories.BookingRepository
	PaymentRepo repositories.PaymentRepository
	MessageRepo repositories.MessageRepository
	RequestID   string
}

// AttemptTransition validates and applies a booking status change.
// Re-requesting the current status is a no-op success for the booking's own
// actors; foreign actors are refused before the no-op so the payload never
// leaks. A lost race on the conditional update surfaces as a ConflictError;
// transitions are business decisions and are never retried here.
func (s BookingService) AttemptTransition(bookingID int64, actor domain.Actor, target lifecycle.Status) (models.Booking, error) {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return models.Booking{}, err
	}

	current, err := lifecycle.ParseStatus(b.Status)
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "booking has a corrupt status", Err: err}
	}

	if err := s.checkOwnership(b, actor); err != nil {
		return models.Booking{}, err
	}

	if current == target {
		return b, nil
	}
	if err := lifecycle.Validate(current, target, actor.Role); err != nil {
		return models.Booking{}, err
	}

	ok, err := s.BookingRepo.UpdateStatus(bookingID, string(current), string(target))
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if !ok {
		return models.Booking{}, domain.ConflictError{
			Resource: "booking",
			Msg:      fmt.Sprintf("status changed concurrently, expected %s", current),
		}
	}

	b.Status = string(target)
	s.notifyTransition(b, actor, current, target)
	return b, nil
}

// SubmitProofInput carries the traveller's payment proof claim.
type SubmitProofInput struct {
	Method    string
	Reference string
	Amount    string
	Note      string
}

// SubmitPaymentProof moves the booking to payment_submitted, records the
// proof as a payments row, and advances the payment ladder to proof_submitted.
// Input is validated before the transition so a bad request never leaves the
// booking half-advanced.
func (s BookingService) SubmitPaymentProof(bookingID int64, actor domain.Actor, in SubmitProofInput) (models.Booking, error) {
	var amount decimal.Decimal
	claimed := strings.TrimSpace(in.Amount) != ""
	if claimed {
		var err error
		if amount, err = utils.ParseAmount(in.Amount); err != nil {
			return models.Booking{}, domain.ValidationError{Field: "amount", Msg: err.Error()}
		}
	}

	b, err := s.AttemptTransition(bookingID, actor, lifecycle.StatusPaymentSubmitted)
	if err != nil {
		return models.Booking{}, err
	}
	if !claimed {
		amount = b.Amount
	}

	if _, err := s.PaymentRepo.Create(models.Payment{
		BookingID: bookingID,
		Method:    strings.TrimSpace(in.Method),
		Reference: strings.TrimSpace(in.Reference),
		Amount:    amount,
		Currency:  b.Currency,
		Status:    models.PaymentRecordSubmitted,
		Note:      strings.TrimSpace(in.Note),
	}); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to record payment proof", Err: err}
	}

	return s.SetPaymentStatus(bookingID, actor, lifecycle.PaymentProofSubmitted, false)
}

// VerifyInput is the finance decision on a submitted proof.
type VerifyInput struct {
	// Level is deposit_paid or paid_in_full.
	Level string
	Note  string
}

// VerifyPayment is the finance-only step: booking to payment_verified, the
// newest submitted payment record marked verified, and the payment ladder
// advanced to the verified level.
func (s BookingService) VerifyPayment(bookingID int64, actor domain.Actor, in VerifyInput) (models.Booking, error) {
	level, err := lifecycle.ParsePaymentStatus(in.Level)
	if err != nil || (level != lifecycle.PaymentDepositPaid && level != lifecycle.PaymentPaidInFull) {
		return models.Booking{}, domain.ValidationError{Field: "level", Msg: "must be deposit_paid or paid_in_full"}
	}

	b, err := s.AttemptTransition(bookingID, actor, lifecycle.StatusPaymentVerified)
	if err != nil {
		return models.Booking{}, err
	}

	if err := s.PaymentRepo.MarkLatestSubmitted(bookingID, models.PaymentRecordVerified); err != nil {
		utils.LogEvent(s.RequestID, "booking", "verify_payment", "payment record update warning: "+err.Error())
	}

	return s.SetPaymentStatus(b.ID, actor, level, false)
}

// Confirm is the operator acceptance of a verified booking.
func (s BookingService) Confirm(bookingID int64, actor domain.Actor) (models.Booking, error) {
	return s.AttemptTransition(bookingID, actor, lifecycle.StatusConfirmed)
}

func (s BookingService) Cancel(bookingID int64, actor domain.Actor) (models.Booking, error) {
	return s.AttemptTransition(bookingID, actor, lifecycle.StatusCancelled)
}

func (s BookingService) Complete(bookingID int64, actor domain.Actor) (models.Booking, error) {
	return s.AttemptTransition(bookingID, actor, lifecycle.StatusCompleted)
}

// SetPaymentStatus moves the payment ladder. Forward-only: regression is
// refused unless an admin explicitly overrides, and an override leaves a
// system message on the thread so the counter-party can see what happened.
func (s BookingService) SetPaymentStatus(bookingID int64, actor domain.Actor, target lifecycle.PaymentStatus, override bool) (models.Booking, error) {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return models.Booking{}, err
	}

	current, err := lifecycle.ParsePaymentStatus(b.PaymentStatus)
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "booking has a corrupt payment status", Err: err}
	}
	if current == target {
		return b, nil
	}

	if lifecycle.PaymentRegresses(current, target) {
		if !override || actor.Role != domain.RoleAdmin {
			return models.Booking{}, domain.PreconditionFailedError{
				Msg: fmt.Sprintf("payment status cannot move back from %s to %s", current, target),
			}
		}
	}

	ok, err := s.BookingRepo.UpdatePaymentStatus(bookingID, string(current), string(target))
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if !ok {
		return models.Booking{}, domain.ConflictError{
			Resource: "booking",
			Msg:      fmt.Sprintf("payment status changed concurrently, expected %s", current),
		}
	}

	b.PaymentStatus = string(target)
	if override {
		s.systemMessage(b, fmt.Sprintf("Payment status was reset to %s by an administrator.", target))
	}
	return b, nil
}

// Interpret is the single status interpreter every surface renders from.
func (s BookingService) Interpret(b models.Booking) lifecycle.Interpretation {
	status, err := lifecycle.ParseStatus(b.Status)
	if err != nil {
		status = ""
	}
	payment, err := lifecycle.ParsePaymentStatus(b.PaymentStatus)
	if err != nil {
		payment = ""
	}
	return lifecycle.Interpret(status, payment)
}

// checkOwnership refuses travellers and operators acting on bookings that are
// not theirs. Finance and admin act on any booking.
func (s BookingService) checkOwnership(b models.Booking, actor domain.Actor) error {
	switch actor.Role {
	case domain.RoleTraveller:
		if actor.UserID != b.TravellerID {
			return domain.PreconditionFailedError{Msg: "booking belongs to a different traveller", Actor: true}
		}
	case domain.RoleOperator:
		if actor.OperatorID != b.OperatorID {
			return domain.PreconditionFailedError{Msg: "booking belongs to a different operator", Actor: true}
		}
	}
	return nil
}

// notifyTransition appends a system message to the booking's enquiry thread.
// Best effort: a failed notification never rolls back a committed transition.
func (s BookingService) notifyTransition(b models.Booking, actor domain.Actor, from, to lifecycle.Status) {
	interp := lifecycle.Interpret(to, lifecycle.PaymentStatus(b.PaymentStatus))
	s.systemMessage(b, fmt.Sprintf("Booking #%d: %s (was %s, changed by %s).", b.ID, interp.Label, from, actor.Role))
}

func (s BookingService) systemMessage(b models.Booking, body string) {
	if b.QuoteRequestID <= 0 {
		return
	}
	if _, err := s.MessageRepo.Create(models.Message{
		QuoteRequestID: b.QuoteRequestID,
		SenderRole:     string(domain.RoleSystem),
		Body:           body,
	}); err != nil {
		utils.LogEvent(s.RequestID, "booking", "notify", "system message warning: "+err.Error())
	}
}
