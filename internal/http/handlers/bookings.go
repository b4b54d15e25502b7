package handlers

import (
	"net/http"

	"safariconnector/internal/domain"
	"safariconnector/internal/domain/models"
	"safariconnector/internal/http/middleware"
	"safariconnector/internal/lifecycle"
	"safariconnector/internal/repositories"
	"safariconnector/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{RequestID: middleware.GetRequestID(c)}
}

// bookingView decorates a booking with the interpreter output so every
// surface renders the same label, tone and permitted actions.
func bookingView(svc services.BookingService, b models.Booking) gin.H {
	return gin.H{"booking": b, "display": svc.Interpret(b)}
}

// GET /api/bookings (role-scoped listing)
func ListBookings(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	filter := models.BookingFilter{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
	}
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleFinance:
		// back-office sees everything
	case domain.RoleOperator:
		filter.OperatorID = actor.OperatorID
	default:
		filter.TravellerID = actor.UserID
	}

	svc := bookingService(c)
	bookings, err := (repositories.BookingRepository{}).List(filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]gin.H, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, bookingView(svc, b))
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

// GET /api/bookings/:id
func GetBooking(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := IDParam(c)
	if !ok {
		return
	}
	b, err := (repositories.BookingRepository{}).GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !bookingVisible(actor, b) {
		respondError(c, http.StatusNotFound, "not_found", "booking not found")
		return
	}
	c.JSON(http.StatusOK, bookingView(bookingService(c), b))
}

// GET /api/bookings/:id/invoice.pdf
func GetBookingInvoicePDF(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := IDParam(c)
	if !ok {
		return
	}
	b, err := (repositories.BookingRepository{}).GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !bookingVisible(actor, b) {
		respondError(c, http.StatusNotFound, "not_found", "booking not found")
		return
	}
	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateInvoice(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

type submitPaymentRequest struct {
	Method    string `json:"method"`
	Reference string `json:"reference"`
	Amount    string `json:"amount"`
	Note      string `json:"note"`
}

// POST /api/bookings/:id/submit-payment (traveller)
func SubmitPayment(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := IDParam(c)
	if !ok {
		return
	}
	var in submitPaymentRequest
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := bookingService(c)
	b, err := svc.SubmitPaymentProof(id, actor, services.SubmitProofInput{
		Method:    in.Method,
		Reference: in.Reference,
		Amount:    in.Amount,
		Note:      in.Note,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingView(svc, b))
}

type verifyPaymentRequest struct {
	Level string `json:"level"`
	Note  string `json:"note"`
}

// POST /api/bookings/:id/verify-payment (finance/admin)
func VerifyPayment(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := IDParam(c)
	if !ok {
		return
	}
	var in verifyPaymentRequest
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := bookingService(c)
	b, err := svc.VerifyPayment(id, actor, services.VerifyInput{Level: in.Level, Note: in.Note})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingView(svc, b))
}

// POST /api/bookings/:id/confirm (operator)
func ConfirmBooking(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := IDParam(c)
	if !ok {
		return
	}
	svc := bookingService(c)
	b, err := svc.Confirm(id, actor)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingView(svc, b))
}

// POST /api/bookings/:id/cancel
func CancelBooking(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := IDParam(c)
	if !ok {
		return
	}
	svc := bookingService(c)
	b, err := svc.Cancel(id, actor)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingView(svc, b))
}

// POST /api/bookings/:id/complete (operator/admin)
func CompleteBooking(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := IDParam(c)
	if !ok {
		return
	}
	svc := bookingService(c)
	b, err := svc.Complete(id, actor)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingView(svc, b))
}

type overridePaymentRequest struct {
	Status string `json:"status"`
}

// POST /api/admin/bookings/:id/payment-status (admin override, may regress)
func OverridePaymentStatus(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := IDParam(c)
	if !ok {
		return
	}
	var in overridePaymentRequest
	if !BindJSONOrError(c, &in) {
		return
	}
	target, err := lifecycle.ParsePaymentStatus(in.Status)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "status", Msg: err.Error()})
		return
	}
	svc := bookingService(c)
	b, err := svc.SetPaymentStatus(id, actor, target, true)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingView(svc, b))
}

func bookingVisible(actor domain.Actor, b models.Booking) bool {
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleFinance:
		return true
	case domain.RoleOperator:
		return actor.OperatorID == b.OperatorID
	default:
		return actor.UserID == b.TravellerID
	}
}
