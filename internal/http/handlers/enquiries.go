package handlers

import (
	"net/http"

	"safariconnector/internal/domain"
	"safariconnector/internal/http/middleware"
	"safariconnector/internal/repositories"
	"safariconnector/internal/services"

	"github.com/gin-gonic/gin"
)

func quoteService(c *gin.Context) services.QuoteService {
	return services.QuoteService{
		CommissionPct: commissionPct,
		RequestID:     middleware.GetRequestID(c),
	}
}

// POST /api/enquiries (traveller)
func CreateEnquiry(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	var in services.EnquiryInput
	if !BindJSONOrError(c, &in) {
		return
	}
	enquiry, err := quoteService(c).CreateEnquiry(actor, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"enquiry": enquiry})
}

// GET /api/enquiries (owner-scoped listing)
func ListEnquiries(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	repo := repositories.QuoteRepository{}

	var (
		enquiries any
		err       error
	)
	switch actor.Role {
	case domain.RoleOperator:
		enquiries, err = repo.ListEnquiriesByOperator(actor.OperatorID)
	default:
		enquiries, err = repo.ListEnquiriesByTraveller(actor.UserID)
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enquiries": enquiries})
}

// GET /api/enquiries/:id
func GetEnquiry(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := IDParam(c)
	if !ok {
		return
	}
	repo := repositories.QuoteRepository{}
	enquiry, err := repo.GetEnquiryByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !enquiryVisible(actor, enquiry.TravellerID, enquiry.OperatorID) {
		respondError(c, http.StatusNotFound, "not_found", "enquiry not found")
		return
	}
	quote, found, err := repo.GetActiveQuote(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	resp := gin.H{"enquiry": enquiry}
	if found {
		resp["active_quote"] = quote
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/enquiries/:id/messages
func ListEnquiryMessages(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := IDParam(c)
	if !ok {
		return
	}
	msgs, err := (services.MessageService{}).ListThread(actor, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

type messageRequest struct {
	Body string `json:"body"`
}

// POST /api/enquiries/:id/messages
func PostEnquiryMessage(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := IDParam(c)
	if !ok {
		return
	}
	var in messageRequest
	if !BindJSONOrError(c, &in) {
		return
	}
	msg, err := (services.MessageService{}).Post(actor, id, in.Body)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// POST /api/enquiries/:id/quotes (operator)
func IssueQuote(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := IDParam(c)
	if !ok {
		return
	}
	var in services.QuoteInput
	if !BindJSONOrError(c, &in) {
		return
	}
	quote, err := quoteService(c).IssueQuote(actor, id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"quote": quote})
}

// POST /api/quotes/:id/accept (traveller)
func AcceptQuote(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := IDParam(c)
	if !ok {
		return
	}
	booking, err := quoteService(c).AcceptQuote(actor, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

func enquiryVisible(actor domain.Actor, travellerID, operatorID int64) bool {
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleFinance:
		return true
	case domain.RoleOperator:
		return actor.OperatorID == operatorID
	default:
		return actor.UserID == travellerID
	}
}
