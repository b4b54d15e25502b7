package handlers

import (
	"net/http"
	"strings"

	"safariconnector/internal/domain"
	"safariconnector/internal/domain/models"
	"safariconnector/internal/http/middleware"
	"safariconnector/internal/repositories"
	"safariconnector/internal/services"

	"github.com/gin-gonic/gin"
)

// tripVisible mirrors the public-browse rule on single-trip reads: a trip is
// visible when published under an approved operator, to its owning operator,
// and to back-office roles.
func tripVisible(c *gin.Context, trip models.Trip) bool {
	if actor, ok := middleware.GetActor(c); ok {
		if actor.Role == domain.RoleAdmin || actor.Role == domain.RoleFinance {
			return true
		}
		if actor.Role == domain.RoleOperator && actor.OperatorID == trip.OperatorID {
			return true
		}
	}
	if !trip.Published {
		return false
	}
	op, err := (repositories.OperatorRepository{}).GetByID(trip.OperatorID)
	return err == nil && op.Status == models.OperatorApproved
}

// GET /api/trips (public: published trips of approved operators)
func ListPublicTrips(c *gin.Context) {
	trips, err := (repositories.TripRepository{}).ListPublic(strings.TrimSpace(c.Query("country")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// GET /api/trips/:id
func GetTrip(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	repo := repositories.TripRepository{}
	trip, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !tripVisible(c, trip) {
		respondError(c, http.StatusNotFound, "not_found", "trip not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// GET /api/trips/:id/itinerary.pdf
func GetTripItineraryPDF(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	trip, err := (repositories.TripRepository{}).GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !tripVisible(c, trip) {
		respondError(c, http.StatusNotFound, "not_found", "trip not found")
		return
	}
	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateItinerary(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/operator/trips
func ListOperatorTrips(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	trips, err := (repositories.TripRepository{}).ListByOperator(actor.OperatorID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// POST /api/operator/trips
func CreateTrip(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	var in tripRequest
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := services.TripService{RequestID: middleware.GetRequestID(c)}
	trip, err := svc.CreateTrip(actor, in.toModel(0))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"trip": trip})
}

// PUT /api/operator/trips/:id
func UpdateTrip(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := IDParam(c)
	if !ok {
		return
	}
	var in tripRequest
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := services.TripService{RequestID: middleware.GetRequestID(c)}
	trip, err := svc.UpdateTrip(actor, in.toModel(id))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// DELETE /api/operator/trips/:id
func DeleteTrip(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := IDParam(c)
	if !ok {
		return
	}
	svc := services.TripService{RequestID: middleware.GetRequestID(c)}
	if err := svc.DeleteTrip(actor, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "trip deleted"})
}
