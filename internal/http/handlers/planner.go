package handlers

import (
	"net/http"

	"safariconnector/internal/http/middleware"
	"safariconnector/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/planner/itinerary (traveller)
func PlanItinerary(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	var in services.PlanInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := services.PlannerService{
		Client:    plannerClient,
		RequestID: middleware.GetRequestID(c),
	}
	it, err := svc.Plan(c.Request.Context(), actor, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"itinerary": it})
}
