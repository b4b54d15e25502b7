package handlers

import (
	"net/http"

	"safariconnector/internal/domain"
	"safariconnector/internal/domain/models"
	"safariconnector/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/operators
func ListOperators(c *gin.Context) {
	operators, err := (repositories.OperatorRepository{}).List(c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"operators": operators})
}

type operatorStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/admin/operators/:id/status (approve/reject/suspend)
func UpdateOperatorStatus(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	var in operatorStatusRequest
	if !BindJSONOrError(c, &in) {
		return
	}
	if !models.ValidOperatorStatus(in.Status) {
		RespondDomainError(c, domain.ValidationError{Field: "status", Msg: "unknown operator status"})
		return
	}

	repo := repositories.OperatorRepository{}
	if err := repo.UpdateStatus(id, in.Status); err != nil {
		RespondDomainError(c, err)
		return
	}
	op, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"operator": op})
}
