package handlers

import (
	"net/http"

	"safariconnector/internal/domain"
	"safariconnector/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error":      message,
		"code":       code,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Transition errors
// carry the specific refusal reason so surfaces can show why an action was
// refused rather than a generic failure.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsInvalidTransition(err):
		respondError(c, http.StatusBadRequest, "invalid_transition", err.Error())
	case domain.IsActorRefusal(err):
		respondError(c, http.StatusForbidden, "forbidden", err.Error())
	case domain.IsPreconditionFailed(err):
		respondError(c, http.StatusUnprocessableEntity, "precondition_failed", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
