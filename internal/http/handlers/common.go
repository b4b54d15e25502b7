package handlers

import (
	"net/http"
	"strconv"

	intconfig "safariconnector/internal/config"
	"safariconnector/internal/http/middleware"
	"safariconnector/internal/planner"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

var (
	jwtSecret     = []byte("super-secret-key-change-me")
	commissionPct = decimal.NewFromInt(10)
	plannerClient planner.Client
)

// Configure wires env-derived settings into the handler package. Called once
// from the router.
func Configure(env intconfig.Env) {
	if env.JWTSecret != "" {
		jwtSecret = []byte(env.JWTSecret)
	}
	if pct, err := decimal.NewFromString(env.CommissionPct); err == nil && !pct.IsNegative() {
		commissionPct = pct
	}
	plannerClient = planner.Client{
		BaseURL: env.Planner.BaseURL,
		APIKey:  env.Planner.APIKey,
		Model:   env.Planner.Model,
	}
}

// JWTSecret exposes the signing key to the router for auth middleware.
func JWTSecret() []byte {
	return jwtSecret
}

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// IDParam parses the :id route param.
func IDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", err)
		return 0, false
	}
	return id, true
}
