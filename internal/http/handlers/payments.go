package handlers

import (
	"net/http"
	"strconv"

	"safariconnector/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/payments (finance/admin back-office)
func ListPayments(c *gin.Context) {
	var bookingID int64
	if raw := c.Query("booking_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			RespondError(c, http.StatusBadRequest, "invalid booking_id", err)
			return
		}
		bookingID = id
	}

	payments, err := (repositories.PaymentRepository{}).List(bookingID, c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}
