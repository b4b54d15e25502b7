package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"safariconnector/internal/domain"

	"github.com/gin-gonic/gin"
)

func TestRespondDomainErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err  error
		want int
	}{
		{domain.ValidationError{Field: "pax", Msg: "must be at least 1"}, http.StatusBadRequest},
		{domain.NotFoundError{Resource: "booking"}, http.StatusNotFound},
		{domain.InvalidTransitionError{From: "completed", To: "confirmed"}, http.StatusBadRequest},
		{domain.PreconditionFailedError{Msg: "not yours", Actor: true}, http.StatusForbidden},
		{domain.PreconditionFailedError{Msg: "wrong state"}, http.StatusUnprocessableEntity},
		{domain.ConflictError{Resource: "booking", Msg: "raced"}, http.StatusConflict},
		{domain.InternalError{Msg: "boom"}, http.StatusInternalServerError},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		RespondDomainError(ctx, c.err)
		if w.Code != c.want {
			t.Fatalf("%T mapped to %d, want %d", c.err, w.Code, c.want)
		}
	}
}
