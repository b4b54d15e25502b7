package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	intconfig "safariconnector/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
)

func registerContext(w *httptest.ResponseRecorder, body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestRegisterDuplicateEmailRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	// the pre-insert COUNT sees no duplicate, but a concurrent registration
	// wins the insert and this one hits the unique key on email
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users WHERE email").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	w := httptest.NewRecorder()
	Register(registerContext(w, `{"name":"Test","email":"dup@example.com","password":"password123"}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate-key insert should map to 400, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "already registered") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	w := httptest.NewRecorder()
	Register(registerContext(w, `{"name":"Test","email":"a@example.com","password":"short"}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("short password should 400, got %d", w.Code)
	}
}
