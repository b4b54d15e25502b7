package services

import (
	"testing"
	"time"

	"safariconnector/internal/domain"
	"safariconnector/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func newQuoteService(t *testing.T) (QuoteService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := QuoteService{
		QuoteRepo:     repositories.QuoteRepository{DB: db},
		TripRepo:      repositories.TripRepository{DB: db},
		OperatorRepo:  repositories.OperatorRepository{DB: db},
		BookingRepo:   repositories.BookingRepository{DB: db},
		MessageRepo:   repositories.MessageRepository{DB: db},
		CommissionPct: decimal.NewFromInt(10),
	}
	return svc, mock, func() { db.Close() }
}

var quoteTestColumns = []string{
	"id", "quote_request_id", "operator_id", "amount", "currency",
	"valid_until", "notes", "status", "created_at",
}

var enquiryTestColumns = []string{
	"id", "trip_id", "operator_id", "traveller_id",
	"date_from", "date_to", "pax", "notes", "created_at",
}

func quoteRow(status string) *sqlmock.Rows {
	return sqlmock.NewRows(quoteTestColumns).
		AddRow(2, 3, 5, "2500.00", "USD", "", "", status, time.Now())
}

func enquiryRow() *sqlmock.Rows {
	return sqlmock.NewRows(enquiryTestColumns).
		AddRow(3, 10, 5, 7, "2026-06-01", "2026-06-08", 4, "", time.Now())
}

func TestIssueQuoteSupersedesPreviousActive(t *testing.T) {
	svc, mock, done := newQuoteService(t)
	defer done()

	mock.ExpectQuery("FROM quote_requests WHERE id=").WithArgs(int64(3)).
		WillReturnRows(enquiryRow())
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE quotes SET status=").
		WithArgs("superseded", int64(3), "active").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO quotes").
		WillReturnResult(sqlmock.NewResult(8, 1))
	mock.ExpectCommit()
	mock.ExpectExec("INSERT INTO messages").
		WillReturnResult(sqlmock.NewResult(1, 1))

	actor := domain.Actor{UserID: 20, Role: domain.RoleOperator, OperatorID: 5}
	q, err := svc.IssueQuote(actor, 3, QuoteInput{Amount: "3100.50", Currency: "usd"})
	if err != nil {
		t.Fatalf("issue quote failed: %v", err)
	}
	if q.ID != 8 {
		t.Fatalf("quote id = %d", q.ID)
	}
	if q.Currency != "USD" {
		t.Fatalf("currency not normalised: %q", q.Currency)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestIssueQuoteForeignEnquiryRefused(t *testing.T) {
	svc, mock, done := newQuoteService(t)
	defer done()

	mock.ExpectQuery("FROM quote_requests WHERE id=").WithArgs(int64(3)).
		WillReturnRows(enquiryRow())

	actor := domain.Actor{UserID: 21, Role: domain.RoleOperator, OperatorID: 6}
	_, err := svc.IssueQuote(actor, 3, QuoteInput{Amount: "100", Currency: "USD"})
	if !domain.IsActorRefusal(err) {
		t.Fatalf("expected actor refusal, got %v", err)
	}
}

func TestIssueQuoteValidation(t *testing.T) {
	svc, mock, done := newQuoteService(t)
	defer done()

	cases := []QuoteInput{
		{Amount: "abc", Currency: "USD"},
		{Amount: "0", Currency: "USD"},
		{Amount: "100", Currency: "DOLLARS"},
	}
	actor := domain.Actor{UserID: 20, Role: domain.RoleOperator, OperatorID: 5}
	for _, in := range cases {
		mock.ExpectQuery("FROM quote_requests WHERE id=").WithArgs(int64(3)).
			WillReturnRows(enquiryRow())
		if _, err := svc.IssueQuote(actor, 3, in); !domain.IsValidation(err) {
			t.Fatalf("input %+v: expected validation error, got %v", in, err)
		}
	}
}

func TestAcceptQuoteCreatesBookingWithCommissionSplit(t *testing.T) {
	svc, mock, done := newQuoteService(t)
	defer done()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("FROM quotes WHERE id=").WithArgs(int64(2)).
		WillReturnRows(quoteRow("active"))
	mock.ExpectQuery("FROM quote_requests WHERE id=").WithArgs(int64(3)).
		WillReturnRows(enquiryRow())
	mock.ExpectExec("UPDATE quotes SET status=").
		WithArgs("accepted", int64(2), "active").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO messages").
		WillReturnResult(sqlmock.NewResult(1, 1))

	actor := domain.Actor{UserID: 7, Role: domain.RoleTraveller}
	b, err := svc.AcceptQuote(actor, 2)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if b.ID != 42 {
		t.Fatalf("booking id = %d", b.ID)
	}
	if b.Status != "pending_payment" || b.PaymentStatus != "unpaid" {
		t.Fatalf("initial state = %s/%s", b.Status, b.PaymentStatus)
	}
	if !b.Commission.Equal(decimal.RequireFromString("250.00")) {
		t.Fatalf("commission = %s", b.Commission)
	}
	if !b.OperatorNet.Equal(decimal.RequireFromString("2250.00")) {
		t.Fatalf("operator net = %s", b.OperatorNet)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAcceptQuoteNotActiveIsConflict(t *testing.T) {
	svc, mock, done := newQuoteService(t)
	defer done()

	mock.ExpectQuery("FROM quotes WHERE id=").WithArgs(int64(2)).
		WillReturnRows(quoteRow("superseded"))
	mock.ExpectQuery("FROM quote_requests WHERE id=").WithArgs(int64(3)).
		WillReturnRows(enquiryRow())

	actor := domain.Actor{UserID: 7, Role: domain.RoleTraveller}
	_, err := svc.AcceptQuote(actor, 2)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAcceptQuoteForeignTravellerRefused(t *testing.T) {
	svc, mock, done := newQuoteService(t)
	defer done()

	mock.ExpectQuery("FROM quotes WHERE id=").WithArgs(int64(2)).
		WillReturnRows(quoteRow("active"))
	mock.ExpectQuery("FROM quote_requests WHERE id=").WithArgs(int64(3)).
		WillReturnRows(enquiryRow())

	actor := domain.Actor{UserID: 8, Role: domain.RoleTraveller}
	_, err := svc.AcceptQuote(actor, 2)
	if !domain.IsActorRefusal(err) {
		t.Fatalf("expected actor refusal, got %v", err)
	}
}
