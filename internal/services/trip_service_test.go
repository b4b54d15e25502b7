package services

import (
	"testing"
	"time"

	"safariconnector/internal/domain"
	"safariconnector/internal/domain/models"
	"safariconnector/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func operatorRow(status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "name", "email", "phone", "country", "status", "created_at"}).
		AddRow(5, 20, "Acacia Safaris", "", "", "TZ", status, time.Now())
}

func TestTripPublishRequiresApprovedOperator(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM operators WHERE id=").WithArgs(int64(5)).
		WillReturnRows(operatorRow("pending"))

	svc := TripService{
		TripRepo:     repositories.TripRepository{DB: db},
		OperatorRepo: repositories.OperatorRepository{DB: db},
	}
	actor := domain.Actor{UserID: 20, Role: domain.RoleOperator, OperatorID: 5}
	_, err = svc.CreateTrip(actor, models.Trip{
		Title:        "Serengeti Classic",
		DurationDays: 5,
		MinPax:       2,
		MaxPax:       6,
		Published:    true,
	})
	if !domain.IsPreconditionFailed(err) {
		t.Fatalf("pending operator publishing should fail a precondition, got %v", err)
	}
}

func TestTripValidation(t *testing.T) {
	svc := TripService{}
	actor := domain.Actor{UserID: 20, Role: domain.RoleOperator, OperatorID: 5}

	cases := []models.Trip{
		{Title: "", DurationDays: 5, MinPax: 1, MaxPax: 4},
		{Title: "T", DurationDays: 0, MinPax: 1, MaxPax: 4},
		{Title: "T", DurationDays: 5, MinPax: 4, MaxPax: 2},
		{Title: "T", DurationDays: 3, MinPax: 1, MaxPax: 4, Days: []models.TripDay{{DayNumber: 7, Title: "x"}}},
	}
	for i, in := range cases {
		if _, err := svc.CreateTrip(actor, in); !domain.IsValidation(err) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestMessageServiceScopesThread(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// one lookup per participant check
	for i := 0; i < 3; i++ {
		mock.ExpectQuery("FROM quote_requests WHERE id=").WithArgs(int64(3)).
			WillReturnRows(enquiryRow())
	}
	mock.ExpectQuery("FROM messages WHERE quote_request_id=").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "quote_request_id", "sender_role", "sender_id", "body", "created_at"}).
			AddRow(1, 3, "traveller", 7, "Hello", time.Now()))

	svc := MessageService{
		QuoteRepo:   repositories.QuoteRepository{DB: db},
		MessageRepo: repositories.MessageRepository{DB: db},
	}

	stranger := domain.Actor{UserID: 99, Role: domain.RoleTraveller}
	if _, err := svc.ListThread(stranger, 3); !domain.IsActorRefusal(err) {
		t.Fatalf("stranger should be refused, got %v", err)
	}
	otherOp := domain.Actor{UserID: 21, Role: domain.RoleOperator, OperatorID: 6}
	if _, err := svc.ListThread(otherOp, 3); !domain.IsActorRefusal(err) {
		t.Fatalf("foreign operator should be refused, got %v", err)
	}

	owner := domain.Actor{UserID: 7, Role: domain.RoleTraveller}
	msgs, err := svc.ListThread(owner, 3)
	if err != nil {
		t.Fatalf("owner listing failed: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Body != "Hello" {
		t.Fatalf("unexpected thread: %+v", msgs)
	}
}

func TestMessagePostRejectsEmptyBody(t *testing.T) {
	svc := MessageService{}
	actor := domain.Actor{UserID: 7, Role: domain.RoleTraveller}
	if _, err := svc.Post(actor, 3, "   "); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
