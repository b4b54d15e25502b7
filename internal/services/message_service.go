package services

import (
	"strings"

	"safariconnector/internal/domain"
	"safariconnector/internal/domain/models"
	"safariconnector/internal/repositories"
)

// MessageService scopes chat access to an enquiry's participants.
type MessageService struct {
	QuoteRepo   repositories.QuoteRepository
	MessageRepo repositories.MessageRepository
}

func (s MessageService) ListThread(actor domain.Actor, enquiryID int64) ([]models.Message, error) {
	if _, err := s.participant(actor, enquiryID); err != nil {
		return nil, err
	}
	return s.MessageRepo.ListByEnquiry(enquiryID)
}

func (s MessageService) Post(actor domain.Actor, enquiryID int64, body string) (models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return models.Message{}, domain.ValidationError{Field: "body", Msg: "required"}
	}
	if _, err := s.participant(actor, enquiryID); err != nil {
		return models.Message{}, err
	}

	m := models.Message{
		QuoteRequestID: enquiryID,
		SenderRole:     string(actor.Role),
		SenderID:       actor.UserID,
		Body:           body,
	}
	id, err := s.MessageRepo.Create(m)
	if err != nil {
		return models.Message{}, domain.InternalError{Msg: "failed to post message", Err: err}
	}
	m.ID = id
	return m, nil
}

func (s MessageService) participant(actor domain.Actor, enquiryID int64) (models.QuoteRequest, error) {
	enquiry, err := s.QuoteRepo.GetEnquiryByID(enquiryID)
	if err != nil {
		return models.QuoteRequest{}, err
	}
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleFinance:
		return enquiry, nil
	case domain.RoleTraveller:
		if actor.UserID == enquiry.TravellerID {
			return enquiry, nil
		}
	case domain.RoleOperator:
		if actor.OperatorID == enquiry.OperatorID {
			return enquiry, nil
		}
	}
	return models.QuoteRequest{}, domain.PreconditionFailedError{Msg: "not a participant of this enquiry", Actor: true}
}
