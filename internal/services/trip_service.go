package services

import (
	"strings"

	"safariconnector/internal/domain"
	"safariconnector/internal/domain/models"
	"safariconnector/internal/repositories"
)

// TripService guards trip authoring: only approved operators may publish.
type TripService struct {
	TripRepo     repositories.TripRepository
	OperatorRepo repositories.OperatorRepository
	RequestID    string
}

func (s TripService) CreateTrip(actor domain.Actor, t models.Trip) (models.Trip, error) {
	t.OperatorID = actor.OperatorID
	if err := s.validate(actor, t); err != nil {
		return models.Trip{}, err
	}
	id, err := s.TripRepo.Create(t)
	if err != nil {
		return models.Trip{}, domain.InternalError{Msg: "failed to create trip", Err: err}
	}
	return s.TripRepo.GetByID(id)
}

func (s TripService) UpdateTrip(actor domain.Actor, t models.Trip) (models.Trip, error) {
	t.OperatorID = actor.OperatorID
	if err := s.validate(actor, t); err != nil {
		return models.Trip{}, err
	}
	if err := s.TripRepo.Update(t); err != nil {
		return models.Trip{}, err
	}
	return s.TripRepo.GetByID(t.ID)
}

func (s TripService) DeleteTrip(actor domain.Actor, tripID int64) error {
	return s.TripRepo.Delete(tripID, actor.OperatorID)
}

func (s TripService) validate(actor domain.Actor, t models.Trip) error {
	if strings.TrimSpace(t.Title) == "" {
		return domain.ValidationError{Field: "title", Msg: "required"}
	}
	if t.DurationDays < 1 {
		return domain.ValidationError{Field: "duration_days", Msg: "must be at least 1"}
	}
	if t.MinPax < 1 || t.MaxPax < t.MinPax {
		return domain.ValidationError{Field: "max_pax", Msg: "pax bounds are inconsistent"}
	}
	for _, d := range t.Days {
		if d.DayNumber < 1 || d.DayNumber > t.DurationDays {
			return domain.ValidationError{Field: "days", Msg: "day_number outside trip duration"}
		}
	}

	if t.Published {
		op, err := s.OperatorRepo.GetByID(actor.OperatorID)
		if err != nil {
			return err
		}
		if op.Status != models.OperatorApproved {
			return domain.PreconditionFailedError{Msg: "operator is not approved to publish trips"}
		}
	}
	return nil
}
