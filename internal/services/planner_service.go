package services

import (
	"context"
	"fmt"
	"strings"

	"safariconnector/internal/domain"
	"safariconnector/internal/domain/models"
	"safariconnector/internal/planner"
	"safariconnector/internal/repositories"
	"safariconnector/internal/utils"
)

// PlannerService generates an AI itinerary and, when the traveller names one
// of their enquiries, posts the plan to the operator on that thread.
type PlannerService struct {
	Client      planner.Client
	QuoteRepo   repositories.QuoteRepository
	MessageRepo repositories.MessageRepository
	RequestID   string
}

type PlanInput struct {
	Destination string `json:"destination"`
	Days        int    `json:"days"`
	Preferences string `json:"preferences"`
	// EnquiryID is optional; when set, the generated plan is appended to
	// that enquiry's chat thread.
	EnquiryID int64 `json:"enquiry_id"`
}

func (s PlannerService) Plan(ctx context.Context, actor domain.Actor, in PlanInput) (planner.Itinerary, error) {
	if strings.TrimSpace(in.Destination) == "" {
		return planner.Itinerary{}, domain.ValidationError{Field: "destination", Msg: "required"}
	}
	if in.Days < 1 || in.Days > 30 {
		return planner.Itinerary{}, domain.ValidationError{Field: "days", Msg: "must be between 1 and 30"}
	}

	it, err := s.Client.Generate(ctx, planner.Request{
		Destination: in.Destination,
		Days:        in.Days,
		Preferences: in.Preferences,
	})
	if err != nil {
		return planner.Itinerary{}, domain.InternalError{Msg: "itinerary generation failed", Err: err}
	}
	utils.LogEvent(s.RequestID, "planner", "generate", fmt.Sprintf("destination=%s days=%d", in.Destination, len(it.Days)))

	if in.EnquiryID > 0 {
		if err := s.postToEnquiry(actor, in.EnquiryID, it); err != nil {
			return planner.Itinerary{}, err
		}
	}
	return it, nil
}

func (s PlannerService) postToEnquiry(actor domain.Actor, enquiryID int64, it planner.Itinerary) error {
	enquiry, err := s.QuoteRepo.GetEnquiryByID(enquiryID)
	if err != nil {
		return err
	}
	if actor.UserID != enquiry.TravellerID {
		return domain.PreconditionFailedError{Msg: "enquiry belongs to a different traveller", Actor: true}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Suggested itinerary for %s:\n", it.Destination)
	for _, d := range it.Days {
		fmt.Fprintf(&b, "Day %d - %s: %s\n", d.Day, d.Title, d.Detail)
	}

	if _, err := s.MessageRepo.Create(models.Message{
		QuoteRequestID: enquiryID,
		SenderRole:     string(domain.RoleTraveller),
		SenderID:       actor.UserID,
		Body:           b.String(),
	}); err != nil {
		return domain.InternalError{Msg: "failed to post itinerary to enquiry", Err: err}
	}
	return nil
}
