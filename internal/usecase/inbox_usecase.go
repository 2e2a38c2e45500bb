package usecase

import (
	"context"
	"time"

	"atelier/internal/domain/entity"
)

// CoachingRequestInput defines the public coaching application form.
type CoachingRequestInput struct {
	ApplicantName      string
	Instagram          string
	SelectedDate       time.Time
	ProjectDescription string
}

// CollabRequestInput defines the public collaboration proposal form.
type CollabRequestInput struct {
	Kind        entity.CollabKind
	ContactName string
	Email       string
	Message     string
}

// InboxUsecase defines the interface for inbound public form handling.
type InboxUsecase interface {
	SubmitCoachingRequest(ctx context.Context, input CoachingRequestInput) (*entity.CoachingRequest, error)
	SubmitCollabRequest(ctx context.Context, input CollabRequestInput) (*entity.CollabRequest, error)

	ListCoachingRequests(ctx context.Context) ([]entity.CoachingRequest, error)
	ListCollabRequests(ctx context.Context) ([]entity.CollabRequest, error)

	// ReviewCoachingRequest moves a coaching request to approved or declined.
	ReviewCoachingRequest(ctx context.Context, id string, status entity.RequestStatus) (*entity.CoachingRequest, error)
}
