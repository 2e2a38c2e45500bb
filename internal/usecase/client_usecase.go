// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"atelier/internal/domain/entity"
)

// --- Input DTOs ---

// ClientInput defines the data required to create or update a client.
type ClientInput struct {
	Name            string
	Instagram       string
	Notes           string
	LastVisit       time.Time
	NextAppointment *time.Time
}

// BookAppointmentInput defines the data submitted from the public booking form.
type BookAppointmentInput struct {
	Name    string
	Contact string
	Time    time.Time
	Service string
}

// --- Output DTOs ---

// LoyaltyStatusOutput describes where a client stands on the loyalty card.
type LoyaltyStatusOutput struct {
	Client         *entity.Client
	RewardEligible bool
	Progress       int
	RewardEvery    int
}

// ClientUsecase defines the interface for client-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type ClientUsecase interface {
	ListClients(ctx context.Context) ([]entity.Client, error)
	GetClient(ctx context.Context, id string) (*entity.Client, error)
	CreateClient(ctx context.Context, input ClientInput) (*entity.Client, error)
	UpdateClient(ctx context.Context, id string, input ClientInput) (*entity.Client, error)
	DeleteClient(ctx context.Context, id string) error

	// RecordVisit bumps the visit counter and stamps the last visit.
	RecordVisit(ctx context.Context, id string) (*entity.Client, error)

	// LoyaltyStatus reports reward eligibility and progress toward the next one.
	LoyaltyStatus(ctx context.Context, id string) (*LoyaltyStatusOutput, error)

	// BookAppointment updates the matching client (case-insensitive name) or
	// creates a new zero-visit client carrying an automatic booking note.
	BookAppointment(ctx context.Context, input BookAppointmentInput) (*entity.Client, error)

	// DraftReminderMessage writes a re-engagement DM for the client.
	DraftReminderMessage(ctx context.Context, id string) (string, error)
}
