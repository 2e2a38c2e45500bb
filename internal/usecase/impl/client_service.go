// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"atelier/config"
	deliverycontext "atelier/internal/delivery/context"
	"atelier/internal/domain/entity"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/domain/repository"
	"atelier/internal/domain/service"
	"atelier/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// clientService implements the ClientUsecase interface.
type clientService struct {
	store       repository.DocumentStore
	messenger   service.Messenger
	rewardEvery int
	logger      *slog.Logger
	clock       func() time.Time
}

// ClientServiceParams holds dependencies for ClientService, injected by Fx.
type ClientServiceParams struct {
	fx.In

	Store     repository.DocumentStore
	Messenger service.Messenger
	Config    *config.Config
	Logger    *slog.Logger
}

// NewClientService is the constructor for clientService.
func NewClientService(params ClientServiceParams) usecase.ClientUsecase {
	rewardEvery := 10
	if params.Config != nil && params.Config.Loyalty.RewardEvery > 0 {
		rewardEvery = params.Config.Loyalty.RewardEvery
	}

	return &clientService{
		store:       params.Store,
		messenger:   params.Messenger,
		rewardEvery: rewardEvery,
		logger:      params.Logger,
		clock:       func() time.Time { return time.Now().UTC() },
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *clientService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *clientService) ListClients(ctx context.Context) ([]entity.Client, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "list clients")
	}

	return doc.Clients, nil
}

func (srv *clientService) GetClient(ctx context.Context, id string) (*entity.Client, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "get client")
	}

	return findClient(doc, id)
}

func (srv *clientService) CreateClient(ctx context.Context, input usecase.ClientInput) (*entity.Client, error) {
	client := entity.Client{
		ID:              uuid.NewString(),
		Name:            input.Name,
		Instagram:       input.Instagram,
		Notes:           input.Notes,
		LastVisit:       input.LastVisit,
		NextAppointment: input.NextAppointment,
	}

	if _, err := srv.store.AddClient(ctx, client); err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "create client")
	}
	srv.log(ctx).Info("client created", slog.String("id", client.ID), slog.String("name", client.Name))

	return &client, nil
}

func (srv *clientService) UpdateClient(ctx context.Context, id string, input usecase.ClientInput) (*entity.Client, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "update client")
	}

	existing, err := findClient(doc, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.Name = input.Name
	updated.Instagram = input.Instagram
	updated.Notes = input.Notes
	updated.NextAppointment = input.NextAppointment
	if !input.LastVisit.IsZero() {
		updated.LastVisit = input.LastVisit
	}

	if _, err := srv.store.UpdateClient(ctx, updated); err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "update client")
	}

	return &updated, nil
}

func (srv *clientService) DeleteClient(ctx context.Context, id string) error {
	if _, err := srv.store.DeleteClient(ctx, id); err != nil {
		return domainerrors.NewStoreExecuteError(err, "delete client")
	}

	return nil
}

// RecordVisit bumps the lifetime visit counter and stamps the last visit.
func (srv *clientService) RecordVisit(ctx context.Context, id string) (*entity.Client, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "record visit")
	}

	existing, err := findClient(doc, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.TotalVisits++
	updated.LastVisit = srv.clock()

	if _, err := srv.store.UpdateClient(ctx, updated); err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "record visit")
	}
	srv.log(ctx).Info("visit recorded",
		slog.String("id", updated.ID),
		slog.Int("totalVisits", updated.TotalVisits))

	return &updated, nil
}

func (srv *clientService) LoyaltyStatus(ctx context.Context, id string) (*usecase.LoyaltyStatusOutput, error) {
	client, err := srv.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	return &usecase.LoyaltyStatusOutput{
		Client:         client,
		RewardEligible: client.RewardEligible(srv.rewardEvery),
		Progress:       client.LoyaltyProgress(srv.rewardEvery),
		RewardEvery:    srv.rewardEvery,
	}, nil
}

// BookAppointment attaches the requested slot to the matching client, or
// creates a fresh zero-visit client when the name is unknown. The match is
// by case-insensitive name; the booking always leaves a note trail.
func (srv *clientService) BookAppointment(ctx context.Context, input usecase.BookAppointmentInput) (*entity.Client, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "book appointment")
	}

	note := fmt.Sprintf("Booked %q for %s via website (contact: %s)",
		input.Service, input.Time.Format("2 January 2006 15:04"), input.Contact)
	slot := input.Time

	for i := range doc.Clients {
		if !strings.EqualFold(doc.Clients[i].Name, input.Name) {
			continue
		}

		updated := doc.Clients[i]
		updated.NextAppointment = &slot
		if updated.Notes == "" {
			updated.Notes = note
		} else {
			updated.Notes = updated.Notes + "\n" + note
		}

		if _, err := srv.store.UpdateClient(ctx, updated); err != nil {
			return nil, domainerrors.NewStoreExecuteError(err, "book appointment")
		}

		return &updated, nil
	}

	client := entity.Client{
		ID:              uuid.NewString(),
		Name:            input.Name,
		Instagram:       input.Contact,
		Notes:           note,
		NextAppointment: &slot,
	}
	if _, err := srv.store.AddClient(ctx, client); err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "book appointment")
	}
	srv.log(ctx).Info("new client from booking", slog.String("name", client.Name))

	return &client, nil
}

func (srv *clientService) DraftReminderMessage(ctx context.Context, id string) (string, error) {
	client, err := srv.GetClient(ctx, id)
	if err != nil {
		return "", err
	}

	return srv.messenger.DraftClientMessage(ctx, client)
}

func findClient(doc *entity.Document, id string) (*entity.Client, error) {
	for i := range doc.Clients {
		if doc.Clients[i].ID == id {
			return &doc.Clients[i], nil
		}
	}

	return nil, domainerrors.ErrClientNotFound
}
