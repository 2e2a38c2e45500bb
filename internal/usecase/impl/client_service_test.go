package impl

import (
	"context"
	"testing"
	"time"

	"atelier/internal/domain/entity"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClientService(t *testing.T) usecase.ClientUsecase {
	t.Helper()

	return NewClientService(ClientServiceParams{
		Store:     newTestStore(t),
		Messenger: stubMessenger{},
		Config:    defaultConfig(),
		Logger:    testLogger(),
	})
}

func seedClientWithVisits(t *testing.T, svc usecase.ClientUsecase, visits int) *entity.Client {
	t.Helper()
	ctx := context.Background()

	created, err := svc.CreateClient(ctx, usecase.ClientInput{Name: "Test Client"})
	require.NoError(t, err)
	for i := 0; i < visits; i++ {
		_, err = svc.RecordVisit(ctx, created.ID)
		require.NoError(t, err)
	}

	return created
}

func TestClientService_CreateAndGet(t *testing.T) {
	svc := newClientService(t)
	ctx := context.Background()

	created, err := svc.CreateClient(ctx, usecase.ClientInput{
		Name:      "Nina Moreau",
		Instagram: "@nina.m",
		Notes:     "French tips only",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Zero(t, created.TotalVisits)

	got, err := svc.GetClient(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)

	_, err = svc.GetClient(ctx, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrClientNotFound)
}

func TestClientService_RecordVisit(t *testing.T) {
	svc := newClientService(t)
	ctx := context.Background()

	created, err := svc.CreateClient(ctx, usecase.ClientInput{Name: "Nina Moreau"})
	require.NoError(t, err)

	updated, err := svc.RecordVisit(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.TotalVisits)
	assert.WithinDuration(t, time.Now().UTC(), updated.LastVisit, time.Minute)

	_, err = svc.RecordVisit(ctx, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrClientNotFound)
}

func TestClientService_LoyaltyThresholds(t *testing.T) {
	tests := []struct {
		name         string
		visits       int
		wantEligible bool
		wantProgress int
	}{
		{"twenty visits earns a reward", 20, true, 10},
		{"fifteen visits is halfway", 15, false, 5},
		{"a brand new client has earned nothing", 0, false, 0},
		{"exactly ten visits earns the first reward", 10, true, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newClientService(t)
			client := seedClientWithVisits(t, svc, tt.visits)

			status, err := svc.LoyaltyStatus(context.Background(), client.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantEligible, status.RewardEligible)
			assert.Equal(t, tt.wantProgress, status.Progress)
			assert.Equal(t, 10, status.RewardEvery)
		})
	}
}

func TestClientService_BookAppointment_MatchesExistingCaseInsensitive(t *testing.T) {
	svc := newClientService(t)
	ctx := context.Background()

	created, err := svc.CreateClient(ctx, usecase.ClientInput{Name: "Valerie Basso", Notes: "Regular"})
	require.NoError(t, err)

	slot := mustDate(t, 2025, time.September, 3)
	booked, err := svc.BookAppointment(ctx, usecase.BookAppointmentInput{
		Name:    "valerie BASSO",
		Contact: "@valerie",
		Time:    slot,
		Service: "Babyboomer",
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, booked.ID)
	require.NotNil(t, booked.NextAppointment)
	assert.True(t, booked.NextAppointment.Equal(slot))
	assert.Contains(t, booked.Notes, "Regular")
	assert.Contains(t, booked.Notes, "Babyboomer")
}

func TestClientService_BookAppointment_CreatesUnknownClient(t *testing.T) {
	svc := newClientService(t)
	ctx := context.Background()

	before, err := svc.ListClients(ctx)
	require.NoError(t, err)

	slot := mustDate(t, 2025, time.September, 3)
	booked, err := svc.BookAppointment(ctx, usecase.BookAppointmentInput{
		Name:    "Brand New",
		Contact: "new@example.com",
		Time:    slot,
		Service: "Gel overlay",
	})
	require.NoError(t, err)

	assert.Zero(t, booked.TotalVisits)
	assert.Equal(t, "new@example.com", booked.Instagram)
	require.NotNil(t, booked.NextAppointment)

	after, err := svc.ListClients(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)
}

func TestClientService_UpdatePreservesVisitCounter(t *testing.T) {
	svc := newClientService(t)
	ctx := context.Background()

	client := seedClientWithVisits(t, svc, 3)

	updated, err := svc.UpdateClient(ctx, client.ID, usecase.ClientInput{
		Name:  "Renamed Client",
		Notes: "new notes",
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Client", updated.Name)
	assert.Equal(t, 3, updated.TotalVisits)
}

func TestClientService_DraftReminderMessage(t *testing.T) {
	svc := newClientService(t)
	ctx := context.Background()

	client, err := svc.CreateClient(ctx, usecase.ClientInput{Name: "Nina Moreau"})
	require.NoError(t, err)

	text, err := svc.DraftReminderMessage(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "draft for Nina Moreau", text)
}
