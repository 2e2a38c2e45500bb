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

func newInboxService(t *testing.T) usecase.InboxUsecase {
	t.Helper()

	return NewInboxService(InboxServiceParams{
		Store:  newTestStore(t),
		Logger: testLogger(),
	})
}

func TestInboxService_SubmitCoachingRequest(t *testing.T) {
	svc := newInboxService(t)
	ctx := context.Background()

	req, err := svc.SubmitCoachingRequest(ctx, usecase.CoachingRequestInput{
		ApplicantName:      "Lea Martin",
		Instagram:          "@lea.nails",
		SelectedDate:       mustDate(t, 2025, time.October, 12),
		ProjectDescription: "Wants to open her own studio.",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RequestPending, req.Status)
	assert.False(t, req.SubmittedAt.IsZero())

	list, err := svc.ListCoachingRequests(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, req.ID, list[0].ID)
}

func TestInboxService_SubmitCollabRequest(t *testing.T) {
	svc := newInboxService(t)
	ctx := context.Background()

	req, err := svc.SubmitCollabRequest(ctx, usecase.CollabRequestInput{
		Kind:        entity.CollabBrand,
		ContactName: "Gel Brand GmbH",
		Email:       "partnerships@gelbrand.example",
		Message:     "Product placement inquiry.",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CollabBrand, req.Kind)

	list, err := svc.ListCollabRequests(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestInboxService_SubmitCollabRequest_UnknownKind(t *testing.T) {
	svc := newInboxService(t)

	_, err := svc.SubmitCollabRequest(context.Background(), usecase.CollabRequestInput{
		Kind:        entity.CollabKind("sponsorship"),
		ContactName: "Someone",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestInboxService_ReviewCoachingRequest(t *testing.T) {
	svc := newInboxService(t)
	ctx := context.Background()

	req, err := svc.SubmitCoachingRequest(ctx, usecase.CoachingRequestInput{
		ApplicantName: "Lea Martin",
		SelectedDate:  mustDate(t, 2025, time.October, 12),
	})
	require.NoError(t, err)

	reviewed, err := svc.ReviewCoachingRequest(ctx, req.ID, entity.RequestApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestApproved, reviewed.Status)

	_, err = svc.ReviewCoachingRequest(ctx, req.ID, entity.RequestPending)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = svc.ReviewCoachingRequest(ctx, "missing", entity.RequestDeclined)
	assert.ErrorIs(t, err, domainerrors.ErrRequestNotFound)
}
