package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "atelier/internal/delivery/context"
	"atelier/internal/domain/entity"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/domain/repository"
	"atelier/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// inboxService implements the InboxUsecase interface.
type inboxService struct {
	store  repository.DocumentStore
	logger *slog.Logger
	clock  func() time.Time
}

// InboxServiceParams holds dependencies for InboxService, injected by Fx.
type InboxServiceParams struct {
	fx.In

	Store  repository.DocumentStore
	Logger *slog.Logger
}

// NewInboxService is the constructor for inboxService.
func NewInboxService(params InboxServiceParams) usecase.InboxUsecase {
	return &inboxService{
		store:  params.Store,
		logger: params.Logger,
		clock:  func() time.Time { return time.Now().UTC() },
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *inboxService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *inboxService) SubmitCoachingRequest(ctx context.Context, input usecase.CoachingRequestInput) (*entity.CoachingRequest, error) {
	req := entity.CoachingRequest{
		ID:                 uuid.NewString(),
		ApplicantName:      input.ApplicantName,
		Instagram:          input.Instagram,
		SelectedDate:       input.SelectedDate,
		ProjectDescription: input.ProjectDescription,
		Status:             entity.RequestPending,
		SubmittedAt:        srv.clock(),
	}

	if _, err := srv.store.AddCoachingRequest(ctx, req); err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "submit coaching request")
	}
	srv.log(ctx).Info("coaching request received",
		slog.String("id", req.ID),
		slog.String("applicant", req.ApplicantName))

	return &req, nil
}

func (srv *inboxService) SubmitCollabRequest(ctx context.Context, input usecase.CollabRequestInput) (*entity.CollabRequest, error) {
	if !input.Kind.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown collaboration kind " + input.Kind.String())
	}

	req := entity.CollabRequest{
		ID:          uuid.NewString(),
		Kind:        input.Kind,
		ContactName: input.ContactName,
		Email:       input.Email,
		Message:     input.Message,
		SubmittedAt: srv.clock(),
	}

	if _, err := srv.store.AddCollabRequest(ctx, req); err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "submit collab request")
	}
	srv.log(ctx).Info("collab request received",
		slog.String("id", req.ID),
		slog.String("kind", req.Kind.String()))

	return &req, nil
}

func (srv *inboxService) ListCoachingRequests(ctx context.Context) ([]entity.CoachingRequest, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "list coaching requests")
	}

	return doc.CoachingRequests, nil
}

func (srv *inboxService) ListCollabRequests(ctx context.Context) ([]entity.CollabRequest, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "list collab requests")
	}

	return doc.CollabRequests, nil
}

// ReviewCoachingRequest moves a coaching request to approved or declined.
func (srv *inboxService) ReviewCoachingRequest(ctx context.Context, id string, status entity.RequestStatus) (*entity.CoachingRequest, error) {
	if status != entity.RequestApproved && status != entity.RequestDeclined {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("review status must be approved or declined")
	}

	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "review coaching request")
	}

	var existing *entity.CoachingRequest
	for i := range doc.CoachingRequests {
		if doc.CoachingRequests[i].ID == id {
			existing = &doc.CoachingRequests[i]

			break
		}
	}
	if existing == nil {
		return nil, domainerrors.ErrRequestNotFound
	}

	updated := *existing
	updated.Status = status

	if _, err := srv.store.UpdateCoachingRequest(ctx, updated); err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "review coaching request")
	}

	return &updated, nil
}
