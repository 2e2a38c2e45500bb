package impl

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"unicode"

	deliverycontext "atelier/internal/delivery/context"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/domain/repository"
	"atelier/internal/domain/service"
	"atelier/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// minPINLength is the weakest PIN the studio accepts.
const minPINLength = 4

// settingsService implements the SettingsUsecase interface.
type settingsService struct {
	store        repository.DocumentStore
	tokenService service.TokenService
	logger       *slog.Logger
}

// SettingsServiceParams holds dependencies for SettingsService, injected by Fx.
type SettingsServiceParams struct {
	fx.In

	Store        repository.DocumentStore
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewSettingsService is the constructor for settingsService.
func NewSettingsService(params SettingsServiceParams) usecase.SettingsUsecase {
	return &settingsService{
		store:        params.Store,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *settingsService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// VerifyPIN checks the submitted PIN and issues a session token.
func (srv *settingsService) VerifyPIN(ctx context.Context, pin string) (*usecase.VerifyPINOutput, error) {
	stored, err := srv.store.AdminPIN(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "verify pin")
	}

	if subtle.ConstantTimeCompare([]byte(pin), []byte(stored)) != 1 {
		srv.log(ctx).Warn("admin login rejected")

		return nil, domainerrors.ErrInvalidPIN
	}

	token, err := srv.tokenService.GenerateSessionToken()
	if err != nil {
		return nil, errors.Wrap(err, "generate session token")
	}
	srv.log(ctx).Info("admin session opened")

	return &usecase.VerifyPINOutput{Token: token}, nil
}

// ChangePIN replaces the stored PIN after checking the current one. The new
// PIN must be at least four digits.
func (srv *settingsService) ChangePIN(ctx context.Context, current, next string) error {
	stored, err := srv.store.AdminPIN(ctx)
	if err != nil {
		return domainerrors.NewStoreExecuteError(err, "change pin")
	}
	if subtle.ConstantTimeCompare([]byte(current), []byte(stored)) != 1 {
		return domainerrors.ErrInvalidPIN
	}

	if !validPIN(next) {
		return domainerrors.ErrWeakPIN
	}

	if err := srv.store.SetAdminPIN(ctx, next); err != nil {
		return domainerrors.NewStoreExecuteError(err, "change pin")
	}
	srv.log(ctx).Info("admin pin changed")

	return nil
}

func validPIN(pin string) bool {
	if len(pin) < minPINLength {
		return false
	}
	for _, r := range pin {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}
