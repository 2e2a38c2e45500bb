package impl

import (
	"context"
	"testing"
	"time"

	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/infra/auth"
	"atelier/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettingsService(t *testing.T) usecase.SettingsUsecase {
	t.Helper()

	cfg := defaultConfig()
	cfg.Auth.Secret = "test_secret_key_very_long_for_testing"
	cfg.Auth.TokenTTL = time.Hour

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return NewSettingsService(SettingsServiceParams{
		Store:        newTestStore(t),
		TokenService: tokenService,
		Logger:       testLogger(),
	})
}

func TestSettingsService_VerifyPIN(t *testing.T) {
	svc := newSettingsService(t)
	ctx := context.Background()

	out, err := svc.VerifyPIN(ctx, "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)

	_, err = svc.VerifyPIN(ctx, "000000")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidPIN)
}

func TestSettingsService_ChangePIN(t *testing.T) {
	svc := newSettingsService(t)
	ctx := context.Background()

	require.NoError(t, svc.ChangePIN(ctx, "123456", "9876"))

	// The old PIN no longer opens a session, the new one does.
	_, err := svc.VerifyPIN(ctx, "123456")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidPIN)

	out, err := svc.VerifyPIN(ctx, "9876")
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
}

func TestSettingsService_ChangePIN_WrongCurrent(t *testing.T) {
	svc := newSettingsService(t)

	err := svc.ChangePIN(context.Background(), "000000", "9876")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidPIN)
}

func TestSettingsService_ChangePIN_Weak(t *testing.T) {
	tests := []struct {
		name string
		pin  string
	}{
		{"too short", "123"},
		{"not digits", "abcd"},
		{"digits mixed with letters", "12a4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newSettingsService(t)

			err := svc.ChangePIN(context.Background(), "123456", tt.pin)
			assert.ErrorIs(t, err, domainerrors.ErrWeakPIN)
		})
	}
}
