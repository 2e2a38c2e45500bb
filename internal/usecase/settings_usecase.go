package usecase

import "context"

// VerifyPINOutput returns the session token issued after a correct PIN.
type VerifyPINOutput struct {
	Token string
}

// SettingsUsecase defines the interface for the PIN-gated admin session.
type SettingsUsecase interface {
	// VerifyPIN checks the submitted PIN and issues a session token.
	VerifyPIN(ctx context.Context, pin string) (*VerifyPINOutput, error)

	// ChangePIN replaces the stored PIN after checking the current one.
	ChangePIN(ctx context.Context, current, next string) error
}
