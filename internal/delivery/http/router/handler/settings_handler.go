package handler

import (
	"net/http"

	"atelier/internal/delivery/http/response"
	"atelier/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SettingsHandler holds dependencies for the PIN login and settings handlers.
type SettingsHandler struct {
	uc usecase.SettingsUsecase
}

// NewSettingsHandler is the constructor for SettingsHandler, injected by Fx.
func NewSettingsHandler(uc usecase.SettingsUsecase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

type verifyPINRequest struct {
	PIN string `json:"pin" validate:"required"`
}

type changePINRequest struct {
	CurrentPIN string `json:"currentPin" validate:"required"`
	NewPIN     string `json:"newPin" validate:"required"`
}

// VerifyPIN handles the admin login request.
func (h *SettingsHandler) VerifyPIN(c echo.Context) error {
	var req verifyPINRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.VerifyPIN(c.Request().Context(), req.PIN)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"token": output.Token}, "Login successful")
}

// ChangePIN handles the admin PIN change request.
func (h *SettingsHandler) ChangePIN(c echo.Context) error {
	var req changePINRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid PIN change input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.ChangePIN(c.Request().Context(), req.CurrentPIN, req.NewPIN); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "PIN changed successfully")
}
