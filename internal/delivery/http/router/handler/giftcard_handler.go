package handler

import (
	"net/http"

	"atelier/internal/delivery/http/response"
	"atelier/internal/domain/entity"
	"atelier/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// GiftCardHandler holds dependencies for gift-card handlers.
type GiftCardHandler struct {
	uc usecase.GiftCardUsecase
}

// NewGiftCardHandler is the constructor for GiftCardHandler, injected by Fx.
func NewGiftCardHandler(uc usecase.GiftCardUsecase) *GiftCardHandler {
	return &GiftCardHandler{uc: uc}
}

type issueGiftCardRequest struct {
	Amount         decimal.Decimal `json:"amount" validate:"required"`
	From           string          `json:"from" validate:"required"`
	To             string          `json:"to" validate:"required"`
	RecipientEmail string          `json:"recipientEmail"`
	Message        string          `json:"message"`
}

type redeemRequest struct {
	Category string `json:"category"`
}

// List returns every issued card.
func (h *GiftCardHandler) List(c echo.Context) error {
	cards, err := h.uc.ListGiftCards(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cards, "")
}

// Issue handles the public gift-card purchase form.
func (h *GiftCardHandler) Issue(c echo.Context) error {
	var req issueGiftCardRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid gift card input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if !req.Amount.IsPositive() {
		return response.BadRequest(c, "INVALID_INPUT", "Gift card amount must be positive")
	}

	card, err := h.uc.IssueGiftCard(c.Request().Context(), usecase.IssueGiftCardInput{
		Amount:         req.Amount,
		From:           req.From,
		To:             req.To,
		RecipientEmail: req.RecipientEmail,
		Message:        req.Message,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, card, "Gift card issued")
}

// Lookup resolves a card from its printed code, for the public view page.
func (h *GiftCardHandler) Lookup(c echo.Context) error {
	card, err := h.uc.FindByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, card, "")
}

// Redeem spends a card; the optional category overrides where the ledger
// entry is booked.
func (h *GiftCardHandler) Redeem(c echo.Context) error {
	var req redeemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid redeem input")
	}

	card, err := h.uc.Redeem(c.Request().Context(), c.Param("id"), entity.TransactionCategory(req.Category))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, card, "Gift card redeemed")
}

// Delete removes a card.
func (h *GiftCardHandler) Delete(c echo.Context) error {
	if err := h.uc.DeleteGiftCard(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Gift card deleted")
}

// QR renders the card's redeem code as a PNG.
func (h *GiftCardHandler) QR(c echo.Context) error {
	png, err := h.uc.GiftCardQR(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
