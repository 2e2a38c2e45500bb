package handler

import (
	"net/http"
	"time"

	"atelier/internal/delivery/http/response"
	"atelier/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ClientHandler holds dependencies for client-related handlers.
type ClientHandler struct {
	uc usecase.ClientUsecase
}

// NewClientHandler is the constructor for ClientHandler, injected by Fx.
func NewClientHandler(uc usecase.ClientUsecase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

type clientRequest struct {
	Name            string     `json:"name" validate:"required"`
	Instagram       string     `json:"instagram"`
	Notes           string     `json:"notes"`
	LastVisit       time.Time  `json:"lastVisit"`
	NextAppointment *time.Time `json:"nextAppointment"`
}

type bookingRequest struct {
	Name    string    `json:"name" validate:"required"`
	Contact string    `json:"contact" validate:"required"`
	Time    time.Time `json:"time" validate:"required"`
	Service string    `json:"service" validate:"required"`
}

func (r clientRequest) toInput() usecase.ClientInput {
	return usecase.ClientInput{
		Name:            r.Name,
		Instagram:       r.Instagram,
		Notes:           r.Notes,
		LastVisit:       r.LastVisit,
		NextAppointment: r.NextAppointment,
	}
}

// List returns every client.
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.uc.ListClients(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, clients, "")
}

// Create registers a new client.
func (h *ClientHandler) Create(c echo.Context) error {
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid client input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	client, err := h.uc.CreateClient(c.Request().Context(), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, client, "Client created")
}

// Update rewrites a client's editable fields.
func (h *ClientHandler) Update(c echo.Context) error {
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid client input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	client, err := h.uc.UpdateClient(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, client, "Client updated")
}

// Delete removes a client.
func (h *ClientHandler) Delete(c echo.Context) error {
	if err := h.uc.DeleteClient(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Client deleted")
}

// RecordVisit bumps the loyalty counter.
func (h *ClientHandler) RecordVisit(c echo.Context) error {
	client, err := h.uc.RecordVisit(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, client, "Visit recorded")
}

// LoyaltyStatus reports reward eligibility.
func (h *ClientHandler) LoyaltyStatus(c echo.Context) error {
	status, err := h.uc.LoyaltyStatus(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, status, "")
}

// DraftReminder returns an AI-written re-engagement message.
func (h *ClientHandler) DraftReminder(c echo.Context) error {
	text, err := h.uc.DraftReminderMessage(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": text}, "")
}

// Book handles the public appointment booking form.
func (h *ClientHandler) Book(c echo.Context) error {
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid booking input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	client, err := h.uc.BookAppointment(c.Request().Context(), usecase.BookAppointmentInput{
		Name:    req.Name,
		Contact: req.Contact,
		Time:    req.Time,
		Service: req.Service,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, client, "Appointment booked")
}
