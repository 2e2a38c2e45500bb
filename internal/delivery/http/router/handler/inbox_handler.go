package handler

import (
	"net/http"
	"time"

	"atelier/internal/delivery/http/response"
	"atelier/internal/domain/entity"
	"atelier/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// InboxHandler holds dependencies for inbound public form handlers.
type InboxHandler struct {
	uc usecase.InboxUsecase
}

// NewInboxHandler is the constructor for InboxHandler, injected by Fx.
func NewInboxHandler(uc usecase.InboxUsecase) *InboxHandler {
	return &InboxHandler{uc: uc}
}

type coachingRequestInput struct {
	ApplicantName      string    `json:"applicantName" validate:"required"`
	Instagram          string    `json:"instagram"`
	SelectedDate       time.Time `json:"selectedDate" validate:"required"`
	ProjectDescription string    `json:"projectDescription"`
}

type collabRequestInput struct {
	Kind        string `json:"kind" validate:"required"`
	ContactName string `json:"contactName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Message     string `json:"message"`
}

type reviewRequestInput struct {
	Status string `json:"status" validate:"required"`
}

// SubmitCoaching handles the public coaching application form.
func (h *InboxHandler) SubmitCoaching(c echo.Context) error {
	var req coachingRequestInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid coaching request input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.uc.SubmitCoachingRequest(c.Request().Context(), usecase.CoachingRequestInput{
		ApplicantName:      req.ApplicantName,
		Instagram:          req.Instagram,
		SelectedDate:       req.SelectedDate,
		ProjectDescription: req.ProjectDescription,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, created, "Coaching request submitted")
}

// SubmitCollab handles the public collaboration proposal form.
func (h *InboxHandler) SubmitCollab(c echo.Context) error {
	var req collabRequestInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid collab request input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.uc.SubmitCollabRequest(c.Request().Context(), usecase.CollabRequestInput{
		Kind:        entity.CollabKind(req.Kind),
		ContactName: req.ContactName,
		Email:       req.Email,
		Message:     req.Message,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, created, "Collab request submitted")
}

// ListCoaching returns every coaching request.
func (h *InboxHandler) ListCoaching(c echo.Context) error {
	list, err := h.uc.ListCoachingRequests(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, list, "")
}

// ListCollabs returns every collaboration request.
func (h *InboxHandler) ListCollabs(c echo.Context) error {
	list, err := h.uc.ListCollabRequests(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, list, "")
}

// ReviewCoaching approves or declines a coaching request.
func (h *InboxHandler) ReviewCoaching(c echo.Context) error {
	var req reviewRequestInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reviewed, err := h.uc.ReviewCoachingRequest(c.Request().Context(), c.Param("id"), entity.RequestStatus(req.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, reviewed, "Request reviewed")
}
