package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/delivery/http/middleware"
	"eventrsvp/internal/domain"
)

// CreateRSVPRequest is the request body for POST /events/{eventID}/rsvps.
type CreateRSVPRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (c CreateRSVPRequest) Validate() []string {
	var errs []string
	if c.Status == "" {
		errs = append(errs, "status is required")
	} else if !domain.ValidRSVPStatus(c.Status) {
		errs = append(errs, "status must be \"confirmed\", \"declined\", or \"pending\"")
	}
	return errs
}

// RSVPStatusResponse is the response body for GET /events/{eventID}/rsvps/me.
type RSVPStatusResponse struct {
	Status string `json:"status"`
}

// RSVPController handles RSVP endpoints.
type RSVPController struct {
	Logger  *slog.Logger
	Service domain.RSVPService
}

// NewRSVPController creates an RSVPController with the given logger and service.
func NewRSVPController(logger *slog.Logger, svc domain.RSVPService) *RSVPController {
	return &RSVPController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateRSVP godoc
// @Summary RSVP to an event
// @Description Records the authenticated user's RSVP for the event. One RSVP per user per event. Requires Bearer token.
// @Tags rsvps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Param body body CreateRSVPRequest true "RSVP status: confirmed, declined, or pending"
// @Success 201 {object} helpers.APIResponse "data contains the created RSVP"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/rsvps [post]
func (c *RSVPController) CreateRSVP(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	var req CreateRSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	rsvp, err := c.Service.CreateRSVP(r.Context(), userID, eventID, req.Status)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateRSVP) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "already responded to this event")
			return
		}
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, rsvp)
}

// GetRSVP godoc
// @Summary Get an RSVP
// @Description Returns the RSVP with the given ID. Requires Bearer token.
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param rsvpID path int true "RSVP ID"
// @Success 200 {object} helpers.APIResponse "data contains the RSVP"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rsvps/{rsvpID} [get]
func (c *RSVPController) GetRSVP(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "rsvpID")
	if !ok {
		return
	}
	rsvp, err := c.Service.GetRSVPByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "rsvp not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rsvp)
}

// ListRSVPs godoc
// @Summary List RSVPs
// @Description Returns all RSVPs. Requires Bearer token.
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the RSVP list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rsvps [get]
func (c *RSVPController) ListRSVPs(w http.ResponseWriter, r *http.Request) {
	rsvps, err := c.Service.ListRSVPs(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rsvps)
}

// GetMyStatus godoc
// @Summary Get own RSVP status for an event
// @Description Returns the authenticated user's RSVP status for the event. Requires Bearer token.
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/rsvps/me [get]
func (c *RSVPController) GetMyStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	status, err := c.Service.GetStatus(r.Context(), userID, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "no rsvp for this event")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RSVPStatusResponse{Status: status})
}

// ListAttendees godoc
// @Summary List event attendees
// @Description Returns each attendee's username and RSVP status for the event.
// @Tags rsvps
// @Produce json
// @Param eventID path int true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the attendee list"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendees [get]
func (c *RSVPController) ListAttendees(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	attendees, err := c.Service.ListEventAttendees(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendees)
}
