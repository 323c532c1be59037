package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/domain"
)

// CreateEventRequest is the request body for POST /events.
// Date is the event start time in RFC3339 and may be omitted; an event with no
// date never triggers reminders.
type CreateEventRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Date        *string `json:"date"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if c.Date != nil {
		if _, err := time.Parse(time.RFC3339, *c.Date); err != nil {
			errs = append(errs, "date must be RFC3339")
		}
	}
	return errs
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}. All fields are optional.
type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Date        *string `json:"date"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		errs = append(errs, "title cannot be empty")
	}
	if u.Date != nil {
		if _, err := time.Parse(time.RFC3339, *u.Date); err != nil {
			errs = append(errs, "date must be RFC3339")
		}
	}
	return errs
}

// EventController handles event CRUD endpoints.
type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

// NewEventController creates an EventController with the given logger and service.
func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Create an event with title, optional description, location, and start date (RFC3339). Requires Bearer token.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	var date *time.Time
	if req.Date != nil {
		d, _ := time.Parse(time.RFC3339, *req.Date)
		date = &d
	}
	event, err := c.Service.CreateEvent(r.Context(), strings.TrimSpace(req.Title), req.Description, req.Location, date)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEvent godoc
// @Summary Get an event
// @Description Returns the event with the given ID.
// @Tags events
// @Produce json
// @Param eventID path int true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	event, err := c.Service.GetEventByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ListEvents godoc
// @Summary List events
// @Description Returns all events.
// @Tags events
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the event list"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Update the given event. All fields optional. Requires Bearer token.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Param body body UpdateEventRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	var date *time.Time
	if req.Date != nil {
		d, _ := time.Parse(time.RFC3339, *req.Date)
		date = &d
	}
	event, err := c.Service.UpdateEvent(r.Context(), id, req.Title, req.Description, req.Location, date)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes the given event and its RSVPs. Requires Bearer token.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 204 "no content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
