package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/domain"
)

// AuthURLResponse is the response body for GET /calendar/auth.
type AuthURLResponse struct {
	URL string `json:"url"`
}

// CalendarLinkResponse is the response body for POST /events/{eventID}/calendar.
type CalendarLinkResponse struct {
	Link string `json:"link"`
}

// CalendarController handles Google Calendar authorization and event export.
type CalendarController struct {
	Logger *slog.Logger
	Sync   domain.CalendarSync
	Events domain.EventService
}

// NewCalendarController creates a CalendarController with the given dependencies.
func NewCalendarController(logger *slog.Logger, sync domain.CalendarSync, events domain.EventService) *CalendarController {
	return &CalendarController{
		Logger: logger,
		Sync:   sync,
		Events: events,
	}
}

// GetAuthURL godoc
// @Summary Get calendar authorization URL
// @Description Returns the Google OAuth2 consent URL to authorize calendar access. Requires Bearer token.
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the consent URL"
// @Router /calendar/auth [get]
func (c *CalendarController) GetAuthURL(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, AuthURLResponse{URL: c.Sync.AuthURL()})
}

// OAuthCallback godoc
// @Summary OAuth2 redirect endpoint
// @Description Exchanges the authorization code Google redirects here with for a token.
// @Tags calendar
// @Produce json
// @Param code query string true "Authorization code"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /oauth2callback [get]
func (c *CalendarController) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing code")
		return
	}
	if err := c.Sync.Authorize(r.Context(), code); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "authorized"})
}

// ExportEvent godoc
// @Summary Export an event to Google Calendar
// @Description Creates the event on the authorized calendar and returns its HTML link. Requires Bearer token and prior calendar authorization.
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 201 {object} helpers.APIResponse "data contains the calendar link"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/calendar [post]
func (c *CalendarController) ExportEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	event, err := c.Events.GetEventByID(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if event.Date == nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "event has no date")
		return
	}

	start := *event.Date
	end := start.Add(time.Hour)
	if event.EndDate != nil {
		end = *event.EndDate
	}
	link, err := c.Sync.CreateEvent(r.Context(), &domain.CalendarEvent{
		Summary:     event.Title,
		Location:    event.Location,
		Description: event.Description,
		Start:       start,
		End:         end,
	})
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CalendarLinkResponse{Link: link})
}
