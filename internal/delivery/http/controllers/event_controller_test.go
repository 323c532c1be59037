package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeEventService struct {
	created *domain.Event
	event   *domain.Event
	err     error
}

func (f *fakeEventService) CreateEvent(ctx context.Context, title, description, location string, date *time.Time) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = &domain.Event{ID: 1, Title: title, Description: description, Location: location, Date: date}
	return f.created, nil
}

func (f *fakeEventService) GetEventByID(ctx context.Context, id int64) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*domain.Event{f.event}, nil
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, id int64, title, description, location *string, date *time.Time) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, id int64) error {
	return f.err
}

func decodeEnvelope(t *testing.T, body io.Reader) helpers.APIResponse {
	t.Helper()
	var resp helpers.APIResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func TestEventController_CreateEvent(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeEventService{}
		c := NewEventController(testLogger, svc)

		body := `{"title":"Launch","description":"party","location":"HQ","date":"2026-04-01T18:00:00Z"}`
		r := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
		w := httptest.NewRecorder()
		c.CreateEvent(w, r)

		require.Equal(t, http.StatusCreated, w.Code)
		require.Equal(t, "Launch", svc.created.Title)
		require.NotNil(t, svc.created.Date)
		resp := decodeEnvelope(t, w.Body)
		require.Nil(t, resp.Error)
	})

	t.Run("missing title", func(t *testing.T) {
		c := NewEventController(testLogger, &fakeEventService{})

		r := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(`{"title":"  "}`))
		w := httptest.NewRecorder()
		c.CreateEvent(w, r)

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeEnvelope(t, w.Body)
		require.Equal(t, helpers.ErrCodeBadRequest, resp.Error.Code)
	})

	t.Run("bad date format", func(t *testing.T) {
		c := NewEventController(testLogger, &fakeEventService{})

		r := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(`{"title":"Launch","date":"tomorrow"}`))
		w := httptest.NewRecorder()
		c.CreateEvent(w, r)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		c := NewEventController(testLogger, &fakeEventService{})

		r := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(`{"title":"Launch","owner":"me"}`))
		w := httptest.NewRecorder()
		c.CreateEvent(w, r)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEventController_GetEvent(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &fakeEventService{event: &domain.Event{ID: 3, Title: "Meetup"}}
		c := NewEventController(testLogger, svc)

		r := httptest.NewRequest(http.MethodGet, "/events/3", nil)
		r.SetPathValue("eventID", "3")
		w := httptest.NewRecorder()
		c.GetEvent(w, r)

		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		c := NewEventController(testLogger, &fakeEventService{err: domain.ErrNotFound})

		r := httptest.NewRequest(http.MethodGet, "/events/404", nil)
		r.SetPathValue("eventID", "404")
		w := httptest.NewRecorder()
		c.GetEvent(w, r)

		require.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeEnvelope(t, w.Body)
		require.Equal(t, helpers.ErrCodeNotFound, resp.Error.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		c := NewEventController(testLogger, &fakeEventService{})

		r := httptest.NewRequest(http.MethodGet, "/events/abc", nil)
		r.SetPathValue("eventID", "abc")
		w := httptest.NewRecorder()
		c.GetEvent(w, r)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}
