package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eventrsvp/internal/domain"
)

type fakeEventRepo struct {
	byID   map[int64]*domain.Event
	nextID int64
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[int64]*domain.Event), nextID: 1}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	e.ID = f.nextID
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (f *fakeEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	events := make([]*domain.Event, 0, len(f.byID))
	for _, e := range f.byID {
		events = append(events, e)
	}
	return events, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id int64, title, description, location *string, date *time.Time) (*domain.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if title != nil {
		e.Title = *title
	}
	if description != nil {
		e.Description = *description
	}
	if location != nil {
		e.Location = *location
	}
	if date != nil {
		e.Date = date
	}
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEventRepo) ListStartingBetween(ctx context.Context, from, to time.Time) ([]*domain.Event, error) {
	events := make([]*domain.Event, 0)
	for _, e := range f.byID {
		if e.Date == nil {
			continue
		}
		if !e.Date.Before(from) && !e.Date.After(to) {
			events = append(events, e)
		}
	}
	return events, nil
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc := NewEventService(newFakeEventRepo())
		date := time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC)
		event, err := svc.CreateEvent(ctx, "  Launch  ", "party", "HQ", &date)
		require.NoError(t, err)
		require.Equal(t, "Launch", event.Title)
		require.NotZero(t, event.ID)
		require.True(t, event.Date.Equal(date))
	})

	t.Run("title required", func(t *testing.T) {
		svc := NewEventService(newFakeEventRepo())
		_, err := svc.CreateEvent(ctx, "  ", "", "", nil)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestEventService_UpdateEvent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo()
	svc := NewEventService(repo)
	event, err := svc.CreateEvent(ctx, "Launch", "", "HQ", nil)
	require.NoError(t, err)

	t.Run("updates fields", func(t *testing.T) {
		title := "Launch v2"
		updated, err := svc.UpdateEvent(ctx, event.ID, &title, nil, nil, nil)
		require.NoError(t, err)
		require.Equal(t, "Launch v2", updated.Title)
		require.Equal(t, "HQ", updated.Location)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		empty := " "
		_, err := svc.UpdateEvent(ctx, event.ID, &empty, nil, nil, nil)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown event", func(t *testing.T) {
		title := "x"
		_, err := svc.UpdateEvent(ctx, 404, &title, nil, nil, nil)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventService_DeleteEvent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo()
	svc := NewEventService(repo)
	event, err := svc.CreateEvent(ctx, "Launch", "", "", nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEvent(ctx, event.ID))
	require.ErrorIs(t, svc.DeleteEvent(ctx, event.ID), domain.ErrNotFound)
}
