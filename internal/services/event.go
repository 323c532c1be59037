package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventrsvp/internal/domain"
)

type eventService struct {
	eventRepo domain.EventRepository
}

// NewEventService creates an EventService backed by the given repository.
func NewEventService(eventRepo domain.EventRepository) domain.EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) CreateEvent(ctx context.Context, title, description, location string, date *time.Time) (*domain.Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	now := time.Now()
	event := domain.NewEvent(title, description, location, date, now, now)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEventByID(ctx context.Context, id int64) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id int64, title, description, location *string, date *time.Time) (*domain.Event, error) {
	if title != nil && strings.TrimSpace(*title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
	}
	event, err := s.eventRepo.Update(ctx, id, title, description, location, date)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id int64) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if err == domain.ErrNotFound {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
