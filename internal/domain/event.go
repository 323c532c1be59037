package domain

import (
	"context"
	"time"
)

// Event represents an event users can RSVP to. Date is the start time used for
// reminder-window matching; an event with no date is never selected for reminders.
// swagger:model Event
type Event struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	Location    string     `json:"location"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is set by the repository on create.
func NewEvent(title, description, location string, date *time.Time, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:       title,
		Description: description,
		Location:    location,
		Date:        date,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, id int64, title, description, location *string, date *time.Time) (*Event, error)
	Delete(ctx context.Context, id int64) error
	// ListStartingBetween returns events whose date falls in [from, to],
	// inclusive on both ends. Events with a NULL date are never returned.
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]*Event, error)
}

// EventService defines the business logic for event management.
type EventService interface {
	CreateEvent(ctx context.Context, title, description, location string, date *time.Time) (*Event, error)
	GetEventByID(ctx context.Context, id int64) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	UpdateEvent(ctx context.Context, id int64, title, description, location *string, date *time.Time) (*Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}
