package domain

import (
	"context"
	"time"
)

// RSVP status values. The set is closed; anything else is rejected at the edge.
const (
	RSVPStatusConfirmed = "confirmed"
	RSVPStatusDeclined  = "declined"
	RSVPStatusPending   = "pending"
)

// ValidRSVPStatus reports whether s is one of the allowed status values.
func ValidRSVPStatus(s string) bool {
	switch s {
	case RSVPStatusConfirmed, RSVPStatusDeclined, RSVPStatusPending:
		return true
	}
	return false
}

// RSVP records one user's attendance status for one event.
// At most one row exists per (user, event) pair.
// swagger:model RSVP
type RSVP struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	EventID   int64     `json:"event_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRSVP returns a new RSVP with the given fields. ID is set by the repository on create.
func NewRSVP(userID, eventID int64, status string, createdAt, updatedAt time.Time) *RSVP {
	return &RSVP{
		UserID:    userID,
		EventID:   eventID,
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// Recipient is the projection of an RSVP joined to its user, as consumed by the
// reminder fan-out. It is a transient read result, never persisted.
type Recipient struct {
	Email string `json:"email"`
}

// EventAttendee pairs a username with that user's RSVP status for an event.
type EventAttendee struct {
	Username string `json:"username"`
	Status   string `json:"status"`
}

// RSVPRepository defines the interface for RSVP storage and the recipient join.
type RSVPRepository interface {
	Create(ctx context.Context, rsvp *RSVP) error
	GetByID(ctx context.Context, id int64) (*RSVP, error)
	List(ctx context.Context) ([]*RSVP, error)
	GetStatus(ctx context.Context, userID, eventID int64) (string, error)
	ListAttendeesByEventID(ctx context.Context, eventID int64) ([]*EventAttendee, error)
	// ListConfirmedRecipients joins confirmed RSVPs for the event to users and
	// projects the recipient email addresses.
	ListConfirmedRecipients(ctx context.Context, eventID int64) ([]*Recipient, error)
}

// RSVPService defines the business logic for RSVPs.
type RSVPService interface {
	CreateRSVP(ctx context.Context, userID, eventID int64, status string) (*RSVP, error)
	GetRSVPByID(ctx context.Context, id int64) (*RSVP, error)
	ListRSVPs(ctx context.Context) ([]*RSVP, error)
	GetStatus(ctx context.Context, userID, eventID int64) (string, error)
	ListEventAttendees(ctx context.Context, eventID int64) ([]*EventAttendee, error)
}
