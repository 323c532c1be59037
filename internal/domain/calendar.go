package domain

import (
	"context"
	"time"
)

// CalendarEvent is the payload pushed to an external calendar.
type CalendarEvent struct {
	Summary     string
	Location    string
	Description string
	Start       time.Time
	End         time.Time
	TimeZone    string
}

// CalendarSync exchanges an OAuth authorization code and creates events on the
// authorizing user's calendar.
type CalendarSync interface {
	AuthURL() string
	Authorize(ctx context.Context, code string) error
	CreateEvent(ctx context.Context, event *CalendarEvent) (htmlLink string, err error)
}
