package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcalendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"eventrsvp/internal/domain"
)

// GoogleConfig holds OAuth2 credentials for the Google Calendar API.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// googleSync implements domain.CalendarSync against the Google Calendar API.
// The OAuth token obtained via Authorize is held in memory; restarting the
// server requires re-authorizing.
type googleSync struct {
	oauth  *oauth2.Config
	logger *slog.Logger

	mu    sync.Mutex
	token *oauth2.Token
}

// NewGoogleSync creates a CalendarSync backed by Google Calendar.
func NewGoogleSync(config GoogleConfig, logger *slog.Logger) domain.CalendarSync {
	return &googleSync{
		oauth: &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			RedirectURL:  config.RedirectURL,
			Scopes:       []string{gcalendar.CalendarEventsScope},
			Endpoint:     google.Endpoint,
		},
		logger: logger,
	}
}

// AuthURL returns the URL a user must visit to grant calendar access.
func (g *googleSync) AuthURL() string {
	return g.oauth.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
}

// Authorize exchanges the OAuth2 authorization code for a token.
func (g *googleSync) Authorize(ctx context.Context, code string) error {
	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	g.mu.Lock()
	g.token = token
	g.mu.Unlock()
	g.logger.Info("google calendar authorized")
	return nil
}

// CreateEvent inserts the event into the user's primary calendar and returns
// the event's HTML link.
func (g *googleSync) CreateEvent(ctx context.Context, event *domain.CalendarEvent) (string, error) {
	g.mu.Lock()
	token := g.token
	g.mu.Unlock()
	if token == nil {
		return "", fmt.Errorf("calendar not authorized")
	}

	service, err := gcalendar.NewService(ctx, option.WithTokenSource(g.oauth.TokenSource(ctx, token)))
	if err != nil {
		return "", fmt.Errorf("failed to create calendar service: %w", err)
	}

	timeZone := event.TimeZone
	if timeZone == "" {
		timeZone = "UTC"
	}
	gcalEvent := &gcalendar.Event{
		Summary:     event.Summary,
		Location:    event.Location,
		Description: event.Description,
		Start: &gcalendar.EventDateTime{
			DateTime: event.Start.Format(time.RFC3339),
			TimeZone: timeZone,
		},
		End: &gcalendar.EventDateTime{
			DateTime: event.End.Format(time.RFC3339),
			TimeZone: timeZone,
		},
	}

	created, err := service.Events.Insert("primary", gcalEvent).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create calendar event: %w", err)
	}
	g.logger.Info("calendar event created", "summary", event.Summary, "link", created.HtmlLink)
	return created.HtmlLink, nil
}
