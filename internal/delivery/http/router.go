package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventrsvp/internal/delivery/http/controllers"
	"eventrsvp/internal/delivery/http/middleware"
	"eventrsvp/internal/domain"
)

// RouterDeps holds everything NewRouter needs to register routes.
type RouterDeps struct {
	Logger        *slog.Logger
	TokenVerifier domain.TokenVerifier
	Auth          *controllers.AuthController
	Users         *controllers.UserController
	Events        *controllers.EventController
	RSVPs         *controllers.RSVPController
	Calendar      *controllers.CalendarController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(deps RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(deps.TokenVerifier, deps.Logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", deps.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", deps.Auth.Login)

	// Users
	mux.HandleFunc("GET /users", requireAuth(deps.Users.ListUsers))
	mux.HandleFunc("GET /users/me", requireAuth(deps.Users.GetMe))
	mux.HandleFunc("PATCH /users/me", requireAuth(deps.Users.UpdateMe))
	mux.HandleFunc("DELETE /users/me", requireAuth(deps.Users.DeleteMe))

	// Events
	mux.HandleFunc("POST /events", requireAuth(deps.Events.CreateEvent))
	mux.HandleFunc("GET /events", deps.Events.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", deps.Events.GetEvent)
	mux.HandleFunc("PATCH /events/{eventID}", requireAuth(deps.Events.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", requireAuth(deps.Events.DeleteEvent))

	// RSVPs
	mux.HandleFunc("POST /events/{eventID}/rsvps", requireAuth(deps.RSVPs.CreateRSVP))
	mux.HandleFunc("GET /events/{eventID}/rsvps/me", requireAuth(deps.RSVPs.GetMyStatus))
	mux.HandleFunc("GET /events/{eventID}/attendees", deps.RSVPs.ListAttendees)
	mux.HandleFunc("GET /rsvps", requireAuth(deps.RSVPs.ListRSVPs))
	mux.HandleFunc("GET /rsvps/{rsvpID}", requireAuth(deps.RSVPs.GetRSVP))

	// Calendar
	if deps.Calendar != nil {
		mux.HandleFunc("GET /calendar/auth", requireAuth(deps.Calendar.GetAuthURL))
		mux.HandleFunc("GET /oauth2callback", deps.Calendar.OAuthCallback)
		mux.HandleFunc("POST /events/{eventID}/calendar", requireAuth(deps.Calendar.ExportEvent))
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
