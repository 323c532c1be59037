package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventrsvp/config"
	_ "eventrsvp/docs"
	"eventrsvp/internal/adapters/auth"
	"eventrsvp/internal/adapters/calendar"
	"eventrsvp/internal/adapters/email"
	delivery "eventrsvp/internal/delivery/http"
	"eventrsvp/internal/delivery/http/controllers"
	"eventrsvp/internal/delivery/http/middleware"
	"eventrsvp/internal/repository/postgres"
	"eventrsvp/internal/scheduler"
	"eventrsvp/internal/services"

	"golang.org/x/crypto/bcrypt"
)

// @title Event RSVP API
// @version 1.0
// @description REST backend for creating events, collecting RSVPs, and sending reminder emails to confirmed attendees.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := postgres.Open(cfg.DBUrl)
	if err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, cfg.MigrationsPath, logger); err != nil {
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	rsvpRepo := postgres.NewRSVPRepository(db)

	// Adapters
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	jwtCodec := auth.NewJWTCodec(cfg.JWTSecret)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mailer.Provider,
		FromAddress: cfg.Mailer.FromAddress,
		FromName:    cfg.Mailer.FromName,
		SES: email.SESConfig{
			Region:          cfg.Mailer.SESRegion,
			AccessKeyID:     cfg.Mailer.SESAccessKeyID,
			SecretAccessKey: cfg.Mailer.SESSecretAccessKey,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	renderer := email.NewTemplateRenderer()

	// Services
	authService := services.NewAuthService(userRepo, hasher, jwtCodec, cfg.JWTExpiry)
	userService := services.NewUserService(userRepo)
	eventService := services.NewEventService(eventRepo)
	rsvpService := services.NewRSVPService(rsvpRepo, userRepo, eventRepo)
	emailService := services.NewEmailService(mailer, renderer, logger)

	// Reminder scheduler
	reminders := scheduler.New(scheduler.Config{
		CronSchedule: cfg.Reminder.CronSchedule,
		Lookahead:    cfg.Reminder.Lookahead,
		Dedup:        cfg.Reminder.Dedup,
	}, eventRepo, rsvpRepo, emailService, logger)

	schedulerCtx, cancelScheduler := context.WithCancel(context.Background())
	defer cancelScheduler()
	if err := reminders.Start(schedulerCtx); err != nil {
		logger.Error("failed to start reminder scheduler", "err", err)
		os.Exit(1)
	}

	// Controllers
	deps := delivery.RouterDeps{
		Logger:        logger,
		TokenVerifier: jwtCodec,
		Auth:          controllers.NewAuthController(logger, authService),
		Users:         controllers.NewUserController(logger, userService),
		Events:        controllers.NewEventController(logger, eventService),
		RSVPs:         controllers.NewRSVPController(logger, rsvpService),
	}
	if cfg.Google.ClientID != "" {
		calendarSync := calendar.NewGoogleSync(calendar.GoogleConfig{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
		}, logger)
		deps.Calendar = controllers.NewCalendarController(logger, calendarSync, eventService)
	}

	mux := delivery.NewRouter(deps)
	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.AllowedOrigins, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "err", err)
	}
	reminders.Stop()
	cancelScheduler()
	logger.Info("server stopped")
}
