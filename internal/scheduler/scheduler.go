package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"eventrsvp/internal/domain"
)

// Config holds scheduler tuning. CronSchedule triggers one tick; Lookahead is
// the reminder window length, independent of the tick cadence.
type Config struct {
	CronSchedule string
	Lookahead    time.Duration
	Dedup        bool
}

// TickReport summarizes one tick for logging and tests.
type TickReport struct {
	EventsMatched int
	RemindersSent int
	EventsSkipped int
	SendFailures  int
	Suppressed    int
}

// Scheduler periodically selects events starting inside the lookahead window
// and sends one reminder per confirmed recipient. Each tick is stateless with
// respect to prior ticks; only the optional dedup tracker carries state, and
// its entries expire once the event has started.
type Scheduler struct {
	config  Config
	events  domain.EventRepository
	rsvps   domain.RSVPRepository
	emails  domain.EmailService
	logger  *slog.Logger
	clock   func() time.Time
	dedup   *notifiedSet
	cron    *cron.Cron
	running atomic.Bool
}

// New creates a Scheduler. The clock defaults to time.Now and can be replaced
// in tests via WithClock.
func New(config Config, events domain.EventRepository, rsvps domain.RSVPRepository, emails domain.EmailService, logger *slog.Logger) *Scheduler {
	s := &Scheduler{
		config: config,
		events: events,
		rsvps:  rsvps,
		emails: emails,
		logger: logger,
		clock:  time.Now,
	}
	if config.Dedup {
		s.dedup = newNotifiedSet()
	}
	return s
}

// WithClock replaces the scheduler's clock. Returns s for chaining.
func (s *Scheduler) WithClock(clock func() time.Time) *Scheduler {
	s.clock = clock
	return s
}

// Start registers the tick on the cron schedule and starts the trigger.
// Ticks that fire while a previous tick is still running are skipped.
func (s *Scheduler) Start(ctx context.Context) error {
	c := cron.New()
	_, err := c.AddFunc(s.config.CronSchedule, func() {
		if !s.running.CompareAndSwap(false, true) {
			s.logger.Warn("previous tick still running, skipping")
			return
		}
		defer s.running.Store(false)
		if _, err := s.RunTick(ctx); err != nil {
			s.logger.Error("tick failed", "err", err)
		}
	})
	if err != nil {
		return err
	}
	s.cron = c
	c.Start()
	s.logger.Info("reminder scheduler started", "schedule", s.config.CronSchedule, "lookahead", s.config.Lookahead, "dedup", s.config.Dedup)
	return nil
}

// Stop halts the cron trigger and waits for a running tick to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	s.logger.Info("reminder scheduler stopped")
}

// RunTick executes one tick: window query, per-event recipient fan-out, one
// awaited send per recipient. A window query failure aborts the tick; failures
// below that level are logged and isolated to their event or recipient.
func (s *Scheduler) RunTick(ctx context.Context) (TickReport, error) {
	var report TickReport
	now := s.clock()
	windowEnd := now.Add(s.config.Lookahead)

	s.logger.Info("tick started", "from", now, "to", windowEnd)

	if s.dedup != nil {
		s.dedup.expire(now)
	}

	events, err := s.events.ListStartingBetween(ctx, now, windowEnd)
	if err != nil {
		// The whole tick depends on the window query; nothing below can run.
		s.logger.Error("window query failed", "err", err)
		return report, err
	}
	if len(events) == 0 {
		s.logger.Warn("no events found in lookahead window")
		return report, nil
	}
	report.EventsMatched = len(events)

	for _, event := range events {
		s.logger.Info("event in window", "event_id", event.ID, "title", event.Title)
		recipients, err := s.rsvps.ListConfirmedRecipients(ctx, event.ID)
		if err != nil {
			// Skip this event only; siblings still get their reminders.
			s.logger.Error("recipient query failed", "event_id", event.ID, "err", err)
			report.EventsSkipped++
			continue
		}
		if len(recipients) == 0 {
			s.logger.Warn("no confirmed rsvps for event", "event_id", event.ID)
			continue
		}
		for _, rec := range recipients {
			if s.dedup != nil && !s.dedup.mark(event, rec.Email) {
				report.Suppressed++
				continue
			}
			data := &domain.EventReminderEmailData{
				Email:       rec.Email,
				Title:       event.Title,
				Description: event.Description,
			}
			if event.Date != nil {
				data.StartTime = *event.Date
			}
			if err := s.emails.SendEventReminder(ctx, data); err != nil {
				s.logger.Error("reminder send failed", "event_id", event.ID, "to", rec.Email, "err", err)
				report.SendFailures++
				if s.dedup != nil {
					// Leave the pair eligible for the next tick.
					s.dedup.unmark(event, rec.Email)
				}
				continue
			}
			report.RemindersSent++
		}
	}

	s.logger.Info("tick completed",
		"events", report.EventsMatched,
		"sent", report.RemindersSent,
		"skipped_events", report.EventsSkipped,
		"send_failures", report.SendFailures,
		"suppressed", report.Suppressed,
	)
	return report, nil
}

// IsDatabaseFailure reports whether err carries the coarse storage error kind.
func IsDatabaseFailure(err error) bool {
	var dbErr *domain.DatabaseError
	return errors.As(err, &dbErr)
}
