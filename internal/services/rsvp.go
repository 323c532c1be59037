package services

import (
	"context"
	"fmt"
	"time"

	"eventrsvp/internal/domain"
)

type rsvpService struct {
	rsvpRepo  domain.RSVPRepository
	userRepo  domain.UserRepository
	eventRepo domain.EventRepository
}

// NewRSVPService creates an RSVPService backed by the given repositories.
func NewRSVPService(rsvpRepo domain.RSVPRepository, userRepo domain.UserRepository, eventRepo domain.EventRepository) domain.RSVPService {
	return &rsvpService{
		rsvpRepo:  rsvpRepo,
		userRepo:  userRepo,
		eventRepo: eventRepo,
	}
}

func (s *rsvpService) CreateRSVP(ctx context.Context, userID, eventID int64, status string) (*domain.RSVP, error) {
	if !domain.ValidRSVPStatus(status) {
		return nil, fmt.Errorf("%w: status must be one of confirmed, declined, pending", domain.ErrInvalidInput)
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	now := time.Now()
	rsvp := domain.NewRSVP(userID, eventID, status, now, now)
	if err := s.rsvpRepo.Create(ctx, rsvp); err != nil {
		if err == domain.ErrDuplicateRSVP {
			return nil, domain.ErrDuplicateRSVP
		}
		return nil, fmt.Errorf("create rsvp: %w", err)
	}
	return rsvp, nil
}

func (s *rsvpService) GetRSVPByID(ctx context.Context, id int64) (*domain.RSVP, error) {
	rsvp, err := s.rsvpRepo.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get rsvp: %w", err)
	}
	return rsvp, nil
}

func (s *rsvpService) ListRSVPs(ctx context.Context) ([]*domain.RSVP, error) {
	rsvps, err := s.rsvpRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rsvps: %w", err)
	}
	return rsvps, nil
}

func (s *rsvpService) GetStatus(ctx context.Context, userID, eventID int64) (string, error) {
	status, err := s.rsvpRepo.GetStatus(ctx, userID, eventID)
	if err != nil {
		if err == domain.ErrNotFound {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get rsvp status: %w", err)
	}
	return status, nil
}

func (s *rsvpService) ListEventAttendees(ctx context.Context, eventID int64) ([]*domain.EventAttendee, error) {
	attendees, err := s.rsvpRepo.ListAttendeesByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list event attendees: %w", err)
	}
	return attendees, nil
}
