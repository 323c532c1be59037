package services

import (
	"context"
	"fmt"
	"strings"

	"eventrsvp/internal/domain"
)

type userService struct {
	userRepo domain.UserRepository
}

// NewUserService creates a UserService backed by the given repository.
func NewUserService(userRepo domain.UserRepository) domain.UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *userService) Update(ctx context.Context, id int64, username, email string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" || email == "" {
		return nil, fmt.Errorf("%w: username and email are required", domain.ErrInvalidInput)
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	user.Username = username
	user.Email = email
	if err := s.userRepo.Update(ctx, user); err != nil {
		if err == domain.ErrUserNotFound || err == domain.ErrDuplicateEmail {
			return nil, err
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if err == domain.ErrUserNotFound {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
