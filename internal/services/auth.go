package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"eventrsvp/internal/domain"
)

const minPasswordLen = 8

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	userRepo  domain.UserRepository
	hasher    domain.PasswordHasher
	issuer    domain.TokenIssuer
	jwtExpiry time.Duration
}

// NewAuthService creates an AuthService with the given repository, hasher, and token issuer.
func NewAuthService(userRepo domain.UserRepository, hasher domain.PasswordHasher, issuer domain.TokenIssuer, jwtExpiry time.Duration) domain.AuthService {
	return &authService{
		userRepo:  userRepo,
		hasher:    hasher,
		issuer:    issuer,
		jwtExpiry: jwtExpiry,
	}
}

func (s *authService) SignUp(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := domain.NewUser(username, email, now, now)
	user.PasswordHash = hash
	user.Salt = salt
	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == domain.ErrDuplicateEmail {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}
	token, err := s.issuer.Issue(user.ID, user.Email, s.jwtExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}
