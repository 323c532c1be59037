package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eventrsvp/internal/domain"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[int64]*domain.User
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[int64]*domain.User),
		nextID:  1,
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	u.ID = f.nextID
	f.nextID++
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(f.byID))
	for _, u := range f.byID {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *domain.User) error {
	if _, ok := f.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for email, other := range f.byEmail {
		if email == u.Email && other.ID != u.ID {
			return domain.ErrDuplicateEmail
		}
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(f.byID, id)
	delete(f.byEmail, u.Email)
	return nil
}

type fakeHasher struct {
	compareErr error
}

func (f *fakeHasher) GenerateSalt() (string, error) { return "salt", nil }
func (f *fakeHasher) Hash(salt, password string) (string, error) {
	return "hash:" + salt + ":" + password, nil
}
func (f *fakeHasher) Compare(hash, salt, password string) error {
	if f.compareErr != nil {
		return f.compareErr
	}
	if hash != "hash:"+salt+":"+password {
		return fmt.Errorf("mismatch")
	}
	return nil
}

type fakeIssuer struct{}

func (f *fakeIssuer) Issue(userID int64, email string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("token-%d", userID), nil
}

func TestAuthService_SignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with hashed password", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewAuthService(repo, &fakeHasher{}, &fakeIssuer{}, time.Hour)

		user, err := svc.SignUp(ctx, "alice", "Alice@Example.com", "password123")
		require.NoError(t, err)
		require.Equal(t, "alice", user.Username)
		require.Equal(t, "alice@example.com", user.Email)
		require.Equal(t, "hash:salt:password123", user.PasswordHash)
		require.NotZero(t, user.ID)
	})

	t.Run("rejects short password", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo(), &fakeHasher{}, &fakeIssuer{}, time.Hour)
		_, err := svc.SignUp(ctx, "alice", "alice@example.com", "short")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo(), &fakeHasher{}, &fakeIssuer{}, time.Hour)
		_, err := svc.SignUp(ctx, "alice", "not-an-email", "password123")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewAuthService(repo, &fakeHasher{}, &fakeIssuer{}, time.Hour)
		_, err := svc.SignUp(ctx, "alice", "alice@example.com", "password123")
		require.NoError(t, err)
		_, err = svc.SignUp(ctx, "alice2", "alice@example.com", "password123")
		require.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("returns token and user", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewAuthService(repo, &fakeHasher{}, &fakeIssuer{}, time.Hour)
		created, err := svc.SignUp(ctx, "alice", "alice@example.com", "password123")
		require.NoError(t, err)

		token, user, err := svc.Login(ctx, "alice@example.com", "password123")
		require.NoError(t, err)
		require.Equal(t, fmt.Sprintf("token-%d", created.ID), token)
		require.Equal(t, created.ID, user.ID)
	})

	t.Run("wrong password yields generic error", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewAuthService(repo, &fakeHasher{}, &fakeIssuer{}, time.Hour)
		_, err := svc.SignUp(ctx, "alice", "alice@example.com", "password123")
		require.NoError(t, err)

		_, _, err = svc.Login(ctx, "alice@example.com", "wrongpass")
		require.EqualError(t, err, "invalid credentials")
	})

	t.Run("unknown email yields same generic error", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo(), &fakeHasher{}, &fakeIssuer{}, time.Hour)
		_, _, err := svc.Login(ctx, "ghost@example.com", "password123")
		require.EqualError(t, err, "invalid credentials")
		require.False(t, errors.Is(err, domain.ErrUserNotFound))
	})
}
