package domain

import (
	"context"
	"time"
)

// User represents a registered user.
// swagger:model User
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is set by the repository on create.
func NewUser(username, email string, createdAt, updatedAt time.Time) *User {
	return &User{
		Username:  username,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID int64, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID int64, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id int64) error
}

// AuthService defines signup and login.
type AuthService interface {
	SignUp(ctx context.Context, username, email, password string) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
}

// UserService defines the business logic for user management.
type UserService interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, id int64, username, email string) (*User, error)
	Delete(ctx context.Context, id int64) error
}
