package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/domain"
)

var errInvalidCredentials = errors.New("invalid credentials")

type fakeAuthService struct {
	user *domain.User
	err  error
}

func (f *fakeAuthService) SignUp(ctx context.Context, username, email, password string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.User{ID: 1, Username: username, Email: email}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	return "token-1", f.user, nil
}

func TestAuthController_SignUp(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		c := NewAuthController(testLogger, &fakeAuthService{})

		body := `{"username":"alice","email":"Alice@Example.com","password":"password123"}`
		r := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
		w := httptest.NewRecorder()
		c.SignUp(w, r)

		require.Equal(t, http.StatusCreated, w.Code)
		require.Contains(t, w.Body.String(), "alice@example.com")
	})

	t.Run("short password", func(t *testing.T) {
		c := NewAuthController(testLogger, &fakeAuthService{})

		body := `{"username":"alice","email":"alice@example.com","password":"short"}`
		r := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
		w := httptest.NewRecorder()
		c.SignUp(w, r)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		c := NewAuthController(testLogger, &fakeAuthService{err: domain.ErrDuplicateEmail})

		body := `{"username":"alice","email":"alice@example.com","password":"password123"}`
		r := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
		w := httptest.NewRecorder()
		c.SignUp(w, r)

		require.Equal(t, http.StatusConflict, w.Code)
		resp := decodeEnvelope(t, w.Body)
		require.Equal(t, helpers.ErrCodeConflict, resp.Error.Code)
	})
}

func TestAuthController_Login(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		c := NewAuthController(testLogger, &fakeAuthService{user: &domain.User{ID: 1, Username: "alice"}})

		body := `{"email":"alice@example.com","password":"password123"}`
		r := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		w := httptest.NewRecorder()
		c.Login(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "token-1")
		require.Contains(t, w.Body.String(), "Bearer")
	})

	t.Run("bad credentials", func(t *testing.T) {
		c := NewAuthController(testLogger, &fakeAuthService{err: errInvalidCredentials})

		body := `{"email":"alice@example.com","password":"wrong"}`
		r := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		w := httptest.NewRecorder()
		c.Login(w, r)

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		c := NewAuthController(testLogger, &fakeAuthService{})

		r := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		c.Login(w, r)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}
