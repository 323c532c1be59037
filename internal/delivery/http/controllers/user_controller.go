package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/delivery/http/middleware"
	"eventrsvp/internal/domain"
)

// UpdateUserRequest is the request body for PATCH /users/me. Both fields are optional.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// Validate implements Validator.
func (u UpdateUserRequest) Validate() []string {
	var errs []string
	if u.Username != nil && strings.TrimSpace(*u.Username) == "" {
		errs = append(errs, "username cannot be empty")
	}
	if u.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*u.Email))
		if email == "" {
			errs = append(errs, "email cannot be empty")
		} else if !emailRegexp.MatchString(email) {
			errs = append(errs, "invalid email format")
		}
	}
	return errs
}

// UserController handles user profile endpoints.
type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

// NewUserController creates a UserController with the given logger and service.
func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// GetMe godoc
// @Summary Get current user
// @Description Returns the authenticated user's profile. Requires Bearer token.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the user"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [get]
func (c *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	user, err := c.Service.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// ListUsers godoc
// @Summary List users
// @Description Returns all registered users. Requires Bearer token.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the user list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users [get]
func (c *UserController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, users)
}

// UpdateMe godoc
// @Summary Update current user
// @Description Update the authenticated user's profile. Accepts optional username and/or email. Email must be unique. Requires Bearer token.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateUserRequest true "Fields to update (username and/or email, both optional)"
// @Success 200 {object} helpers.APIResponse "data contains the updated user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [patch]
func (c *UserController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req UpdateUserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	var username, email string
	if req.Username != nil {
		username = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil {
		email = strings.TrimSpace(strings.ToLower(*req.Email))
	}
	user, err := c.Service.Update(r.Context(), userID, username, email)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "email already in use")
			return
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// DeleteMe godoc
// @Summary Delete current user
// @Description Deletes the authenticated user's account and their RSVPs. Requires Bearer token.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [delete]
func (c *UserController) DeleteMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
