package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jdelarosa/entradas/internal/auth"
	"github.com/jdelarosa/entradas/internal/models"
	"github.com/jdelarosa/entradas/internal/services"
	"github.com/jdelarosa/entradas/internal/validation"
	pkghttp "github.com/jdelarosa/entradas/pkg/http"
)

// UserServiceInterface defines the interface for profile and admin flows
type UserServiceInterface interface {
	Get(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, form validation.ProfileForm) (*models.User, error)
	ToggleStatus(ctx context.Context, id, actorID string) (*models.User, error)
	ChangeRole(ctx context.Context, id, role, actorID string) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
}

// UserHandler handles profile and admin user management requests
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// UpdateProfileRequest represents the request body for a profile edit
type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Mobile   string `json:"mobile" validate:"required"`
}

// ChangeRoleRequest represents the request body for a role change
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// UserProfileResponse represents a user in the HTTP response
type UserProfileResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Mobile    string `json:"mobile,omitempty"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// GetMe handles GET /users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		pkghttp.WriteUnauthorized(w, "authentication required")
		return
	}

	user, err := h.service.Get(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "User not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, userProfileToResponse(user))
}

// UpdateMe handles PUT /users/me
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		pkghttp.WriteUnauthorized(w, "authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), claims.UserID, validation.ProfileForm{
		FullName: req.FullName,
		Mobile:   req.Mobile,
	})
	if err != nil {
		var profErr *services.ProfileErrors
		switch {
		case errors.As(err, &profErr):
			pkghttp.WriteFieldErrors(w, profErr.Fields)
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "User not found")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, userProfileToResponse(user))
}

// ListUsers handles GET /users (admin only)
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 50)
	offset := parseQueryInt(r, "offset", 0)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	users, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	resp := make([]*UserProfileResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, userProfileToResponse(user))
	}

	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

// ToggleUserStatus handles PATCH /users/{id}/status (admin only)
func (h *UserHandler) ToggleUserStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		pkghttp.WriteUnauthorized(w, "authentication required")
		return
	}

	userID := chi.URLParam(r, "id")
	if userID == claims.UserID {
		pkghttp.WriteBadRequest(w, "Cannot change the status of your own account")
		return
	}

	user, err := h.service.ToggleStatus(r.Context(), userID, claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "User not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, userProfileToResponse(user))
}

// ChangeUserRole handles PATCH /users/{id}/role (admin only)
func (h *UserHandler) ChangeUserRole(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		pkghttp.WriteUnauthorized(w, "authentication required")
		return
	}

	var req ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	userID := chi.URLParam(r, "id")
	if userID == claims.UserID {
		pkghttp.WriteBadRequest(w, "Cannot change the role of your own account")
		return
	}

	user, err := h.service.ChangeRole(r.Context(), userID, req.Role, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "User not found")
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteBadRequest(w, "Invalid role")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, userProfileToResponse(user))
}

func userProfileToResponse(user *models.User) *UserProfileResponse {
	return &UserProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Mobile:    user.Mobile,
		Role:      user.Role,
		Status:    user.Status,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func parseQueryInt(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}
	return val
}
