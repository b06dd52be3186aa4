package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jdelarosa/entradas/internal/models"
	"github.com/jdelarosa/entradas/internal/validation"
	pkglogger "github.com/jdelarosa/entradas/pkg/logger"
)

// UserAdminRepository defines the storage operations for profile and admin flows
type UserAdminRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id, fullName, mobile string) (*models.User, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.User, error)
	UpdateRole(ctx context.Context, id, role string) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
}

// ProfileErrors carries field-level validation errors from UpdateProfile.
type ProfileErrors struct {
	Fields map[string]string
}

func (e *ProfileErrors) Error() string {
	return "profile validation failed"
}

// UserService handles profile and admin account management.
type UserService struct {
	repo        UserAdminRepository
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

// NewUserService creates a new UserService
func NewUserService(repo UserAdminRepository, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *UserService {
	return &UserService{repo: repo, logger: logger, auditLogger: auditLogger}
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return user, nil
}

// UpdateProfile validates and stores the user-editable profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, id string, form validation.ProfileForm) (*models.User, error) {
	out := form.Validate()
	if !out.Valid() {
		return nil, &ProfileErrors{Fields: out.Errors}
	}

	user, err := s.repo.UpdateProfile(ctx, id,
		out.Clean[validation.FieldFullName],
		out.Clean[validation.FieldMobile])
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to update profile", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.auditLogger.LogAccountAction("profile_updated", id, id)
	return user, nil
}

// ToggleStatus flips an account between active and disabled. Admin only;
// actorID is the admin performing the change.
func (s *UserService) ToggleStatus(ctx context.Context, id, actorID string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	status := "disabled"
	if user.Status == "disabled" {
		status = "active"
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		s.logger.Error("failed to update status", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.auditLogger.LogAccountAction("status_"+status, id, actorID)
	return updated, nil
}

// ChangeRole assigns a role to an account. Admin only.
func (s *UserService) ChangeRole(ctx context.Context, id, role, actorID string) (*models.User, error) {
	if role != "user" && role != "admin" {
		return nil, models.ErrBadRequest
	}

	updated, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to update role", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.auditLogger.LogAccountAction("role_changed_to_"+role, id, actorID)
	return updated, nil
}

// List returns users for the admin screen.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	users, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("failed to list users", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return users, nil
}
