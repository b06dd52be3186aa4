package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jdelarosa/entradas/internal/auth"
	"github.com/jdelarosa/entradas/internal/lockout"
	"github.com/jdelarosa/entradas/internal/models"
	"github.com/jdelarosa/entradas/internal/validation"
	pkgauth "github.com/jdelarosa/entradas/pkg/auth"
	pkglogger "github.com/jdelarosa/entradas/pkg/logger"
)

// attemptRetention controls how long audit rows outlive the attempt.
const attemptRetention = 30 * 24 * time.Hour

// UserRepository defines the user storage operations the auth service needs
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
}

// LoginAttemptRecorder persists the login attempt audit trail
type LoginAttemptRecorder interface {
	RecordAttempt(ctx context.Context, attempt *models.LoginAttempt) error
}

// AuthService handles authentication business logic: input validation,
// lockout enforcement and credential verification, in that order.
type AuthService struct {
	repo        UserRepository
	attempts    LoginAttemptRecorder
	tracker     *lockout.Tracker
	tm          *auth.TokenManager
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

// NewAuthService creates a new AuthService
func NewAuthService(repo UserRepository, attempts LoginAttemptRecorder, tracker *lockout.Tracker, tm *auth.TokenManager, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *AuthService {
	return &AuthService{
		repo:        repo,
		attempts:    attempts,
		tracker:     tracker,
		tm:          tm,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

// UserResponse represents a user in the HTTP response
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Mobile    string `json:"mobile,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// AuthResponse represents the response from auth operations
type AuthResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         *UserResponse `json:"user"`
}

// Login authenticates a user and returns tokens. The lockout tracker is
// consulted BEFORE the credential check and updated after it; a locked
// account is refused without touching stored credentials at all.
func (s *AuthService) Login(ctx context.Context, email, password, ipAddress, userAgent string) (*AuthResponse, error) {
	out := validation.LoginInput{Email: email, Password: password}.Validate()
	if !out.Valid() {
		s.logger.Info("login failed: malformed credentials")
		return nil, models.ErrInvalidCredentials
	}
	identifier := out.Clean[validation.FieldEmail]

	if locked, seconds := s.tracker.IsLocked(identifier); locked {
		s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     "login_rejected",
			Email:         identifier,
			IPAddress:     ipAddress,
			UserAgent:     userAgent,
			FailureReason: "account_locked",
			Success:       false,
		})
		return nil, &models.AccountLockedError{RetryAfter: time.Duration(seconds) * time.Second}
	}

	user, err := s.repo.GetByEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.recordFailure(ctx, identifier, ipAddress, userAgent, "unknown_account")
			return nil, models.ErrInvalidCredentials
		}
		s.logger.Error("failed to get user by email", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if !user.IsActive() {
		s.recordFailure(ctx, identifier, ipAddress, userAgent, "account_disabled")
		return nil, models.ErrAccountDisabled
	}

	if err := pkgauth.ComparePassword(user.PasswordHash, password); err != nil {
		s.recordFailure(ctx, identifier, ipAddress, userAgent, "invalid_credentials")
		return nil, models.ErrInvalidCredentials
	}

	s.tracker.RegisterSuccessfulLogin(identifier)
	s.recordSuccess(ctx, identifier, ipAddress, userAgent, user.ID)

	return s.tokenResponse(user)
}

// recordFailure counts the failure toward lockout and writes the audit row.
// Audit persistence is best effort: a storage error must not turn a clean
// rejection into a 500.
func (s *AuthService) recordFailure(ctx context.Context, identifier, ipAddress, userAgent, reason string) {
	s.tracker.RegisterFailedAttempt(identifier)

	s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
		EventType:     "login_failed",
		Email:         identifier,
		IPAddress:     ipAddress,
		UserAgent:     userAgent,
		FailureReason: reason,
		Success:       false,
	})

	attempt := &models.LoginAttempt{
		Email:         identifier,
		IPAddress:     ipAddress,
		UserAgent:     userAgent,
		Success:       false,
		FailureReason: &reason,
		ExpiresAt:     time.Now().Add(attemptRetention),
	}
	if err := s.attempts.RecordAttempt(ctx, attempt); err != nil {
		s.logger.Error("failed to record login attempt", slog.Any("error", err))
	}
}

func (s *AuthService) recordSuccess(ctx context.Context, identifier, ipAddress, userAgent, userID string) {
	s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
		EventType: "login_success",
		UserID:    userID,
		Email:     identifier,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		Success:   true,
	})

	attempt := &models.LoginAttempt{
		Email:     identifier,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		Success:   true,
		ExpiresAt: time.Now().Add(attemptRetention),
	}
	if err := s.attempts.RecordAttempt(ctx, attempt); err != nil {
		s.logger.Error("failed to record login attempt", slog.Any("error", err))
	}
}

// RegistrationErrors carries field-level validation errors from Register.
type RegistrationErrors struct {
	Fields map[string]string
}

func (e *RegistrationErrors) Error() string {
	return "registration validation failed"
}

// Register creates a new user account. Unlike login, validation failures are
// reported per field.
func (s *AuthService) Register(ctx context.Context, form validation.RegistrationForm) (*AuthResponse, error) {
	out := form.Validate()
	if !out.Valid() {
		return nil, &RegistrationErrors{Fields: out.Errors}
	}

	email := out.Clean[validation.FieldEmail]

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		s.logger.Info("registration failed: user already exists")
		return nil, models.ErrConflict
	} else if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to check if user exists", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	hashedPassword, err := pkgauth.HashPassword(out.Clean[validation.FieldPassword])
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hashedPassword,
		FullName:     out.Clean[validation.FieldFullName],
		Mobile:       out.Clean[validation.FieldMobile],
		Role:         "user",
		Status:       "active",
	}

	createdUser, err := s.repo.Create(ctx, user)
	if err != nil {
		s.logger.Error("failed to create user", slog.Any("error", err))
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		return nil, models.ErrInternalServer
	}

	s.logger.Info("user registered", slog.String("user_id", createdUser.ID))
	s.auditLogger.LogAccountAction("user_registered", createdUser.ID, "")

	return s.tokenResponse(createdUser)
}

// RefreshToken exchanges a valid refresh token for a new token pair.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.tm.ValidateToken(refreshToken)
	if err != nil {
		s.logger.Info("refresh token validation failed", slog.Any("error", err))
		return nil, models.ErrUnauthorized
	}
	if claims.Type != "refresh" {
		s.logger.Warn("refresh attempt with non-refresh token", slog.String("user_id", claims.UserID))
		return nil, models.ErrUnauthorized
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnauthorized
		}
		s.logger.Error("failed to get user for token refresh", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	if !user.IsActive() {
		return nil, models.ErrUnauthorized
	}

	return s.tokenResponse(user)
}

func (s *AuthService) tokenResponse(user *models.User) (*AuthResponse, error) {
	accessToken, err := s.tm.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		s.logger.Error("failed to generate access token", slog.String("user_id", user.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	refreshToken, err := s.tm.GenerateRefreshToken(user.ID, user.Email, user.Role)
	if err != nil {
		s.logger.Error("failed to generate refresh token", slog.String("user_id", user.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         userModelToResponse(user),
	}, nil
}

// userModelToResponse converts a user model to its response DTO
func userModelToResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Mobile:    user.Mobile,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}
