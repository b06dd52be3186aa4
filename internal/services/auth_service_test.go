package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdelarosa/entradas/internal/auth"
	"github.com/jdelarosa/entradas/internal/lockout"
	"github.com/jdelarosa/entradas/internal/models"
	"github.com/jdelarosa/entradas/internal/validation"
	pkgauth "github.com/jdelarosa/entradas/pkg/auth"
	pkglogger "github.com/jdelarosa/entradas/pkg/logger"
)

const testPassword = "Password1!"

// testPasswordHash is computed once; bcrypt at cost 12 is too slow to rehash
// in every test.
var testPasswordHash = func() string {
	hash, err := pkgauth.HashPassword(testPassword)
	if err != nil {
		panic(err)
	}
	return hash
}()

func newTestAuthService(repo *MockUserRepository, attempts *MockLoginAttemptRecorder) *AuthService {
	logger := slog.Default()
	tracker := lockout.NewTracker(lockout.DefaultConfig(), logger)
	tm := auth.NewTokenManager("test-secret-at-least-32-characters!!", 15*time.Minute, 7*24*time.Hour)
	return NewAuthService(repo, attempts, tracker, tm, logger, pkglogger.NewAuditLogger(logger))
}

func TestAuthService_Login_Success(t *testing.T) {
	user := NewTestUserWithPassword("user123", "buyer@example.com", "Test Buyer", testPasswordHash)
	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			assert.Equal(t, "buyer@example.com", email)
			return user, nil
		},
	}
	attempts := &MockLoginAttemptRecorder{}
	svc := newTestAuthService(mockUserRepo, attempts)

	result, err := svc.Login(context.Background(), "buyer@example.com", testPassword, "192.168.1.1", "test-agent")

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "user123", result.User.ID)
	require.Len(t, attempts.Recorded, 1)
	assert.True(t, attempts.Recorded[0].Success)
}

func TestAuthService_Login_NormalizesEmail(t *testing.T) {
	user := NewTestUserWithPassword("user123", "buyer@example.com", "Test Buyer", testPasswordHash)
	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			assert.Equal(t, "buyer@example.com", email)
			return user, nil
		},
	}
	svc := newTestAuthService(mockUserRepo, &MockLoginAttemptRecorder{})

	result, err := svc.Login(context.Background(), "  Buyer@Example.COM  ", testPassword, "192.168.1.1", "test-agent")

	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	user := NewTestUserWithPassword("user123", "buyer@example.com", "Test Buyer", testPasswordHash)
	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}
	attempts := &MockLoginAttemptRecorder{}
	svc := newTestAuthService(mockUserRepo, attempts)

	result, err := svc.Login(context.Background(), "buyer@example.com", "WrongPassword1!", "192.168.1.1", "test-agent")

	assert.Nil(t, result)
	assert.Equal(t, models.ErrInvalidCredentials, err)
	require.Len(t, attempts.Recorded, 1)
	assert.False(t, attempts.Recorded[0].Success)
}

func TestAuthService_Login_UnknownAccount_SameError(t *testing.T) {
	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return nil, models.ErrNotFound
		},
	}
	svc := newTestAuthService(mockUserRepo, &MockLoginAttemptRecorder{})

	result, err := svc.Login(context.Background(), "nobody@example.com", testPassword, "192.168.1.1", "test-agent")

	// An unknown account and a wrong password produce the identical error.
	assert.Nil(t, result)
	assert.Equal(t, models.ErrInvalidCredentials, err)
}

func TestAuthService_Login_MalformedInput_SameError(t *testing.T) {
	getByEmailCalled := false
	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			getByEmailCalled = true
			return nil, models.ErrNotFound
		},
	}
	svc := newTestAuthService(mockUserRepo, &MockLoginAttemptRecorder{})

	result, err := svc.Login(context.Background(), "not-an-email", testPassword, "192.168.1.1", "test-agent")

	assert.Nil(t, result)
	assert.Equal(t, models.ErrInvalidCredentials, err)
	assert.False(t, getByEmailCalled)
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	user := NewTestUserWithPassword("user123", "buyer@example.com", "Test Buyer", testPasswordHash)
	user.Status = "disabled"
	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}
	svc := newTestAuthService(mockUserRepo, &MockLoginAttemptRecorder{})

	result, err := svc.Login(context.Background(), "buyer@example.com", testPassword, "192.168.1.1", "test-agent")

	assert.Nil(t, result)
	assert.Equal(t, models.ErrAccountDisabled, err)
}

func TestAuthService_Login_LocksAfterThreeFailures(t *testing.T) {
	user := NewTestUserWithPassword("user123", "buyer@example.com", "Test Buyer", testPasswordHash)
	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}
	svc := newTestAuthService(mockUserRepo, &MockLoginAttemptRecorder{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Login(ctx, "buyer@example.com", "WrongPassword1!", "192.168.1.1", "test-agent")
		assert.Equal(t, models.ErrInvalidCredentials, err)
	}

	// The fourth attempt is refused before credentials are checked, even
	// with the correct password.
	result, err := svc.Login(ctx, "buyer@example.com", testPassword, "192.168.1.1", "test-agent")

	assert.Nil(t, result)
	var lockedErr *models.AccountLockedError
	require.ErrorAs(t, err, &lockedErr)
	assert.True(t, errors.Is(err, models.ErrAccountLocked))
	assert.Greater(t, lockedErr.RetryAfterSeconds(), 0)
	assert.LessOrEqual(t, lockedErr.RetryAfterSeconds(), 300)
}

func TestAuthService_Login_LockedSkipsCredentialCheck(t *testing.T) {
	getByEmailCalls := 0
	user := NewTestUserWithPassword("user123", "buyer@example.com", "Test Buyer", testPasswordHash)
	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			getByEmailCalls++
			return user, nil
		},
	}
	svc := newTestAuthService(mockUserRepo, &MockLoginAttemptRecorder{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		svc.Login(ctx, "buyer@example.com", "WrongPassword1!", "192.168.1.1", "test-agent")
	}
	assert.Equal(t, 3, getByEmailCalls)

	svc.Login(ctx, "buyer@example.com", testPassword, "192.168.1.1", "test-agent")
	assert.Equal(t, 3, getByEmailCalls)
}

func TestAuthService_Login_SuccessResetsCounter(t *testing.T) {
	user := NewTestUserWithPassword("user123", "buyer@example.com", "Test Buyer", testPasswordHash)
	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}
	svc := newTestAuthService(mockUserRepo, &MockLoginAttemptRecorder{})
	ctx := context.Background()

	svc.Login(ctx, "buyer@example.com", "WrongPassword1!", "192.168.1.1", "test-agent")
	svc.Login(ctx, "buyer@example.com", "WrongPassword1!", "192.168.1.1", "test-agent")

	_, err := svc.Login(ctx, "buyer@example.com", testPassword, "192.168.1.1", "test-agent")
	require.NoError(t, err)

	// The counter restarted, so two more failures do not lock the account.
	svc.Login(ctx, "buyer@example.com", "WrongPassword1!", "192.168.1.1", "test-agent")
	_, err = svc.Login(ctx, "buyer@example.com", "WrongPassword1!", "192.168.1.1", "test-agent")
	assert.Equal(t, models.ErrInvalidCredentials, err)
}

func TestAuthService_Login_AuditFailureDoesNotBlockRejection(t *testing.T) {
	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return nil, models.ErrNotFound
		},
	}
	attempts := &MockLoginAttemptRecorder{
		RecordAttemptFunc: func(ctx context.Context, attempt *models.LoginAttempt) error {
			return models.ErrInternalServer
		},
	}
	svc := newTestAuthService(mockUserRepo, attempts)

	_, err := svc.Login(context.Background(), "nobody@example.com", testPassword, "192.168.1.1", "test-agent")

	assert.Equal(t, models.ErrInvalidCredentials, err)
}

func validRegistrationForm() validation.RegistrationForm {
	return validation.RegistrationForm{
		Email:           "new.buyer@example.com",
		Password:        testPassword,
		PasswordConfirm: testPassword,
		FullName:        "New Buyer",
		Mobile:          "612345678",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return nil, models.ErrNotFound
		},
		CreateFunc: func(ctx context.Context, user *models.User) (*models.User, error) {
			assert.Equal(t, "new.buyer@example.com", user.Email)
			assert.Equal(t, "user", user.Role)
			assert.Equal(t, "active", user.Status)
			assert.NotEqual(t, testPassword, user.PasswordHash)
			created := *user
			created.ID = "user_new"
			created.CreatedAt = time.Now()
			created.UpdatedAt = created.CreatedAt
			return &created, nil
		},
	}
	svc := newTestAuthService(mockUserRepo, &MockLoginAttemptRecorder{})

	result, err := svc.Register(context.Background(), validRegistrationForm())

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "user_new", result.User.ID)
}

func TestAuthService_Register_FieldErrors(t *testing.T) {
	svc := newTestAuthService(&MockUserRepository{}, &MockLoginAttemptRecorder{})

	form := validRegistrationForm()
	form.Password = "short"
	form.Mobile = "abc"

	result, err := svc.Register(context.Background(), form)

	assert.Nil(t, result)
	var regErr *RegistrationErrors
	require.ErrorAs(t, err, &regErr)
	assert.Contains(t, regErr.Fields, validation.FieldPassword)
	assert.Contains(t, regErr.Fields, validation.FieldMobile)
	assert.NotContains(t, regErr.Fields, validation.FieldEmail)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	existing := NewTestUser("user123", "new.buyer@example.com", "Existing Buyer")
	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return existing, nil
		},
	}
	svc := newTestAuthService(mockUserRepo, &MockLoginAttemptRecorder{})

	result, err := svc.Register(context.Background(), validRegistrationForm())

	assert.Nil(t, result)
	assert.Equal(t, models.ErrConflict, err)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	user := NewTestUser("user123", "buyer@example.com", "Test Buyer")
	mockUserRepo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			assert.Equal(t, "user123", id)
			return user, nil
		},
	}
	svc := newTestAuthService(mockUserRepo, &MockLoginAttemptRecorder{})

	refreshToken, err := svc.tm.GenerateRefreshToken("user123", "buyer@example.com", "user")
	require.NoError(t, err)

	result, err := svc.RefreshToken(context.Background(), refreshToken)

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	svc := newTestAuthService(&MockUserRepository{}, &MockLoginAttemptRecorder{})

	accessToken, err := svc.tm.GenerateAccessToken("user123", "buyer@example.com", "user")
	require.NoError(t, err)

	result, err := svc.RefreshToken(context.Background(), accessToken)

	assert.Nil(t, result)
	assert.Equal(t, models.ErrUnauthorized, err)
}

func TestAuthService_RefreshToken_Garbage(t *testing.T) {
	svc := newTestAuthService(&MockUserRepository{}, &MockLoginAttemptRecorder{})

	result, err := svc.RefreshToken(context.Background(), "not.a.token")

	assert.Nil(t, result)
	assert.Equal(t, models.ErrUnauthorized, err)
}
