package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jdelarosa/entradas/internal/auth"
	"github.com/jdelarosa/entradas/internal/models"
	"github.com/jdelarosa/entradas/internal/services"
	"github.com/jdelarosa/entradas/internal/validation"
	pkghttp "github.com/jdelarosa/entradas/pkg/http"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithAuthContext adds user claims to the request context for testing
// authenticated endpoints
func WithAuthContext(req *http.Request, userID, email, role string) *http.Request {
	claims := &auth.TokenClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		Type:   "access",
	}
	ctx := context.WithValue(req.Context(), auth.ClaimsContextKey, claims)
	return req.WithContext(ctx)
}

// AssertJSONResponse checks that response has correct status and decodes JSON body
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	if target != nil {
		err := json.Unmarshal(w.Body.Bytes(), target)
		assert.NoError(t, err, "Failed to decode response JSON")
	}
}

// AssertErrorResponse checks that response is a valid error response
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp pkghttp.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err, "Failed to decode error response")
	assert.Equal(t, expectedError, resp.Error, "Error code mismatch")
	assert.NotEmpty(t, resp.Message, "Error message should not be empty")
}

// AssertFieldErrorResponse checks a 400 field-error response and returns the
// field map for further assertions.
func AssertFieldErrorResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	assert.Equal(t, http.StatusBadRequest, w.Code, "Response status mismatch")

	var resp pkghttp.FieldErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err, "Failed to decode field error response")
	assert.Equal(t, "validation_failed", resp.Error)
	return resp.Errors
}

// MockAuthService implements AuthServiceInterface for testing
type MockAuthService struct {
	LoginFunc        func(ctx context.Context, email, password, ipAddress, userAgent string) (*services.AuthResponse, error)
	RegisterFunc     func(ctx context.Context, form validation.RegistrationForm) (*services.AuthResponse, error)
	RefreshTokenFunc func(ctx context.Context, refreshToken string) (*services.AuthResponse, error)
}

func (m *MockAuthService) Login(ctx context.Context, email, password, ipAddress, userAgent string) (*services.AuthResponse, error) {
	if m.LoginFunc == nil {
		return nil, models.ErrInvalidCredentials
	}
	return m.LoginFunc(ctx, email, password, ipAddress, userAgent)
}

func (m *MockAuthService) Register(ctx context.Context, form validation.RegistrationForm) (*services.AuthResponse, error) {
	if m.RegisterFunc == nil {
		return nil, models.ErrConflict
	}
	return m.RegisterFunc(ctx, form)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*services.AuthResponse, error) {
	if m.RefreshTokenFunc == nil {
		return nil, models.ErrUnauthorized
	}
	return m.RefreshTokenFunc(ctx, refreshToken)
}

// MockEventService implements EventServiceInterface for testing
type MockEventService struct {
	ListFunc func(ctx context.Context, filter models.EventFilter) ([]*models.Event, error)
	GetFunc  func(ctx context.Context, id int64) (*models.Event, error)
}

func (m *MockEventService) List(ctx context.Context, filter models.EventFilter) ([]*models.Event, error) {
	if m.ListFunc == nil {
		return []*models.Event{}, nil
	}
	return m.ListFunc(ctx, filter)
}

func (m *MockEventService) Get(ctx context.Context, id int64) (*models.Event, error) {
	if m.GetFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetFunc(ctx, id)
}

// MockCheckoutService implements CheckoutServiceInterface for testing
type MockCheckoutService struct {
	PurchaseFunc      func(ctx context.Context, userID string, eventID int64, form validation.PaymentForm) (*models.Order, error)
	OrdersForUserFunc func(ctx context.Context, userID string) ([]*models.Order, error)
}

func (m *MockCheckoutService) Purchase(ctx context.Context, userID string, eventID int64, form validation.PaymentForm) (*models.Order, error) {
	if m.PurchaseFunc == nil {
		return nil, models.ErrInternalServer
	}
	return m.PurchaseFunc(ctx, userID, eventID, form)
}

func (m *MockCheckoutService) OrdersForUser(ctx context.Context, userID string) ([]*models.Order, error) {
	if m.OrdersForUserFunc == nil {
		return []*models.Order{}, nil
	}
	return m.OrdersForUserFunc(ctx, userID)
}

// MockUserService implements UserServiceInterface for testing
type MockUserService struct {
	GetFunc           func(ctx context.Context, id string) (*models.User, error)
	UpdateProfileFunc func(ctx context.Context, id string, form validation.ProfileForm) (*models.User, error)
	ToggleStatusFunc  func(ctx context.Context, id, actorID string) (*models.User, error)
	ChangeRoleFunc    func(ctx context.Context, id, role, actorID string) (*models.User, error)
	ListFunc          func(ctx context.Context, limit, offset int) ([]*models.User, error)
}

func (m *MockUserService) Get(ctx context.Context, id string) (*models.User, error) {
	if m.GetFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetFunc(ctx, id)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, id string, form validation.ProfileForm) (*models.User, error) {
	if m.UpdateProfileFunc == nil {
		return nil, models.ErrInternalServer
	}
	return m.UpdateProfileFunc(ctx, id, form)
}

func (m *MockUserService) ToggleStatus(ctx context.Context, id, actorID string) (*models.User, error) {
	if m.ToggleStatusFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.ToggleStatusFunc(ctx, id, actorID)
}

func (m *MockUserService) ChangeRole(ctx context.Context, id, role, actorID string) (*models.User, error) {
	if m.ChangeRoleFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.ChangeRoleFunc(ctx, id, role, actorID)
}

func (m *MockUserService) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	if m.ListFunc == nil {
		return []*models.User{}, nil
	}
	return m.ListFunc(ctx, limit, offset)
}
