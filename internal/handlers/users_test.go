package handlers_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/jdelarosa/entradas/internal/handlers"
	"github.com/jdelarosa/entradas/internal/models"
	"github.com/jdelarosa/entradas/internal/services"
	"github.com/jdelarosa/entradas/internal/validation"
)

func usersRouter(handler *handlers.UserHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/users/me", handler.GetMe)
	r.Put("/users/me", handler.UpdateMe)
	r.Get("/users", handler.ListUsers)
	r.Patch("/users/{id}/status", handler.ToggleUserStatus)
	r.Patch("/users/{id}/role", handler.ChangeUserRole)
	return r
}

func TestGetMe_Success(t *testing.T) {
	mockUsers := &handlers.MockUserService{
		GetFunc: func(ctx context.Context, id string) (*models.User, error) {
			assert.Equal(t, "user123", id)
			return &models.User{ID: id, Email: "buyer@example.com", FullName: "Test Buyer", Role: "user", Status: "active"}, nil
		},
	}

	router := usersRouter(handlers.NewUserHandler(mockUsers))
	req := handlers.NewTestRequest(t, "GET", "/users/me", nil)
	req = handlers.WithAuthContext(req, "user123", "buyer@example.com", "user")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp handlers.UserProfileResponse
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, "user123", resp.ID)
}

func TestGetMe_Unauthenticated(t *testing.T) {
	router := usersRouter(handlers.NewUserHandler(&handlers.MockUserService{}))
	req := handlers.NewTestRequest(t, "GET", "/users/me", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	handlers.AssertErrorResponse(t, w, 401, "unauthorized")
}

func TestUpdateMe_Success(t *testing.T) {
	mockUsers := &handlers.MockUserService{
		UpdateProfileFunc: func(ctx context.Context, id string, form validation.ProfileForm) (*models.User, error) {
			assert.Equal(t, "Ana Perez", form.FullName)
			return &models.User{ID: id, Email: "buyer@example.com", FullName: form.FullName, Mobile: form.Mobile, Role: "user", Status: "active"}, nil
		},
	}

	router := usersRouter(handlers.NewUserHandler(mockUsers))
	req := handlers.NewTestRequest(t, "PUT", "/users/me", handlers.UpdateProfileRequest{
		FullName: "Ana Perez",
		Mobile:   "612345678",
	})
	req = handlers.WithAuthContext(req, "user123", "buyer@example.com", "user")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp handlers.UserProfileResponse
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, "Ana Perez", resp.FullName)
}

func TestUpdateMe_FieldErrors(t *testing.T) {
	mockUsers := &handlers.MockUserService{
		UpdateProfileFunc: func(ctx context.Context, id string, form validation.ProfileForm) (*models.User, error) {
			return nil, &services.ProfileErrors{Fields: map[string]string{
				"mobile": "Invalid mobile number",
			}}
		},
	}

	router := usersRouter(handlers.NewUserHandler(mockUsers))
	req := handlers.NewTestRequest(t, "PUT", "/users/me", handlers.UpdateProfileRequest{
		FullName: "Ana Perez",
		Mobile:   "abc",
	})
	req = handlers.WithAuthContext(req, "user123", "buyer@example.com", "user")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	fields := handlers.AssertFieldErrorResponse(t, w)
	assert.Contains(t, fields, "mobile")
}

func TestToggleUserStatus_Success(t *testing.T) {
	mockUsers := &handlers.MockUserService{
		ToggleStatusFunc: func(ctx context.Context, id, actorID string) (*models.User, error) {
			assert.Equal(t, "user456", id)
			assert.Equal(t, "admin123", actorID)
			return &models.User{ID: id, Email: "other@example.com", Role: "user", Status: "disabled"}, nil
		},
	}

	router := usersRouter(handlers.NewUserHandler(mockUsers))
	req := handlers.NewTestRequest(t, "PATCH", "/users/user456/status", nil)
	req = handlers.WithAuthContext(req, "admin123", "admin@example.com", "admin")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp handlers.UserProfileResponse
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, "disabled", resp.Status)
}

func TestToggleUserStatus_SelfTarget(t *testing.T) {
	router := usersRouter(handlers.NewUserHandler(&handlers.MockUserService{}))
	req := handlers.NewTestRequest(t, "PATCH", "/users/admin123/status", nil)
	req = handlers.WithAuthContext(req, "admin123", "admin@example.com", "admin")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	handlers.AssertErrorResponse(t, w, 400, "bad_request")
}

func TestChangeUserRole_InvalidRole(t *testing.T) {
	router := usersRouter(handlers.NewUserHandler(&handlers.MockUserService{}))
	req := handlers.NewTestRequest(t, "PATCH", "/users/user456/role", handlers.ChangeRoleRequest{
		Role: "superuser",
	})
	req = handlers.WithAuthContext(req, "admin123", "admin@example.com", "admin")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	handlers.AssertErrorResponse(t, w, 400, "bad_request")
}

func TestListUsers(t *testing.T) {
	mockUsers := &handlers.MockUserService{
		ListFunc: func(ctx context.Context, limit, offset int) ([]*models.User, error) {
			assert.Equal(t, 50, limit)
			return []*models.User{
				{ID: "user1", Email: "one@example.com", Role: "user", Status: "active"},
				{ID: "user2", Email: "two@example.com", Role: "user", Status: "active"},
			}, nil
		},
	}

	router := usersRouter(handlers.NewUserHandler(mockUsers))
	req := handlers.NewTestRequest(t, "GET", "/users", nil)
	req = handlers.WithAuthContext(req, "admin123", "admin@example.com", "admin")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp []handlers.UserProfileResponse
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.Len(t, resp, 2)
}
