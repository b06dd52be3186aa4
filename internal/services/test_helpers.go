package services

import (
	"context"
	"time"

	"github.com/jdelarosa/entradas/internal/models"
)

// MockUserRepository implements UserRepository and UserAdminRepository for testing
type MockUserRepository struct {
	GetByIDFunc       func(ctx context.Context, id string) (*models.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*models.User, error)
	CreateFunc        func(ctx context.Context, user *models.User) (*models.User, error)
	UpdateProfileFunc func(ctx context.Context, id, fullName, mobile string) (*models.User, error)
	UpdateStatusFunc  func(ctx context.Context, id, status string) (*models.User, error)
	UpdateRoleFunc    func(ctx context.Context, id, role string) (*models.User, error)
	ListFunc          func(ctx context.Context, limit, offset int) ([]*models.User, error)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id, fullName, mobile string) (*models.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, id, fullName, mobile)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) UpdateStatus(ctx context.Context, id, status string) (*models.User, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id, role string) (*models.User, error) {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(ctx, id, role)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []*models.User{}, nil
}

// MockLoginAttemptRecorder implements LoginAttemptRecorder for testing
type MockLoginAttemptRecorder struct {
	RecordAttemptFunc func(ctx context.Context, attempt *models.LoginAttempt) error
	Recorded          []*models.LoginAttempt
}

func (m *MockLoginAttemptRecorder) RecordAttempt(ctx context.Context, attempt *models.LoginAttempt) error {
	if m.RecordAttemptFunc != nil {
		return m.RecordAttemptFunc(ctx, attempt)
	}
	m.Recorded = append(m.Recorded, attempt)
	return nil
}

// MockEventRepository implements EventRepository and EventLister for testing
type MockEventRepository struct {
	GetByIDFunc       func(ctx context.Context, id int64) (*models.Event, error)
	ListFunc          func(ctx context.Context, filter models.EventFilter) ([]*models.Event, error)
	ReserveTicketFunc func(ctx context.Context, id int64) error
	ReleaseTicketFunc func(ctx context.Context, id int64) error
	Released          []int64
}

func (m *MockEventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockEventRepository) List(ctx context.Context, filter models.EventFilter) ([]*models.Event, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []*models.Event{}, nil
}

func (m *MockEventRepository) ReserveTicket(ctx context.Context, id int64) error {
	if m.ReserveTicketFunc != nil {
		return m.ReserveTicketFunc(ctx, id)
	}
	return nil
}

func (m *MockEventRepository) ReleaseTicket(ctx context.Context, id int64) error {
	m.Released = append(m.Released, id)
	if m.ReleaseTicketFunc != nil {
		return m.ReleaseTicketFunc(ctx, id)
	}
	return nil
}

// MockOrderRepository implements OrderRepository for testing
type MockOrderRepository struct {
	CreateFunc     func(ctx context.Context, order *models.Order) (*models.Order, error)
	ListByUserFunc func(ctx context.Context, userID string) ([]*models.Order, error)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, order)
	}
	created := *order
	created.ID = "order_test"
	created.CreatedAt = time.Now()
	return &created, nil
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return []*models.Order{}, nil
}

// MockConfirmationSender implements ConfirmationSender for testing
type MockConfirmationSender struct {
	SendOrderConfirmationFunc func(ctx context.Context, toEmail, billingName, eventTitle string, orderID string) error
	Sent                      []string
}

func (m *MockConfirmationSender) SendOrderConfirmation(ctx context.Context, toEmail, billingName, eventTitle string, orderID string) error {
	m.Sent = append(m.Sent, orderID)
	if m.SendOrderConfirmationFunc != nil {
		return m.SendOrderConfirmationFunc(ctx, toEmail, billingName, eventTitle, orderID)
	}
	return nil
}

// NewTestUser constructs an active user for testing
func NewTestUser(id, email, fullName string) *models.User {
	now := time.Now()
	return &models.User{
		ID:        id,
		Email:     email,
		FullName:  fullName,
		Role:      "user",
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestUserWithPassword creates a user with the given password hash
func NewTestUserWithPassword(id, email, fullName, passwordHash string) *models.User {
	user := NewTestUser(id, email, fullName)
	user.PasswordHash = passwordHash
	return user
}

// NewTestEvent constructs an event with tickets available
func NewTestEvent(id int64, title string, available int) *models.Event {
	return &models.Event{
		ID:               id,
		Title:            title,
		Category:         "music",
		City:             "Madrid",
		Venue:            "Sala Apolo",
		StartsAt:         time.Now().Add(30 * 24 * time.Hour),
		PriceUSD:         45,
		AvailableTickets: available,
	}
}
