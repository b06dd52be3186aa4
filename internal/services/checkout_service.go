package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jdelarosa/entradas/internal/models"
	"github.com/jdelarosa/entradas/internal/validation"
	pkglogger "github.com/jdelarosa/entradas/pkg/logger"
)

// EventRepository defines the event storage operations checkout needs
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	ReserveTicket(ctx context.Context, id int64) error
	ReleaseTicket(ctx context.Context, id int64) error
}

// OrderRepository defines order storage operations
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Order, error)
}

// ConfirmationSender sends order confirmation emails
type ConfirmationSender interface {
	SendOrderConfirmation(ctx context.Context, toEmail, billingName, eventTitle string, orderID string) error
}

// PaymentErrors carries field-level validation errors from Purchase.
type PaymentErrors struct {
	Fields map[string]string
}

func (e *PaymentErrors) Error() string {
	return "payment validation failed"
}

// CheckoutService validates payment forms and creates orders. Card numbers
// and CVVs exist only within the validation pass; orders keep the billing
// name and email and nothing else from the form.
type CheckoutService struct {
	events      EventRepository
	orders      OrderRepository
	mailer      ConfirmationSender
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
	now         func() time.Time
}

// NewCheckoutService creates a new CheckoutService. mailer may be nil when
// email sending is disabled.
func NewCheckoutService(events EventRepository, orders OrderRepository, mailer ConfirmationSender, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *CheckoutService {
	return &CheckoutService{
		events:      events,
		orders:      orders,
		mailer:      mailer,
		logger:      logger,
		auditLogger: auditLogger,
		now:         time.Now,
	}
}

// Purchase validates the payment form and, when every field passes, reserves
// a ticket and records a paid order.
func (s *CheckoutService) Purchase(ctx context.Context, userID string, eventID int64, form validation.PaymentForm) (*models.Order, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to load event", slog.Int64("event_id", eventID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	out := form.Validate(s.now().UTC())
	if !out.Valid() {
		return nil, &PaymentErrors{Fields: out.Errors}
	}

	if err := s.events.ReserveTicket(ctx, eventID); err != nil {
		if errors.Is(err, models.ErrEventSoldOut) {
			return nil, models.ErrEventSoldOut
		}
		s.logger.Error("failed to reserve ticket", slog.Int64("event_id", eventID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	order := &models.Order{
		UserID:       userID,
		EventID:      eventID,
		Status:       models.OrderStatusPaid,
		BillingName:  out.Clean[validation.FieldNameOnCard],
		BillingEmail: out.Clean[validation.FieldBillingEmail],
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		// Return the reserved ticket; the purchase did not happen.
		if releaseErr := s.events.ReleaseTicket(ctx, eventID); releaseErr != nil {
			s.logger.Error("failed to release ticket after order failure",
				slog.Int64("event_id", eventID), slog.Any("error", releaseErr))
		}
		s.logger.Error("failed to create order", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.auditLogger.LogOrderCreated(created.ID, userID, eventID)

	if s.mailer != nil {
		if err := s.mailer.SendOrderConfirmation(ctx, created.BillingEmail, created.BillingName, event.Title, created.ID); err != nil {
			// The order stands even if the confirmation email fails.
			s.logger.Error("failed to send order confirmation", slog.String("order_id", created.ID), slog.Any("error", err))
		}
	}

	return created, nil
}

// OrdersForUser lists a user's past orders, newest first.
func (s *CheckoutService) OrdersForUser(ctx context.Context, userID string) ([]*models.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list orders", slog.String("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return orders, nil
}
