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

// CheckoutServiceInterface defines the interface for the checkout flow
type CheckoutServiceInterface interface {
	Purchase(ctx context.Context, userID string, eventID int64, form validation.PaymentForm) (*models.Order, error)
	OrdersForUser(ctx context.Context, userID string) ([]*models.Order, error)
}

// CheckoutHandler handles ticket purchase requests
type CheckoutHandler struct {
	service CheckoutServiceInterface
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(service CheckoutServiceInterface) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// CheckoutRequest represents the payment form submission. Card data passes
// through validation and is discarded; it is never stored or logged.
type CheckoutRequest struct {
	CardNumber   string `json:"card_number" validate:"required"`
	ExpDate      string `json:"exp_date" validate:"required"`
	CVV          string `json:"cvv" validate:"required"`
	NameOnCard   string `json:"name_on_card" validate:"required"`
	BillingEmail string `json:"billing_email" validate:"required"`
}

// OrderResponse represents an order in the HTTP response
type OrderResponse struct {
	ID           string `json:"id"`
	EventID      int64  `json:"event_id"`
	Status       string `json:"status"`
	BillingName  string `json:"billing_name"`
	BillingEmail string `json:"billing_email"`
	CreatedAt    string `json:"created_at"`
}

// Checkout handles POST /events/{id}/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		pkghttp.WriteUnauthorized(w, "authentication required")
		return
	}

	eventID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		pkghttp.WriteBadRequest(w, "Invalid event ID")
		return
	}

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	form := validation.PaymentForm{
		CardNumber:   req.CardNumber,
		ExpDate:      req.ExpDate,
		CVV:          req.CVV,
		NameOnCard:   req.NameOnCard,
		BillingEmail: req.BillingEmail,
	}

	order, err := h.service.Purchase(r.Context(), claims.UserID, eventID, form)
	if err != nil {
		var payErr *services.PaymentErrors
		switch {
		case errors.As(err, &payErr):
			pkghttp.WriteFieldErrors(w, payErr.Fields)
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "Event not found")
		case errors.Is(err, models.ErrEventSoldOut):
			pkghttp.WriteConflict(w, "Event is sold out")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, orderModelToResponse(order))
}

// ListOrders handles GET /users/me/orders
func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		pkghttp.WriteUnauthorized(w, "authentication required")
		return
	}

	orders, err := h.service.OrdersForUser(r.Context(), claims.UserID)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	resp := make([]*OrderResponse, 0, len(orders))
	for _, order := range orders {
		resp = append(resp, orderModelToResponse(order))
	}

	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

func orderModelToResponse(order *models.Order) *OrderResponse {
	return &OrderResponse{
		ID:           order.ID,
		EventID:      order.EventID,
		Status:       order.Status,
		BillingName:  order.BillingName,
		BillingEmail: order.BillingEmail,
		CreatedAt:    order.CreatedAt.Format(time.RFC3339),
	}
}
