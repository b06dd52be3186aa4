package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jdelarosa/entradas/internal/models"
	pkghttp "github.com/jdelarosa/entradas/pkg/http"
)

// EventServiceInterface defines the interface for the event catalog
type EventServiceInterface interface {
	List(ctx context.Context, filter models.EventFilter) ([]*models.Event, error)
	Get(ctx context.Context, id int64) (*models.Event, error)
}

// EventHandler handles public event catalog requests
type EventHandler struct {
	service EventServiceInterface
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(service EventServiceInterface) *EventHandler {
	return &EventHandler{service: service}
}

// EventResponse represents an event in the HTTP response
type EventResponse struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Category         string  `json:"category"`
	City             string  `json:"city"`
	Venue            string  `json:"venue"`
	StartsAt         string  `json:"starts_at"`
	EndsAt           string  `json:"ends_at,omitempty"`
	PriceUSD         float64 `json:"price_usd"`
	AvailableTickets int     `json:"available_tickets"`
	BannerURL        string  `json:"banner_url,omitempty"`
	Description      string  `json:"description,omitempty"`
}

// ListEvents handles GET /events with optional category and city filters
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	filter := models.EventFilter{
		Category: r.URL.Query().Get("category"),
		City:     r.URL.Query().Get("city"),
	}

	events, err := h.service.List(r.Context(), filter)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	resp := make([]*EventResponse, 0, len(events))
	for _, event := range events {
		resp = append(resp, eventModelToResponse(event))
	}

	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

// GetEvent handles GET /events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		pkghttp.WriteBadRequest(w, "Invalid event ID")
		return
	}

	event, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Event not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, eventModelToResponse(event))
}

func eventModelToResponse(event *models.Event) *EventResponse {
	resp := &EventResponse{
		ID:               event.ID,
		Title:            event.Title,
		Category:         event.Category,
		City:             event.City,
		Venue:            event.Venue,
		StartsAt:         event.StartsAt.Format(time.RFC3339),
		PriceUSD:         event.PriceUSD,
		AvailableTickets: event.AvailableTickets,
		BannerURL:        event.BannerURL,
		Description:      event.Description,
	}
	if !event.EndsAt.IsZero() {
		resp.EndsAt = event.EndsAt.Format(time.RFC3339)
	}
	return resp
}
