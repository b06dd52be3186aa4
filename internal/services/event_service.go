package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jdelarosa/entradas/internal/models"
)

// EventLister defines the event listing operations
type EventLister interface {
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	List(ctx context.Context, filter models.EventFilter) ([]*models.Event, error)
}

// EventService serves the public event catalog.
type EventService struct {
	repo   EventLister
	logger *slog.Logger
}

// NewEventService creates a new EventService
func NewEventService(repo EventLister, logger *slog.Logger) *EventService {
	return &EventService{repo: repo, logger: logger}
}

// List returns events matching the filter, soonest first.
func (s *EventService) List(ctx context.Context, filter models.EventFilter) ([]*models.Event, error) {
	events, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list events", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return events, nil
}

// Get returns a single event by ID.
func (s *EventService) Get(ctx context.Context, id int64) (*models.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get event", slog.Int64("event_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return event, nil
}
