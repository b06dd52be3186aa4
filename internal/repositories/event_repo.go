package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jdelarosa/entradas/internal/database"
	"github.com/jdelarosa/entradas/internal/models"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{pool: db.Pool}
}

const eventColumns = `id, title, category, city, venue, starts_at, ends_at, price_usd, available_tickets, banner_url, description`

func scanEventRow(scanner rowScanner) (*models.Event, error) {
	var event models.Event
	err := scanner.Scan(
		&event.ID, &event.Title, &event.Category, &event.City, &event.Venue,
		&event.StartsAt, &event.EndsAt, &event.PriceUSD,
		&event.AvailableTickets, &event.BannerURL, &event.Description,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &event, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEventRow(r.pool.QueryRow(ctx, query, id))
}

// List returns events matching the filter, soonest first. Zero-valued filter
// fields match everything.
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter) ([]*models.Event, error) {
	query := `
		SELECT ` + eventColumns + ` FROM events
		WHERE ($1::text = '' OR category = $1)
		  AND ($2::text = '' OR city = $2)
		ORDER BY starts_at ASC
	`

	rows, err := r.pool.Query(ctx, query, filter.Category, filter.City)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := make([]*models.Event, 0)
	for rows.Next() {
		event, err := scanEventRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return events, nil
}

// ReserveTicket atomically decrements the available count for an event.
// Returns ErrEventSoldOut when no tickets remain.
func (r *EventRepository) ReserveTicket(ctx context.Context, id int64) error {
	query := `
		UPDATE events SET available_tickets = available_tickets - 1
		WHERE id = $1 AND available_tickets > 0
	`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrEventSoldOut
	}
	return nil
}

// ReleaseTicket returns a reserved ticket to the pool. Used to compensate
// when order creation fails after a successful reservation.
func (r *EventRepository) ReleaseTicket(ctx context.Context, id int64) error {
	query := `UPDATE events SET available_tickets = available_tickets + 1 WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id)
	return database.MapPostgresError(err)
}
