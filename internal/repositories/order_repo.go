package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jdelarosa/entradas/internal/database"
	"github.com/jdelarosa/entradas/internal/models"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(db *database.DB) *OrderRepository {
	return &OrderRepository{pool: db.Pool}
}

const orderColumns = `id, user_id, event_id, status, billing_name, billing_email, created_at`

func scanOrderRow(scanner rowScanner) (*models.Order, error) {
	var order models.Order
	err := scanner.Scan(
		&order.ID, &order.UserID, &order.EventID, &order.Status,
		&order.BillingName, &order.BillingEmail, &order.CreatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &order, nil
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	query := `
		INSERT INTO orders (user_id, event_id, status, billing_name, billing_email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + orderColumns

	return scanOrderRow(r.pool.QueryRow(ctx, query,
		order.UserID, order.EventID, order.Status, order.BillingName, order.BillingEmail))
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*models.Order, 0)
	for rows.Next() {
		order, err := scanOrderRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return orders, nil
}
