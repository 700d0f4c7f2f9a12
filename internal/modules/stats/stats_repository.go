package stats

import (
	"context"
	"fmt"

	"homechef-marketplace/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the dashboard aggregates.
type RepositoryInterface interface {
	TotalPayments(ctx context.Context) (float64, error)
	TotalUsers(ctx context.Context) (int, error)
	CountOrdersByStatus(ctx context.Context, status string) (int, error)
	ChartData(ctx context.Context) (*models.ChartData, error)
}

// Repository implements RepositoryInterface on PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

// TotalPayments sums the paid order totals.
func (r *Repository) TotalPayments(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(ROUND(SUM(price * quantity)::numeric, 2), 0) FROM orders WHERE payment_status = 'Paid'`,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("repository.TotalPayments: %w", err)
	}
	return total, nil
}

func (r *Repository) TotalUsers(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("repository.TotalUsers: %w", err)
	}
	return count, nil
}

func (r *Repository) CountOrdersByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE order_status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("repository.CountOrdersByStatus: %w", err)
	}
	return count, nil
}

func (r *Repository) groupCount(ctx context.Context, query string) ([]models.ChartSlice, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ChartSlice{}
	for rows.Next() {
		var s models.ChartSlice
		if err := rows.Scan(&s.Name, &s.Value); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// ChartData feeds the three dashboard charts in one call.
func (r *Repository) ChartData(ctx context.Context) (*models.ChartData, error) {
	orderStatus, err := r.groupCount(ctx,
		`SELECT order_status, COUNT(*) FROM orders GROUP BY order_status ORDER BY order_status`)
	if err != nil {
		return nil, fmt.Errorf("repository.ChartData.orderStatus: %w", err)
	}

	userRoles, err := r.groupCount(ctx,
		`SELECT role, COUNT(*) FROM users GROUP BY role ORDER BY role`)
	if err != nil {
		return nil, fmt.Errorf("repository.ChartData.userRoles: %w", err)
	}

	paymentStatus, err := r.groupCount(ctx,
		`SELECT payment_status, COUNT(*) FROM orders GROUP BY payment_status ORDER BY payment_status`)
	if err != nil {
		return nil, fmt.Errorf("repository.ChartData.paymentStatus: %w", err)
	}

	return &models.ChartData{
		OrderStatus:   orderStatus,
		UserRoles:     userRoles,
		PaymentStatus: paymentStatus,
	}, nil
}
