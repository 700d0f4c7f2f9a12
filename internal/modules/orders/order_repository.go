package orders

import (
	"context"
	"errors"
	"fmt"

	"homechef-marketplace/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the order repository.
type RepositoryInterface interface {
	Create(ctx context.Context, o *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id string) (*models.Order, error)
	ListByUserEmail(ctx context.Context, email string, page, limit int) ([]*models.Order, int, error)
	ListByChefID(ctx context.Context, chefID string) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	SetCheckoutSession(ctx context.Context, id, sessionID string) error
	MarkPaidBySession(ctx context.Context, sessionID string) error
}

// Repository implements RepositoryInterface on PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const orderColumns = `id, food_id, meal_name, chef_id, user_email, quantity, price,
	order_status, payment_status, user_address, COALESCE(stripe_session_id, ''), order_time, updated_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID,
		&o.FoodID,
		&o.MealName,
		&o.ChefID,
		&o.UserEmail,
		&o.Quantity,
		&o.Price,
		&o.OrderStatus,
		&o.PaymentStatus,
		&o.UserAddress,
		&o.StripeSessionID,
		&o.OrderTime,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}
	return &o, nil
}

func (r *Repository) Create(ctx context.Context, o *models.Order) (*models.Order, error) {
	query := `
		INSERT INTO orders (food_id, meal_name, chef_id, user_email, quantity, price,
			order_status, payment_status, user_address)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending', 'Pending', $7)
		RETURNING ` + orderColumns

	row := r.db.QueryRow(ctx, query,
		o.FoodID, o.MealName, o.ChefID, o.UserEmail, o.Quantity, o.Price, o.UserAddress)
	created, err := scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateOrder: %w", err)
	}
	return created, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByID: %w", err)
	}
	return o, nil
}

func (r *Repository) ListByUserEmail(ctx context.Context, email string, page, limit int) ([]*models.Order, int, error) {
	offset := (page - 1) * limit
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE user_email = $1
		ORDER BY order_time DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, email, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.ListByUserEmail.Query: %w", err)
	}
	defer rows.Close()

	orders := []*models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repository.ListByUserEmail.scanOrder: %w", err)
		}
		orders = append(orders, o)
	}

	var total int
	err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_email = $1`, email).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.ListByUserEmail.Count: %w", err)
	}
	return orders, total, nil
}

// ListByChefID returns a chef's open orders, oldest first so the queue reads
// top-down. Terminal orders drop off the approval screen.
func (r *Repository) ListByChefID(ctx context.Context, chefID string) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE chef_id = $1 AND order_status IN ('pending', 'accepted')
		ORDER BY order_time ASC`

	rows, err := r.db.Query(ctx, query, chefID)
	if err != nil {
		return nil, fmt.Errorf("repository.ListByChefID.Query: %w", err)
	}
	defer rows.Close()

	orders := []*models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListByChefID.scanOrder: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id, status string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE orders SET order_status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("repository.UpdateStatus: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *Repository) SetCheckoutSession(ctx context.Context, id, sessionID string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE orders SET stripe_session_id = $1, updated_at = NOW() WHERE id = $2`, sessionID, id)
	if err != nil {
		return fmt.Errorf("repository.SetCheckoutSession: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// MarkPaidBySession finalizes the payment return leg. Matching on the stored
// session id means a forged or stale session id is a no-op.
func (r *Repository) MarkPaidBySession(ctx context.Context, sessionID string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE orders SET payment_status = 'Paid', updated_at = NOW() WHERE stripe_session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("repository.MarkPaidBySession: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
