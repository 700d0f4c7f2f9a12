package requests

import (
	"context"
	"errors"
	"fmt"

	"homechef-marketplace/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the role-request repository.
type RepositoryInterface interface {
	Create(ctx context.Context, rr *models.RoleRequest) (*models.RoleRequest, error)
	FindByID(ctx context.Context, id string) (*models.RoleRequest, error)
	ListPending(ctx context.Context) ([]*models.RoleRequest, error)
	HasPending(ctx context.Context, userEmail string) (bool, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// Repository implements RepositoryInterface on PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const requestColumns = `id, user_name, user_email, request_type, request_status, request_time`

func scanRequest(row pgx.Row) (*models.RoleRequest, error) {
	var rr models.RoleRequest
	err := row.Scan(
		&rr.ID,
		&rr.UserName,
		&rr.UserEmail,
		&rr.RequestType,
		&rr.RequestStatus,
		&rr.RequestTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan role request: %w", err)
	}
	return &rr, nil
}

func (r *Repository) Create(ctx context.Context, rr *models.RoleRequest) (*models.RoleRequest, error) {
	query := `
		INSERT INTO role_requests (user_name, user_email, request_type, request_status)
		VALUES ($1, $2, $3, 'pending')
		RETURNING ` + requestColumns

	row := r.db.QueryRow(ctx, query, rr.UserName, rr.UserEmail, rr.RequestType)
	created, err := scanRequest(row)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateRequest: %w", err)
	}
	return created, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*models.RoleRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM role_requests WHERE id = $1`
	rr, err := scanRequest(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByID: %w", err)
	}
	return rr, nil
}

func (r *Repository) ListPending(ctx context.Context) ([]*models.RoleRequest, error) {
	query := `SELECT ` + requestColumns + `
		FROM role_requests
		WHERE request_status = 'pending'
		ORDER BY request_time ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.ListPending.Query: %w", err)
	}
	defer rows.Close()

	out := []*models.RoleRequest{}
	for rows.Next() {
		rr, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListPending.scanRequest: %w", err)
		}
		out = append(out, rr)
	}
	return out, nil
}

func (r *Repository) HasPending(ctx context.Context, userEmail string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM role_requests WHERE user_email = $1 AND request_status = 'pending')`,
		userEmail).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("repository.HasPending: %w", err)
	}
	return exists, nil
}

// UpdateStatus decides a request. Only pending rows can be decided, so a
// double click on approve/reject is a no-op the second time.
func (r *Repository) UpdateStatus(ctx context.Context, id, status string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE role_requests SET request_status = $1 WHERE id = $2 AND request_status = 'pending'`,
		status, id)
	if err != nil {
		return fmt.Errorf("repository.UpdateStatus: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
