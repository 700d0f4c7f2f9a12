package users

import (
	"context"
	"errors"
	"fmt"

	"homechef-marketplace/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the user repository.
type RepositoryInterface interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	Upsert(ctx context.Context, u *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	ListAll(ctx context.Context) ([]*models.User, error)
	GetRoleByEmail(ctx context.Context, email string) (string, error)
	UpdateProfile(ctx context.Context, email, name, photo string) error
	UpdateRole(ctx context.Context, email, role string) error
	UpdateStatus(ctx context.Context, id, status string) error
}

// Repository implements RepositoryInterface on PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const userColumns = `id, email, name, photo, role, status, password_hash, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.Photo,
		&u.Role,
		&u.Status,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

// Create inserts a new account. A duplicate email maps to ErrEmailTaken.
func (r *Repository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (email, name, photo, role, status, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	row := r.db.QueryRow(ctx, query, u.Email, u.Name, u.Photo, u.Role, u.Status, u.PasswordHash)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, models.ErrEmailTaken
		}
		return nil, fmt.Errorf("repository.CreateUser: %w", err)
	}
	return created, nil
}

// Upsert records an account on first sign-in. The route is unauthenticated,
// so a repeat sign-in returns the stored row untouched; profile edits go
// through the authenticated update endpoint.
func (r *Repository) Upsert(ctx context.Context, u *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (email, name, photo, role, status, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO NOTHING
		RETURNING ` + userColumns

	row := r.db.QueryRow(ctx, query, u.Email, u.Name, u.Photo, u.Role, u.Status, u.PasswordHash)
	saved, err := scanUser(row)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return r.FindByEmail(ctx, u.Email)
		}
		return nil, fmt.Errorf("repository.UpsertUser: %w", err)
	}
	return saved, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByEmail: %w", err)
	}
	return u, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByID: %w", err)
	}
	return u, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.ListAll.Query: %w", err)
	}
	defer rows.Close()

	out := []*models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListAll.scanUser: %w", err)
		}
		out = append(out, u)
	}
	return out, nil
}

// GetRoleByEmail reads only the role column; it runs on every gated request
// so it stays a single-column lookup.
func (r *Repository) GetRoleByEmail(ctx context.Context, email string) (string, error) {
	var role string
	err := r.db.QueryRow(ctx, `SELECT role FROM users WHERE email = $1`, email).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", models.ErrNotFound
		}
		return "", fmt.Errorf("repository.GetRoleByEmail: %w", err)
	}
	return role, nil
}

func (r *Repository) UpdateProfile(ctx context.Context, email, name, photo string) error {
	query := `
		UPDATE users
		SET name = $1, photo = COALESCE(NULLIF($2, ''), photo), updated_at = NOW()
		WHERE email = $3`

	cmdTag, err := r.db.Exec(ctx, query, name, photo, email)
	if err != nil {
		return fmt.Errorf("repository.UpdateProfile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *Repository) UpdateRole(ctx context.Context, email, role string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE users SET role = $1, updated_at = NOW() WHERE email = $2`, role, email)
	if err != nil {
		return fmt.Errorf("repository.UpdateRole: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id, status string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE users SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("repository.UpdateStatus: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
