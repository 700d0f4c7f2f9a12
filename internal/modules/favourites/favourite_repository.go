package favourites

import (
	"context"
	"errors"
	"fmt"

	"homechef-marketplace/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the favourite repository.
type RepositoryInterface interface {
	Create(ctx context.Context, f *models.Favourite) (*models.Favourite, error)
	ListByUserEmail(ctx context.Context, email string) ([]*models.Favourite, error)
	Delete(ctx context.Context, userEmail, mealID string) error
}

// Repository implements RepositoryInterface on PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const favouriteColumns = `id, user_email, meal_id, meal_name, chef_name, price, added_time`

func scanFavourite(row pgx.Row) (*models.Favourite, error) {
	var f models.Favourite
	err := row.Scan(
		&f.ID,
		&f.UserEmail,
		&f.MealID,
		&f.MealName,
		&f.ChefName,
		&f.Price,
		&f.AddedTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan favourite: %w", err)
	}
	return &f, nil
}

// Create bookmarks a meal. The (user_email, meal_id) pair is unique; a
// second bookmark maps to ErrConflict.
func (r *Repository) Create(ctx context.Context, f *models.Favourite) (*models.Favourite, error) {
	query := `
		INSERT INTO favourites (user_email, meal_id, meal_name, chef_name, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + favouriteColumns

	row := r.db.QueryRow(ctx, query, f.UserEmail, f.MealID, f.MealName, f.ChefName, f.Price)
	created, err := scanFavourite(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, models.ErrConflict
		}
		return nil, fmt.Errorf("repository.CreateFavourite: %w", err)
	}
	return created, nil
}

func (r *Repository) ListByUserEmail(ctx context.Context, email string) ([]*models.Favourite, error) {
	query := `SELECT ` + favouriteColumns + ` FROM favourites WHERE user_email = $1 ORDER BY added_time DESC`
	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("repository.ListByUserEmail.Query: %w", err)
	}
	defer rows.Close()

	out := []*models.Favourite{}
	for rows.Next() {
		f, err := scanFavourite(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListByUserEmail.scanFavourite: %w", err)
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *Repository) Delete(ctx context.Context, userEmail, mealID string) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM favourites WHERE user_email = $1 AND meal_id = $2`, userEmail, mealID)
	if err != nil {
		return fmt.Errorf("repository.DeleteFavourite: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
