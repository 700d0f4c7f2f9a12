package reviews

import (
	"context"
	"errors"
	"fmt"

	"homechef-marketplace/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the review repository.
type RepositoryInterface interface {
	Create(ctx context.Context, rv *models.Review) (*models.Review, error)
	FindByID(ctx context.Context, id string) (*models.Review, error)
	ListByFood(ctx context.Context, foodID string) ([]*models.Review, error)
	ListLatest(ctx context.Context, limit int) ([]*models.Review, error)
	ListByName(ctx context.Context, name string, page, limit int) ([]*models.Review, int, error)
	ListByEmail(ctx context.Context, email string) ([]*models.Review, error)
	Update(ctx context.Context, id string, rating int, comment string) (*models.Review, error)
	Delete(ctx context.Context, id string) error
	RecomputeMealRating(ctx context.Context, foodID string) error
}

// Repository implements RepositoryInterface on PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const reviewColumns = `id, food_id, reviewer_name, reviewer_email, reviewer_image, rating, comment, date`

func scanReview(row pgx.Row) (*models.Review, error) {
	var rv models.Review
	err := row.Scan(
		&rv.ID,
		&rv.FoodID,
		&rv.ReviewerName,
		&rv.ReviewerEmail,
		&rv.ReviewerImage,
		&rv.Rating,
		&rv.Comment,
		&rv.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan review: %w", err)
	}
	return &rv, nil
}

func (r *Repository) Create(ctx context.Context, rv *models.Review) (*models.Review, error) {
	query := `
		INSERT INTO reviews (food_id, reviewer_name, reviewer_email, reviewer_image, rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + reviewColumns

	row := r.db.QueryRow(ctx, query,
		rv.FoodID, rv.ReviewerName, rv.ReviewerEmail, rv.ReviewerImage, rv.Rating, rv.Comment)
	created, err := scanReview(row)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateReview: %w", err)
	}
	return created, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	rv, err := scanReview(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByID: %w", err)
	}
	return rv, nil
}

func (r *Repository) listRows(ctx context.Context, query string, args ...interface{}) ([]*models.Review, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, nil
}

func (r *Repository) ListByFood(ctx context.Context, foodID string) ([]*models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE food_id = $1 ORDER BY date DESC`
	out, err := r.listRows(ctx, query, foodID)
	if err != nil {
		return nil, fmt.Errorf("repository.ListByFood: %w", err)
	}
	return out, nil
}

func (r *Repository) ListLatest(ctx context.Context, limit int) ([]*models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews ORDER BY date DESC LIMIT $1`
	out, err := r.listRows(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("repository.ListLatest: %w", err)
	}
	return out, nil
}

func (r *Repository) ListByName(ctx context.Context, name string, page, limit int) ([]*models.Review, int, error) {
	offset := (page - 1) * limit
	query := `SELECT ` + reviewColumns + `
		FROM reviews
		WHERE reviewer_name = $1
		ORDER BY date DESC
		LIMIT $2 OFFSET $3`

	out, err := r.listRows(ctx, query, name, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.ListByName: %w", err)
	}

	var total int
	err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE reviewer_name = $1`, name).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.ListByName.Count: %w", err)
	}
	return out, total, nil
}

func (r *Repository) ListByEmail(ctx context.Context, email string) ([]*models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE reviewer_email = $1 ORDER BY date DESC`
	out, err := r.listRows(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("repository.ListByEmail: %w", err)
	}
	return out, nil
}

func (r *Repository) Update(ctx context.Context, id string, rating int, comment string) (*models.Review, error) {
	query := `
		UPDATE reviews
		SET rating = $1, comment = $2
		WHERE id = $3
		RETURNING ` + reviewColumns

	rv, err := scanReview(r.db.QueryRow(ctx, query, rating, comment, id))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateReview: %w", err)
	}
	return rv, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository.DeleteReview: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// RecomputeMealRating refreshes the meal's aggregate from its current
// reviews: mean rating rounded to one decimal, zero with no reviews.
func (r *Repository) RecomputeMealRating(ctx context.Context, foodID string) error {
	query := `
		UPDATE meals
		SET rating = COALESCE((SELECT ROUND(AVG(rating)::numeric, 1) FROM reviews WHERE food_id = $1), 0),
			updated_at = NOW()
		WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, foodID); err != nil {
		return fmt.Errorf("repository.RecomputeMealRating: %w", err)
	}
	return nil
}
