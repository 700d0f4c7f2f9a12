package meals

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"homechef-marketplace/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the meal repository.
type RepositoryInterface interface {
	Create(ctx context.Context, m *models.Meal) (*models.Meal, error)
	FindByID(ctx context.Context, id string) (*models.Meal, error)
	List(ctx context.Context, q models.MealListQuery) ([]*models.Meal, int, error)
	ListByChefEmail(ctx context.Context, email string, page, limit int) ([]*models.Meal, int, error)
	Update(ctx context.Context, id string, req models.UpdateMealRequest) (*models.Meal, error)
	Delete(ctx context.Context, id string) error
}

// Repository implements RepositoryInterface on PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const mealColumns = `id, food_name, chef_id, chef_name, chef_email, price, rating,
	ingredients, estimated_delivery_time, delivery_area, food_image, created_at, updated_at`

func scanMeal(row pgx.Row) (*models.Meal, error) {
	var m models.Meal
	err := row.Scan(
		&m.ID,
		&m.FoodName,
		&m.ChefID,
		&m.ChefName,
		&m.ChefEmail,
		&m.Price,
		&m.Rating,
		&m.Ingredients,
		&m.EstimatedDeliveryTime,
		&m.DeliveryArea,
		&m.FoodImage,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan meal: %w", err)
	}
	return &m, nil
}

func (r *Repository) Create(ctx context.Context, m *models.Meal) (*models.Meal, error) {
	query := `
		INSERT INTO meals (food_name, chef_id, chef_name, chef_email, price, rating,
			ingredients, estimated_delivery_time, delivery_area, food_image)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $8, $9)
		RETURNING ` + mealColumns

	row := r.db.QueryRow(ctx, query,
		m.FoodName, m.ChefID, m.ChefName, m.ChefEmail, m.Price,
		m.Ingredients, m.EstimatedDeliveryTime, m.DeliveryArea, m.FoodImage)
	created, err := scanMeal(row)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateMeal: %w", err)
	}
	return created, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*models.Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE id = $1`
	m, err := scanMeal(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByID: %w", err)
	}
	return m, nil
}

// sortColumns whitelists the catalog's sortable fields; anything else falls
// back to newest-first.
var sortColumns = map[string]string{
	"price":    "m.price",
	"rating":   "m.rating",
	"foodName": "m.food_name",
}

// List pages through the public catalog. Meals from fraud-flagged chefs are
// excluded, and search matches meal or chef name.
func (r *Repository) List(ctx context.Context, q models.MealListQuery) ([]*models.Meal, int, error) {
	where := ` FROM meals m JOIN users u ON u.id = m.chef_id WHERE u.status <> 'fraud'`
	args := []interface{}{}
	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		n := strconv.Itoa(len(args))
		where += ` AND (m.food_name ILIKE $` + n + ` OR m.chef_name ILIKE $` + n + `)`
	}

	orderBy := "m.created_at DESC"
	if col, ok := sortColumns[q.SortBy]; ok {
		dir := "ASC"
		if q.Order == "desc" {
			dir = "DESC"
		}
		orderBy = col + " " + dir
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository.List.Count: %w", err)
	}

	offset := (q.Page - 1) * q.Limit
	args = append(args, q.Limit, offset)
	query := `SELECT ` + prefixedMealColumns() + where +
		` ORDER BY ` + orderBy +
		` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.List.Query: %w", err)
	}
	defer rows.Close()

	meals := []*models.Meal{}
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repository.List.scanMeal: %w", err)
		}
		meals = append(meals, m)
	}
	return meals, total, nil
}

func prefixedMealColumns() string {
	return `m.id, m.food_name, m.chef_id, m.chef_name, m.chef_email, m.price, m.rating,
	m.ingredients, m.estimated_delivery_time, m.delivery_area, m.food_image, m.created_at, m.updated_at`
}

func (r *Repository) ListByChefEmail(ctx context.Context, email string, page, limit int) ([]*models.Meal, int, error) {
	offset := (page - 1) * limit
	query := `SELECT ` + mealColumns + `
		FROM meals
		WHERE chef_email = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, email, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.ListByChefEmail.Query: %w", err)
	}
	defer rows.Close()

	meals := []*models.Meal{}
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repository.ListByChefEmail.scanMeal: %w", err)
		}
		meals = append(meals, m)
	}

	var total int
	err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM meals WHERE chef_email = $1`, email).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.ListByChefEmail.Count: %w", err)
	}
	return meals, total, nil
}

// Update applies only the provided fields.
func (r *Repository) Update(ctx context.Context, id string, req models.UpdateMealRequest) (*models.Meal, error) {
	query := `
		UPDATE meals
		SET food_name = COALESCE($1, food_name),
			price = COALESCE($2, price),
			ingredients = COALESCE($3, ingredients),
			estimated_delivery_time = COALESCE($4, estimated_delivery_time),
			delivery_area = COALESCE($5, delivery_area),
			food_image = COALESCE($6, food_image),
			updated_at = NOW()
		WHERE id = $7
		RETURNING ` + mealColumns

	row := r.db.QueryRow(ctx, query,
		req.FoodName, req.Price, req.Ingredients,
		req.EstimatedDeliveryTime, req.DeliveryArea, req.FoodImage, id)
	m, err := scanMeal(row)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateMeal: %w", err)
	}
	return m, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM meals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository.DeleteMeal: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
