package meals

import (
	"context"
	"fmt"

	"homechef-marketplace/internal/models"
)

// ChefStore is the slice of the user repository the meal service needs to
// snapshot chef identity onto new meals.
type ChefStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// ServiceInterface defines the contract for the meal service.
type ServiceInterface interface {
	List(ctx context.Context, q models.MealListQuery) ([]*models.Meal, int, error)
	Get(ctx context.Context, id string) (*models.Meal, error)
	Create(ctx context.Context, chefEmail string, req models.CreateMealRequest) (*models.Meal, error)
	Update(ctx context.Context, id, chefEmail string, req models.UpdateMealRequest) (*models.Meal, error)
	Delete(ctx context.Context, id, chefEmail string) error
	ListByChef(ctx context.Context, chefEmail string, page, limit int) ([]*models.Meal, int, error)
}

// Service implements the catalog logic.
type Service struct {
	repo  RepositoryInterface
	chefs ChefStore
}

func NewService(repo RepositoryInterface, chefs ChefStore) *Service {
	return &Service{repo: repo, chefs: chefs}
}

func (s *Service) List(ctx context.Context, q models.MealListQuery) ([]*models.Meal, int, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 10
	}
	meals, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("service.List: %w", err)
	}
	return meals, total, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Meal, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Create adds a meal under the calling chef. Chef name and id are snapshotted
// from the account record, never taken from the request.
func (s *Service) Create(ctx context.Context, chefEmail string, req models.CreateMealRequest) (*models.Meal, error) {
	chef, err := s.chefs.FindByEmail(ctx, chefEmail)
	if err != nil {
		return nil, fmt.Errorf("service.CreateMeal: %w", err)
	}

	m := &models.Meal{
		FoodName:              req.FoodName,
		ChefID:                chef.ID,
		ChefName:              chef.Name,
		ChefEmail:             chef.Email,
		Price:                 req.Price,
		Ingredients:           req.Ingredients,
		EstimatedDeliveryTime: req.EstimatedDeliveryTime,
		DeliveryArea:          req.DeliveryArea,
		FoodImage:             req.FoodImage,
	}
	created, err := s.repo.Create(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("service.CreateMeal: %w", err)
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id, chefEmail string, req models.UpdateMealRequest) (*models.Meal, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.ChefEmail != chefEmail {
		return nil, models.ErrForbidden
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("service.UpdateMeal: %w", err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id, chefEmail string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.ChefEmail != chefEmail {
		return models.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByChef(ctx context.Context, chefEmail string, page, limit int) ([]*models.Meal, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	meals, total, err := s.repo.ListByChefEmail(ctx, chefEmail, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ListByChef: %w", err)
	}
	return meals, total, nil
}
