package favourites

import (
	"context"
	"fmt"

	"homechef-marketplace/internal/models"
)

// MealStore is the slice of the meal repository used to denormalize catalog
// fields onto bookmarks.
type MealStore interface {
	FindByID(ctx context.Context, id string) (*models.Meal, error)
}

// ServiceInterface defines the contract for the favourite service.
type ServiceInterface interface {
	Add(ctx context.Context, userEmail, mealID string) (*models.Favourite, error)
	List(ctx context.Context, userEmail string) ([]*models.Favourite, error)
	Remove(ctx context.Context, userEmail, mealID string) error
}

// Service implements favourites. The bookmark carries a snapshot of the meal
// so the list renders without touching the catalog.
type Service struct {
	repo  RepositoryInterface
	meals MealStore
}

func NewService(repo RepositoryInterface, meals MealStore) *Service {
	return &Service{repo: repo, meals: meals}
}

func (s *Service) Add(ctx context.Context, userEmail, mealID string) (*models.Favourite, error) {
	meal, err := s.meals.FindByID(ctx, mealID)
	if err != nil {
		return nil, err
	}

	f := &models.Favourite{
		UserEmail: userEmail,
		MealID:    meal.ID,
		MealName:  meal.FoodName,
		ChefName:  meal.ChefName,
		Price:     meal.Price,
	}
	created, err := s.repo.Create(ctx, f)
	if err != nil {
		if err == models.ErrConflict {
			return nil, models.ErrConflict
		}
		return nil, fmt.Errorf("service.AddFavourite: %w", err)
	}
	return created, nil
}

func (s *Service) List(ctx context.Context, userEmail string) ([]*models.Favourite, error) {
	out, err := s.repo.ListByUserEmail(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("service.ListFavourites: %w", err)
	}
	return out, nil
}

func (s *Service) Remove(ctx context.Context, userEmail, mealID string) error {
	return s.repo.Delete(ctx, userEmail, mealID)
}
