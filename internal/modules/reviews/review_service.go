package reviews

import (
	"context"
	"fmt"
	"log"

	"homechef-marketplace/internal/models"
)

// ReviewerStore resolves the caller's display identity for new reviews.
type ReviewerStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// ServiceInterface defines the contract for the review service.
type ServiceInterface interface {
	Create(ctx context.Context, reviewerEmail string, req models.CreateReviewRequest) (*models.Review, error)
	ListForMeal(ctx context.Context, foodID string) ([]*models.Review, error)
	ListLatest(ctx context.Context, limit int) ([]*models.Review, error)
	ListByName(ctx context.Context, name string, page, limit int) ([]*models.Review, int, error)
	ListByEmail(ctx context.Context, email string) ([]*models.Review, error)
	Update(ctx context.Context, id, reviewerEmail string, req models.UpdateReviewRequest) (*models.Review, error)
	Delete(ctx context.Context, id, reviewerEmail string) error
}

// Service implements review CRUD. Every write re-aggregates the meal's
// rating, so the catalog value is always the mean of the live reviews.
type Service struct {
	repo      RepositoryInterface
	reviewers ReviewerStore
}

func NewService(repo RepositoryInterface, reviewers ReviewerStore) *Service {
	return &Service{repo: repo, reviewers: reviewers}
}

func (s *Service) Create(ctx context.Context, reviewerEmail string, req models.CreateReviewRequest) (*models.Review, error) {
	reviewer, err := s.reviewers.FindByEmail(ctx, reviewerEmail)
	if err != nil {
		return nil, err
	}

	image := req.ReviewerImage
	if image == "" {
		image = reviewer.Photo
	}
	rv := &models.Review{
		FoodID:        req.FoodID,
		ReviewerName:  reviewer.Name,
		ReviewerEmail: reviewer.Email,
		ReviewerImage: image,
		Rating:        req.Rating,
		Comment:       req.Comment,
	}
	created, err := s.repo.Create(ctx, rv)
	if err != nil {
		return nil, fmt.Errorf("service.CreateReview: %w", err)
	}

	s.refreshRating(ctx, created.FoodID)
	return created, nil
}

func (s *Service) ListForMeal(ctx context.Context, foodID string) ([]*models.Review, error) {
	return s.repo.ListByFood(ctx, foodID)
}

func (s *Service) ListLatest(ctx context.Context, limit int) ([]*models.Review, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return s.repo.ListLatest(ctx, limit)
}

func (s *Service) ListByName(ctx context.Context, name string, page, limit int) ([]*models.Review, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return s.repo.ListByName(ctx, name, page, limit)
}

func (s *Service) ListByEmail(ctx context.Context, email string) ([]*models.Review, error) {
	return s.repo.ListByEmail(ctx, email)
}

// Update edits a review. Author-only, enforced against the stored reviewer
// email rather than anything the client sends.
func (s *Service) Update(ctx context.Context, id, reviewerEmail string, req models.UpdateReviewRequest) (*models.Review, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.ReviewerEmail != reviewerEmail {
		return nil, models.ErrForbidden
	}

	updated, err := s.repo.Update(ctx, id, req.Rating, req.Comment)
	if err != nil {
		return nil, fmt.Errorf("service.UpdateReview: %w", err)
	}

	s.refreshRating(ctx, updated.FoodID)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id, reviewerEmail string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.ReviewerEmail != reviewerEmail {
		return models.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.DeleteReview: %w", err)
	}

	s.refreshRating(ctx, existing.FoodID)
	return nil
}

// refreshRating re-aggregates after a write. A failed refresh leaves a stale
// catalog number until the next write, which is tolerable; the review row
// itself is already committed.
func (s *Service) refreshRating(ctx context.Context, foodID string) {
	if err := s.repo.RecomputeMealRating(ctx, foodID); err != nil {
		log.Printf("failed to recompute rating for meal %s: %v", foodID, err)
	}
}
