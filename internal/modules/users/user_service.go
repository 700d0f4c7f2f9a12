package users

import (
	"context"
	"fmt"

	"homechef-marketplace/internal/models"
)

// ServiceInterface defines the contract for the user service. It doubles as
// the role resolver behind every role-gated route.
type ServiceInterface interface {
	GetRoleByEmail(ctx context.Context, email string) (string, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Upsert(ctx context.Context, req *models.UpsertUserRequest) (*models.User, error)
	ListAll(ctx context.Context) ([]*models.User, error)
	UpdateFraudStatus(ctx context.Context, userID, status string) error
}

// Service implements the user service logic.
type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// GetRoleByEmail resolves the caller's current role. No caching here: role
// can change between requests (an admin may approve a chef request while the
// user is active elsewhere), so every gated navigation re-reads it.
func (s *Service) GetRoleByEmail(ctx context.Context, email string) (string, error) {
	role, err := s.repo.GetRoleByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return role, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Upsert records an account on first sign-in. New accounts start as an
// active buyer; returning accounts come back exactly as stored, since the
// route takes no token and must not let a posted email rewrite someone
// else's profile.
func (s *Service) Upsert(ctx context.Context, req *models.UpsertUserRequest) (*models.User, error) {
	u, err := s.repo.Upsert(ctx, &models.User{
		Email:  req.Email,
		Name:   req.Name,
		Photo:  req.PhotoURL,
		Role:   models.RoleUser,
		Status: models.StatusActive,
	})
	if err != nil {
		return nil, fmt.Errorf("service.Upsert: %w", err)
	}
	return u, nil
}

func (s *Service) ListAll(ctx context.Context) ([]*models.User, error) {
	us, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ListAll: %w", err)
	}
	return us, nil
}

// UpdateFraudStatus flags or clears an account. A fraud-flagged chef's meals
// drop out of the public catalog immediately (the catalog query filters on
// the chef's status).
func (s *Service) UpdateFraudStatus(ctx context.Context, userID, status string) error {
	if status != models.StatusActive && status != models.StatusFraud {
		return fmt.Errorf("service.UpdateFraudStatus: unknown status %q", status)
	}
	return s.repo.UpdateStatus(ctx, userID, status)
}
