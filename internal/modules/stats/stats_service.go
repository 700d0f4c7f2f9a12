package stats

import (
	"context"
	"fmt"

	"homechef-marketplace/internal/models"
)

// ServiceInterface defines the contract for admin dashboard figures.
type ServiceInterface interface {
	TotalPayments(ctx context.Context) (float64, error)
	TotalUsers(ctx context.Context) (int, error)
	PendingOrdersCount(ctx context.Context) (int, error)
	DeliveredOrdersCount(ctx context.Context) (int, error)
	ChartData(ctx context.Context) (*models.ChartData, error)
}

// Service implements ServiceInterface.
type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) ServiceInterface {
	return &Service{repo: repo}
}

func (s *Service) TotalPayments(ctx context.Context) (float64, error) {
	total, err := s.repo.TotalPayments(ctx)
	if err != nil {
		return 0, fmt.Errorf("service.TotalPayments: %w", err)
	}
	return total, nil
}

func (s *Service) TotalUsers(ctx context.Context) (int, error) {
	count, err := s.repo.TotalUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("service.TotalUsers: %w", err)
	}
	return count, nil
}

func (s *Service) PendingOrdersCount(ctx context.Context) (int, error) {
	count, err := s.repo.CountOrdersByStatus(ctx, models.OrderStatusPending)
	if err != nil {
		return 0, fmt.Errorf("service.PendingOrdersCount: %w", err)
	}
	return count, nil
}

func (s *Service) DeliveredOrdersCount(ctx context.Context) (int, error) {
	count, err := s.repo.CountOrdersByStatus(ctx, models.OrderStatusDelivered)
	if err != nil {
		return 0, fmt.Errorf("service.DeliveredOrdersCount: %w", err)
	}
	return count, nil
}

func (s *Service) ChartData(ctx context.Context) (*models.ChartData, error) {
	data, err := s.repo.ChartData(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ChartData: %w", err)
	}
	return data, nil
}
