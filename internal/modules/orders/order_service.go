package orders

import (
	"context"
	"fmt"
	"log"
	"strings"

	"homechef-marketplace/internal/models"
	"homechef-marketplace/pkg/payment"
)

// MealStore is the slice of the meal repository the order service needs to
// snapshot catalog data onto new orders.
type MealStore interface {
	FindByID(ctx context.Context, id string) (*models.Meal, error)
}

// ChefStore resolves the calling chef's account for ownership checks.
type ChefStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// ServiceInterface defines the contract for the order service.
type ServiceInterface interface {
	Create(ctx context.Context, userEmail string, req models.CreateOrderRequest) (*models.Order, error)
	ListByUser(ctx context.Context, email string, page, limit int) ([]*models.Order, int, error)
	ListChefOrders(ctx context.Context, chefEmail, chefID string) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, orderID, chefEmail, newStatus string) (*models.Order, error)
	CreateCheckout(ctx context.Context, userEmail string, req models.CheckoutRequest) (*models.CheckoutResponse, error)
	FinalizePayment(ctx context.Context, sessionID string) error
}

// Service implements the order lifecycle: placement, the chef's status
// transitions, and the payment redirect handoff. The price on an order is a
// snapshot of the meal at order time; later catalog edits never change what
// a buyer owes.
type Service struct {
	repo    RepositoryInterface
	meals   MealStore
	chefs   ChefStore
	payment payment.ServiceInterface
}

func NewService(repo RepositoryInterface, meals MealStore, chefs ChefStore, paymentSvc payment.ServiceInterface) *Service {
	return &Service{
		repo:    repo,
		meals:   meals,
		chefs:   chefs,
		payment: paymentSvc,
	}
}

func (s *Service) Create(ctx context.Context, userEmail string, req models.CreateOrderRequest) (*models.Order, error) {
	meal, err := s.meals.FindByID(ctx, req.FoodID)
	if err != nil {
		return nil, err
	}

	o := &models.Order{
		FoodID:      meal.ID,
		MealName:    meal.FoodName,
		ChefID:      meal.ChefID,
		UserEmail:   userEmail,
		Quantity:    req.Quantity,
		Price:       meal.Price,
		UserAddress: strings.TrimSpace(req.UserAddress),
	}
	created, err := s.repo.Create(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("service.CreateOrder: %w", err)
	}
	return created, nil
}

func (s *Service) ListByUser(ctx context.Context, email string, page, limit int) ([]*models.Order, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	orders, total, err := s.repo.ListByUserEmail(ctx, email, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ListByUser: %w", err)
	}
	return orders, total, nil
}

// ListChefOrders returns the open orders for the chef's approval queue. The
// chefId query parameter must belong to the calling chef.
func (s *Service) ListChefOrders(ctx context.Context, chefEmail, chefID string) ([]*models.Order, error) {
	chef, err := s.chefs.FindByEmail(ctx, chefEmail)
	if err != nil {
		return nil, fmt.Errorf("service.ListChefOrders: %w", err)
	}
	if chefID != "" && chefID != chef.ID {
		return nil, models.ErrForbidden
	}
	orders, err := s.repo.ListByChefID(ctx, chef.ID)
	if err != nil {
		return nil, fmt.Errorf("service.ListChefOrders: %w", err)
	}
	return orders, nil
}

// UpdateStatus moves an order through its lifecycle on behalf of the owning
// chef. The transition is checked against the state table; the stored status
// is the source of truth, not whatever the chef's screen last showed.
func (s *Service) UpdateStatus(ctx context.Context, orderID, chefEmail, newStatus string) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	chef, err := s.chefs.FindByEmail(ctx, chefEmail)
	if err != nil {
		return nil, fmt.Errorf("service.UpdateStatus: %w", err)
	}
	if order.ChefID != chef.ID {
		return nil, models.ErrForbidden
	}

	if !CanTransition(order.OrderStatus, newStatus) {
		return nil, models.ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, orderID, newStatus); err != nil {
		return nil, fmt.Errorf("service.UpdateStatus: %w", err)
	}
	order.OrderStatus = newStatus
	return order, nil
}

// CreateCheckout starts the payment redirect. An order still pending the
// chef's decision cannot be paid, nor can one that has already been paid.
// The charged amount is recomputed server-side from the stored snapshot.
func (s *Service) CreateCheckout(ctx context.Context, userEmail string, req models.CheckoutRequest) (*models.CheckoutResponse, error) {
	order, err := s.repo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.UserEmail != userEmail {
		// Not found rather than forbidden, to avoid leaking order existence.
		return nil, models.ErrNotFound
	}

	if order.OrderStatus == models.OrderStatusPending || order.OrderStatus == models.OrderStatusCancelled {
		return nil, models.ErrOrderNotPayable
	}
	if order.PaymentStatus == models.PaymentStatusPaid {
		return nil, models.ErrOrderNotPayable
	}

	sess, err := s.payment.CreateCheckoutSession(ctx, order.ID, userEmail, order.MealName, order.Total())
	if err != nil {
		return nil, fmt.Errorf("service.CreateCheckout: %w", err)
	}

	if err := s.repo.SetCheckoutSession(ctx, order.ID, sess.ID); err != nil {
		// The session exists at the provider but we lost the reference; the
		// return leg can no longer finalize this order automatically.
		log.Printf("CRITICAL: checkout session %s created for order %s but not persisted: %v", sess.ID, order.ID, err)
		return nil, fmt.Errorf("service.CreateCheckout: persist session: %w", err)
	}

	return &models.CheckoutResponse{URL: sess.URL}, nil
}

// FinalizePayment marks the order behind a returned checkout session as paid.
func (s *Service) FinalizePayment(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return models.ErrNotFound
	}
	return s.repo.MarkPaidBySession(ctx, sessionID)
}
