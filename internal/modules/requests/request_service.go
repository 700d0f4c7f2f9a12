package requests

import (
	"context"
	"fmt"
	"log"

	"homechef-marketplace/internal/models"
	"homechef-marketplace/pkg/email"
)

// UserStore is the slice of the user repository the request workflow needs
// to flip roles on approval.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateRole(ctx context.Context, email, role string) error
}

// ServiceInterface defines the contract for the role-request workflow.
type ServiceInterface interface {
	Submit(ctx context.Context, callerEmail string, req models.CreateRoleRequest) (*models.RoleRequest, error)
	ListPending(ctx context.Context) ([]*models.RoleRequest, error)
	Approve(ctx context.Context, id, requestType string) (*models.RoleRequest, error)
	Reject(ctx context.Context, id string) (*models.RoleRequest, error)
}

// Service implements the upgrade workflow. Approval is the only code path in
// the system that changes a user's role.
type Service struct {
	repo   RepositoryInterface
	users  UserStore
	sender email.SenderInterface
}

func NewService(repo RepositoryInterface, users UserStore, sender email.SenderInterface) *Service {
	return &Service{repo: repo, users: users, sender: sender}
}

// Submit files an upgrade request for the caller. One pending request per
// user at a time.
func (s *Service) Submit(ctx context.Context, callerEmail string, req models.CreateRoleRequest) (*models.RoleRequest, error) {
	if req.UserEmail != callerEmail {
		return nil, models.ErrForbidden
	}

	pending, err := s.repo.HasPending(ctx, callerEmail)
	if err != nil {
		return nil, fmt.Errorf("service.Submit: %w", err)
	}
	if pending {
		return nil, models.ErrRequestPending
	}

	rr := &models.RoleRequest{
		UserName:    req.UserName,
		UserEmail:   req.UserEmail,
		RequestType: req.RequestType,
	}
	created, err := s.repo.Create(ctx, rr)
	if err != nil {
		return nil, fmt.Errorf("service.Submit: %w", err)
	}
	return created, nil
}

func (s *Service) ListPending(ctx context.Context) ([]*models.RoleRequest, error) {
	out, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ListPending: %w", err)
	}
	return out, nil
}

// Approve grants the requested role. The body's requestType must match the
// stored request so a stale admin screen cannot grant the wrong role.
func (s *Service) Approve(ctx context.Context, id, requestType string) (*models.RoleRequest, error) {
	rr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rr.RequestStatus != models.RequestStatusPending {
		return nil, models.ErrConflict
	}
	if rr.RequestType != requestType {
		return nil, models.ErrConflict
	}

	if err := s.users.UpdateRole(ctx, rr.UserEmail, rr.RequestType); err != nil {
		return nil, fmt.Errorf("service.Approve: update role: %w", err)
	}
	if err := s.repo.UpdateStatus(ctx, id, models.RequestStatusApproved); err != nil {
		// The role already changed; leaving the request pending is the safer
		// inconsistency since re-approving is idempotent on the role.
		return nil, fmt.Errorf("service.Approve: mark approved: %w", err)
	}

	rr.RequestStatus = models.RequestStatusApproved
	s.notify(ctx, rr)
	return rr, nil
}

// Reject declines a request; the user's role is untouched.
func (s *Service) Reject(ctx context.Context, id string) (*models.RoleRequest, error) {
	rr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rr.RequestStatus != models.RequestStatusPending {
		return nil, models.ErrConflict
	}

	if err := s.repo.UpdateStatus(ctx, id, models.RequestStatusRejected); err != nil {
		return nil, fmt.Errorf("service.Reject: %w", err)
	}

	rr.RequestStatus = models.RequestStatusRejected
	s.notify(ctx, rr)
	return rr, nil
}

// notify mails the requester the decision. Best effort; the decision stands
// whether or not the mail goes out.
func (s *Service) notify(ctx context.Context, rr *models.RoleRequest) {
	if s.sender == nil {
		return
	}
	subject := fmt.Sprintf("Your %s role request was %s", rr.RequestType, rr.RequestStatus)
	body := fmt.Sprintf("Hi %s,\n\nYour request to become a %s has been %s.\n\nThe HomeChef Team",
		rr.UserName, rr.RequestType, rr.RequestStatus)
	if err := s.sender.Send(ctx, rr.UserEmail, subject, body); err != nil {
		log.Printf("failed to send role request notification to %s: %v", rr.UserEmail, err)
	}
}
