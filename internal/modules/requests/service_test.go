package requests

import (
	"context"
	"fmt"
	"testing"

	"homechef-marketplace/internal/models"
)

type fakeRepo struct {
	requests map[string]*models.RoleRequest
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{requests: make(map[string]*models.RoleRequest)}
}

func (f *fakeRepo) Create(ctx context.Context, rr *models.RoleRequest) (*models.RoleRequest, error) {
	cp := *rr
	cp.ID = fmt.Sprintf("req-%d", len(f.requests)+1)
	cp.RequestStatus = models.RequestStatusPending
	f.requests[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*models.RoleRequest, error) {
	rr, ok := f.requests[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *rr
	return &cp, nil
}

func (f *fakeRepo) ListPending(ctx context.Context) ([]*models.RoleRequest, error) {
	var out []*models.RoleRequest
	for _, rr := range f.requests {
		if rr.RequestStatus == models.RequestStatusPending {
			cp := *rr
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRepo) HasPending(ctx context.Context, email string) (bool, error) {
	for _, rr := range f.requests {
		if rr.UserEmail == email && rr.RequestStatus == models.RequestStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id, status string) error {
	rr, ok := f.requests[id]
	if !ok || rr.RequestStatus != models.RequestStatusPending {
		return models.ErrNotFound
	}
	rr.RequestStatus = status
	return nil
}

type fakeUserStore struct {
	users map[string]*models.User
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) UpdateRole(ctx context.Context, email, role string) error {
	u, ok := f.users[email]
	if !ok {
		return models.ErrNotFound
	}
	u.Role = role
	return nil
}

type fakeSender struct {
	sent []string
	fail bool
}

func (f *fakeSender) Send(ctx context.Context, to, subject, body string) error {
	if f.fail {
		return fmt.Errorf("ses down")
	}
	f.sent = append(f.sent, to)
	return nil
}

func newTestService(fr *fakeRepo) (*Service, *fakeUserStore, *fakeSender) {
	us := &fakeUserStore{users: make(map[string]*models.User)}
	sn := &fakeSender{}
	return NewService(fr, us, sn), us, sn
}

func TestSubmit(t *testing.T) {
	fr := newFakeRepo()
	svc, _, _ := newTestService(fr)

	req := models.CreateRoleRequest{UserName: "Mei", UserEmail: "mei@example.com", RequestType: "chef"}

	// Filing on someone else's behalf is refused.
	if _, err := svc.Submit(context.Background(), "other@example.com", req); err != models.ErrForbidden {
		t.Errorf("foreign submit error = %v; want ErrForbidden", err)
	}

	created, err := svc.Submit(context.Background(), "mei@example.com", req)
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if created.RequestStatus != models.RequestStatusPending {
		t.Errorf("new request status = %s; want pending", created.RequestStatus)
	}

	// A second request while one is pending is refused.
	if _, err := svc.Submit(context.Background(), "mei@example.com", req); err != models.ErrRequestPending {
		t.Errorf("duplicate submit error = %v; want ErrRequestPending", err)
	}
}

func TestApproveFlipsRole(t *testing.T) {
	fr := newFakeRepo()
	svc, us, sn := newTestService(fr)
	us.users["mei@example.com"] = &models.User{Email: "mei@example.com", Role: models.RoleUser}
	fr.requests["req-1"] = &models.RoleRequest{
		ID: "req-1", UserName: "Mei", UserEmail: "mei@example.com",
		RequestType: "chef", RequestStatus: models.RequestStatusPending,
	}

	// The body's requestType must match the stored request.
	if _, err := svc.Approve(context.Background(), "req-1", "admin"); err != models.ErrConflict {
		t.Errorf("mismatched type error = %v; want ErrConflict", err)
	}
	if us.users["mei@example.com"].Role != models.RoleUser {
		t.Error("role changed despite refused approval")
	}

	rr, err := svc.Approve(context.Background(), "req-1", "chef")
	if err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	if rr.RequestStatus != models.RequestStatusApproved {
		t.Errorf("request status = %s; want approved", rr.RequestStatus)
	}
	if us.users["mei@example.com"].Role != models.RoleChef {
		t.Errorf("user role = %s; want chef", us.users["mei@example.com"].Role)
	}
	if len(sn.sent) != 1 || sn.sent[0] != "mei@example.com" {
		t.Errorf("notifications sent = %v; want one to the requester", sn.sent)
	}

	// Deciding twice is a conflict.
	if _, err := svc.Approve(context.Background(), "req-1", "chef"); err != models.ErrConflict {
		t.Errorf("double approve error = %v; want ErrConflict", err)
	}
}

func TestRejectLeavesRole(t *testing.T) {
	fr := newFakeRepo()
	svc, us, _ := newTestService(fr)
	us.users["mei@example.com"] = &models.User{Email: "mei@example.com", Role: models.RoleUser}
	fr.requests["req-1"] = &models.RoleRequest{
		ID: "req-1", UserEmail: "mei@example.com",
		RequestType: "chef", RequestStatus: models.RequestStatusPending,
	}

	rr, err := svc.Reject(context.Background(), "req-1")
	if err != nil {
		t.Fatalf("Reject error: %v", err)
	}
	if rr.RequestStatus != models.RequestStatusRejected {
		t.Errorf("request status = %s; want rejected", rr.RequestStatus)
	}
	if us.users["mei@example.com"].Role != models.RoleUser {
		t.Errorf("user role = %s; want unchanged user", us.users["mei@example.com"].Role)
	}

	if _, err := svc.Reject(context.Background(), "req-1"); err != models.ErrConflict {
		t.Errorf("double reject error = %v; want ErrConflict", err)
	}
}

func TestDecisionStandsWhenMailFails(t *testing.T) {
	fr := newFakeRepo()
	svc, us, sn := newTestService(fr)
	sn.fail = true
	us.users["mei@example.com"] = &models.User{Email: "mei@example.com", Role: models.RoleUser}
	fr.requests["req-1"] = &models.RoleRequest{
		ID: "req-1", UserEmail: "mei@example.com",
		RequestType: "chef", RequestStatus: models.RequestStatusPending,
	}

	if _, err := svc.Approve(context.Background(), "req-1", "chef"); err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	if us.users["mei@example.com"].Role != models.RoleChef {
		t.Error("approval did not stand when notification failed")
	}
}
