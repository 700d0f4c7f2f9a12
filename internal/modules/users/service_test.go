package users

import (
	"context"
	"fmt"
	"testing"

	"homechef-marketplace/internal/models"
)

type fakeRepo struct {
	users map[string]*models.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*models.User)}
}

func (f *fakeRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if _, ok := f.users[u.Email]; ok {
		return nil, models.ErrEmailTaken
	}
	cp := *u
	cp.ID = fmt.Sprintf("user-%d", len(f.users)+1)
	f.users[u.Email] = &cp
	out := cp
	return &out, nil
}

func (f *fakeRepo) Upsert(ctx context.Context, u *models.User) (*models.User, error) {
	if existing, ok := f.users[u.Email]; ok {
		cp := *existing
		return &cp, nil
	}
	return f.Create(ctx, u)
}

func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeRepo) ListAll(ctx context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRepo) GetRoleByEmail(ctx context.Context, email string) (string, error) {
	u, ok := f.users[email]
	if !ok {
		return "", models.ErrNotFound
	}
	return u.Role, nil
}

func (f *fakeRepo) UpdateProfile(ctx context.Context, email, name, photo string) error {
	u, ok := f.users[email]
	if !ok {
		return models.ErrNotFound
	}
	u.Name = name
	if photo != "" {
		u.Photo = photo
	}
	return nil
}

func (f *fakeRepo) UpdateRole(ctx context.Context, email, role string) error {
	u, ok := f.users[email]
	if !ok {
		return models.ErrNotFound
	}
	u.Role = role
	return nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id, status string) error {
	for _, u := range f.users {
		if u.ID == id {
			u.Status = status
			return nil
		}
	}
	return models.ErrNotFound
}

func TestUpsertKeepsEarnedRole(t *testing.T) {
	fr := newFakeRepo()
	svc := NewService(fr)

	first, err := svc.Upsert(context.Background(), &models.UpsertUserRequest{
		Name: "Mei", Email: "mei@example.com",
	})
	if err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	if first.Role != models.RoleUser || first.Status != models.StatusActive {
		t.Errorf("first sign-in role/status = %s/%s; want user/active", first.Role, first.Status)
	}

	// Role changes elsewhere; a later sign-in must not reset it.
	fr.users["mei@example.com"].Role = models.RoleChef

	again, err := svc.Upsert(context.Background(), &models.UpsertUserRequest{
		Name: "Mei L", Email: "mei@example.com",
	})
	if err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	if again.Role != models.RoleChef {
		t.Errorf("returning sign-in role = %s; want chef kept", again.Role)
	}
	if again.Name != "Mei" {
		t.Errorf("Name = %s; want stored name kept", again.Name)
	}
}

// The route takes no token, so posting someone else's email must not let the
// caller rewrite that account's profile.
func TestUpsertCannotOverwriteExistingAccount(t *testing.T) {
	fr := newFakeRepo()
	svc := NewService(fr)
	fr.users["mei@example.com"] = &models.User{
		ID: "user-1", Email: "mei@example.com",
		Name: "Mei", Photo: "https://img.example/mei.png",
		Role: models.RoleChef, Status: models.StatusActive,
	}

	got, err := svc.Upsert(context.Background(), &models.UpsertUserRequest{
		Name: "Impostor", Email: "mei@example.com", PhotoURL: "https://evil.example/x.png",
	})
	if err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	if got.Name != "Mei" || got.Photo != "https://img.example/mei.png" {
		t.Errorf("got name/photo %s/%s; want stored values untouched", got.Name, got.Photo)
	}

	stored := fr.users["mei@example.com"]
	if stored.Name != "Mei" || stored.Photo != "https://img.example/mei.png" {
		t.Errorf("stored name/photo %s/%s; want unchanged", stored.Name, stored.Photo)
	}
}

func TestGetRoleByEmail(t *testing.T) {
	fr := newFakeRepo()
	svc := NewService(fr)
	fr.users["mei@example.com"] = &models.User{Email: "mei@example.com", Role: models.RoleChef}

	role, err := svc.GetRoleByEmail(context.Background(), "mei@example.com")
	if err != nil {
		t.Fatalf("GetRoleByEmail error: %v", err)
	}
	if role != models.RoleChef {
		t.Errorf("role = %s; want chef", role)
	}

	if _, err := svc.GetRoleByEmail(context.Background(), "nobody@example.com"); err != models.ErrNotFound {
		t.Errorf("unknown email error = %v; want ErrNotFound", err)
	}
}

func TestUpdateFraudStatus(t *testing.T) {
	fr := newFakeRepo()
	svc := NewService(fr)
	fr.users["mei@example.com"] = &models.User{ID: "user-1", Email: "mei@example.com", Status: models.StatusActive}

	if err := svc.UpdateFraudStatus(context.Background(), "user-1", "banned"); err == nil {
		t.Error("expected error for unknown status")
	}
	if fr.users["mei@example.com"].Status != models.StatusActive {
		t.Error("status changed despite refused update")
	}

	if err := svc.UpdateFraudStatus(context.Background(), "user-1", models.StatusFraud); err != nil {
		t.Fatalf("UpdateFraudStatus error: %v", err)
	}
	if fr.users["mei@example.com"].Status != models.StatusFraud {
		t.Errorf("status = %s; want fraud", fr.users["mei@example.com"].Status)
	}

	if err := svc.UpdateFraudStatus(context.Background(), "missing", models.StatusActive); err != models.ErrNotFound {
		t.Errorf("unknown user error = %v; want ErrNotFound", err)
	}
}
