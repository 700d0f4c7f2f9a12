package meals

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"homechef-marketplace/internal/models"
)

type fakeRepo struct {
	meals     map[string]*models.Meal
	lastQuery models.MealListQuery
	lastPage  int
	lastLimit int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{meals: make(map[string]*models.Meal)}
}

func (f *fakeRepo) Create(ctx context.Context, m *models.Meal) (*models.Meal, error) {
	cp := *m
	cp.ID = fmt.Sprintf("meal-%d", len(f.meals)+1)
	f.meals[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*models.Meal, error) {
	m, ok := f.meals[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeRepo) List(ctx context.Context, q models.MealListQuery) ([]*models.Meal, int, error) {
	f.lastQuery = q
	var out []*models.Meal
	for _, m := range f.meals {
		cp := *m
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (f *fakeRepo) ListByChefEmail(ctx context.Context, email string, page, limit int) ([]*models.Meal, int, error) {
	f.lastPage, f.lastLimit = page, limit
	var out []*models.Meal
	for _, m := range f.meals {
		if m.ChefEmail == email {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, req models.UpdateMealRequest) (*models.Meal, error) {
	m, ok := f.meals[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if req.FoodName != nil {
		m.FoodName = *req.FoodName
	}
	if req.Price != nil {
		m.Price = *req.Price
	}
	cp := *m
	return &cp, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.meals[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.meals, id)
	return nil
}

type fakeChefStore struct {
	users map[string]*models.User
}

func (f *fakeChefStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func newTestService(fr *fakeRepo) (*Service, *fakeChefStore) {
	cs := &fakeChefStore{users: make(map[string]*models.User)}
	return NewService(fr, cs), cs
}

func TestListClampsPaging(t *testing.T) {
	fr := newFakeRepo()
	svc, _ := newTestService(fr)

	if _, _, err := svc.List(context.Background(), models.MealListQuery{Page: 0, Limit: 0}); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if fr.lastQuery.Page != 1 || fr.lastQuery.Limit != 10 {
		t.Errorf("clamped query = page %d limit %d; want 1/10", fr.lastQuery.Page, fr.lastQuery.Limit)
	}

	if _, _, err := svc.List(context.Background(), models.MealListQuery{Page: 3, Limit: 500}); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if fr.lastQuery.Page != 3 || fr.lastQuery.Limit != 10 {
		t.Errorf("clamped query = page %d limit %d; want 3/10", fr.lastQuery.Page, fr.lastQuery.Limit)
	}
}

func TestCreateSnapshotsChefIdentity(t *testing.T) {
	fr := newFakeRepo()
	svc, cs := newTestService(fr)
	cs.users["chef@example.com"] = &models.User{ID: "chef-1", Name: "Mei", Email: "chef@example.com"}

	created, err := svc.Create(context.Background(), "chef@example.com", models.CreateMealRequest{
		FoodName:    "Dumplings",
		Price:       9.99,
		Ingredients: []string{"flour", "pork"},
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.ChefID != "chef-1" || created.ChefName != "Mei" || created.ChefEmail != "chef@example.com" {
		t.Errorf("chef snapshot = {%s %s %s}; want account data", created.ChefID, created.ChefName, created.ChefEmail)
	}
	if created.Rating != 0 {
		t.Errorf("new meal rating = %v; want 0", created.Rating)
	}
}

func TestUpdateAndDeleteAreOwnerOnly(t *testing.T) {
	fr := newFakeRepo()
	svc, _ := newTestService(fr)
	fr.meals["meal-1"] = &models.Meal{ID: "meal-1", FoodName: "Dumplings", ChefEmail: "chef@example.com"}

	name := "Fried Dumplings"
	if _, err := svc.Update(context.Background(), "meal-1", "other@example.com", models.UpdateMealRequest{FoodName: &name}); err != models.ErrForbidden {
		t.Errorf("non-owner Update error = %v; want ErrForbidden", err)
	}
	if err := svc.Delete(context.Background(), "meal-1", "other@example.com"); err != models.ErrForbidden {
		t.Errorf("non-owner Delete error = %v; want ErrForbidden", err)
	}

	updated, err := svc.Update(context.Background(), "meal-1", "chef@example.com", models.UpdateMealRequest{FoodName: &name})
	if err != nil {
		t.Fatalf("owner Update error: %v", err)
	}
	if updated.FoodName != "Fried Dumplings" {
		t.Errorf("FoodName = %s; want Fried Dumplings", updated.FoodName)
	}

	if err := svc.Delete(context.Background(), "meal-1", "chef@example.com"); err != nil {
		t.Fatalf("owner Delete error: %v", err)
	}
	if _, ok := fr.meals["meal-1"]; ok {
		t.Error("meal still present after Delete")
	}

	if _, err := svc.Update(context.Background(), "missing", "chef@example.com", models.UpdateMealRequest{}); err != models.ErrNotFound {
		t.Errorf("Update missing meal error = %v; want ErrNotFound", err)
	}
}

func TestListByChefClampsPaging(t *testing.T) {
	fr := newFakeRepo()
	svc, _ := newTestService(fr)

	if _, _, err := svc.ListByChef(context.Background(), "chef@example.com", -2, 0); err != nil {
		t.Fatalf("ListByChef error: %v", err)
	}
	if fr.lastPage != 1 || fr.lastLimit != 10 {
		t.Errorf("clamped paging = %d/%d; want 1/10", fr.lastPage, fr.lastLimit)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, limit, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 6, 5},
	}
	for _, tt := range cases {
		if got := models.TotalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d; want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

// An empty page must still serialize items as a JSON array, not null.
func TestEmptyListSerializesAsArray(t *testing.T) {
	body, err := json.Marshal(models.NewListResponse[*models.Meal](nil, 0, 10))
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if !strings.Contains(string(body), `"items":[]`) {
		t.Errorf("body = %s; want items as empty array", body)
	}

	resp := models.NewListResponse([]*models.Meal{{ID: "meal-1"}}, 1, 10)
	if len(resp.Items) != 1 || resp.TotalPages != 1 {
		t.Errorf("got %d items / %d pages; want 1/1", len(resp.Items), resp.TotalPages)
	}
}
