package reviews

import (
	"context"
	"fmt"
	"testing"

	"homechef-marketplace/internal/models"
)

type fakeRepo struct {
	reviews    map[string]*models.Review
	recomputed []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{reviews: make(map[string]*models.Review)}
}

func (f *fakeRepo) Create(ctx context.Context, rv *models.Review) (*models.Review, error) {
	cp := *rv
	cp.ID = fmt.Sprintf("review-%d", len(f.reviews)+1)
	f.reviews[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*models.Review, error) {
	rv, ok := f.reviews[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *rv
	return &cp, nil
}

func (f *fakeRepo) ListByFood(ctx context.Context, foodID string) ([]*models.Review, error) {
	var out []*models.Review
	for _, rv := range f.reviews {
		if rv.FoodID == foodID {
			cp := *rv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListLatest(ctx context.Context, limit int) ([]*models.Review, error) {
	var out []*models.Review
	for _, rv := range f.reviews {
		if len(out) == limit {
			break
		}
		cp := *rv
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRepo) ListByName(ctx context.Context, name string, page, limit int) ([]*models.Review, int, error) {
	var out []*models.Review
	for _, rv := range f.reviews {
		if rv.ReviewerName == name {
			cp := *rv
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) ListByEmail(ctx context.Context, email string) ([]*models.Review, error) {
	var out []*models.Review
	for _, rv := range f.reviews {
		if rv.ReviewerEmail == email {
			cp := *rv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, rating int, comment string) (*models.Review, error) {
	rv, ok := f.reviews[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	rv.Rating = rating
	rv.Comment = comment
	cp := *rv
	return &cp, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.reviews[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeRepo) RecomputeMealRating(ctx context.Context, foodID string) error {
	f.recomputed = append(f.recomputed, foodID)
	return nil
}

type fakeReviewerStore struct {
	users map[string]*models.User
}

func (f *fakeReviewerStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func newTestService(fr *fakeRepo) (*Service, *fakeReviewerStore) {
	rs := &fakeReviewerStore{users: make(map[string]*models.User)}
	return NewService(fr, rs), rs
}

func TestCreateSnapshotsReviewer(t *testing.T) {
	fr := newFakeRepo()
	svc, rs := newTestService(fr)
	rs.users["mei@example.com"] = &models.User{
		Name: "Mei", Email: "mei@example.com", Photo: "https://img.example/mei.png",
	}

	created, err := svc.Create(context.Background(), "mei@example.com", models.CreateReviewRequest{
		FoodID: "meal-1", Rating: 5, Comment: "Best dumplings in town",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.ReviewerName != "Mei" || created.ReviewerEmail != "mei@example.com" {
		t.Errorf("reviewer snapshot = %s/%s; want account data", created.ReviewerName, created.ReviewerEmail)
	}
	// No image in the request: fall back to the account photo.
	if created.ReviewerImage != "https://img.example/mei.png" {
		t.Errorf("ReviewerImage = %s; want account photo", created.ReviewerImage)
	}
	// The meal's aggregate rating is refreshed on every write.
	if len(fr.recomputed) != 1 || fr.recomputed[0] != "meal-1" {
		t.Errorf("recomputed = %v; want [meal-1]", fr.recomputed)
	}
}

// The lookup sentinel must reach the handler unwrapped so it maps to 404.
func TestCreateUnknownReviewer(t *testing.T) {
	fr := newFakeRepo()
	svc, _ := newTestService(fr)

	_, err := svc.Create(context.Background(), "ghost@example.com", models.CreateReviewRequest{
		FoodID: "meal-1", Rating: 5, Comment: "Best dumplings in town",
	})
	if err != models.ErrNotFound {
		t.Errorf("Create error = %v; want ErrNotFound", err)
	}
	if len(fr.reviews) != 0 {
		t.Error("review written despite unknown reviewer")
	}
}

func TestUpdateIsAuthorOnly(t *testing.T) {
	fr := newFakeRepo()
	svc, _ := newTestService(fr)
	fr.reviews["review-1"] = &models.Review{
		ID: "review-1", FoodID: "meal-1", ReviewerEmail: "mei@example.com", Rating: 5,
	}

	req := models.UpdateReviewRequest{Rating: 2, Comment: "Changed my mind entirely"}
	if _, err := svc.Update(context.Background(), "review-1", "other@example.com", req); err != models.ErrForbidden {
		t.Errorf("non-author Update error = %v; want ErrForbidden", err)
	}
	if len(fr.recomputed) != 0 {
		t.Error("rating recomputed despite refused update")
	}

	updated, err := svc.Update(context.Background(), "review-1", "mei@example.com", req)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Rating != 2 {
		t.Errorf("Rating = %d; want 2", updated.Rating)
	}
	if len(fr.recomputed) != 1 {
		t.Errorf("recomputed %d times; want 1", len(fr.recomputed))
	}
}

func TestDeleteIsAuthorOnlyAndRefreshes(t *testing.T) {
	fr := newFakeRepo()
	svc, _ := newTestService(fr)
	fr.reviews["review-1"] = &models.Review{
		ID: "review-1", FoodID: "meal-1", ReviewerEmail: "mei@example.com",
	}

	if err := svc.Delete(context.Background(), "review-1", "other@example.com"); err != models.ErrForbidden {
		t.Errorf("non-author Delete error = %v; want ErrForbidden", err)
	}

	if err := svc.Delete(context.Background(), "review-1", "mei@example.com"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, ok := fr.reviews["review-1"]; ok {
		t.Error("review still present after Delete")
	}
	if len(fr.recomputed) != 1 || fr.recomputed[0] != "meal-1" {
		t.Errorf("recomputed = %v; want [meal-1]", fr.recomputed)
	}

	if err := svc.Delete(context.Background(), "review-1", "mei@example.com"); err != models.ErrNotFound {
		t.Errorf("Delete missing review error = %v; want ErrNotFound", err)
	}
}

func TestListLatestClampsLimit(t *testing.T) {
	fr := newFakeRepo()
	svc, _ := newTestService(fr)
	for i := 0; i < 15; i++ {
		fr.reviews[fmt.Sprintf("review-%d", i)] = &models.Review{ID: fmt.Sprintf("review-%d", i)}
	}

	out, err := svc.ListLatest(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListLatest error: %v", err)
	}
	if len(out) != 10 {
		t.Errorf("got %d reviews; want clamped default of 10", len(out))
	}
}
