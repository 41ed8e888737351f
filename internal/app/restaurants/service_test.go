package restaurants

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-graphql-api/internal/apperr"
	"restaurant-graphql-api/internal/auth"
	"restaurant-graphql-api/internal/geo"
	"restaurant-graphql-api/internal/pagination"
)

// ---------------------------------------------------------------------------
// In-memory repository
// ---------------------------------------------------------------------------

type memRepo struct {
	nextID  int
	byID    map[string]Restaurant
	deleted []string
	// searchFn, when set, answers Search.
	searchFn func(q SearchQuery) ([]Restaurant, error)
}

func newMemRepo() *memRepo {
	return &memRepo{byID: map[string]Restaurant{}}
}

func (m *memRepo) Insert(_ context.Context, r Restaurant) (Restaurant, error) {
	m.nextID++
	r.ID = fmt.Sprintf("%024x", m.nextID)
	m.byID[r.ID] = r
	return r, nil
}

func (m *memRepo) FindByID(_ context.Context, id string) (Restaurant, error) {
	r, ok := m.byID[id]
	if !ok {
		return Restaurant{}, errRestaurantNotFound
	}
	return r, nil
}

func (m *memRepo) Update(_ context.Context, in UpdateInput) (Restaurant, error) {
	r, ok := m.byID[in.ID]
	if !ok {
		return Restaurant{}, errRestaurantNotFound
	}
	if in.Name != nil {
		r.Name = *in.Name
	}
	if in.Rating != nil {
		r.Rating = *in.Rating
	}
	if in.Location != nil {
		r.Location = *in.Location
	}
	m.byID[in.ID] = r
	return r, nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return errRestaurantNotFound
	}
	delete(m.byID, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *memRepo) Search(_ context.Context, q SearchQuery) ([]Restaurant, error) {
	if m.searchFn != nil {
		return m.searchFn(q)
	}
	return nil, nil
}

var (
	adminA     = auth.Identity{ID: "aaaaaaaaaaaaaaaaaaaaaaaa", Role: auth.RoleAdmin}
	adminB     = auth.Identity{ID: "bbbbbbbbbbbbbbbbbbbbbbbb", Role: auth.RoleAdmin}
	superadmin = auth.Identity{ID: "cccccccccccccccccccccccc", Role: auth.RoleSuperadmin}
)

func validCreateInput() CreateInput {
	return CreateInput{
		Name:     "Trattoria",
		Location: geo.Location{Longitude: 12.4964, Latitude: 41.9028},
		Address:  "Via Roma 1, Rome",
		Rating:   4.2,
		Cuisine:  "Italian",
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestCreate_SetsCreator(t *testing.T) {
	svc := NewService(newMemRepo())

	r, err := svc.Create(context.Background(), adminA, validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, adminA.ID, r.CreatorID)
	assert.NotEmpty(t, r.ID)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newMemRepo())

	tests := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"longitude too large", func(in *CreateInput) { in.Location.Longitude = 180.5 }},
		{"latitude too small", func(in *CreateInput) { in.Location.Latitude = -91 }},
		{"missing name", func(in *CreateInput) { in.Name = "" }},
		{"rating above 5", func(in *CreateInput) { in.Rating = 6 }},
		{"bad contact email", func(in *CreateInput) { in.Contact = &Contact{Email: "nope"} }},
		{"opening hours without hours", func(in *CreateInput) { in.OpeningHours = []OpeningHour{{Day: Friday}} }},
		{"unknown weekday", func(in *CreateInput) { in.OpeningHours = []OpeningHour{{Day: Weekday(9), Hours: "x"}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCreateInput()
			tt.mutate(&in)
			_, err := svc.Create(context.Background(), adminA, in)
			assert.True(t, apperr.Is(err, apperr.KindInvalidInput), "got %v", err)
		})
	}
}

// ---------------------------------------------------------------------------
// Update / Delete ownership
// ---------------------------------------------------------------------------

func TestUpdate_Ownership(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()
	r, err := svc.Create(ctx, adminA, validCreateInput())
	require.NoError(t, err)

	newName := "Osteria"
	_, err = svc.Update(ctx, adminB, UpdateInput{ID: r.ID, Name: &newName})
	assert.True(t, apperr.Is(err, apperr.KindPermissionDenied), "got %v", err)
	assert.Equal(t, "Trattoria", repo.byID[r.ID].Name, "denied update must not write")

	updated, err := svc.Update(ctx, adminA, UpdateInput{ID: r.ID, Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Osteria", updated.Name)
	assert.Equal(t, adminA.ID, updated.CreatorID)

	rating := 1.0
	updated, err = svc.Update(ctx, superadmin, UpdateInput{ID: r.ID, Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 1.0, updated.Rating)
}

func TestUpdate_MissingIsNotFoundBeforeOwnership(t *testing.T) {
	svc := NewService(newMemRepo())
	name := "x"
	_, err := svc.Update(context.Background(), adminB, UpdateInput{ID: "ffffffffffffffffffffffff", Name: &name})
	assert.True(t, apperr.Is(err, apperr.KindNotFound), "got %v", err)
}

func TestUpdate_Validation(t *testing.T) {
	svc := NewService(newMemRepo())
	bad := geo.Location{Longitude: 0, Latitude: 95}
	_, err := svc.Update(context.Background(), adminA, UpdateInput{ID: "x", Location: &bad})
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput), "got %v", err)
}

func TestDelete_Scenario(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	r, err := svc.Create(ctx, adminB, validCreateInput())
	require.NoError(t, err)

	err = svc.Delete(ctx, adminA, r.ID)
	assert.True(t, apperr.Is(err, apperr.KindPermissionDenied), "admin A: got %v", err)
	assert.Empty(t, repo.deleted)

	require.NoError(t, svc.Delete(ctx, superadmin, r.ID))
	assert.Equal(t, []string{r.ID}, repo.deleted)

	_, err = svc.Get(ctx, r.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound), "after delete: got %v", err)
}

// ---------------------------------------------------------------------------
// Search
// ---------------------------------------------------------------------------

func TestSearch_Validation(t *testing.T) {
	repo := newMemRepo()
	called := false
	repo.searchFn = func(SearchQuery) ([]Restaurant, error) {
		called = true
		return nil, nil
	}
	svc := NewService(repo)
	neg := -1.0

	bad := []SearchQuery{
		{MinPrice: &neg, Page: pagination.Default()},
		{MaxPrice: &neg, Page: pagination.Default()},
		{NearBy: &NearBy{Radius: -5}, Page: pagination.Default()},
		{NearBy: &NearBy{Location: geo.Location{Longitude: 200}}, Page: pagination.Default()},
		{Page: pagination.Page{Skip: -1, Limit: 10}},
		{Page: pagination.Page{Skip: 0, Limit: 0}},
	}
	for i, q := range bad {
		_, err := svc.Search(context.Background(), q)
		assert.True(t, apperr.Is(err, apperr.KindInvalidInput), "case %d: got %v", i, err)
	}
	assert.False(t, called, "invalid queries must not reach the repository")
}

func TestSearch_PassesQueryThrough(t *testing.T) {
	repo := newMemRepo()
	var got SearchQuery
	repo.searchFn = func(q SearchQuery) ([]Restaurant, error) {
		got = q
		return []Restaurant{{ID: "1"}}, nil
	}
	svc := NewService(repo)

	q := SearchQuery{Cuisine: "thai", Page: pagination.Page{Skip: 20, Limit: 10}}
	res, err := svc.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Len(t, res, 1)
	assert.Equal(t, q, got)
}
