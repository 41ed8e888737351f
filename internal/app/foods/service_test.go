package foods

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-graphql-api/internal/app/restaurants"
	"restaurant-graphql-api/internal/apperr"
	"restaurant-graphql-api/internal/auth"
	"restaurant-graphql-api/internal/pagination"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

// mockRestaurants knows a fixed set of restaurant ids. Like the Mongo
// repository it accepts any hex case and returns the lowercase id.
type mockRestaurants struct {
	known map[string]bool
}

func (m mockRestaurants) Get(_ context.Context, id string) (restaurants.Restaurant, error) {
	id = strings.ToLower(id)
	if !m.known[id] {
		return restaurants.Restaurant{}, apperr.NotFound("restaurant not found")
	}
	return restaurants.Restaurant{ID: id}, nil
}

type memRepo struct {
	nextID int
	byID   map[string]Food
	listFn func(restaurantID string, page pagination.Page) ([]Food, error)
}

func (m *memRepo) Insert(_ context.Context, f Food) (Food, error) {
	m.nextID++
	f.ID = fmt.Sprintf("%024x", m.nextID)
	m.byID[f.ID] = f
	return f, nil
}

func (m *memRepo) FindByID(_ context.Context, id string) (Food, error) {
	f, ok := m.byID[id]
	if !ok {
		return Food{}, errFoodNotFound
	}
	return f, nil
}

func (m *memRepo) Update(_ context.Context, in UpdateInput) (Food, error) {
	f, ok := m.byID[in.ID]
	if !ok {
		return Food{}, errFoodNotFound
	}
	if in.Name != nil {
		f.Name = *in.Name
	}
	if in.Description != nil {
		f.Description = *in.Description
	}
	if in.Price != nil {
		f.Price = *in.Price
	}
	m.byID[in.ID] = f
	return f, nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return errFoodNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memRepo) ListByRestaurant(_ context.Context, restaurantID string, page pagination.Page) ([]Food, error) {
	if m.listFn != nil {
		return m.listFn(restaurantID, page)
	}
	return nil, nil
}

const restaurantID = "64b7f0c2a1b2c3d4e5f60718"

var (
	owner      = auth.Identity{ID: "aaaaaaaaaaaaaaaaaaaaaaaa", Role: auth.RoleAdmin}
	otherAdmin = auth.Identity{ID: "bbbbbbbbbbbbbbbbbbbbbbbb", Role: auth.RoleAdmin}
	superadmin = auth.Identity{ID: "cccccccccccccccccccccccc", Role: auth.RoleSuperadmin}
)

func newTestService() (*Service, *memRepo) {
	repo := &memRepo{byID: map[string]Food{}}
	return NewService(repo, mockRestaurants{known: map[string]bool{restaurantID: true}}), repo
}

func ptr[T any](v T) *T { return &v }

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestCreate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	f, err := svc.Create(ctx, owner, CreateInput{Name: "Margherita", Description: "Tomato, mozzarella", Price: 8.5, RestaurantID: restaurantID})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, f.CreatorID)
	assert.Equal(t, restaurantID, f.RestaurantID)

	free, err := svc.Create(ctx, owner, CreateInput{Name: "Water", Price: 0, RestaurantID: restaurantID})
	require.NoError(t, err, "zero price is allowed")
	assert.Equal(t, 0.0, free.Price)
}

func TestCreate_StoresCanonicalRestaurantID(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	f, err := svc.Create(ctx, owner, CreateInput{Name: "Soup", Price: 4, RestaurantID: strings.ToUpper(restaurantID)})
	require.NoError(t, err)
	assert.Equal(t, restaurantID, f.RestaurantID)
	assert.Equal(t, restaurantID, repo.byID[f.ID].RestaurantID)

	var listedFor string
	repo.listFn = func(id string, _ pagination.Page) ([]Food, error) {
		listedFor = id
		return nil, nil
	}
	_, err = svc.ListByRestaurant(ctx, strings.ToUpper(restaurantID), pagination.Default())
	require.NoError(t, err)
	assert.Equal(t, restaurantID, listedFor)
}

func TestCreate_Rejections(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, owner, CreateInput{Name: "Pizza", Price: -1, RestaurantID: restaurantID})
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput), "negative price: got %v", err)

	_, err = svc.Create(ctx, owner, CreateInput{Name: "Pizza", Price: 5, RestaurantID: "ffffffffffffffffffffffff"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound), "unknown restaurant: got %v", err)

	assert.Empty(t, repo.byID)
}

func TestUpdateAndDelete_Ownership(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	f, err := svc.Create(ctx, owner, CreateInput{Name: "Pasta", Price: 12, RestaurantID: restaurantID})
	require.NoError(t, err)

	_, err = svc.Update(ctx, otherAdmin, UpdateInput{ID: f.ID, Price: ptr(1.0)})
	assert.True(t, apperr.Is(err, apperr.KindPermissionDenied), "got %v", err)
	assert.Equal(t, 12.0, repo.byID[f.ID].Price)

	updated, err := svc.Update(ctx, owner, UpdateInput{ID: f.ID, Price: ptr(13.5)})
	require.NoError(t, err)
	assert.Equal(t, 13.5, updated.Price)
	assert.Equal(t, "Pasta", updated.Name)

	_, err = svc.Update(ctx, owner, UpdateInput{ID: f.ID, Price: ptr(-2.0)})
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput), "got %v", err)

	err = svc.Delete(ctx, otherAdmin, f.ID)
	assert.True(t, apperr.Is(err, apperr.KindPermissionDenied), "got %v", err)

	require.NoError(t, svc.Delete(ctx, superadmin, f.ID))
	_, err = svc.Get(ctx, f.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound), "got %v", err)

	err = svc.Delete(ctx, superadmin, f.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound), "second delete: got %v", err)
}

func TestListByRestaurant(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	var gotPage pagination.Page
	repo.listFn = func(id string, page pagination.Page) ([]Food, error) {
		gotPage = page
		return []Food{{ID: "1", RestaurantID: id}}, nil
	}

	out, err := svc.ListByRestaurant(ctx, restaurantID, pagination.Page{Skip: 5, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, pagination.Page{Skip: 5, Limit: 5}, gotPage)

	_, err = svc.ListByRestaurant(ctx, "ffffffffffffffffffffffff", pagination.Default())
	assert.True(t, apperr.Is(err, apperr.KindNotFound), "got %v", err)

	_, err = svc.ListByRestaurant(ctx, restaurantID, pagination.Page{Limit: 500})
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput), "got %v", err)
}
