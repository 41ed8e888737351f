package reviews

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

type mockRestaurants struct {
	getFn func(ctx context.Context, id string) (restaurants.Restaurant, error)
}

func (m mockRestaurants) Get(ctx context.Context, id string) (restaurants.Restaurant, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return restaurants.Restaurant{ID: strings.ToLower(id)}, nil
}

// memRepo keys reviews by (restaurantId, userId) like the unique index.
type memRepo struct {
	nextID int
	byPair map[[2]string]Review
}

func newMemRepo() *memRepo {
	return &memRepo{byPair: map[[2]string]Review{}}
}

func (m *memRepo) Upsert(_ context.Context, r Review) (Review, error) {
	key := [2]string{r.RestaurantID, r.UserID}
	if existing, ok := m.byPair[key]; ok {
		r.ID = existing.ID
	} else {
		m.nextID++
		r.ID = fmt.Sprintf("%024x", m.nextID)
	}
	m.byPair[key] = r
	return r, nil
}

func (m *memRepo) ListByRestaurant(_ context.Context, restaurantID string, _ pagination.Page) ([]Review, error) {
	var out []Review
	for _, r := range m.byPair {
		if r.RestaurantID == restaurantID {
			out = append(out, r)
		}
	}
	return out, nil
}

const restaurantID = "64b7f0c2a1b2c3d4e5f60718"

var reviewer = auth.Identity{ID: "aaaaaaaaaaaaaaaaaaaaaaaa", Role: auth.RoleUser}

func TestCreate_SecondReviewReplacesFirst(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, mockRestaurants{})
	ctx := context.Background()

	first, err := svc.Create(ctx, reviewer, CreateInput{RestaurantID: restaurantID, Comment: "ok", Rating: 2})
	require.NoError(t, err)
	second, err := svc.Create(ctx, reviewer, CreateInput{RestaurantID: restaurantID, Comment: "better now", Rating: 5})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, reviewer.ID, second.UserID)

	all, err := svc.ListByRestaurant(ctx, restaurantID, pagination.Default())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 5, all[0].Rating)
	assert.Equal(t, "better now", all[0].Comment)
}

func TestCreate_UppercaseRestaurantID(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, mockRestaurants{})
	ctx := context.Background()

	rev, err := svc.Create(ctx, reviewer, CreateInput{RestaurantID: strings.ToUpper(restaurantID), Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, restaurantID, rev.RestaurantID)

	_, err = svc.Create(ctx, reviewer, CreateInput{RestaurantID: restaurantID, Rating: 1})
	require.NoError(t, err)

	all, err := svc.ListByRestaurant(ctx, strings.ToUpper(restaurantID), pagination.Default())
	require.NoError(t, err)
	require.Len(t, all, 1, "both spellings address the same restaurant")
	assert.Equal(t, 1, all[0].Rating)
}

func TestCreate_RatingBounds(t *testing.T) {
	svc := NewService(newMemRepo(), mockRestaurants{})
	ctx := context.Background()

	for _, rating := range []int{0, 5} {
		_, err := svc.Create(ctx, reviewer, CreateInput{RestaurantID: restaurantID, Rating: rating})
		assert.NoError(t, err, "rating %d", rating)
	}
	for _, rating := range []int{-1, 6} {
		_, err := svc.Create(ctx, reviewer, CreateInput{RestaurantID: restaurantID, Rating: rating})
		assert.True(t, apperr.Is(err, apperr.KindInvalidInput), "rating %d: got %v", rating, err)
	}
}

func TestCreate_UnknownRestaurant(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, mockRestaurants{getFn: func(context.Context, string) (restaurants.Restaurant, error) {
		return restaurants.Restaurant{}, apperr.NotFound("restaurant not found")
	}})

	_, err := svc.Create(context.Background(), reviewer, CreateInput{RestaurantID: restaurantID, Rating: 3})
	assert.True(t, apperr.Is(err, apperr.KindNotFound), "got %v", err)
	assert.Empty(t, repo.byPair)
}

func TestListByRestaurant_InvalidPage(t *testing.T) {
	svc := NewService(newMemRepo(), mockRestaurants{})
	_, err := svc.ListByRestaurant(context.Background(), restaurantID, pagination.Page{Skip: -3, Limit: 10})
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput), "got %v", err)
}
