package graph_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant-graphql-api/graph"
	"restaurant-graphql-api/graph/model"
	"restaurant-graphql-api/internal/app/foods"
	"restaurant-graphql-api/internal/app/restaurants"
	"restaurant-graphql-api/internal/app/reviews"
	"restaurant-graphql-api/internal/app/users"
	"restaurant-graphql-api/internal/apperr"
	"restaurant-graphql-api/internal/auth"
	"restaurant-graphql-api/internal/geo"
	"restaurant-graphql-api/internal/logging"
	"restaurant-graphql-api/internal/pagination"
)

// ---------------------------------------------------------------------------
// Mock services
// ---------------------------------------------------------------------------

// Each method field can be overridden per test; the zero value returns an
// empty result and no error.

type mockUsers struct {
	registerFn   func(ctx context.Context, input users.RegisterInput) (users.AuthResult, error)
	loginFn      func(ctx context.Context, input users.LoginInput) (users.AuthResult, error)
	getFn        func(ctx context.Context, id string) (users.User, error)
	listFn       func(ctx context.Context) ([]users.User, error)
	changeRoleFn func(ctx context.Context, actor auth.Identity, userID string, role auth.Role) (users.User, error)
}

func (m *mockUsers) Register(ctx context.Context, input users.RegisterInput) (users.AuthResult, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, input)
	}
	return users.AuthResult{}, nil
}

func (m *mockUsers) Login(ctx context.Context, input users.LoginInput) (users.AuthResult, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, input)
	}
	return users.AuthResult{}, nil
}

func (m *mockUsers) Get(ctx context.Context, id string) (users.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return users.User{ID: id}, nil
}

func (m *mockUsers) List(ctx context.Context) ([]users.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockUsers) ChangeRole(ctx context.Context, actor auth.Identity, userID string, role auth.Role) (users.User, error) {
	if m.changeRoleFn != nil {
		return m.changeRoleFn(ctx, actor, userID, role)
	}
	return users.User{ID: userID, Role: role}, nil
}

type mockRestaurants struct {
	createFn func(ctx context.Context, actor auth.Identity, input restaurants.CreateInput) (restaurants.Restaurant, error)
	getFn    func(ctx context.Context, id string) (restaurants.Restaurant, error)
	updateFn func(ctx context.Context, actor auth.Identity, input restaurants.UpdateInput) (restaurants.Restaurant, error)
	deleteFn func(ctx context.Context, actor auth.Identity, id string) error
	searchFn func(ctx context.Context, q restaurants.SearchQuery) ([]restaurants.Restaurant, error)
}

func (m *mockRestaurants) Create(ctx context.Context, actor auth.Identity, input restaurants.CreateInput) (restaurants.Restaurant, error) {
	if m.createFn != nil {
		return m.createFn(ctx, actor, input)
	}
	return restaurants.Restaurant{}, nil
}

func (m *mockRestaurants) Get(ctx context.Context, id string) (restaurants.Restaurant, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return restaurants.Restaurant{ID: id}, nil
}

func (m *mockRestaurants) Update(ctx context.Context, actor auth.Identity, input restaurants.UpdateInput) (restaurants.Restaurant, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, actor, input)
	}
	return restaurants.Restaurant{ID: input.ID}, nil
}

func (m *mockRestaurants) Delete(ctx context.Context, actor auth.Identity, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, actor, id)
	}
	return nil
}

func (m *mockRestaurants) Search(ctx context.Context, q restaurants.SearchQuery) ([]restaurants.Restaurant, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return nil, nil
}

type mockFoods struct {
	createFn func(ctx context.Context, actor auth.Identity, input foods.CreateInput) (foods.Food, error)
	listFn   func(ctx context.Context, restaurantID string, page pagination.Page) ([]foods.Food, error)
}

func (m *mockFoods) Create(ctx context.Context, actor auth.Identity, input foods.CreateInput) (foods.Food, error) {
	if m.createFn != nil {
		return m.createFn(ctx, actor, input)
	}
	return foods.Food{}, nil
}

func (m *mockFoods) Get(_ context.Context, id string) (foods.Food, error) {
	return foods.Food{ID: id}, nil
}

func (m *mockFoods) Update(_ context.Context, _ auth.Identity, input foods.UpdateInput) (foods.Food, error) {
	return foods.Food{ID: input.ID}, nil
}

func (m *mockFoods) Delete(context.Context, auth.Identity, string) error {
	return nil
}

func (m *mockFoods) ListByRestaurant(ctx context.Context, restaurantID string, page pagination.Page) ([]foods.Food, error) {
	if m.listFn != nil {
		return m.listFn(ctx, restaurantID, page)
	}
	return nil, nil
}

type mockReviews struct {
	createFn func(ctx context.Context, actor auth.Identity, input reviews.CreateInput) (reviews.Review, error)
}

func (m *mockReviews) Create(ctx context.Context, actor auth.Identity, input reviews.CreateInput) (reviews.Review, error) {
	if m.createFn != nil {
		return m.createFn(ctx, actor, input)
	}
	return reviews.Review{}, nil
}

func (m *mockReviews) ListByRestaurant(context.Context, string, pagination.Page) ([]reviews.Review, error) {
	return nil, nil
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

const testSecret = "resolver-test-secret"

var tokens = auth.NewTokenManager(testSecret, time.Hour)

// authCtx returns a context carrying a valid bearer token for id.
func authCtx(t *testing.T, id auth.Identity) context.Context {
	t.Helper()
	token, err := tokens.Issue(id)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return auth.WithAuthorization(context.Background(), "Bearer "+token)
}

// noAuthCtx returns a plain context with no Authorization header.
func noAuthCtx() context.Context {
	return context.Background()
}

var (
	plainUser  = auth.Identity{ID: "111111111111111111111111", Email: "u@example.com", Role: auth.RoleUser}
	admin      = auth.Identity{ID: "222222222222222222222222", Email: "a@example.com", Role: auth.RoleAdmin}
	superadmin = auth.Identity{ID: "333333333333333333333333", Email: "s@example.com", Role: auth.RoleSuperadmin}
)

type services struct {
	users       *mockUsers
	restaurants *mockRestaurants
	foods       *mockFoods
	reviews     *mockReviews
}

// newResolver wires a Resolver backed by the provided mocks and a real guard.
func newResolver(s services) *graph.Resolver {
	if s.users == nil {
		s.users = &mockUsers{}
	}
	if s.restaurants == nil {
		s.restaurants = &mockRestaurants{}
	}
	if s.foods == nil {
		s.foods = &mockFoods{}
	}
	if s.reviews == nil {
		s.reviews = &mockReviews{}
	}
	return &graph.Resolver{
		Users:       s.users,
		Restaurants: s.restaurants,
		Foods:       s.foods,
		Reviews:     s.reviews,
		Guard:       auth.NewGuard(tokens),
		Logger:      logging.Discard(),
	}
}

// ---------------------------------------------------------------------------
// Authorization
// ---------------------------------------------------------------------------

func TestCreateRestaurant_Unauthenticated(t *testing.T) {
	called := false
	r := newResolver(services{restaurants: &mockRestaurants{
		createFn: func(context.Context, auth.Identity, restaurants.CreateInput) (restaurants.Restaurant, error) {
			called = true
			return restaurants.Restaurant{}, nil
		},
	}})

	_, err := r.Mutation().CreateRestaurant(noAuthCtx(), model.CreateRestaurantInput{Name: "x", Location: &model.LocationInput{}})
	if !apperr.Is(err, apperr.KindUnauthenticated) {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
	if called {
		t.Error("service must not be called without a token")
	}
}

func TestCreateRestaurant_RoleHierarchy(t *testing.T) {
	r := newResolver(services{})
	input := model.CreateRestaurantInput{Name: "x", Location: &model.LocationInput{}}

	_, err := r.Mutation().CreateRestaurant(authCtx(t, plainUser), input)
	if !apperr.Is(err, apperr.KindPermissionDenied) {
		t.Errorf("user: expected PermissionDenied, got %v", err)
	}
	for _, id := range []auth.Identity{admin, superadmin} {
		if _, err := r.Mutation().CreateRestaurant(authCtx(t, id), input); err != nil {
			t.Errorf("%s: unexpected error %v", id.Role, err)
		}
	}
}

func TestCreateRestaurant_PassesIdentity(t *testing.T) {
	var gotActor auth.Identity
	var gotInput restaurants.CreateInput
	r := newResolver(services{restaurants: &mockRestaurants{
		createFn: func(_ context.Context, actor auth.Identity, input restaurants.CreateInput) (restaurants.Restaurant, error) {
			gotActor, gotInput = actor, input
			return restaurants.Restaurant{ID: "r1", Name: input.Name, Location: input.Location}, nil
		},
	}})

	email := "info@example.com"
	_, err := r.Mutation().CreateRestaurant(authCtx(t, admin), model.CreateRestaurantInput{
		Name:     "Noodle Bar",
		Location: &model.LocationInput{Longitude: 2.35, Latitude: 48.85},
		Address:  "1 Rue X, Paris",
		Cuisine:  "Asian",
		Contact:  &model.ContactInput{Email: &email},
		OpeningHours: []*model.OpeningHourInput{
			{Day: model.WeekdayTuesday, Hours: "11-22"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotActor.ID != admin.ID || gotActor.Role != auth.RoleAdmin {
		t.Errorf("actor: got %+v", gotActor)
	}
	if gotInput.Location != (geo.Location{Longitude: 2.35, Latitude: 48.85}) {
		t.Errorf("location: got %+v", gotInput.Location)
	}
	if gotInput.Contact == nil || gotInput.Contact.Email != email || gotInput.Contact.Phone != "" {
		t.Errorf("contact: got %+v", gotInput.Contact)
	}
	if len(gotInput.OpeningHours) != 1 || gotInput.OpeningHours[0].Day != restaurants.Tuesday {
		t.Errorf("opening hours: got %+v", gotInput.OpeningHours)
	}
}

func TestGetAllUsers_RequiresSuperadmin(t *testing.T) {
	r := newResolver(services{users: &mockUsers{
		listFn: func(context.Context) ([]users.User, error) {
			return []users.User{{ID: "1", Name: "A"}, {ID: "2", Name: "B", Role: auth.RoleAdmin}}, nil
		},
	}})

	for _, id := range []auth.Identity{plainUser, admin} {
		if _, err := r.Query().GetAllUsers(authCtx(t, id)); !apperr.Is(err, apperr.KindPermissionDenied) {
			t.Errorf("%s: expected PermissionDenied, got %v", id.Role, err)
		}
	}

	list, err := r.Query().GetAllUsers(authCtx(t, superadmin))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 || list[1].Role != auth.RoleAdmin {
		t.Errorf("unexpected users %+v", list)
	}
}

func TestUser_ReturnsCaller(t *testing.T) {
	var gotID string
	r := newResolver(services{users: &mockUsers{
		getFn: func(_ context.Context, id string) (users.User, error) {
			gotID = id
			return users.User{ID: id, Name: "Me", Role: auth.RoleUser}, nil
		},
	}})

	u, err := r.Query().User(authCtx(t, plainUser))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotID != plainUser.ID || u.Name != "Me" {
		t.Errorf("got id %q, user %+v", gotID, u)
	}

	if _, err := r.Query().User(noAuthCtx()); !apperr.Is(err, apperr.KindUnauthenticated) {
		t.Errorf("expected Unauthenticated, got %v", err)
	}
}

func TestChangeRole_ForwardsActor(t *testing.T) {
	var gotActor auth.Identity
	r := newResolver(services{users: &mockUsers{
		changeRoleFn: func(_ context.Context, actor auth.Identity, userID string, role auth.Role) (users.User, error) {
			gotActor = actor
			return users.User{ID: userID, Role: role}, nil
		},
	}})

	u, err := r.Mutation().ChangeRole(authCtx(t, superadmin), "u1", auth.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotActor.ID != superadmin.ID || u.Role != auth.RoleAdmin {
		t.Errorf("actor %+v, user %+v", gotActor, u)
	}
	if _, err := r.Mutation().ChangeRole(authCtx(t, admin), "u1", auth.RoleAdmin); !apperr.Is(err, apperr.KindPermissionDenied) {
		t.Errorf("admin: expected PermissionDenied, got %v", err)
	}
}

func TestCreateReview_RequiresLogin(t *testing.T) {
	var gotActor auth.Identity
	r := newResolver(services{reviews: &mockReviews{
		createFn: func(_ context.Context, actor auth.Identity, input reviews.CreateInput) (reviews.Review, error) {
			gotActor = actor
			return reviews.Review{ID: "rv", UserID: actor.ID, Rating: input.Rating}, nil
		},
	}})
	input := model.CreateReviewInput{RestaurantID: "r1", Comment: "nice", Rating: 4}

	if _, err := r.Mutation().CreateReview(noAuthCtx(), input); !apperr.Is(err, apperr.KindUnauthenticated) {
		t.Errorf("expected Unauthenticated, got %v", err)
	}
	rev, err := r.Mutation().CreateReview(authCtx(t, plainUser), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotActor.ID != plainUser.ID || rev.UserID != plainUser.ID || rev.Rating != 4 {
		t.Errorf("actor %+v, review %+v", gotActor, rev)
	}
}

func TestInvalidTokenIsUnauthenticated(t *testing.T) {
	r := newResolver(services{})
	ctx := auth.WithAuthorization(context.Background(), "Bearer not.a.token")

	_, err := r.Mutation().DeleteFood(ctx, "f1")
	if !apperr.Is(err, apperr.KindUnauthenticated) {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Public queries
// ---------------------------------------------------------------------------

func TestRestaurants_SearchMapping(t *testing.T) {
	var got restaurants.SearchQuery
	dist := 1234.4
	r := newResolver(services{restaurants: &mockRestaurants{
		searchFn: func(_ context.Context, q restaurants.SearchQuery) ([]restaurants.Restaurant, error) {
			got = q
			return []restaurants.Restaurant{{
				ID:           "r1",
				Name:         "Sushi Place",
				Location:     geo.Location{Longitude: 139.69, Latitude: 35.68},
				Contact:      &restaurants.Contact{Phone: "+81312345678"},
				OpeningHours: []restaurants.OpeningHour{{Day: restaurants.Sunday, Hours: "12-20"}},
				Distance:     &dist,
			}}, nil
		},
	}})

	name := "sushi"
	maxPrice := 30.0
	result, err := r.Query().Restaurants(noAuthCtx(), model.SearchRestaurantsInput{
		NearBy:   &model.NearByInput{Longitude: 139.7, Latitude: 35.7, Radius: 5000},
		Name:     &name,
		MaxPrice: &maxPrice,
		Skip:     10,
		Limit:    5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.NearBy == nil || got.NearBy.Radius != 5000 || got.NearBy.Location.Longitude != 139.7 {
		t.Errorf("nearBy: got %+v", got.NearBy)
	}
	if got.Name != "sushi" || got.Cuisine != "" || got.MinPrice != nil || *got.MaxPrice != 30 {
		t.Errorf("filters: got %+v", got)
	}
	if got.Page != (pagination.Page{Skip: 10, Limit: 5}) {
		t.Errorf("page: got %+v", got.Page)
	}

	if len(result) != 1 {
		t.Fatalf("expected 1 restaurant, got %d", len(result))
	}
	rest := result[0]
	if rest.Location.Longitude != 139.69 || rest.Location.Latitude != 35.68 {
		t.Errorf("location: got %+v", rest.Location)
	}
	if rest.Contact == nil || rest.Contact.Email != nil || *rest.Contact.Phone != "+81312345678" {
		t.Errorf("contact: got %+v", rest.Contact)
	}
	if len(rest.OpeningHours) != 1 || rest.OpeningHours[0].Day != model.WeekdaySunday {
		t.Errorf("opening hours: got %+v", rest.OpeningHours)
	}

	d, err := r.Restaurant().Distance(noAuthCtx(), rest, nil)
	if err != nil || d == nil || *d != 1234 {
		t.Errorf("search distance: got %v, %v", d, err)
	}
}

func TestRestaurantDistance(t *testing.T) {
	r := newResolver(services{})
	obj := &model.Restaurant{ID: "r1", Location: &model.Location{Longitude: 0, Latitude: 0}}

	d, err := r.Restaurant().Distance(noAuthCtx(), obj, nil)
	if err != nil || d != nil {
		t.Errorf("no argument and no search distance: want nil, got %v, %v", d, err)
	}

	// One degree of latitude on the mean-radius sphere.
	d, err = r.Restaurant().Distance(noAuthCtx(), obj, &model.LocationInput{Longitude: 0, Latitude: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d == nil || *d != 111195 {
		t.Errorf("want 111195 m, got %v", d)
	}

	_, err = r.Restaurant().Distance(noAuthCtx(), obj, &model.LocationInput{Longitude: 0, Latitude: 120})
	if !apperr.Is(err, apperr.KindInvalidInput) {
		t.Errorf("out of range latitude: expected InvalidInput, got %v", err)
	}
}

func TestRestaurant_NotFound(t *testing.T) {
	r := newResolver(services{restaurants: &mockRestaurants{
		getFn: func(context.Context, string) (restaurants.Restaurant, error) {
			return restaurants.Restaurant{}, apperr.NotFound("restaurant not found")
		},
	}})

	_, err := r.Query().Restaurant(noAuthCtx(), "missing")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestFoods_DefaultPagination(t *testing.T) {
	var gotPage pagination.Page
	r := newResolver(services{foods: &mockFoods{
		listFn: func(_ context.Context, _ string, page pagination.Page) ([]foods.Food, error) {
			gotPage = page
			return []foods.Food{{ID: "f1", Price: 9.5, RestaurantID: "r1"}}, nil
		},
	}})

	list, err := r.Query().Foods(noAuthCtx(), "r1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPage != pagination.Default() {
		t.Errorf("page: got %+v", gotPage)
	}
	if len(list) != 1 || list[0].Price != 9.5 || list[0].RestaurantID != "r1" {
		t.Errorf("unexpected foods %+v", list)
	}
}

func TestReviewUser(t *testing.T) {
	r := newResolver(services{users: &mockUsers{
		getFn: func(_ context.Context, id string) (users.User, error) {
			if id == "gone" {
				return users.User{}, apperr.NotFound("user not found")
			}
			if id == "broken" {
				return users.User{}, errors.New("connection reset")
			}
			return users.User{ID: id, Name: "Reviewer"}, nil
		},
	}})

	u, err := r.Review().User(noAuthCtx(), &model.Review{UserID: "u1"})
	if err != nil || u == nil || u.Name != "Reviewer" {
		t.Errorf("got %+v, %v", u, err)
	}

	u, err = r.Review().User(noAuthCtx(), &model.Review{UserID: "gone"})
	if err != nil || u != nil {
		t.Errorf("deleted user: want nil, got %+v, %v", u, err)
	}

	if _, err := r.Review().User(noAuthCtx(), &model.Review{UserID: "broken"}); err == nil {
		t.Error("database errors must propagate")
	}
}

func TestLogin_ErrorPropagates(t *testing.T) {
	r := newResolver(services{users: &mockUsers{
		loginFn: func(context.Context, users.LoginInput) (users.AuthResult, error) {
			return users.AuthResult{}, apperr.ErrInvalidCredentials
		},
	}})

	_, err := r.Mutation().Login(noAuthCtx(), model.LoginUserInput{Email: "x@example.com", Password: "nope"})
	if !errors.Is(err, apperr.ErrInvalidCredentials) {
		t.Fatalf("expected InvalidCredentials, got %v", err)
	}
}
