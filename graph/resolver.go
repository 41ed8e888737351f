package graph

//go:generate go run github.com/99designs/gqlgen generate

// This file will not be regenerated automatically.
//
// It serves as dependency injection for your app, add any dependencies you require here.

import (
	"context"
	"log/slog"

	"restaurant-graphql-api/internal/app/foods"
	"restaurant-graphql-api/internal/app/restaurants"
	"restaurant-graphql-api/internal/app/reviews"
	"restaurant-graphql-api/internal/app/users"
	"restaurant-graphql-api/internal/auth"
	"restaurant-graphql-api/internal/pagination"
)

// The service interfaces below are satisfied by the *Service types of the
// matching internal/app packages. Tests inject lightweight mocks instead.

type UserService interface {
	Register(ctx context.Context, input users.RegisterInput) (users.AuthResult, error)
	Login(ctx context.Context, input users.LoginInput) (users.AuthResult, error)
	Get(ctx context.Context, id string) (users.User, error)
	List(ctx context.Context) ([]users.User, error)
	ChangeRole(ctx context.Context, actor auth.Identity, userID string, role auth.Role) (users.User, error)
}

type RestaurantService interface {
	Create(ctx context.Context, actor auth.Identity, input restaurants.CreateInput) (restaurants.Restaurant, error)
	Get(ctx context.Context, id string) (restaurants.Restaurant, error)
	Update(ctx context.Context, actor auth.Identity, input restaurants.UpdateInput) (restaurants.Restaurant, error)
	Delete(ctx context.Context, actor auth.Identity, id string) error
	Search(ctx context.Context, q restaurants.SearchQuery) ([]restaurants.Restaurant, error)
}

type FoodService interface {
	Create(ctx context.Context, actor auth.Identity, input foods.CreateInput) (foods.Food, error)
	Get(ctx context.Context, id string) (foods.Food, error)
	Update(ctx context.Context, actor auth.Identity, input foods.UpdateInput) (foods.Food, error)
	Delete(ctx context.Context, actor auth.Identity, id string) error
	ListByRestaurant(ctx context.Context, restaurantID string, page pagination.Page) ([]foods.Food, error)
}

type ReviewService interface {
	Create(ctx context.Context, actor auth.Identity, input reviews.CreateInput) (reviews.Review, error)
	ListByRestaurant(ctx context.Context, restaurantID string, page pagination.Page) ([]reviews.Review, error)
}

// Authorizer checks a request against an operation's policy.
// *auth.Guard implements it.
type Authorizer interface {
	Authorize(ctx context.Context, p auth.Policy) (auth.Identity, error)
}

// Resolver is the root dependency-injection struct wired in cmd/api/main.go.
type Resolver struct {
	Users       UserService
	Restaurants RestaurantService
	Foods       FoodService
	Reviews     ReviewService
	Guard       Authorizer
	Logger      *slog.Logger
}

// stringPtrOrNil converts an empty string to nil and a non-empty string to a
// pointer. Used when mapping service layer strings to nullable GraphQL fields.
func stringPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
