package reviews

import (
	"context"

	"restaurant-graphql-api/internal/app/restaurants"
	"restaurant-graphql-api/internal/auth"
	"restaurant-graphql-api/internal/pagination"
	"restaurant-graphql-api/internal/validation"
)

type Review struct {
	ID           string
	Rating       int
	Comment      string
	UserID       string
	RestaurantID string
}

type CreateInput struct {
	RestaurantID string `validate:"required"`
	Comment      string `validate:"max=5000"`
	Rating       int    `validate:"gte=0,lte=5"`
}

// RestaurantFinder resolves the reviewed restaurant.
type RestaurantFinder interface {
	Get(ctx context.Context, id string) (restaurants.Restaurant, error)
}

type Service struct {
	repo        Repository
	restaurants RestaurantFinder
}

func NewService(repo Repository, restaurants RestaurantFinder) *Service {
	return &Service{repo: repo, restaurants: restaurants}
}

// Create posts actor's review of a restaurant. A second review by the same
// user replaces the first.
func (s *Service) Create(ctx context.Context, actor auth.Identity, input CreateInput) (Review, error) {
	if err := validation.Struct(input); err != nil {
		return Review{}, err
	}
	rest, err := s.restaurants.Get(ctx, input.RestaurantID)
	if err != nil {
		return Review{}, err
	}
	return s.repo.Upsert(ctx, Review{
		Rating:       input.Rating,
		Comment:      input.Comment,
		UserID:       actor.ID,
		RestaurantID: rest.ID,
	})
}

func (s *Service) ListByRestaurant(ctx context.Context, restaurantID string, page pagination.Page) ([]Review, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	rest, err := s.restaurants.Get(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByRestaurant(ctx, rest.ID, page)
}
