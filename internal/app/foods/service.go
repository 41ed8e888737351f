package foods

import (
	"context"

	"restaurant-graphql-api/internal/app/restaurants"
	"restaurant-graphql-api/internal/auth"
	"restaurant-graphql-api/internal/pagination"
	"restaurant-graphql-api/internal/validation"
)

type Food struct {
	ID           string
	Name         string
	Description  string
	Price        float64
	RestaurantID string
	CreatorID    string
}

type CreateInput struct {
	Name         string  `validate:"required,max=200"`
	Description  string  `validate:"max=2000"`
	Price        float64 `validate:"gte=0"`
	RestaurantID string  `validate:"required"`
}

// UpdateInput is a partial update. A food cannot move to another
// restaurant.
type UpdateInput struct {
	ID          string   `validate:"required"`
	Name        *string  `validate:"omitnil,min=1,max=200"`
	Description *string  `validate:"omitnil,max=2000"`
	Price       *float64 `validate:"omitnil,gte=0"`
}

// RestaurantFinder resolves the parent restaurant. It returns a NotFound
// error when the id does not exist.
type RestaurantFinder interface {
	Get(ctx context.Context, id string) (restaurants.Restaurant, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

type Service struct {
	repo        Repository
	restaurants RestaurantFinder
}

func NewService(repo Repository, restaurants RestaurantFinder) *Service {
	return &Service{repo: repo, restaurants: restaurants}
}

// Create adds a food to an existing restaurant. The food is owned by actor,
// not by the restaurant's creator.
func (s *Service) Create(ctx context.Context, actor auth.Identity, input CreateInput) (Food, error) {
	if err := validation.Struct(input); err != nil {
		return Food{}, err
	}
	rest, err := s.restaurants.Get(ctx, input.RestaurantID)
	if err != nil {
		return Food{}, err
	}
	return s.repo.Insert(ctx, Food{
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		RestaurantID: rest.ID,
		CreatorID:    actor.ID,
	})
}

func (s *Service) Get(ctx context.Context, id string) (Food, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, actor auth.Identity, input UpdateInput) (Food, error) {
	if err := validation.Struct(input); err != nil {
		return Food{}, err
	}
	if err := s.checkModifiable(ctx, actor, input.ID); err != nil {
		return Food{}, err
	}
	return s.repo.Update(ctx, input)
}

func (s *Service) Delete(ctx context.Context, actor auth.Identity, id string) error {
	if err := s.checkModifiable(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListByRestaurant pages through a restaurant's foods in insertion order.
func (s *Service) ListByRestaurant(ctx context.Context, restaurantID string, page pagination.Page) ([]Food, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	rest, err := s.restaurants.Get(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByRestaurant(ctx, rest.ID, page)
}

func (s *Service) checkModifiable(ctx context.Context, actor auth.Identity, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return auth.CheckOwnership(actor, existing.CreatorID)
}
