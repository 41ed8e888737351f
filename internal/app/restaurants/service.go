package restaurants

import (
	"context"

	"restaurant-graphql-api/internal/auth"
	"restaurant-graphql-api/internal/geo"
	"restaurant-graphql-api/internal/validation"
)

type CreateInput struct {
	Name         string `validate:"required,max=200"`
	Location     geo.Location
	Address      string  `validate:"required,max=500"`
	Rating       float64 `validate:"gte=0,lte=5"`
	Cuisine      string  `validate:"required,max=100"`
	Contact      *Contact
	OpeningHours []OpeningHour `validate:"omitempty,dive"`
}

// UpdateInput is a partial update. Nil fields are left unchanged; a non-nil
// empty OpeningHours clears them.
type UpdateInput struct {
	ID           string        `validate:"required"`
	Name         *string       `validate:"omitnil,min=1,max=200"`
	Location     *geo.Location `validate:"omitnil"`
	Address      *string       `validate:"omitnil,min=1,max=500"`
	Rating       *float64      `validate:"omitnil,gte=0,lte=5"`
	Cuisine      *string       `validate:"omitnil,min=1,max=100"`
	Contact      *Contact      `validate:"omitnil"`
	OpeningHours []OpeningHour `validate:"omitempty,dive"`
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a restaurant owned by actor.
func (s *Service) Create(ctx context.Context, actor auth.Identity, input CreateInput) (Restaurant, error) {
	if err := validation.Struct(input); err != nil {
		return Restaurant{}, err
	}
	return s.repo.Insert(ctx, Restaurant{
		Name:         input.Name,
		Location:     input.Location,
		Address:      input.Address,
		Rating:       input.Rating,
		Cuisine:      input.Cuisine,
		Contact:      input.Contact,
		OpeningHours: input.OpeningHours,
		CreatorID:    actor.ID,
	})
}

func (s *Service) Get(ctx context.Context, id string) (Restaurant, error) {
	return s.repo.FindByID(ctx, id)
}

// Update requires actor to own the restaurant or be a superadmin.
func (s *Service) Update(ctx context.Context, actor auth.Identity, input UpdateInput) (Restaurant, error) {
	if err := validation.Struct(input); err != nil {
		return Restaurant{}, err
	}
	if err := s.checkModifiable(ctx, actor, input.ID); err != nil {
		return Restaurant{}, err
	}
	return s.repo.Update(ctx, input)
}

// Delete requires actor to own the restaurant or be a superadmin. The
// restaurant's foods and reviews go with it.
func (s *Service) Delete(ctx context.Context, actor auth.Identity, id string) error {
	if err := s.checkModifiable(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Search(ctx context.Context, q SearchQuery) ([]Restaurant, error) {
	if err := q.Page.Validate(); err != nil {
		return nil, err
	}
	if err := validation.Struct(q); err != nil {
		return nil, err
	}
	return s.repo.Search(ctx, q)
}

// checkModifiable loads the restaurant first so a missing id reports
// NotFound before any ownership decision.
func (s *Service) checkModifiable(ctx context.Context, actor auth.Identity, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return auth.CheckOwnership(actor, existing.CreatorID)
}
