package graph

// This file will be automatically regenerated based on the schema, any resolver implementations
// will be copied through when generating and any unknown code will be moved to the end.
// Code generated by github.com/99designs/gqlgen version v0.17.87

import (
	"context"
	"math"

	"restaurant-graphql-api/graph/model"
	"restaurant-graphql-api/internal/app/foods"
	"restaurant-graphql-api/internal/app/reviews"
	"restaurant-graphql-api/internal/app/users"
	"restaurant-graphql-api/internal/apperr"
	"restaurant-graphql-api/internal/auth"
	"restaurant-graphql-api/internal/geo"
	"restaurant-graphql-api/internal/validation"
)

// Register is the resolver for the register field.
func (r *mutationResolver) Register(ctx context.Context, input model.RegisterUserInput) (*model.AuthPayload, error) {
	res, err := r.Users.Register(ctx, users.RegisterInput{
		Email:    input.Email,
		Name:     input.Name,
		Password: input.Password,
	})
	if err != nil {
		return nil, err
	}
	return toAuthPayload(res), nil
}

// Login is the resolver for the login field.
func (r *mutationResolver) Login(ctx context.Context, input model.LoginUserInput) (*model.AuthPayload, error) {
	res, err := r.Users.Login(ctx, users.LoginInput{Email: input.Email, Password: input.Password})
	if err != nil {
		return nil, err
	}
	return toAuthPayload(res), nil
}

// ChangeRole is the resolver for the changeRole field.
func (r *mutationResolver) ChangeRole(ctx context.Context, userID string, newRole auth.Role) (*model.User, error) {
	actor, err := r.authorize(ctx, "changeRole")
	if err != nil {
		return nil, err
	}
	u, err := r.Users.ChangeRole(ctx, actor, userID, newRole)
	if err != nil {
		return nil, err
	}
	return toUserModel(u), nil
}

// CreateRestaurant is the resolver for the createRestaurant field.
func (r *mutationResolver) CreateRestaurant(ctx context.Context, input model.CreateRestaurantInput) (*model.Restaurant, error) {
	actor, err := r.authorize(ctx, "createRestaurant")
	if err != nil {
		return nil, err
	}
	in, err := toCreateRestaurantInput(input)
	if err != nil {
		return nil, err
	}
	rest, err := r.Restaurants.Create(ctx, actor, in)
	if err != nil {
		return nil, err
	}
	return toRestaurantModel(rest), nil
}

// UpdateRestaurant is the resolver for the updateRestaurant field.
func (r *mutationResolver) UpdateRestaurant(ctx context.Context, input model.UpdateRestaurantInput) (*model.Restaurant, error) {
	actor, err := r.authorize(ctx, "updateRestaurant")
	if err != nil {
		return nil, err
	}
	in, err := toUpdateRestaurantInput(input)
	if err != nil {
		return nil, err
	}
	rest, err := r.Restaurants.Update(ctx, actor, in)
	if err != nil {
		return nil, err
	}
	return toRestaurantModel(rest), nil
}

// DeleteRestaurant is the resolver for the deleteRestaurant field.
func (r *mutationResolver) DeleteRestaurant(ctx context.Context, id string) (bool, error) {
	actor, err := r.authorize(ctx, "deleteRestaurant")
	if err != nil {
		return false, err
	}
	if err := r.Restaurants.Delete(ctx, actor, id); err != nil {
		return false, err
	}
	return true, nil
}

// CreateFood is the resolver for the createFood field.
func (r *mutationResolver) CreateFood(ctx context.Context, input model.CreateFoodInput) (*model.Food, error) {
	actor, err := r.authorize(ctx, "createFood")
	if err != nil {
		return nil, err
	}
	f, err := r.Foods.Create(ctx, actor, foods.CreateInput{
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		RestaurantID: input.RestaurantID,
	})
	if err != nil {
		return nil, err
	}
	return toFoodModel(f), nil
}

// UpdateFood is the resolver for the updateFood field.
func (r *mutationResolver) UpdateFood(ctx context.Context, input model.UpdateFoodInput) (*model.Food, error) {
	actor, err := r.authorize(ctx, "updateFood")
	if err != nil {
		return nil, err
	}
	f, err := r.Foods.Update(ctx, actor, foods.UpdateInput{
		ID:          input.ID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
	})
	if err != nil {
		return nil, err
	}
	return toFoodModel(f), nil
}

// DeleteFood is the resolver for the deleteFood field.
func (r *mutationResolver) DeleteFood(ctx context.Context, id string) (bool, error) {
	actor, err := r.authorize(ctx, "deleteFood")
	if err != nil {
		return false, err
	}
	if err := r.Foods.Delete(ctx, actor, id); err != nil {
		return false, err
	}
	return true, nil
}

// CreateReview is the resolver for the createReview field.
func (r *mutationResolver) CreateReview(ctx context.Context, input model.CreateReviewInput) (*model.Review, error) {
	actor, err := r.authorize(ctx, "createReview")
	if err != nil {
		return nil, err
	}
	rev, err := r.Reviews.Create(ctx, actor, reviews.CreateInput{
		RestaurantID: input.RestaurantID,
		Comment:      input.Comment,
		Rating:       input.Rating,
	})
	if err != nil {
		return nil, err
	}
	return toReviewModel(rev), nil
}

// User is the resolver for the user field.
func (r *queryResolver) User(ctx context.Context) (*model.User, error) {
	actor, err := r.authorize(ctx, "user")
	if err != nil {
		return nil, err
	}
	u, err := r.Users.Get(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return toUserModel(u), nil
}

// GetAllUsers is the resolver for the getAllUsers field.
func (r *queryResolver) GetAllUsers(ctx context.Context) ([]*model.User, error) {
	if _, err := r.authorize(ctx, "getAllUsers"); err != nil {
		return nil, err
	}
	list, err := r.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.User, 0, len(list))
	for _, u := range list {
		out = append(out, toUserModel(u))
	}
	return out, nil
}

// Restaurant is the resolver for the restaurant field.
func (r *queryResolver) Restaurant(ctx context.Context, id string) (*model.Restaurant, error) {
	rest, err := r.Resolver.Restaurants.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRestaurantModel(rest), nil
}

// Restaurants is the resolver for the restaurants field.
func (r *queryResolver) Restaurants(ctx context.Context, query model.SearchRestaurantsInput) ([]*model.Restaurant, error) {
	list, err := r.Resolver.Restaurants.Search(ctx, toSearchQuery(query))
	if err != nil {
		return nil, err
	}
	out := make([]*model.Restaurant, 0, len(list))
	for _, rest := range list {
		out = append(out, toRestaurantModel(rest))
	}
	return out, nil
}

// Food is the resolver for the food field.
func (r *queryResolver) Food(ctx context.Context, id string) (*model.Food, error) {
	f, err := r.Resolver.Foods.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toFoodModel(f), nil
}

// Foods is the resolver for the foods field.
func (r *queryResolver) Foods(ctx context.Context, restaurantID string, pagination *model.PaginationInput) ([]*model.Food, error) {
	list, err := r.Resolver.Foods.ListByRestaurant(ctx, restaurantID, toPage(pagination))
	if err != nil {
		return nil, err
	}
	out := make([]*model.Food, 0, len(list))
	for _, f := range list {
		out = append(out, toFoodModel(f))
	}
	return out, nil
}

// Reviews is the resolver for the reviews field.
func (r *queryResolver) Reviews(ctx context.Context, restaurantID string, pagination *model.PaginationInput) ([]*model.Review, error) {
	list, err := r.Resolver.Reviews.ListByRestaurant(ctx, restaurantID, toPage(pagination))
	if err != nil {
		return nil, err
	}
	out := make([]*model.Review, 0, len(list))
	for _, rev := range list {
		out = append(out, toReviewModel(rev))
	}
	return out, nil
}

// Distance is the resolver for the distance field.
func (r *restaurantResolver) Distance(ctx context.Context, obj *model.Restaurant, location *model.LocationInput) (*int, error) {
	if location == nil {
		if obj.SearchDistance == nil {
			return nil, nil
		}
		d := int(math.Round(*obj.SearchDistance))
		return &d, nil
	}

	to := toLocation(location)
	if err := validation.Struct(to); err != nil {
		return nil, err
	}
	var from geo.Location
	if obj.Location != nil {
		from = geo.Location{Longitude: obj.Location.Longitude, Latitude: obj.Location.Latitude}
	}
	d := int(math.Round(geo.Distance(from, to)))
	return &d, nil
}

// User is the resolver for the user field.
func (r *reviewResolver) User(ctx context.Context, obj *model.Review) (*model.User, error) {
	u, err := r.Users.Get(ctx, obj.UserID)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toUserModel(u), nil
}

// Mutation returns MutationResolver implementation.
func (r *Resolver) Mutation() MutationResolver { return &mutationResolver{r} }

// Query returns QueryResolver implementation.
func (r *Resolver) Query() QueryResolver { return &queryResolver{r} }

// Restaurant returns RestaurantResolver implementation.
func (r *Resolver) Restaurant() RestaurantResolver { return &restaurantResolver{r} }

// Review returns ReviewResolver implementation.
func (r *Resolver) Review() ReviewResolver { return &reviewResolver{r} }

type mutationResolver struct{ *Resolver }
type queryResolver struct{ *Resolver }
type restaurantResolver struct{ *Resolver }
type reviewResolver struct{ *Resolver }
