package graph

import (
	"restaurant-graphql-api/graph/model"
	"restaurant-graphql-api/internal/app/foods"
	"restaurant-graphql-api/internal/app/restaurants"
	"restaurant-graphql-api/internal/app/reviews"
	"restaurant-graphql-api/internal/app/users"
	"restaurant-graphql-api/internal/apperr"
	"restaurant-graphql-api/internal/geo"
	"restaurant-graphql-api/internal/pagination"
)

// ---------------------------------------------------------------------------
// Service -> GraphQL
// ---------------------------------------------------------------------------

func toUserModel(u users.User) *model.User {
	return &model.User{ID: u.ID, Name: u.Name, Role: u.Role}
}

func toAuthPayload(res users.AuthResult) *model.AuthPayload {
	return &model.AuthPayload{User: toUserModel(res.User), Token: res.Token}
}

func toRestaurantModel(r restaurants.Restaurant) *model.Restaurant {
	out := &model.Restaurant{
		ID:             r.ID,
		Name:           r.Name,
		Location:       &model.Location{Longitude: r.Location.Longitude, Latitude: r.Location.Latitude},
		Address:        r.Address,
		Rating:         r.Rating,
		Cuisine:        r.Cuisine,
		SearchDistance: r.Distance,
	}
	if r.Contact != nil {
		out.Contact = &model.Contact{
			Email: stringPtrOrNil(r.Contact.Email),
			Phone: stringPtrOrNil(r.Contact.Phone),
		}
	}
	if r.OpeningHours != nil {
		out.OpeningHours = make([]*model.OpeningHour, 0, len(r.OpeningHours))
		for _, h := range r.OpeningHours {
			out.OpeningHours = append(out.OpeningHours, &model.OpeningHour{
				Day:   model.Weekday(h.Day.String()),
				Hours: h.Hours,
			})
		}
	}
	return out
}

func toFoodModel(f foods.Food) *model.Food {
	return &model.Food{
		ID:           f.ID,
		Name:         f.Name,
		Description:  f.Description,
		Price:        f.Price,
		RestaurantID: f.RestaurantID,
	}
}

func toReviewModel(r reviews.Review) *model.Review {
	return &model.Review{
		ID:           r.ID,
		Rating:       r.Rating,
		Comment:      r.Comment,
		RestaurantID: r.RestaurantID,
		UserID:       r.UserID,
	}
}

// ---------------------------------------------------------------------------
// GraphQL -> service
// ---------------------------------------------------------------------------

func toLocation(in *model.LocationInput) geo.Location {
	if in == nil {
		return geo.Location{}
	}
	return geo.Location{Longitude: in.Longitude, Latitude: in.Latitude}
}

func toContact(in *model.ContactInput) *restaurants.Contact {
	if in == nil {
		return nil
	}
	return &restaurants.Contact{Email: derefString(in.Email), Phone: derefString(in.Phone)}
}

func toOpeningHours(in []*model.OpeningHourInput) ([]restaurants.OpeningHour, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]restaurants.OpeningHour, 0, len(in))
	for _, h := range in {
		if h == nil {
			continue
		}
		day, err := restaurants.ParseWeekday(string(h.Day))
		if err != nil {
			return nil, apperr.InvalidInput(err.Error())
		}
		out = append(out, restaurants.OpeningHour{Day: day, Hours: h.Hours})
	}
	return out, nil
}

func toCreateRestaurantInput(in model.CreateRestaurantInput) (restaurants.CreateInput, error) {
	hours, err := toOpeningHours(in.OpeningHours)
	if err != nil {
		return restaurants.CreateInput{}, err
	}
	return restaurants.CreateInput{
		Name:         in.Name,
		Location:     toLocation(in.Location),
		Address:      in.Address,
		Rating:       in.Rating,
		Cuisine:      in.Cuisine,
		Contact:      toContact(in.Contact),
		OpeningHours: hours,
	}, nil
}

func toUpdateRestaurantInput(in model.UpdateRestaurantInput) (restaurants.UpdateInput, error) {
	hours, err := toOpeningHours(in.OpeningHours)
	if err != nil {
		return restaurants.UpdateInput{}, err
	}
	out := restaurants.UpdateInput{
		ID:           in.ID,
		Name:         in.Name,
		Address:      in.Address,
		Rating:       in.Rating,
		Cuisine:      in.Cuisine,
		Contact:      toContact(in.Contact),
		OpeningHours: hours,
	}
	if in.Location != nil {
		loc := toLocation(in.Location)
		out.Location = &loc
	}
	return out, nil
}

func toSearchQuery(in model.SearchRestaurantsInput) restaurants.SearchQuery {
	q := restaurants.SearchQuery{
		Name:     derefString(in.Name),
		Cuisine:  derefString(in.Cuisine),
		City:     derefString(in.City),
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
		Page:     pagination.Page{Skip: in.Skip, Limit: in.Limit},
	}
	if in.NearBy != nil {
		q.NearBy = &restaurants.NearBy{
			Location: geo.Location{Longitude: in.NearBy.Longitude, Latitude: in.NearBy.Latitude},
			Radius:   in.NearBy.Radius,
		}
	}
	return q
}

func toPage(in *model.PaginationInput) pagination.Page {
	if in == nil {
		return pagination.Default()
	}
	return pagination.Page{Skip: in.Skip, Limit: in.Limit}
}
