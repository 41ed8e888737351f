// Package model holds the GraphQL types. gqlgen binds to them through
// autobind in gqlgen.yml instead of generating its own.
package model

import (
	"fmt"
	"io"
	"strconv"

	"restaurant-graphql-api/internal/auth"
)

type User struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Role auth.Role `json:"role"`
}

type AuthPayload struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type Location struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

type Contact struct {
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

type OpeningHour struct {
	Day   Weekday `json:"day"`
	Hours string  `json:"hours"`
}

type Restaurant struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Location     *Location      `json:"location"`
	Address      string         `json:"address"`
	Rating       float64        `json:"rating"`
	Cuisine      string         `json:"cuisine"`
	Contact      *Contact       `json:"contact,omitempty"`
	OpeningHours []*OpeningHour `json:"openingHours,omitempty"`

	// SearchDistance is the $geoNear distance in meters, if any. It backs
	// the distance field when no location argument is given.
	SearchDistance *float64 `json:"-"`
}

type Food struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	RestaurantID string  `json:"restaurantId"`
}

type Review struct {
	ID           string `json:"id"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	RestaurantID string `json:"restaurantId"`

	// UserID is resolved to a User by the user field resolver.
	UserID string `json:"-"`
}

// ---------------------------------------------------------------------------
// Inputs
// ---------------------------------------------------------------------------

type LocationInput struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

type NearByInput struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Radius    float64 `json:"radius"`
}

type ContactInput struct {
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

type OpeningHourInput struct {
	Day   Weekday `json:"day"`
	Hours string  `json:"hours"`
}

type PaginationInput struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

type SearchRestaurantsInput struct {
	NearBy   *NearByInput `json:"nearBy,omitempty"`
	Name     *string      `json:"name,omitempty"`
	Cuisine  *string      `json:"cuisine,omitempty"`
	City     *string      `json:"city,omitempty"`
	MinPrice *float64     `json:"minPrice,omitempty"`
	MaxPrice *float64     `json:"maxPrice,omitempty"`
	Skip     int          `json:"skip"`
	Limit    int          `json:"limit"`
}

type CreateRestaurantInput struct {
	Name         string              `json:"name"`
	Location     *LocationInput      `json:"location"`
	Address      string              `json:"address"`
	Rating       float64             `json:"rating"`
	Cuisine      string              `json:"cuisine"`
	Contact      *ContactInput       `json:"contact,omitempty"`
	OpeningHours []*OpeningHourInput `json:"openingHours,omitempty"`
}

type UpdateRestaurantInput struct {
	ID           string              `json:"id"`
	Name         *string             `json:"name,omitempty"`
	Location     *LocationInput      `json:"location,omitempty"`
	Address      *string             `json:"address,omitempty"`
	Rating       *float64            `json:"rating,omitempty"`
	Cuisine      *string             `json:"cuisine,omitempty"`
	Contact      *ContactInput       `json:"contact,omitempty"`
	OpeningHours []*OpeningHourInput `json:"openingHours,omitempty"`
}

type CreateFoodInput struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	RestaurantID string  `json:"restaurantId"`
}

type UpdateFoodInput struct {
	ID          string   `json:"id"`
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

type CreateReviewInput struct {
	RestaurantID string `json:"restaurantId"`
	Comment      string `json:"comment"`
	Rating       int    `json:"rating"`
}

type RegisterUserInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginUserInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ---------------------------------------------------------------------------
// Weekday enum
// ---------------------------------------------------------------------------

type Weekday string

const (
	WeekdayMonday    Weekday = "Monday"
	WeekdayTuesday   Weekday = "Tuesday"
	WeekdayWednesday Weekday = "Wednesday"
	WeekdayThursday  Weekday = "Thursday"
	WeekdayFriday    Weekday = "Friday"
	WeekdaySaturday  Weekday = "Saturday"
	WeekdaySunday    Weekday = "Sunday"
)

var AllWeekday = []Weekday{
	WeekdayMonday,
	WeekdayTuesday,
	WeekdayWednesday,
	WeekdayThursday,
	WeekdayFriday,
	WeekdaySaturday,
	WeekdaySunday,
}

func (e Weekday) IsValid() bool {
	switch e {
	case WeekdayMonday, WeekdayTuesday, WeekdayWednesday, WeekdayThursday, WeekdayFriday, WeekdaySaturday, WeekdaySunday:
		return true
	}
	return false
}

func (e Weekday) String() string {
	return string(e)
}

func (e *Weekday) UnmarshalGQL(v any) error {
	str, ok := v.(string)
	if !ok {
		return fmt.Errorf("enums must be strings")
	}

	*e = Weekday(str)
	if !e.IsValid() {
		return fmt.Errorf("%s is not a valid Weekday", str)
	}
	return nil
}

func (e Weekday) MarshalGQL(w io.Writer) {
	fmt.Fprint(w, strconv.Quote(e.String()))
}
