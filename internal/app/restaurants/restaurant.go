package restaurants

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"restaurant-graphql-api/internal/geo"
)

// Weekday is stored as its ordinal, Monday first.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (d Weekday) IsValid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) String() string {
	if !d.IsValid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// ParseWeekday accepts the English day name, e.g. "Monday".
func ParseWeekday(s string) (Weekday, error) {
	for i, name := range weekdayNames {
		if name == s {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// ---------------------------------------------------------------------------
// Domain types (passed to/from resolvers)
// ---------------------------------------------------------------------------

type Contact struct {
	Email string `bson:"email,omitempty" validate:"omitempty,email"`
	Phone string `bson:"phone,omitempty" validate:"omitempty,e164"`
}

type OpeningHour struct {
	Day   Weekday `bson:"day" validate:"gte=0,lte=6"`
	Hours string  `bson:"hours" validate:"required,max=100"`
}

type Restaurant struct {
	ID           string
	Name         string
	Location     geo.Location
	Address      string
	Rating       float64
	Cuisine      string
	Contact      *Contact
	OpeningHours []OpeningHour
	CreatorID    string

	// Distance is set in meters when the restaurant came from a
	// proximity search.
	Distance *float64
}

// restaurantDocument is the stored shape. Location is kept as a GeoJSON
// point so the 2dsphere index and $geoNear can use it.
type restaurantDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Location     geo.Point          `bson:"location"`
	Address      string             `bson:"address"`
	Rating       float64            `bson:"rating"`
	Cuisine      string             `bson:"cuisine"`
	Contact      *Contact           `bson:"contact,omitempty"`
	OpeningHours []OpeningHour      `bson:"openingHours,omitempty"`
	CreatorID    string             `bson:"creatorId"`
	Distance     *float64           `bson:"distance,omitempty"`
}

func toDocument(r Restaurant) restaurantDocument {
	return restaurantDocument{
		Name:         r.Name,
		Location:     geo.ToPoint(r.Location),
		Address:      r.Address,
		Rating:       r.Rating,
		Cuisine:      r.Cuisine,
		Contact:      r.Contact,
		OpeningHours: r.OpeningHours,
		CreatorID:    r.CreatorID,
	}
}

func (d restaurantDocument) toRestaurant() (Restaurant, error) {
	loc, err := d.Location.ToLocation()
	if err != nil {
		return Restaurant{}, fmt.Errorf("restaurant %s: %w", d.ID.Hex(), err)
	}
	return Restaurant{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Location:     loc,
		Address:      d.Address,
		Rating:       d.Rating,
		Cuisine:      d.Cuisine,
		Contact:      d.Contact,
		OpeningHours: d.OpeningHours,
		CreatorID:    d.CreatorID,
		Distance:     d.Distance,
	}, nil
}
