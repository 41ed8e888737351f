package restaurants

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"restaurant-graphql-api/internal/geo"
	"restaurant-graphql-api/internal/mongodb"
	"restaurant-graphql-api/internal/pagination"
)

// NearBy restricts a search to restaurants within Radius meters of Location.
type NearBy struct {
	Location geo.Location
	Radius   float64 `validate:"gte=0"`
}

// SearchQuery combines the optional search criteria. Zero-valued text
// filters and nil bounds are ignored.
type SearchQuery struct {
	NearBy   *NearBy
	Name     string
	Cuisine  string
	City     string
	MinPrice *float64 `validate:"omitnil,gte=0"`
	MaxPrice *float64 `validate:"omitnil,gte=0"`
	Page     pagination.Page
}

// BuildSearchPipeline translates q into an aggregation over the restaurants
// collection.
//
// With NearBy set the first stage is $geoNear, which orders results
// nearest-first, drops everything beyond the radius and writes the distance
// in meters to the "distance" field. Otherwise results are ordered by _id so
// pages are stable.
//
// A price bound joins each restaurant's foods and keeps the restaurant when
// its [min, max] food price range overlaps the requested bounds. Restaurants
// without foods never match a price bound.
func BuildSearchPipeline(q SearchQuery) mongo.Pipeline {
	filter := textFilter(q)

	var p mongo.Pipeline
	if q.NearBy != nil {
		p = append(p, bson.D{{Key: "$geoNear", Value: bson.D{
			{Key: "near", Value: geo.ToPoint(q.NearBy.Location)},
			{Key: "key", Value: "location"},
			{Key: "distanceField", Value: "distance"},
			{Key: "maxDistance", Value: q.NearBy.Radius},
			{Key: "spherical", Value: true},
			{Key: "query", Value: filter},
		}}})
	} else {
		p = append(p,
			bson.D{{Key: "$match", Value: filter}},
			bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		)
	}

	if q.MinPrice != nil || q.MaxPrice != nil {
		p = append(p, priceRangeStages(q.MinPrice, q.MaxPrice)...)
	}

	p = append(p,
		bson.D{{Key: "$skip", Value: int64(q.Page.Skip)}},
		bson.D{{Key: "$limit", Value: int64(q.Page.Limit)}},
	)
	return p
}

// textFilter ANDs case-insensitive substring matches. City is matched
// against the address.
func textFilter(q SearchQuery) bson.D {
	filter := bson.D{}
	for _, f := range []struct{ field, value string }{
		{"name", q.Name},
		{"cuisine", q.Cuisine},
		{"address", q.City},
	} {
		if f.value == "" {
			continue
		}
		filter = append(filter, bson.E{Key: f.field, Value: containsFold(f.value)})
	}
	return filter
}

func containsFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func priceRangeStages(minPrice, maxPrice *float64) []bson.D {
	// foods.restaurantId holds the hex string of the restaurant _id.
	lookup := bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: mongodb.Foods},
		{Key: "let", Value: bson.D{{Key: "rid", Value: bson.D{{Key: "$toString", Value: "$_id"}}}}},
		{Key: "pipeline", Value: bson.A{
			bson.D{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{
				{Key: "$eq", Value: bson.A{"$restaurantId", "$$rid"}},
			}}}}},
			bson.D{{Key: "$group", Value: bson.D{
				{Key: "_id", Value: nil},
				{Key: "minPrice", Value: bson.D{{Key: "$min", Value: "$price"}}},
				{Key: "maxPrice", Value: bson.D{{Key: "$max", Value: "$price"}}},
			}}},
		}},
		{Key: "as", Value: "priceRange"},
	}}}

	// $unwind drops restaurants whose lookup came back empty.
	unwind := bson.D{{Key: "$unwind", Value: "$priceRange"}}

	overlap := bson.D{}
	if minPrice != nil {
		overlap = append(overlap, bson.E{Key: "priceRange.maxPrice", Value: bson.D{{Key: "$gte", Value: *minPrice}}})
	}
	if maxPrice != nil {
		overlap = append(overlap, bson.E{Key: "priceRange.minPrice", Value: bson.D{{Key: "$lte", Value: *maxPrice}}})
	}

	return []bson.D{lookup, unwind, {{Key: "$match", Value: overlap}}}
}
