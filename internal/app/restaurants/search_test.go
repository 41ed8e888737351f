package restaurants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"restaurant-graphql-api/internal/geo"
	"restaurant-graphql-api/internal/pagination"
)

func ptr[T any](v T) *T { return &v }

func stageNames(t *testing.T, p []bson.D) []string {
	t.Helper()
	names := make([]string, 0, len(p))
	for _, stage := range p {
		require.Len(t, stage, 1, "each stage has exactly one operator")
		names = append(names, stage[0].Key)
	}
	return names
}

func stageValue(stage bson.D) bson.D {
	return stage[0].Value.(bson.D)
}

func lookup(d bson.D, key string) any {
	for _, e := range d {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

func TestBuildSearchPipeline_NoCriteria(t *testing.T) {
	p := BuildSearchPipeline(SearchQuery{Page: pagination.Default()})

	assert.Equal(t, []string{"$match", "$sort", "$skip", "$limit"}, stageNames(t, p))
	assert.Equal(t, bson.D{}, p[0][0].Value)
	assert.Equal(t, bson.D{{Key: "_id", Value: 1}}, p[1][0].Value)
	assert.Equal(t, int64(0), p[2][0].Value)
	assert.Equal(t, int64(pagination.DefaultLimit), p[3][0].Value)
}

func TestBuildSearchPipeline_TextFiltersAreEscapedAndCaseInsensitive(t *testing.T) {
	p := BuildSearchPipeline(SearchQuery{
		Name:    "Joe's (Pizza)",
		Cuisine: "italian",
		City:    "Berlin",
		Page:    pagination.Page{Skip: 40, Limit: 20},
	})

	match := stageValue(p[0])
	assert.Equal(t, primitive.Regex{Pattern: `Joe's \(Pizza\)`, Options: "i"}, lookup(match, "name"))
	assert.Equal(t, primitive.Regex{Pattern: "italian", Options: "i"}, lookup(match, "cuisine"))
	assert.Equal(t, primitive.Regex{Pattern: "Berlin", Options: "i"}, lookup(match, "address"))
	assert.Equal(t, int64(40), p[len(p)-2][0].Value)
}

func TestBuildSearchPipeline_GeoNearComesFirst(t *testing.T) {
	p := BuildSearchPipeline(SearchQuery{
		NearBy: &NearBy{Location: geo.Location{Longitude: 13.4, Latitude: 52.5}, Radius: 1500},
		Name:   "sushi",
		Page:   pagination.Default(),
	})

	assert.Equal(t, []string{"$geoNear", "$skip", "$limit"}, stageNames(t, p))

	near := stageValue(p[0])
	assert.Equal(t, geo.Point{Type: "Point", Coordinates: []float64{13.4, 52.5}}, lookup(near, "near"))
	assert.Equal(t, "location", lookup(near, "key"))
	assert.Equal(t, "distance", lookup(near, "distanceField"))
	assert.Equal(t, 1500.0, lookup(near, "maxDistance"))
	assert.Equal(t, true, lookup(near, "spherical"))

	query, ok := lookup(near, "query").(bson.D)
	require.True(t, ok)
	assert.Equal(t, primitive.Regex{Pattern: "sushi", Options: "i"}, lookup(query, "name"))
}

func TestBuildSearchPipeline_PriceRange(t *testing.T) {
	p := BuildSearchPipeline(SearchQuery{
		MinPrice: ptr(10.0),
		MaxPrice: ptr(25.0),
		Page:     pagination.Default(),
	})

	assert.Equal(t,
		[]string{"$match", "$sort", "$lookup", "$unwind", "$match", "$skip", "$limit"},
		stageNames(t, p))

	lk := stageValue(p[2])
	assert.Equal(t, "foods", lookup(lk, "from"))
	assert.Equal(t, "priceRange", lookup(lk, "as"))
	assert.Equal(t, "$priceRange", p[3][0].Value)

	overlap := stageValue(p[4])
	assert.Equal(t, bson.D{
		{Key: "priceRange.maxPrice", Value: bson.D{{Key: "$gte", Value: 10.0}}},
		{Key: "priceRange.minPrice", Value: bson.D{{Key: "$lte", Value: 25.0}}},
	}, overlap)
}

func TestBuildSearchPipeline_SingleBound(t *testing.T) {
	p := BuildSearchPipeline(SearchQuery{MaxPrice: ptr(0.0), Page: pagination.Default()})

	overlap := stageValue(p[4])
	assert.Equal(t, bson.D{
		{Key: "priceRange.minPrice", Value: bson.D{{Key: "$lte", Value: 0.0}}},
	}, overlap)
}

func TestBuildSearchPipeline_GeoWithPriceKeepsDistanceOrder(t *testing.T) {
	p := BuildSearchPipeline(SearchQuery{
		NearBy:   &NearBy{Location: geo.Location{}, Radius: 100},
		MinPrice: ptr(5.0),
		Page:     pagination.Default(),
	})

	// No $sort: $geoNear already orders by distance.
	assert.Equal(t,
		[]string{"$geoNear", "$lookup", "$unwind", "$match", "$skip", "$limit"},
		stageNames(t, p))
}
