package restaurants

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"restaurant-graphql-api/internal/apperr"
	"restaurant-graphql-api/internal/geo"
	"restaurant-graphql-api/internal/mongodb"
)

// Repository persists restaurants.
type Repository interface {
	Insert(ctx context.Context, r Restaurant) (Restaurant, error)
	FindByID(ctx context.Context, id string) (Restaurant, error)
	Update(ctx context.Context, input UpdateInput) (Restaurant, error)
	// Delete removes the restaurant together with its foods and reviews.
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, q SearchQuery) ([]Restaurant, error)
}

// MongoRepository stores restaurants in the restaurants collection.
type MongoRepository struct {
	restaurants *mongo.Collection
	foods       *mongo.Collection
	reviews     *mongo.Collection
}

func NewMongoRepository(db *mongodb.Database) *MongoRepository {
	return &MongoRepository{
		restaurants: db.Collection(mongodb.Restaurants),
		foods:       db.Collection(mongodb.Foods),
		reviews:     db.Collection(mongodb.Reviews),
	}
}

func (r *MongoRepository) Insert(ctx context.Context, rest Restaurant) (Restaurant, error) {
	doc := toDocument(rest)
	res, err := r.restaurants.InsertOne(ctx, doc)
	if err != nil {
		return Restaurant{}, fmt.Errorf("insert restaurant: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toRestaurant()
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (Restaurant, error) {
	oid, err := mongodb.ParseID(id)
	if err != nil {
		return Restaurant{}, err
	}
	var doc restaurantDocument
	if err := r.restaurants.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if mongodb.IsNoDocuments(err) {
			return Restaurant{}, errRestaurantNotFound
		}
		return Restaurant{}, fmt.Errorf("find restaurant: %w", err)
	}
	return doc.toRestaurant()
}

// Update applies the non-nil fields of input and returns the result.
func (r *MongoRepository) Update(ctx context.Context, input UpdateInput) (Restaurant, error) {
	oid, err := mongodb.ParseID(input.ID)
	if err != nil {
		return Restaurant{}, err
	}
	set := updateSet(input)
	if len(set) == 0 {
		return r.FindByID(ctx, input.ID)
	}

	var doc restaurantDocument
	err = r.restaurants.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if mongodb.IsNoDocuments(err) {
			return Restaurant{}, errRestaurantNotFound
		}
		return Restaurant{}, fmt.Errorf("update restaurant: %w", err)
	}
	return doc.toRestaurant()
}

// Delete is not transactional: a failure after the restaurant is gone leaves
// orphaned foods or reviews, which no query can reach.
func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := mongodb.ParseID(id)
	if err != nil {
		return err
	}
	res, err := r.restaurants.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete restaurant: %w", err)
	}
	if res.DeletedCount == 0 {
		return errRestaurantNotFound
	}
	if _, err := r.foods.DeleteMany(ctx, bson.M{"restaurantId": oid.Hex()}); err != nil {
		return fmt.Errorf("delete restaurant foods: %w", err)
	}
	if _, err := r.reviews.DeleteMany(ctx, bson.M{"restaurantId": oid.Hex()}); err != nil {
		return fmt.Errorf("delete restaurant reviews: %w", err)
	}
	return nil
}

func (r *MongoRepository) Search(ctx context.Context, q SearchQuery) ([]Restaurant, error) {
	cur, err := r.restaurants.Aggregate(ctx, BuildSearchPipeline(q))
	if err != nil {
		return nil, fmt.Errorf("search restaurants: %w", err)
	}
	var docs []restaurantDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode restaurants: %w", err)
	}
	out := make([]Restaurant, 0, len(docs))
	for _, d := range docs {
		rest, err := d.toRestaurant()
		if err != nil {
			return nil, err
		}
		out = append(out, rest)
	}
	return out, nil
}

// updateSet builds the $set document for the provided fields.
func updateSet(in UpdateInput) bson.D {
	set := bson.D{}
	if in.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *in.Name})
	}
	if in.Location != nil {
		set = append(set, bson.E{Key: "location", Value: geo.ToPoint(*in.Location)})
	}
	if in.Address != nil {
		set = append(set, bson.E{Key: "address", Value: *in.Address})
	}
	if in.Rating != nil {
		set = append(set, bson.E{Key: "rating", Value: *in.Rating})
	}
	if in.Cuisine != nil {
		set = append(set, bson.E{Key: "cuisine", Value: *in.Cuisine})
	}
	if in.Contact != nil {
		set = append(set, bson.E{Key: "contact", Value: *in.Contact})
	}
	if in.OpeningHours != nil {
		set = append(set, bson.E{Key: "openingHours", Value: in.OpeningHours})
	}
	return set
}

var errRestaurantNotFound = apperr.NotFound("restaurant not found")
