package reviews

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"restaurant-graphql-api/internal/mongodb"
	"restaurant-graphql-api/internal/pagination"
)

// Repository persists reviews.
type Repository interface {
	// Upsert stores r as the only review of r.UserID for r.RestaurantID,
	// replacing any previous one.
	Upsert(ctx context.Context, r Review) (Review, error)
	ListByRestaurant(ctx context.Context, restaurantID string, page pagination.Page) ([]Review, error)
}

type reviewDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Rating       int                `bson:"rating"`
	Comment      string             `bson:"comment"`
	UserID       string             `bson:"userId"`
	RestaurantID string             `bson:"restaurantId"`
}

func (d reviewDocument) toReview() Review {
	return Review{
		ID:           d.ID.Hex(),
		Rating:       d.Rating,
		Comment:      d.Comment,
		UserID:       d.UserID,
		RestaurantID: d.RestaurantID,
	}
}

// MongoRepository stores reviews in the reviews collection. The unique
// (restaurantId, userId) index backs the one-review-per-user rule.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongodb.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(mongodb.Reviews)}
}

// Upsert is a single atomic FindOneAndReplace. The replacement omits _id so
// an existing review keeps its id. The filter is an equality match on the
// unique (restaurantId, userId) index, so the server itself retries an upsert
// that loses a race to a concurrent insert.
func (r *MongoRepository) Upsert(ctx context.Context, rev Review) (Review, error) {
	filter := bson.D{
		{Key: "restaurantId", Value: rev.RestaurantID},
		{Key: "userId", Value: rev.UserID},
	}
	replacement := reviewDocument{
		Rating:       rev.Rating,
		Comment:      rev.Comment,
		UserID:       rev.UserID,
		RestaurantID: rev.RestaurantID,
	}
	opts := options.FindOneAndReplace().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc reviewDocument
	if err := r.coll.FindOneAndReplace(ctx, filter, replacement, opts).Decode(&doc); err != nil {
		return Review{}, fmt.Errorf("upsert review: %w", err)
	}
	return doc.toReview(), nil
}

func (r *MongoRepository) ListByRestaurant(ctx context.Context, restaurantID string, page pagination.Page) ([]Review, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(page.Skip)).
		SetLimit(int64(page.Limit))
	cur, err := r.coll.Find(ctx, bson.M{"restaurantId": restaurantID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	var docs []reviewDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	out := make([]Review, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toReview())
	}
	return out, nil
}
