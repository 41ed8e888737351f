package foods

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"restaurant-graphql-api/internal/apperr"
	"restaurant-graphql-api/internal/mongodb"
	"restaurant-graphql-api/internal/pagination"
)

// Repository persists foods.
type Repository interface {
	Insert(ctx context.Context, f Food) (Food, error)
	FindByID(ctx context.Context, id string) (Food, error)
	Update(ctx context.Context, input UpdateInput) (Food, error)
	Delete(ctx context.Context, id string) error
	ListByRestaurant(ctx context.Context, restaurantID string, page pagination.Page) ([]Food, error)
}

type foodDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Description  string             `bson:"description"`
	Price        float64            `bson:"price"`
	RestaurantID string             `bson:"restaurantId"`
	CreatorID    string             `bson:"creatorId"`
}

func (d foodDocument) toFood() Food {
	return Food{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Description:  d.Description,
		Price:        d.Price,
		RestaurantID: d.RestaurantID,
		CreatorID:    d.CreatorID,
	}
}

// MongoRepository stores foods in the foods collection, indexed by
// restaurantId.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongodb.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(mongodb.Foods)}
}

func (r *MongoRepository) Insert(ctx context.Context, f Food) (Food, error) {
	doc := foodDocument{
		Name:         f.Name,
		Description:  f.Description,
		Price:        f.Price,
		RestaurantID: f.RestaurantID,
		CreatorID:    f.CreatorID,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return Food{}, fmt.Errorf("insert food: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toFood(), nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (Food, error) {
	oid, err := mongodb.ParseID(id)
	if err != nil {
		return Food{}, err
	}
	var doc foodDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if mongodb.IsNoDocuments(err) {
			return Food{}, errFoodNotFound
		}
		return Food{}, fmt.Errorf("find food: %w", err)
	}
	return doc.toFood(), nil
}

func (r *MongoRepository) Update(ctx context.Context, input UpdateInput) (Food, error) {
	oid, err := mongodb.ParseID(input.ID)
	if err != nil {
		return Food{}, err
	}
	set := bson.D{}
	if input.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *input.Name})
	}
	if input.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *input.Description})
	}
	if input.Price != nil {
		set = append(set, bson.E{Key: "price", Value: *input.Price})
	}
	if len(set) == 0 {
		return r.FindByID(ctx, input.ID)
	}

	var doc foodDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if mongodb.IsNoDocuments(err) {
			return Food{}, errFoodNotFound
		}
		return Food{}, fmt.Errorf("update food: %w", err)
	}
	return doc.toFood(), nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := mongodb.ParseID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete food: %w", err)
	}
	if res.DeletedCount == 0 {
		return errFoodNotFound
	}
	return nil
}

func (r *MongoRepository) ListByRestaurant(ctx context.Context, restaurantID string, page pagination.Page) ([]Food, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(page.Skip)).
		SetLimit(int64(page.Limit))
	cur, err := r.coll.Find(ctx, bson.M{"restaurantId": restaurantID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	var docs []foodDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode foods: %w", err)
	}
	out := make([]Food, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toFood())
	}
	return out, nil
}

var errFoodNotFound = apperr.NotFound("food not found")
