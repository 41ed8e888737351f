package users

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"restaurant-graphql-api/internal/apperr"
	"restaurant-graphql-api/internal/auth"
	"restaurant-graphql-api/internal/mongodb"
)

// Repository persists users.
type Repository interface {
	Insert(ctx context.Context, u User) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	// FindByEmail returns ok=false when no user has that email.
	FindByEmail(ctx context.Context, email string) (User, bool, error)
	List(ctx context.Context) ([]User, error)
	SetRole(ctx context.Context, id string, role auth.Role) (User, error)
}

// userDocument is the stored shape of a user.
type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
	Role     auth.Role          `bson:"role"`
}

func (d userDocument) toUser() User {
	return User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		Role:         d.Role,
	}
}

// MongoRepository stores users in the users collection. The unique email
// index is created by mongodb.Database.EnsureIndexes.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongodb.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(mongodb.Users)}
}

func (r *MongoRepository) Insert(ctx context.Context, u User) (User, error) {
	doc := userDocument{
		Name:     u.Name,
		Email:    u.Email,
		Password: u.PasswordHash,
		Role:     u.Role,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongodb.IsDuplicateKey(err) {
			return User{}, errUserExists
		}
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toUser(), nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (User, error) {
	oid, err := mongodb.ParseID(id)
	if err != nil {
		return User{}, err
	}
	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if mongodb.IsNoDocuments(err) {
			return User{}, errUserNotFound
		}
		return User{}, fmt.Errorf("find user: %w", err)
	}
	return doc.toUser(), nil
}

func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (User, bool, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if mongodb.IsNoDocuments(err) {
			return User{}, false, nil
		}
		return User{}, false, fmt.Errorf("find user by email: %w", err)
	}
	return doc.toUser(), true, nil
}

func (r *MongoRepository) List(ctx context.Context) ([]User, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	out := make([]User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toUser())
	}
	return out, nil
}

// SetRole updates the role atomically and returns the updated user.
func (r *MongoRepository) SetRole(ctx context.Context, id string, role auth.Role) (User, error) {
	oid, err := mongodb.ParseID(id)
	if err != nil {
		return User{}, err
	}
	var doc userDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"role": role}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if mongodb.IsNoDocuments(err) {
			return User{}, errUserNotFound
		}
		return User{}, fmt.Errorf("set user role: %w", err)
	}
	return doc.toUser(), nil
}

var (
	errUserNotFound = apperr.NotFound("user not found")
	errUserExists   = apperr.AlreadyExists("user exists")
)
