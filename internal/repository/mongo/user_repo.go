package mongo

import (
	"context"
	"errors"
	"reflect"
	"time"

	"github.com/cemgthedev/ElitePlans-rest-api/internal/domain"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const userCollectionName = "users"

// mongoUserRepository implements repository.UserRepository using MongoDB.
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a user repository backed by MongoDB.
// It expects a connected *mongo.Database instance.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{collection: db.Collection(userCollectionName)}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, domain.ErrConflict
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Replace overwrites the stored document with the given one. The stored
// CreatedAt is preserved and UpdatedAt is stamped here. When the replacement
// differs from the stored record only by timestamps, nothing is written and
// domain.ErrNoChange is reported.
func (r *mongoUserRepository) Replace(ctx context.Context, user *domain.User) error {
	stored, err := r.GetByID(ctx, user.ID)
	if err != nil {
		return err
	}

	candidate := *user
	candidate.CreatedAt = stored.CreatedAt
	candidate.UpdatedAt = stored.UpdatedAt
	if reflect.DeepEqual(stored, &candidate) {
		return domain.ErrNoChange
	}

	user.CreatedAt = stored.CreatedAt
	user.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrConflict
		}
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *mongoUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *mongoUserRepository) List(ctx context.Context, filter repository.UserFilter, page repository.Page, sort repository.Sort) ([]domain.User, error) {
	query := bson.M{}
	if filter.Name != "" {
		query["name"] = substring(filter.Name)
	}
	if filter.Email != "" {
		query["email"] = substring(filter.Email)
	}

	cursor, err := r.collection.Find(ctx, query, findOptions(page, sort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []domain.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *mongoUserRepository) Count(ctx context.Context, filter repository.UserFilter) (int64, error) {
	query := bson.M{}
	if filter.Name != "" {
		query["name"] = substring(filter.Name)
	}
	if filter.Email != "" {
		query["email"] = substring(filter.Email)
	}
	return r.collection.CountDocuments(ctx, query)
}

// AddSoldPlan appends a plan to the user's plansSold back-references.
// $addToSet keeps the collection duplicate-free.
func (r *mongoUserRepository) AddSoldPlan(ctx context.Context, userID, planID primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$addToSet": bson.M{"plansSold": planID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddPurchasedPlan appends a plan to the user's purchasedPlans back-references.
func (r *mongoUserRepository) AddPurchasedPlan(ctx context.Context, userID, planID primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$addToSet": bson.M{"purchasedPlans": planID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RemovePlanRefs pulls a deleted plan out of every user's back-reference
// collections. Matching no users is fine.
func (r *mongoUserRepository) RemovePlanRefs(ctx context.Context, planID primitive.ObjectID) error {
	_, err := r.collection.UpdateMany(ctx, bson.M{}, bson.M{
		"$pull": bson.M{"plansSold": planID, "purchasedPlans": planID},
	})
	return err
}

// EnsureUserIndexes creates the indexes for the users collection.
// Call once during application startup.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
