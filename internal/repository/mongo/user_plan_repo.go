package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/cemgthedev/ElitePlans-rest-api/internal/domain"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const userPlanCollectionName = "user_plans"

// mongoUserPlanRepository implements repository.UserPlanRepository using MongoDB.
type mongoUserPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoUserPlanRepository creates a user-plan repository backed by MongoDB.
func NewMongoUserPlanRepository(db *mongo.Database) repository.UserPlanRepository {
	return &mongoUserPlanRepository{collection: db.Collection(userPlanCollectionName)}
}

func (r *mongoUserPlanRepository) Create(ctx context.Context, userPlan *domain.UserPlan) (primitive.ObjectID, error) {
	userPlan.ID = primitive.NewObjectID()
	userPlan.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, userPlan)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (r *mongoUserPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.UserPlan, error) {
	var userPlan domain.UserPlan
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&userPlan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &userPlan, nil
}

// SetPurchased flips the purchase flag and stamps PurchasedAt. State-machine
// checks (already purchased, triple match) belong to the service layer.
func (r *mongoUserPlanRepository) SetPurchased(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"purchased": true, "purchasedAt": at},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *mongoUserPlanRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByUser removes every association where the user appears as seller or
// buyer. Zero matches is a no-op.
func (r *mongoUserPlanRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{
		"$or": bson.A{
			bson.M{"sellerId": userID},
			bson.M{"buyerId": userID},
		},
	})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// DeleteByPlan removes every association referencing the plan.
func (r *mongoUserPlanRepository) DeleteByPlan(ctx context.Context, planID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"planId": planID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *mongoUserPlanRepository) filterQuery(filter repository.UserPlanFilter) bson.M {
	query := bson.M{}
	if filter.SellerID != nil {
		query["sellerId"] = *filter.SellerID
	}
	if filter.BuyerID != nil {
		query["buyerId"] = *filter.BuyerID
	}
	if filter.PlanID != nil {
		query["planId"] = *filter.PlanID
	}
	if filter.Purchased != nil {
		query["purchased"] = *filter.Purchased
	}
	return query
}

func (r *mongoUserPlanRepository) List(ctx context.Context, filter repository.UserPlanFilter, page repository.Page, sort repository.Sort) ([]domain.UserPlan, error) {
	cursor, err := r.collection.Find(ctx, r.filterQuery(filter), findOptions(page, sort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var userPlans []domain.UserPlan
	if err = cursor.All(ctx, &userPlans); err != nil {
		return nil, err
	}
	return userPlans, nil
}

func (r *mongoUserPlanRepository) Count(ctx context.Context, filter repository.UserPlanFilter) (int64, error) {
	return r.collection.CountDocuments(ctx, r.filterQuery(filter))
}

// EnsureUserPlanIndexes creates the indexes for the user_plans collection.
// The compound indexes back the per-user and per-plan lookups and cascades.
func EnsureUserPlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sellerId", Value: 1}, {Key: "planId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "buyerId", Value: 1}, {Key: "planId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "planId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
