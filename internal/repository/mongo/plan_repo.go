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

const planCollectionName = "plans"

// mongoPlanRepository implements repository.PlanRepository using MongoDB.
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a plan repository backed by MongoDB.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{collection: db.Collection(planCollectionName)}
}

func (r *mongoPlanRepository) Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (r *mongoPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	var plan domain.Plan
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetByIDs resolves a set of plan ids in one query. Missing ids are simply
// absent from the result.
func (r *mongoPlanRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Plan, error) {
	if len(ids) == 0 {
		return []domain.Plan{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []domain.Plan
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *mongoPlanRepository) Replace(ctx context.Context, plan *domain.Plan) error {
	stored, err := r.GetByID(ctx, plan.ID)
	if err != nil {
		return err
	}

	candidate := *plan
	candidate.CreatedAt = stored.CreatedAt
	candidate.UpdatedAt = stored.UpdatedAt
	if reflect.DeepEqual(stored, &candidate) {
		return domain.ErrNoChange
	}

	plan.CreatedAt = stored.CreatedAt
	plan.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": plan.ID}, plan)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *mongoPlanRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *mongoPlanRepository) filterQuery(filter repository.PlanFilter) bson.M {
	query := bson.M{}
	if filter.Title != "" {
		query["title"] = substring(filter.Title)
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.SellerID != nil {
		query["sellerId"] = *filter.SellerID
	}
	if !filter.Price.Empty() {
		query["price"] = rangeDoc(filter.Price)
	}
	return query
}

func (r *mongoPlanRepository) List(ctx context.Context, filter repository.PlanFilter, page repository.Page, sort repository.Sort) ([]domain.Plan, error) {
	cursor, err := r.collection.Find(ctx, r.filterQuery(filter), findOptions(page, sort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []domain.Plan
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *mongoPlanRepository) Count(ctx context.Context, filter repository.PlanFilter) (int64, error) {
	return r.collection.CountDocuments(ctx, r.filterQuery(filter))
}

// EnsurePlanIndexes creates the indexes for the plans collection.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sellerId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
