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

const planWorkoutCollectionName = "plan_workouts"

// mongoPlanWorkoutRepository implements repository.PlanWorkoutRepository using MongoDB.
type mongoPlanWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanWorkoutRepository creates a plan-workout repository backed by MongoDB.
func NewMongoPlanWorkoutRepository(db *mongo.Database) repository.PlanWorkoutRepository {
	return &mongoPlanWorkoutRepository{collection: db.Collection(planWorkoutCollectionName)}
}

func (r *mongoPlanWorkoutRepository) Create(ctx context.Context, planWorkout *domain.PlanWorkout) (primitive.ObjectID, error) {
	planWorkout.ID = primitive.NewObjectID()
	planWorkout.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, planWorkout)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (r *mongoPlanWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlanWorkout, error) {
	var planWorkout domain.PlanWorkout
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&planWorkout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &planWorkout, nil
}

func (r *mongoPlanWorkoutRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *mongoPlanWorkoutRepository) filterQuery(filter repository.PlanWorkoutFilter) bson.M {
	query := bson.M{}
	if filter.PlanID != nil {
		query["planId"] = *filter.PlanID
	}
	if filter.WorkoutID != nil {
		query["workoutId"] = *filter.WorkoutID
	}
	return query
}

func (r *mongoPlanWorkoutRepository) List(ctx context.Context, filter repository.PlanWorkoutFilter, page repository.Page, sort repository.Sort) ([]domain.PlanWorkout, error) {
	cursor, err := r.collection.Find(ctx, r.filterQuery(filter), findOptions(page, sort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var planWorkouts []domain.PlanWorkout
	if err = cursor.All(ctx, &planWorkouts); err != nil {
		return nil, err
	}
	return planWorkouts, nil
}

func (r *mongoPlanWorkoutRepository) Count(ctx context.Context, filter repository.PlanWorkoutFilter) (int64, error) {
	return r.collection.CountDocuments(ctx, r.filterQuery(filter))
}

// EnsurePlanWorkoutIndexes creates the indexes for the plan_workouts collection.
func EnsurePlanWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "planId", Value: 1}, {Key: "workoutId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
