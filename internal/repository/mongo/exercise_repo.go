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

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository using MongoDB.
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates an exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{collection: db.Collection(exerciseCollectionName)}
}

func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	exercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, exercise)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (r *mongoExerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

func (r *mongoExerciseRepository) Replace(ctx context.Context, exercise *domain.Exercise) error {
	stored, err := r.GetByID(ctx, exercise.ID)
	if err != nil {
		return err
	}

	candidate := *exercise
	candidate.CreatedAt = stored.CreatedAt
	candidate.UpdatedAt = stored.UpdatedAt
	if reflect.DeepEqual(stored, &candidate) {
		return domain.ErrNoChange
	}

	exercise.CreatedAt = stored.CreatedAt
	exercise.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": exercise.ID}, exercise)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *mongoExerciseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByWorkout removes every exercise referencing the workout. Zero matches
// is a no-op, not an error.
func (r *mongoExerciseRepository) DeleteByWorkout(ctx context.Context, workoutID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"workoutId": workoutID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *mongoExerciseRepository) filterQuery(filter repository.ExerciseFilter) bson.M {
	query := bson.M{}
	if filter.Title != "" {
		query["title"] = substring(filter.Title)
	}
	if filter.WorkoutID != nil {
		query["workoutId"] = *filter.WorkoutID
	}
	if !filter.NSections.Empty() {
		query["nSections"] = intRangeDoc(filter.NSections)
	}
	if !filter.NReps.Empty() {
		query["nReps"] = intRangeDoc(filter.NReps)
	}
	if !filter.Weight.Empty() {
		query["weight"] = rangeDoc(filter.Weight)
	}
	return query
}

func (r *mongoExerciseRepository) List(ctx context.Context, filter repository.ExerciseFilter, page repository.Page, sort repository.Sort) ([]domain.Exercise, error) {
	cursor, err := r.collection.Find(ctx, r.filterQuery(filter), findOptions(page, sort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exercises []domain.Exercise
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *mongoExerciseRepository) Count(ctx context.Context, filter repository.ExerciseFilter) (int64, error) {
	return r.collection.CountDocuments(ctx, r.filterQuery(filter))
}

// EnsureExerciseIndexes creates the indexes for the exercises collection.
// The workoutId index backs both the per-workout listing and the cascade.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "workoutId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
