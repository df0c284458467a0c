package service

import (
	"context"

	"github.com/cemgthedev/ElitePlans-rest-api/internal/domain"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutService owns workout records and the workout-delete cascade.
type WorkoutService interface {
	Create(ctx context.Context, title, description string, restTime int, workoutType, category string) (*domain.Workout, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	Update(ctx context.Context, id primitive.ObjectID, title, description string, restTime int, workoutType, category string) (*domain.Workout, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter repository.WorkoutFilter, page repository.Page, sort repository.Sort) ([]domain.Workout, error)
	Count(ctx context.Context, filter repository.WorkoutFilter) (int64, error)
}

type workoutService struct {
	workouts  repository.WorkoutRepository
	exercises repository.ExerciseRepository
}

func NewWorkoutService(workouts repository.WorkoutRepository, exercises repository.ExerciseRepository) WorkoutService {
	return &workoutService{workouts: workouts, exercises: exercises}
}

func (s *workoutService) Create(ctx context.Context, title, description string, restTime int, workoutType, category string) (*domain.Workout, error) {
	workout := &domain.Workout{
		Title:       title,
		Description: description,
		RestTime:    restTime,
		Type:        workoutType,
		Category:    category,
	}
	if _, err := s.workouts.Create(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

func (s *workoutService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	return s.workouts.GetByID(ctx, id)
}

func (s *workoutService) Update(ctx context.Context, id primitive.ObjectID, title, description string, restTime int, workoutType, category string) (*domain.Workout, error) {
	workout := &domain.Workout{
		ID:          id,
		Title:       title,
		Description: description,
		RestTime:    restTime,
		Type:        workoutType,
		Category:    category,
	}
	if err := s.workouts.Replace(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

// Delete removes every exercise referencing the workout, then the workout
// itself. Cleanup is not rolled back when the workout turns out not to exist.
func (s *workoutService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.exercises.DeleteByWorkout(ctx, id); err != nil {
		return err
	}
	return s.workouts.Delete(ctx, id)
}

func (s *workoutService) List(ctx context.Context, filter repository.WorkoutFilter, page repository.Page, sort repository.Sort) ([]domain.Workout, error) {
	return s.workouts.List(ctx, filter, page, sort)
}

func (s *workoutService) Count(ctx context.Context, filter repository.WorkoutFilter) (int64, error) {
	return s.workouts.Count(ctx, filter)
}
