package service

import (
	"context"
	"errors"

	"github.com/cemgthedev/ElitePlans-rest-api/internal/domain"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanWorkoutService owns the plan-workout attachment. Attachments are leaf
// associations: no cascade, no duplicate check.
type PlanWorkoutService interface {
	Create(ctx context.Context, planID, workoutID primitive.ObjectID) (*domain.PlanWorkout, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.PlanWorkout, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter repository.PlanWorkoutFilter, page repository.Page, sort repository.Sort) ([]domain.PlanWorkout, error)
	Count(ctx context.Context, filter repository.PlanWorkoutFilter) (int64, error)
}

type planWorkoutService struct {
	planWorkouts repository.PlanWorkoutRepository
	plans        repository.PlanRepository
	workouts     repository.WorkoutRepository
}

func NewPlanWorkoutService(planWorkouts repository.PlanWorkoutRepository, plans repository.PlanRepository, workouts repository.WorkoutRepository) PlanWorkoutService {
	return &planWorkoutService{planWorkouts: planWorkouts, plans: plans, workouts: workouts}
}

// Create validates the plan reference, then the workout reference, and
// inserts. Validation short-circuits on the first miss.
func (s *planWorkoutService) Create(ctx context.Context, planID, workoutID primitive.ObjectID) (*domain.PlanWorkout, error) {
	if _, err := s.plans.GetByID(ctx, planID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.ReferenceError{Kind: "plan", ID: planID.Hex()}
		}
		return nil, err
	}
	if _, err := s.workouts.GetByID(ctx, workoutID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.ReferenceError{Kind: "workout", ID: workoutID.Hex()}
		}
		return nil, err
	}

	planWorkout := &domain.PlanWorkout{
		PlanID:    planID,
		WorkoutID: workoutID,
	}
	if _, err := s.planWorkouts.Create(ctx, planWorkout); err != nil {
		return nil, err
	}
	return planWorkout, nil
}

func (s *planWorkoutService) Get(ctx context.Context, id primitive.ObjectID) (*domain.PlanWorkout, error) {
	return s.planWorkouts.GetByID(ctx, id)
}

func (s *planWorkoutService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.planWorkouts.Delete(ctx, id)
}

func (s *planWorkoutService) List(ctx context.Context, filter repository.PlanWorkoutFilter, page repository.Page, sort repository.Sort) ([]domain.PlanWorkout, error) {
	return s.planWorkouts.List(ctx, filter, page, sort)
}

func (s *planWorkoutService) Count(ctx context.Context, filter repository.PlanWorkoutFilter) (int64, error) {
	return s.planWorkouts.Count(ctx, filter)
}
