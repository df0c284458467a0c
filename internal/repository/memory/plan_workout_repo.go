package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cemgthedev/ElitePlans-rest-api/internal/domain"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type planWorkoutRepo struct {
	s *Store
}

func (r *planWorkoutRepo) Create(ctx context.Context, planWorkout *domain.PlanWorkout) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	planWorkout.ID = primitive.NewObjectID()
	planWorkout.CreatedAt = time.Now().UTC()

	r.s.planWorkouts[planWorkout.ID] = *planWorkout
	return planWorkout.ID, nil
}

func (r *planWorkoutRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlanWorkout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	planWorkout, ok := r.s.planWorkouts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &planWorkout, nil
}

func (r *planWorkoutRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.planWorkouts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.planWorkouts, id)
	return nil
}

func (r *planWorkoutRepo) matches(planWorkout domain.PlanWorkout, filter repository.PlanWorkoutFilter) bool {
	if filter.PlanID != nil && planWorkout.PlanID != *filter.PlanID {
		return false
	}
	if filter.WorkoutID != nil && planWorkout.WorkoutID != *filter.WorkoutID {
		return false
	}
	return true
}

func (r *planWorkoutRepo) List(ctx context.Context, filter repository.PlanWorkoutFilter, page repository.Page, sortOpt repository.Sort) ([]domain.PlanWorkout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []domain.PlanWorkout{}
	for _, planWorkout := range r.s.planWorkouts {
		if r.matches(planWorkout, filter) {
			matched = append(matched, planWorkout)
		}
	}

	if sortOpt.Active() {
		sort.SliceStable(matched, func(i, j int) bool {
			switch sortOpt.Field {
			case "createdAt":
				return ascending(matched[i].CreatedAt.Before(matched[j].CreatedAt), sortOpt)
			}
			return false
		})
	}
	return pageSlice(matched, page), nil
}

func (r *planWorkoutRepo) Count(ctx context.Context, filter repository.PlanWorkoutFilter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, planWorkout := range r.s.planWorkouts {
		if r.matches(planWorkout, filter) {
			n++
		}
	}
	return n, nil
}
