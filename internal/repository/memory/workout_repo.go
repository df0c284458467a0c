package memory

import (
	"context"
	"reflect"
	"sort"
	"time"

	"github.com/cemgthedev/ElitePlans-rest-api/internal/domain"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type workoutRepo struct {
	s *Store
}

func (r *workoutRepo) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	workout.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now

	r.s.workouts[workout.ID] = *workout
	return workout.ID, nil
}

func (r *workoutRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	workout, ok := r.s.workouts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &workout, nil
}

func (r *workoutRepo) Replace(ctx context.Context, workout *domain.Workout) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.workouts[workout.ID]
	if !ok {
		return domain.ErrNotFound
	}

	candidate := *workout
	candidate.CreatedAt = stored.CreatedAt
	candidate.UpdatedAt = stored.UpdatedAt
	if reflect.DeepEqual(stored, candidate) {
		return domain.ErrNoChange
	}

	workout.CreatedAt = stored.CreatedAt
	workout.UpdatedAt = time.Now().UTC()
	r.s.workouts[workout.ID] = *workout
	return nil
}

func (r *workoutRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.workouts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.workouts, id)
	return nil
}

func (r *workoutRepo) matches(workout domain.Workout, filter repository.WorkoutFilter) bool {
	if filter.Title != "" && !containsFold(workout.Title, filter.Title) {
		return false
	}
	if filter.Type != "" && workout.Type != filter.Type {
		return false
	}
	if filter.Category != "" && workout.Category != filter.Category {
		return false
	}
	return inIntRange(workout.RestTime, filter.RestTime)
}

func (r *workoutRepo) List(ctx context.Context, filter repository.WorkoutFilter, page repository.Page, sortOpt repository.Sort) ([]domain.Workout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []domain.Workout{}
	for _, workout := range r.s.workouts {
		if r.matches(workout, filter) {
			matched = append(matched, workout)
		}
	}

	if sortOpt.Active() {
		sort.SliceStable(matched, func(i, j int) bool {
			switch sortOpt.Field {
			case "title":
				return ascending(matched[i].Title < matched[j].Title, sortOpt)
			case "restTime":
				return ascending(matched[i].RestTime < matched[j].RestTime, sortOpt)
			case "createdAt":
				return ascending(matched[i].CreatedAt.Before(matched[j].CreatedAt), sortOpt)
			}
			return false
		})
	}
	return pageSlice(matched, page), nil
}

func (r *workoutRepo) Count(ctx context.Context, filter repository.WorkoutFilter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, workout := range r.s.workouts {
		if r.matches(workout, filter) {
			n++
		}
	}
	return n, nil
}
