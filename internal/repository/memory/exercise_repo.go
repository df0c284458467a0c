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

type exerciseRepo struct {
	s *Store
}

func (r *exerciseRepo) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	exercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	r.s.exercises[exercise.ID] = *exercise
	return exercise.ID, nil
}

func (r *exerciseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	exercise, ok := r.s.exercises[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &exercise, nil
}

func (r *exerciseRepo) Replace(ctx context.Context, exercise *domain.Exercise) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.exercises[exercise.ID]
	if !ok {
		return domain.ErrNotFound
	}

	candidate := *exercise
	candidate.CreatedAt = stored.CreatedAt
	candidate.UpdatedAt = stored.UpdatedAt
	if reflect.DeepEqual(stored, candidate) {
		return domain.ErrNoChange
	}

	exercise.CreatedAt = stored.CreatedAt
	exercise.UpdatedAt = time.Now().UTC()
	r.s.exercises[exercise.ID] = *exercise
	return nil
}

func (r *exerciseRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.exercises[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.exercises, id)
	return nil
}

func (r *exerciseRepo) DeleteByWorkout(ctx context.Context, workoutID primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, exercise := range r.s.exercises {
		if exercise.WorkoutID == workoutID {
			delete(r.s.exercises, id)
			n++
		}
	}
	return n, nil
}

func (r *exerciseRepo) matches(exercise domain.Exercise, filter repository.ExerciseFilter) bool {
	if filter.Title != "" && !containsFold(exercise.Title, filter.Title) {
		return false
	}
	if filter.WorkoutID != nil && exercise.WorkoutID != *filter.WorkoutID {
		return false
	}
	if !inIntRange(exercise.NSections, filter.NSections) {
		return false
	}
	if !inIntRange(exercise.NReps, filter.NReps) {
		return false
	}
	return inRange(exercise.Weight, filter.Weight)
}

func (r *exerciseRepo) List(ctx context.Context, filter repository.ExerciseFilter, page repository.Page, sortOpt repository.Sort) ([]domain.Exercise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []domain.Exercise{}
	for _, exercise := range r.s.exercises {
		if r.matches(exercise, filter) {
			matched = append(matched, exercise)
		}
	}

	if sortOpt.Active() {
		sort.SliceStable(matched, func(i, j int) bool {
			switch sortOpt.Field {
			case "title":
				return ascending(matched[i].Title < matched[j].Title, sortOpt)
			case "weight":
				return ascending(matched[i].Weight < matched[j].Weight, sortOpt)
			case "nSections":
				return ascending(matched[i].NSections < matched[j].NSections, sortOpt)
			case "nReps":
				return ascending(matched[i].NReps < matched[j].NReps, sortOpt)
			case "createdAt":
				return ascending(matched[i].CreatedAt.Before(matched[j].CreatedAt), sortOpt)
			}
			return false
		})
	}
	return pageSlice(matched, page), nil
}

func (r *exerciseRepo) Count(ctx context.Context, filter repository.ExerciseFilter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, exercise := range r.s.exercises {
		if r.matches(exercise, filter) {
			n++
		}
	}
	return n, nil
}
