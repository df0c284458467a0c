// Package memory provides in-memory implementations of the repository
// interfaces. They reproduce the MongoDB semantics (no-change detection on
// replace, unordered default listing, delete-many cascades) and back the
// service and handler tests without a running database.
package memory

import (
	"strings"
	"sync"

	"github.com/cemgthedev/ElitePlans-rest-api/internal/domain"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is a thread-safe in-memory store for all six entity kinds.
type Store struct {
	mu sync.RWMutex

	users        map[primitive.ObjectID]domain.User
	emailIndex   map[string]primitive.ObjectID
	plans        map[primitive.ObjectID]domain.Plan
	workouts     map[primitive.ObjectID]domain.Workout
	exercises    map[primitive.ObjectID]domain.Exercise
	userPlans    map[primitive.ObjectID]domain.UserPlan
	planWorkouts map[primitive.ObjectID]domain.PlanWorkout
}

func NewStore() *Store {
	return &Store{
		users:        make(map[primitive.ObjectID]domain.User),
		emailIndex:   make(map[string]primitive.ObjectID),
		plans:        make(map[primitive.ObjectID]domain.Plan),
		workouts:     make(map[primitive.ObjectID]domain.Workout),
		exercises:    make(map[primitive.ObjectID]domain.Exercise),
		userPlans:    make(map[primitive.ObjectID]domain.UserPlan),
		planWorkouts: make(map[primitive.ObjectID]domain.PlanWorkout),
	}
}

func (s *Store) Users() repository.UserRepository               { return &userRepo{s} }
func (s *Store) Plans() repository.PlanRepository               { return &planRepo{s} }
func (s *Store) Workouts() repository.WorkoutRepository         { return &workoutRepo{s} }
func (s *Store) Exercises() repository.ExerciseRepository       { return &exerciseRepo{s} }
func (s *Store) UserPlans() repository.UserPlanRepository       { return &userPlanRepo{s} }
func (s *Store) PlanWorkouts() repository.PlanWorkoutRepository { return &planWorkoutRepo{s} }

// containsFold reports whether needle occurs in haystack, case-insensitively.
// Mirrors the $regex/$options:"i" substring filters of the mongo repos.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func inRange(v float64, r repository.Range) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

func inIntRange(v int, r repository.IntRange) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// pageSlice applies skip/limit to an already filtered (and optionally sorted)
// result set.
func pageSlice[T any](items []T, page repository.Page) []T {
	skip := int(page.Skip())
	if skip >= len(items) {
		return []T{}
	}
	end := skip + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}

// ascending flips a comparison for descending sorts.
func ascending(less bool, sort repository.Sort) bool {
	if sort.Order == "desc" {
		return !less
	}
	return less
}
