package repository

import (
	"context"
	"time"

	"github.com/cemgthedev/ElitePlans-rest-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Page describes pagination for list operations. Page is 1-based; the store
// skips (Page-1)*Limit records.
type Page struct {
	Page  int
	Limit int
}

// DefaultPage is used when the caller supplies no pagination.
func DefaultPage() Page { return Page{Page: 1, Limit: 10} }

func (p Page) Skip() int64 { return int64(p.Page-1) * int64(p.Limit) }

// Sort describes an optional single-field sort. It only takes effect when both
// Field and Order are set; a half-specified sort leaves the store-default
// order in place rather than failing.
type Sort struct {
	Field string // store field name, already validated by the caller
	Order string // "asc" or "desc"
}

func (s Sort) Active() bool {
	return s.Field != "" && (s.Order == "asc" || s.Order == "desc")
}

// Range is an optional [Min, Max] filter over a numeric field. A nil end
// leaves that side open.
type Range struct {
	Min *float64
	Max *float64
}

func (r Range) Empty() bool { return r.Min == nil && r.Max == nil }

// IntRange is Range over integer fields.
type IntRange struct {
	Min *int
	Max *int
}

func (r IntRange) Empty() bool { return r.Min == nil && r.Max == nil }

// Entity filters. Every criterion is optional; set criteria are combined with
// AND. String fields named after text columns are case-insensitive substring
// matches, the rest are exact matches.

type UserFilter struct {
	Name  string // substring
	Email string // substring
}

type PlanFilter struct {
	Title    string // substring
	Type     string
	Category string
	SellerID *primitive.ObjectID
	Price    Range
}

type WorkoutFilter struct {
	Title    string // substring
	Type     string
	Category string
	RestTime IntRange
}

type ExerciseFilter struct {
	Title     string // substring
	WorkoutID *primitive.ObjectID
	NSections IntRange
	NReps     IntRange
	Weight    Range
}

type UserPlanFilter struct {
	SellerID  *primitive.ObjectID
	BuyerID   *primitive.ObjectID
	PlanID    *primitive.ObjectID
	Purchased *bool
}

type PlanWorkoutFilter struct {
	PlanID    *primitive.ObjectID
	WorkoutID *primitive.ObjectID
}

// UserRepository stores users. Replace performs a full-document replace and
// returns domain.ErrNoChange when the replacement differs from the stored
// record only by timestamps. Create and Replace report duplicate emails as
// domain.ErrConflict.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Replace(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter UserFilter, page Page, sort Sort) ([]domain.User, error)
	Count(ctx context.Context, filter UserFilter) (int64, error)

	// Back-reference maintenance for the join views.
	AddSoldPlan(ctx context.Context, userID, planID primitive.ObjectID) error
	AddPurchasedPlan(ctx context.Context, userID, planID primitive.ObjectID) error
	// RemovePlanRefs pulls a deleted plan out of every user's back-reference
	// collections.
	RemovePlanRefs(ctx context.Context, planID primitive.ObjectID) error
}

type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Plan, error)
	Replace(ctx context.Context, plan *domain.Plan) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter PlanFilter, page Page, sort Sort) ([]domain.Plan, error)
	Count(ctx context.Context, filter PlanFilter) (int64, error)
}

type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	Replace(ctx context.Context, workout *domain.Workout) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter WorkoutFilter, page Page, sort Sort) ([]domain.Workout, error)
	Count(ctx context.Context, filter WorkoutFilter) (int64, error)
}

type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	Replace(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// DeleteByWorkout removes every exercise referencing the workout and
	// returns how many were removed. Zero matches is not an error.
	DeleteByWorkout(ctx context.Context, workoutID primitive.ObjectID) (int64, error)
	List(ctx context.Context, filter ExerciseFilter, page Page, sort Sort) ([]domain.Exercise, error)
	Count(ctx context.Context, filter ExerciseFilter) (int64, error)
}

type UserPlanRepository interface {
	Create(ctx context.Context, userPlan *domain.UserPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.UserPlan, error)
	// SetPurchased flips the purchase flag and stamps PurchasedAt. The caller
	// owns the state-machine checks; this is the single-field write.
	SetPurchased(ctx context.Context, id primitive.ObjectID, at time.Time) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// DeleteByUser removes every association where the user appears as seller
	// or buyer. DeleteByPlan removes every association referencing the plan.
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	DeleteByPlan(ctx context.Context, planID primitive.ObjectID) (int64, error)
	List(ctx context.Context, filter UserPlanFilter, page Page, sort Sort) ([]domain.UserPlan, error)
	Count(ctx context.Context, filter UserPlanFilter) (int64, error)
}

type PlanWorkoutRepository interface {
	Create(ctx context.Context, planWorkout *domain.PlanWorkout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlanWorkout, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter PlanWorkoutFilter, page Page, sort Sort) ([]domain.PlanWorkout, error)
	Count(ctx context.Context, filter PlanWorkoutFilter) (int64, error)
}
