package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanWorkout attaches a workout to a plan. No duplicate check is enforced.
type PlanWorkout struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanID    primitive.ObjectID `bson:"planId" json:"planId"`
	WorkoutID primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
