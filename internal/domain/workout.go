package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout is a named routine composed of exercises. Workouts are attached to
// plans through the PlanWorkout association.
type Workout struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	RestTime    int                `bson:"restTime" json:"restTime"` // Seconds between exercises, >= 0
	Type        string             `bson:"type" json:"type"`
	Category    string             `bson:"category" json:"category"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
