package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a single movement belonging to one workout.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	NSections   int                `bson:"nSections" json:"nSections"` // Sets, >= 0
	NReps       int                `bson:"nReps" json:"nReps"`         // Repetitions per set, >= 0
	Weight      float64            `bson:"weight" json:"weight"`       // Kilograms, >= 0
	TutorialURL string             `bson:"tutorialUrl,omitempty" json:"tutorialUrl,omitempty"`
	// TutorialObjectKey is the managed-storage key behind the tutorial media,
	// set when an upload URL is presigned. Empty for externally hosted tutorials.
	TutorialObjectKey string `bson:"tutorialObjectKey,omitempty" json:"tutorialObjectKey,omitempty"`
	WorkoutID   primitive.ObjectID `bson:"workoutId" json:"workoutId"` // Must reference an existing Workout
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
