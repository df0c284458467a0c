package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Plan is a sellable bundle of workouts owned by a seller user.
type Plan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Type        string             `bson:"type" json:"type"`         // e.g. "strength", "cardio"
	Category    string             `bson:"category" json:"category"` // e.g. "beginner", "advanced"
	Price       float64            `bson:"price" json:"price"`
	SellerID    primitive.ObjectID `bson:"sellerId" json:"sellerId"` // Must reference an existing User
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
