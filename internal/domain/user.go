package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account in the marketplace. The same user can act as a
// seller (publishes plans) and as a buyer (purchases plans); the two ID
// collections are back-references into the plans collection, not ownership.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"` // Unique
	PasswordHash string             `bson:"passwordHash" json:"-"`
	CPF          string             `bson:"cpf" json:"cpf"` // National id, 11 digits
	PhoneNumber  string             `bson:"phoneNumber" json:"phoneNumber"`

	// Plans this user published.
	PlansSold []primitive.ObjectID `bson:"plansSold,omitempty" json:"plansSold,omitempty"`
	// Plans this user bought (appended on the purchase transition).
	PurchasedPlans []primitive.ObjectID `bson:"purchasedPlans,omitempty" json:"purchasedPlans,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
