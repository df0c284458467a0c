package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserPlan records a (potential) purchase of a plan by a buyer from a seller.
// It starts unpurchased; the purchased flag flips to true at most once, and
// PurchasedAt is set on that transition and never again. There is no
// uniqueness constraint on the (seller, buyer, plan) triple: repeat purchases
// are distinct ledger rows.
type UserPlan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SellerID    primitive.ObjectID `bson:"sellerId" json:"sellerId"`
	BuyerID     primitive.ObjectID `bson:"buyerId" json:"buyerId"`
	PlanID      primitive.ObjectID `bson:"planId" json:"planId"`
	Purchased   bool               `bson:"purchased" json:"purchased"`
	PurchasedAt *time.Time         `bson:"purchasedAt,omitempty" json:"purchasedAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
