package service

import (
	"context"
	"errors"
	"time"

	"github.com/cemgthedev/ElitePlans-rest-api/internal/domain"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserPlanService owns the purchase-relationship association and its state
// machine: a record starts unpurchased, flips to purchased at most once, and
// never flips back.
type UserPlanService interface {
	Create(ctx context.Context, sellerID, buyerID, planID primitive.ObjectID) (*domain.UserPlan, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.UserPlan, error)
	MarkPurchased(ctx context.Context, id, sellerID, buyerID, planID primitive.ObjectID) (*domain.UserPlan, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter repository.UserPlanFilter, page repository.Page, sort repository.Sort) ([]domain.UserPlan, error)
	Count(ctx context.Context, filter repository.UserPlanFilter) (int64, error)
}

type userPlanService struct {
	userPlans repository.UserPlanRepository
	users     repository.UserRepository
	plans     repository.PlanRepository
}

func NewUserPlanService(userPlans repository.UserPlanRepository, users repository.UserRepository, plans repository.PlanRepository) UserPlanService {
	return &userPlanService{userPlans: userPlans, users: users, plans: plans}
}

// requireRefs validates the three references in a fixed order (seller, buyer,
// plan) and short-circuits on the first miss.
func (s *userPlanService) requireRefs(ctx context.Context, sellerID, buyerID, planID primitive.ObjectID) error {
	if _, err := s.users.GetByID(ctx, sellerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.ReferenceError{Kind: "seller", ID: sellerID.Hex()}
		}
		return err
	}
	if _, err := s.users.GetByID(ctx, buyerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.ReferenceError{Kind: "buyer", ID: buyerID.Hex()}
		}
		return err
	}
	if _, err := s.plans.GetByID(ctx, planID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.ReferenceError{Kind: "plan", ID: planID.Hex()}
		}
		return err
	}
	return nil
}

// Create inserts a new unpurchased association. No uniqueness is enforced on
// the (seller, buyer, plan) triple: repeat purchases are distinct rows.
func (s *userPlanService) Create(ctx context.Context, sellerID, buyerID, planID primitive.ObjectID) (*domain.UserPlan, error) {
	if err := s.requireRefs(ctx, sellerID, buyerID, planID); err != nil {
		return nil, err
	}

	userPlan := &domain.UserPlan{
		SellerID:  sellerID,
		BuyerID:   buyerID,
		PlanID:    planID,
		Purchased: false,
	}
	if _, err := s.userPlans.Create(ctx, userPlan); err != nil {
		return nil, err
	}
	return userPlan, nil
}

func (s *userPlanService) Get(ctx context.Context, id primitive.ObjectID) (*domain.UserPlan, error) {
	return s.userPlans.GetByID(ctx, id)
}

// MarkPurchased performs the single supported transition of the purchase
// flag. The identifying triple is immutable: a request whose triple does not
// match the stored record is treated as addressing a record that does not
// exist. A second transition attempt reports domain.ErrNoChange and leaves
// PurchasedAt untouched.
func (s *userPlanService) MarkPurchased(ctx context.Context, id, sellerID, buyerID, planID primitive.ObjectID) (*domain.UserPlan, error) {
	if err := s.requireRefs(ctx, sellerID, buyerID, planID); err != nil {
		return nil, err
	}

	stored, err := s.userPlans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stored.SellerID != sellerID || stored.BuyerID != buyerID || stored.PlanID != planID {
		return nil, domain.ErrNotFound
	}
	if stored.Purchased {
		return nil, domain.ErrNoChange
	}

	now := time.Now().UTC()
	if err := s.userPlans.SetPurchased(ctx, id, now); err != nil {
		return nil, err
	}

	// Back-reference for the "plans purchased by buyer" view.
	if err := s.users.AddPurchasedPlan(ctx, buyerID, planID); err != nil {
		return nil, domain.ErrInternal
	}

	updated, err := s.userPlans.GetByID(ctx, id)
	if err != nil {
		return nil, domain.ErrInternal
	}
	return updated, nil
}

func (s *userPlanService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.userPlans.Delete(ctx, id)
}

func (s *userPlanService) List(ctx context.Context, filter repository.UserPlanFilter, page repository.Page, sort repository.Sort) ([]domain.UserPlan, error) {
	return s.userPlans.List(ctx, filter, page, sort)
}

func (s *userPlanService) Count(ctx context.Context, filter repository.UserPlanFilter) (int64, error) {
	return s.userPlans.Count(ctx, filter)
}
