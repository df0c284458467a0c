package service

import (
	"context"
	"errors"

	"github.com/cemgthedev/ElitePlans-rest-api/internal/domain"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanService owns plan records and the plan-delete cascade.
type PlanService interface {
	Create(ctx context.Context, title, description, planType, category string, price float64, sellerID primitive.ObjectID) (*domain.Plan, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error)
	Update(ctx context.Context, id primitive.ObjectID, title, description, planType, category string, price float64, sellerID primitive.ObjectID) (*domain.Plan, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter repository.PlanFilter, page repository.Page, sort repository.Sort) ([]domain.Plan, error)
	Count(ctx context.Context, filter repository.PlanFilter) (int64, error)
}

type planService struct {
	plans     repository.PlanRepository
	users     repository.UserRepository
	userPlans repository.UserPlanRepository
}

func NewPlanService(plans repository.PlanRepository, users repository.UserRepository, userPlans repository.UserPlanRepository) PlanService {
	return &planService{plans: plans, users: users, userPlans: userPlans}
}

// requireSeller checks that the seller reference resolves before a write.
// The check and the write are deliberately not atomic.
func (s *planService) requireSeller(ctx context.Context, sellerID primitive.ObjectID) error {
	if _, err := s.users.GetByID(ctx, sellerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.ReferenceError{Kind: "seller", ID: sellerID.Hex()}
		}
		return err
	}
	return nil
}

func (s *planService) Create(ctx context.Context, title, description, planType, category string, price float64, sellerID primitive.ObjectID) (*domain.Plan, error) {
	if err := s.requireSeller(ctx, sellerID); err != nil {
		return nil, err
	}

	plan := &domain.Plan{
		Title:       title,
		Description: description,
		Type:        planType,
		Category:    category,
		Price:       price,
		SellerID:    sellerID,
	}
	if _, err := s.plans.Create(ctx, plan); err != nil {
		return nil, err
	}

	// Back-reference for the "plans sold by seller" view. The plan is already
	// persisted; a failure here is an internal fault, not a rollback.
	if err := s.users.AddSoldPlan(ctx, sellerID, plan.ID); err != nil {
		return nil, domain.ErrInternal
	}
	return plan, nil
}

func (s *planService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	return s.plans.GetByID(ctx, id)
}

func (s *planService) Update(ctx context.Context, id primitive.ObjectID, title, description, planType, category string, price float64, sellerID primitive.ObjectID) (*domain.Plan, error) {
	if err := s.requireSeller(ctx, sellerID); err != nil {
		return nil, err
	}

	plan := &domain.Plan{
		ID:          id,
		Title:       title,
		Description: description,
		Type:        planType,
		Category:    category,
		Price:       price,
		SellerID:    sellerID,
	}
	if err := s.plans.Replace(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Delete removes every user-plan association referencing the plan and pulls
// the plan out of all user back-references, then deletes the plan itself.
// Cleanup runs unconditionally and is not rolled back on a missing parent.
func (s *planService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.userPlans.DeleteByPlan(ctx, id); err != nil {
		return err
	}
	if err := s.users.RemovePlanRefs(ctx, id); err != nil {
		return err
	}
	return s.plans.Delete(ctx, id)
}

func (s *planService) List(ctx context.Context, filter repository.PlanFilter, page repository.Page, sort repository.Sort) ([]domain.Plan, error) {
	return s.plans.List(ctx, filter, page, sort)
}

func (s *planService) Count(ctx context.Context, filter repository.PlanFilter) (int64, error) {
	return s.plans.Count(ctx, filter)
}
