package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cemgthedev/ElitePlans-rest-api/internal/domain"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userPlanRepo struct {
	s *Store
}

func (r *userPlanRepo) Create(ctx context.Context, userPlan *domain.UserPlan) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	userPlan.ID = primitive.NewObjectID()
	userPlan.CreatedAt = time.Now().UTC()

	r.s.userPlans[userPlan.ID] = *userPlan
	return userPlan.ID, nil
}

func (r *userPlanRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.UserPlan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	userPlan, ok := r.s.userPlans[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &userPlan, nil
}

func (r *userPlanRepo) SetPurchased(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	userPlan, ok := r.s.userPlans[id]
	if !ok {
		return domain.ErrNotFound
	}
	userPlan.Purchased = true
	userPlan.PurchasedAt = &at
	r.s.userPlans[id] = userPlan
	return nil
}

func (r *userPlanRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.userPlans[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.userPlans, id)
	return nil
}

func (r *userPlanRepo) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, userPlan := range r.s.userPlans {
		if userPlan.SellerID == userID || userPlan.BuyerID == userID {
			delete(r.s.userPlans, id)
			n++
		}
	}
	return n, nil
}

func (r *userPlanRepo) DeleteByPlan(ctx context.Context, planID primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, userPlan := range r.s.userPlans {
		if userPlan.PlanID == planID {
			delete(r.s.userPlans, id)
			n++
		}
	}
	return n, nil
}

func (r *userPlanRepo) matches(userPlan domain.UserPlan, filter repository.UserPlanFilter) bool {
	if filter.SellerID != nil && userPlan.SellerID != *filter.SellerID {
		return false
	}
	if filter.BuyerID != nil && userPlan.BuyerID != *filter.BuyerID {
		return false
	}
	if filter.PlanID != nil && userPlan.PlanID != *filter.PlanID {
		return false
	}
	if filter.Purchased != nil && userPlan.Purchased != *filter.Purchased {
		return false
	}
	return true
}

func (r *userPlanRepo) List(ctx context.Context, filter repository.UserPlanFilter, page repository.Page, sortOpt repository.Sort) ([]domain.UserPlan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []domain.UserPlan{}
	for _, userPlan := range r.s.userPlans {
		if r.matches(userPlan, filter) {
			matched = append(matched, userPlan)
		}
	}

	if sortOpt.Active() {
		sort.SliceStable(matched, func(i, j int) bool {
			switch sortOpt.Field {
			case "createdAt":
				return ascending(matched[i].CreatedAt.Before(matched[j].CreatedAt), sortOpt)
			}
			return false
		})
	}
	return pageSlice(matched, page), nil
}

func (r *userPlanRepo) Count(ctx context.Context, filter repository.UserPlanFilter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, userPlan := range r.s.userPlans {
		if r.matches(userPlan, filter) {
			n++
		}
	}
	return n, nil
}
