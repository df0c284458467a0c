package memory

import (
	"context"
	"reflect"
	"sort"
	"time"

	"github.com/cemgthedev/ElitePlans-rest-api/internal/domain"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type planRepo struct {
	s *Store
}

func (r *planRepo) Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	r.s.plans[plan.ID] = *plan
	return plan.ID, nil
}

func (r *planRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	plan, ok := r.s.plans[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &plan, nil
}

func (r *planRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Plan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	plans := []domain.Plan{}
	for _, id := range ids {
		if plan, ok := r.s.plans[id]; ok {
			plans = append(plans, plan)
		}
	}
	return plans, nil
}

func (r *planRepo) Replace(ctx context.Context, plan *domain.Plan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.plans[plan.ID]
	if !ok {
		return domain.ErrNotFound
	}

	candidate := *plan
	candidate.CreatedAt = stored.CreatedAt
	candidate.UpdatedAt = stored.UpdatedAt
	if reflect.DeepEqual(stored, candidate) {
		return domain.ErrNoChange
	}

	plan.CreatedAt = stored.CreatedAt
	plan.UpdatedAt = time.Now().UTC()
	r.s.plans[plan.ID] = *plan
	return nil
}

func (r *planRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.plans[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.plans, id)
	return nil
}

func (r *planRepo) matches(plan domain.Plan, filter repository.PlanFilter) bool {
	if filter.Title != "" && !containsFold(plan.Title, filter.Title) {
		return false
	}
	if filter.Type != "" && plan.Type != filter.Type {
		return false
	}
	if filter.Category != "" && plan.Category != filter.Category {
		return false
	}
	if filter.SellerID != nil && plan.SellerID != *filter.SellerID {
		return false
	}
	return inRange(plan.Price, filter.Price)
}

func (r *planRepo) List(ctx context.Context, filter repository.PlanFilter, page repository.Page, sortOpt repository.Sort) ([]domain.Plan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []domain.Plan{}
	for _, plan := range r.s.plans {
		if r.matches(plan, filter) {
			matched = append(matched, plan)
		}
	}

	if sortOpt.Active() {
		sort.SliceStable(matched, func(i, j int) bool {
			switch sortOpt.Field {
			case "title":
				return ascending(matched[i].Title < matched[j].Title, sortOpt)
			case "price":
				return ascending(matched[i].Price < matched[j].Price, sortOpt)
			case "createdAt":
				return ascending(matched[i].CreatedAt.Before(matched[j].CreatedAt), sortOpt)
			}
			return false
		})
	}
	return pageSlice(matched, page), nil
}

func (r *planRepo) Count(ctx context.Context, filter repository.PlanFilter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, plan := range r.s.plans {
		if r.matches(plan, filter) {
			n++
		}
	}
	return n, nil
}
