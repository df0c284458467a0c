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

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.emailIndex[user.Email]; taken {
		return primitive.NilObjectID, domain.ErrConflict
	}

	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.s.users[user.ID] = *user
	r.s.emailIndex[user.Email] = user.ID
	return user.ID, nil
}

func (r *userRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emailIndex[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	user := r.s.users[id]
	return &user, nil
}

func (r *userRepo) Replace(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.users[user.ID]
	if !ok {
		return domain.ErrNotFound
	}

	candidate := *user
	candidate.CreatedAt = stored.CreatedAt
	candidate.UpdatedAt = stored.UpdatedAt
	if reflect.DeepEqual(stored, candidate) {
		return domain.ErrNoChange
	}

	if user.Email != stored.Email {
		if _, taken := r.s.emailIndex[user.Email]; taken {
			return domain.ErrConflict
		}
		delete(r.s.emailIndex, stored.Email)
		r.s.emailIndex[user.Email] = user.ID
	}

	user.CreatedAt = stored.CreatedAt
	user.UpdatedAt = time.Now().UTC()
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(r.s.emailIndex, user.Email)
	delete(r.s.users, id)
	return nil
}

func (r *userRepo) List(ctx context.Context, filter repository.UserFilter, page repository.Page, sortOpt repository.Sort) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []domain.User{}
	for _, user := range r.s.users {
		if filter.Name != "" && !containsFold(user.Name, filter.Name) {
			continue
		}
		if filter.Email != "" && !containsFold(user.Email, filter.Email) {
			continue
		}
		matched = append(matched, user)
	}

	if sortOpt.Active() {
		sort.SliceStable(matched, func(i, j int) bool {
			switch sortOpt.Field {
			case "name":
				return ascending(matched[i].Name < matched[j].Name, sortOpt)
			case "email":
				return ascending(matched[i].Email < matched[j].Email, sortOpt)
			case "createdAt":
				return ascending(matched[i].CreatedAt.Before(matched[j].CreatedAt), sortOpt)
			}
			return false
		})
	}
	return pageSlice(matched, page), nil
}

func (r *userRepo) Count(ctx context.Context, filter repository.UserFilter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, user := range r.s.users {
		if filter.Name != "" && !containsFold(user.Name, filter.Name) {
			continue
		}
		if filter.Email != "" && !containsFold(user.Email, filter.Email) {
			continue
		}
		n++
	}
	return n, nil
}

func (r *userRepo) AddSoldPlan(ctx context.Context, userID, planID primitive.ObjectID) error {
	return r.addPlanRef(userID, planID, false)
}

func (r *userRepo) AddPurchasedPlan(ctx context.Context, userID, planID primitive.ObjectID) error {
	return r.addPlanRef(userID, planID, true)
}

func (r *userRepo) addPlanRef(userID, planID primitive.ObjectID, purchased bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[userID]
	if !ok {
		return domain.ErrNotFound
	}

	refs := user.PlansSold
	if purchased {
		refs = user.PurchasedPlans
	}
	for _, id := range refs {
		if id == planID {
			return nil // set semantics, like $addToSet
		}
	}
	if purchased {
		user.PurchasedPlans = append(user.PurchasedPlans, planID)
	} else {
		user.PlansSold = append(user.PlansSold, planID)
	}
	user.UpdatedAt = time.Now().UTC()
	r.s.users[userID] = user
	return nil
}

func (r *userRepo) RemovePlanRefs(ctx context.Context, planID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, user := range r.s.users {
		user.PlansSold = removeID(user.PlansSold, planID)
		user.PurchasedPlans = removeID(user.PurchasedPlans, planID)
		r.s.users[id] = user
	}
	return nil
}

func removeID(ids []primitive.ObjectID, target primitive.ObjectID) []primitive.ObjectID {
	var kept []primitive.ObjectID
	for _, id := range ids {
		if id != target {
			kept = append(kept, id)
		}
	}
	return kept
}
