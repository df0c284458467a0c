package service

import (
	"context"
	"errors"

	"github.com/cemgthedev/ElitePlans-rest-api/internal/domain"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// UserService owns user records, the user-delete cascade and the two
// back-reference join views.
type UserService interface {
	Create(ctx context.Context, name, email, password, cpf, phoneNumber string) (*domain.User, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	Update(ctx context.Context, id primitive.ObjectID, name, email, password, cpf, phoneNumber string) (*domain.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter repository.UserFilter, page repository.Page, sort repository.Sort) ([]domain.User, error)
	Count(ctx context.Context, filter repository.UserFilter) (int64, error)

	// SoldPlans and PurchasedPlans resolve a user's back-reference collection
	// against the plan store. An empty resolution reports domain.ErrNotFound.
	SoldPlans(ctx context.Context, id primitive.ObjectID) (*domain.User, []domain.Plan, error)
	PurchasedPlans(ctx context.Context, id primitive.ObjectID) (*domain.User, []domain.Plan, error)
}

type userService struct {
	users     repository.UserRepository
	plans     repository.PlanRepository
	userPlans repository.UserPlanRepository
}

func NewUserService(users repository.UserRepository, plans repository.PlanRepository, userPlans repository.UserPlanRepository) UserService {
	return &userService{users: users, plans: plans, userPlans: userPlans}
}

func (s *userService) Create(ctx context.Context, name, email, password, cpf, phoneNumber string) (*domain.User, error) {
	// A unique index on email backs this check; the pre-check gives a clean
	// conflict on the common path, the index catches the race.
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrConflict
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CPF:          cpf,
		PhoneNumber:  phoneNumber,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// Update is a full-document replace. The stored back-reference collections
// are carried over; they are maintained by the plan and purchase flows, not
// by profile updates.
func (s *userService) Update(ctx context.Context, id primitive.ObjectID, name, email, password, cpf, phoneNumber string) (*domain.User, error) {
	stored, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Keep the stored hash when the supplied password is unchanged, so an
	// identical payload is detected as a no-op instead of producing a fresh
	// salt on every update.
	passwordHash := stored.PasswordHash
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(password)) != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		passwordHash = string(hash)
	}

	user := &domain.User{
		ID:             id,
		Name:           name,
		Email:          email,
		PasswordHash:   passwordHash,
		CPF:            cpf,
		PhoneNumber:    phoneNumber,
		PlansSold:      stored.PlansSold,
		PurchasedPlans: stored.PurchasedPlans,
	}
	if err := s.users.Replace(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes every user-plan association where the user appears as seller
// or buyer, then the user itself. The association cleanup runs unconditionally
// and is not rolled back when the user turns out not to exist.
func (s *userService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.userPlans.DeleteByUser(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

func (s *userService) List(ctx context.Context, filter repository.UserFilter, page repository.Page, sort repository.Sort) ([]domain.User, error) {
	return s.users.List(ctx, filter, page, sort)
}

func (s *userService) Count(ctx context.Context, filter repository.UserFilter) (int64, error) {
	return s.users.Count(ctx, filter)
}

func (s *userService) SoldPlans(ctx context.Context, id primitive.ObjectID) (*domain.User, []domain.Plan, error) {
	return s.resolvePlans(ctx, id, false)
}

func (s *userService) PurchasedPlans(ctx context.Context, id primitive.ObjectID) (*domain.User, []domain.Plan, error) {
	return s.resolvePlans(ctx, id, true)
}

func (s *userService) resolvePlans(ctx context.Context, id primitive.ObjectID, purchased bool) (*domain.User, []domain.Plan, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	refs := user.PlansSold
	if purchased {
		refs = user.PurchasedPlans
	}

	plans, err := s.plans.GetByIDs(ctx, refs)
	if err != nil {
		return nil, nil, err
	}
	if len(plans) == 0 {
		return nil, nil, domain.ErrNotFound
	}
	return user, plans, nil
}
