package service

import (
	"context"
	"errors"
	"testing"

	"github.com/cemgthedev/ElitePlans-rest-api/internal/domain"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPlanCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.seedUser(t)

	t.Run("records the plan in the seller's sold collection", func(t *testing.T) {
		plan, err := env.plans.Create(ctx, "Cutting Plan", "Eight week cut", "conditioning", "advanced", 149.90, seller.ID)
		require.NoError(t, err)

		stored, err := env.users.Get(ctx, seller.ID)
		require.NoError(t, err)
		assert.Contains(t, stored.PlansSold, plan.ID)
	})

	t.Run("unknown seller is rejected and nothing persists", func(t *testing.T) {
		_, err := env.plans.Create(ctx, "Orphan Plan", "No seller", "strength", "beginner", 10, primitive.NewObjectID())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		var refErr *domain.ReferenceError
		require.True(t, errors.As(err, &refErr))
		assert.Equal(t, "seller", refErr.Kind)

		n, err := env.plans.Count(ctx, repository.PlanFilter{Title: "Orphan"})
		require.NoError(t, err)
		assert.EqualValues(t, 0, n)
	})
}

func TestPlanUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.seedUser(t)
	plan := env.seedPlan(t, seller.ID)

	t.Run("identical payload is a no-op", func(t *testing.T) {
		_, err := env.plans.Update(ctx, plan.ID, plan.Title, plan.Description, plan.Type, plan.Category, plan.Price, plan.SellerID)
		assert.ErrorIs(t, err, domain.ErrNoChange)
	})

	t.Run("price change is persisted", func(t *testing.T) {
		updated, err := env.plans.Update(ctx, plan.ID, plan.Title, plan.Description, plan.Type, plan.Category, 99.90, plan.SellerID)
		require.NoError(t, err)
		assert.Equal(t, 99.90, updated.Price)
		assert.Equal(t, plan.CreatedAt, updated.CreatedAt)
	})

	t.Run("unknown seller is rejected", func(t *testing.T) {
		_, err := env.plans.Update(ctx, plan.ID, plan.Title, plan.Description, plan.Type, plan.Category, plan.Price, primitive.NewObjectID())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestPlanDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seller := env.seedUser(t)
	buyer := env.seedUser(t)
	plan := env.seedPlan(t, seller.ID)
	other := env.seedPlan(t, seller.ID)
	userPlan := env.seedUserPlan(t, seller.ID, buyer.ID, plan.ID)
	_, err := env.userPlans.MarkPurchased(ctx, userPlan.ID, seller.ID, buyer.ID, plan.ID)
	require.NoError(t, err)

	require.NoError(t, env.plans.Delete(ctx, plan.ID))

	_, err = env.plans.Get(ctx, plan.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.userPlans.Get(ctx, userPlan.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Back-references to the deleted plan are pulled from every user.
	storedSeller, err := env.users.Get(ctx, seller.ID)
	require.NoError(t, err)
	assert.NotContains(t, storedSeller.PlansSold, plan.ID)
	assert.Contains(t, storedSeller.PlansSold, other.ID)

	storedBuyer, err := env.users.Get(ctx, buyer.ID)
	require.NoError(t, err)
	assert.NotContains(t, storedBuyer.PurchasedPlans, plan.ID)
}

func TestPlanListFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.seedUser(t)
	otherSeller := env.seedUser(t)

	cheap, err := env.plans.Create(ctx, "Starter Pack", "Entry level program", "strength", "beginner", 49.90, seller.ID)
	require.NoError(t, err)
	_, err = env.plans.Create(ctx, "Elite Pack", "Competition program", "strength", "advanced", 499.90, otherSeller.ID)
	require.NoError(t, err)

	t.Run("price range", func(t *testing.T) {
		max := 100.0
		plans, err := env.plans.List(ctx, repository.PlanFilter{Price: repository.Range{Max: &max}}, repository.DefaultPage(), repository.Sort{})
		require.NoError(t, err)
		require.Len(t, plans, 1)
		assert.Equal(t, cheap.ID, plans[0].ID)
	})

	t.Run("seller filter", func(t *testing.T) {
		plans, err := env.plans.List(ctx, repository.PlanFilter{SellerID: &seller.ID}, repository.DefaultPage(), repository.Sort{})
		require.NoError(t, err)
		require.Len(t, plans, 1)
		assert.Equal(t, cheap.ID, plans[0].ID)
	})

	t.Run("category is exact match", func(t *testing.T) {
		n, err := env.plans.Count(ctx, repository.PlanFilter{Category: "beginner"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		n, err = env.plans.Count(ctx, repository.PlanFilter{Category: "begin"})
		require.NoError(t, err)
		assert.EqualValues(t, 0, n)
	})
}
