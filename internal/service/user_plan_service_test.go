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

func TestUserPlanCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.seedUser(t)
	buyer := env.seedUser(t)
	plan := env.seedPlan(t, seller.ID)

	t.Run("starts unpurchased", func(t *testing.T) {
		userPlan, err := env.userPlans.Create(ctx, seller.ID, buyer.ID, plan.ID)
		require.NoError(t, err)
		assert.False(t, userPlan.Purchased)
		assert.Nil(t, userPlan.PurchasedAt)
		assert.False(t, userPlan.CreatedAt.IsZero())
	})

	t.Run("duplicate triples are allowed", func(t *testing.T) {
		_, err := env.userPlans.Create(ctx, seller.ID, buyer.ID, plan.ID)
		require.NoError(t, err)

		n, err := env.userPlans.Count(ctx, repository.UserPlanFilter{SellerID: &seller.ID, BuyerID: &buyer.ID, PlanID: &plan.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)
	})

	t.Run("references are checked seller first", func(t *testing.T) {
		missing := primitive.NewObjectID()

		_, err := env.userPlans.Create(ctx, missing, buyer.ID, plan.ID)
		var refErr *domain.ReferenceError
		require.True(t, errors.As(err, &refErr))
		assert.Equal(t, "seller", refErr.Kind)

		_, err = env.userPlans.Create(ctx, seller.ID, missing, plan.ID)
		require.True(t, errors.As(err, &refErr))
		assert.Equal(t, "buyer", refErr.Kind)

		_, err = env.userPlans.Create(ctx, seller.ID, buyer.ID, missing)
		require.True(t, errors.As(err, &refErr))
		assert.Equal(t, "plan", refErr.Kind)
	})
}

func TestUserPlanPurchase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.seedUser(t)
	buyer := env.seedUser(t)
	plan := env.seedPlan(t, seller.ID)
	userPlan := env.seedUserPlan(t, seller.ID, buyer.ID, plan.ID)

	t.Run("mismatched triple is not found", func(t *testing.T) {
		otherBuyer := env.seedUser(t)
		_, err := env.userPlans.MarkPurchased(ctx, userPlan.ID, seller.ID, otherBuyer.ID, plan.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		stored, err := env.userPlans.Get(ctx, userPlan.ID)
		require.NoError(t, err)
		assert.False(t, stored.Purchased)
	})

	t.Run("first purchase flips the flag once", func(t *testing.T) {
		purchased, err := env.userPlans.MarkPurchased(ctx, userPlan.ID, seller.ID, buyer.ID, plan.ID)
		require.NoError(t, err)
		assert.True(t, purchased.Purchased)
		require.NotNil(t, purchased.PurchasedAt)

		storedBuyer, err := env.users.Get(ctx, buyer.ID)
		require.NoError(t, err)
		assert.Contains(t, storedBuyer.PurchasedPlans, plan.ID)
	})

	t.Run("second purchase is a no-op and the timestamp is stable", func(t *testing.T) {
		before, err := env.userPlans.Get(ctx, userPlan.ID)
		require.NoError(t, err)

		_, err = env.userPlans.MarkPurchased(ctx, userPlan.ID, seller.ID, buyer.ID, plan.ID)
		assert.ErrorIs(t, err, domain.ErrNoChange)

		after, err := env.userPlans.Get(ctx, userPlan.ID)
		require.NoError(t, err)
		assert.True(t, after.Purchased)
		require.NotNil(t, after.PurchasedAt)
		assert.Equal(t, *before.PurchasedAt, *after.PurchasedAt)
	})

	t.Run("unknown association", func(t *testing.T) {
		_, err := env.userPlans.MarkPurchased(ctx, primitive.NewObjectID(), seller.ID, buyer.ID, plan.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUserPlanListFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.seedUser(t)
	buyer := env.seedUser(t)
	plan := env.seedPlan(t, seller.ID)

	open := env.seedUserPlan(t, seller.ID, buyer.ID, plan.ID)
	closed := env.seedUserPlan(t, seller.ID, buyer.ID, plan.ID)
	_, err := env.userPlans.MarkPurchased(ctx, closed.ID, seller.ID, buyer.ID, plan.ID)
	require.NoError(t, err)

	purchased := true
	userPlans, err := env.userPlans.List(ctx, repository.UserPlanFilter{Purchased: &purchased}, repository.DefaultPage(), repository.Sort{})
	require.NoError(t, err)
	require.Len(t, userPlans, 1)
	assert.Equal(t, closed.ID, userPlans[0].ID)

	notPurchased := false
	userPlans, err = env.userPlans.List(ctx, repository.UserPlanFilter{Purchased: &notPurchased}, repository.DefaultPage(), repository.Sort{})
	require.NoError(t, err)
	require.Len(t, userPlans, 1)
	assert.Equal(t, open.ID, userPlans[0].ID)
}

func TestUserPlanDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.seedUser(t)
	buyer := env.seedUser(t)
	plan := env.seedPlan(t, seller.ID)
	userPlan := env.seedUserPlan(t, seller.ID, buyer.ID, plan.ID)

	require.NoError(t, env.userPlans.Delete(ctx, userPlan.ID))
	assert.ErrorIs(t, env.userPlans.Delete(ctx, userPlan.ID), domain.ErrNotFound)
}
