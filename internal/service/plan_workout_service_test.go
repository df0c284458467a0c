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

func TestPlanWorkoutCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.seedUser(t)
	plan := env.seedPlan(t, seller.ID)
	workout := env.seedWorkout(t)

	t.Run("links plan and workout", func(t *testing.T) {
		planWorkout, err := env.planWorkouts.Create(ctx, plan.ID, workout.ID)
		require.NoError(t, err)
		assert.Equal(t, plan.ID, planWorkout.PlanID)
		assert.Equal(t, workout.ID, planWorkout.WorkoutID)
		assert.False(t, planWorkout.CreatedAt.IsZero())
	})

	t.Run("plan is checked before workout", func(t *testing.T) {
		missing := primitive.NewObjectID()

		_, err := env.planWorkouts.Create(ctx, missing, workout.ID)
		var refErr *domain.ReferenceError
		require.True(t, errors.As(err, &refErr))
		assert.Equal(t, "plan", refErr.Kind)

		_, err = env.planWorkouts.Create(ctx, plan.ID, missing)
		require.True(t, errors.As(err, &refErr))
		assert.Equal(t, "workout", refErr.Kind)
	})
}

func TestPlanWorkoutListAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.seedUser(t)
	plan := env.seedPlan(t, seller.ID)
	otherPlan := env.seedPlan(t, seller.ID)
	workout := env.seedWorkout(t)

	link, err := env.planWorkouts.Create(ctx, plan.ID, workout.ID)
	require.NoError(t, err)
	_, err = env.planWorkouts.Create(ctx, otherPlan.ID, workout.ID)
	require.NoError(t, err)

	t.Run("filter by plan", func(t *testing.T) {
		links, err := env.planWorkouts.List(ctx, repository.PlanWorkoutFilter{PlanID: &plan.ID}, repository.DefaultPage(), repository.Sort{})
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, link.ID, links[0].ID)
	})

	t.Run("filter by workout", func(t *testing.T) {
		n, err := env.planWorkouts.Count(ctx, repository.PlanWorkoutFilter{WorkoutID: &workout.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, env.planWorkouts.Delete(ctx, link.ID))
		_, err := env.planWorkouts.Get(ctx, link.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
