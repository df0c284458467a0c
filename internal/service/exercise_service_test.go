package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cemgthedev/ElitePlans-rest-api/internal/domain"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestExerciseCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	workout := env.seedWorkout(t)

	t.Run("attaches to an existing workout", func(t *testing.T) {
		exercise, err := env.exercises.Create(ctx, "Incline Press", 3, 10, 60, "https://videos.test/incline", workout.ID)
		require.NoError(t, err)
		assert.Equal(t, workout.ID, exercise.WorkoutID)
		assert.Equal(t, "https://videos.test/incline", exercise.TutorialURL)
	})

	t.Run("unknown workout is rejected and nothing persists", func(t *testing.T) {
		_, err := env.exercises.Create(ctx, "Ghost Press", 3, 10, 60, "", primitive.NewObjectID())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		var refErr *domain.ReferenceError
		require.True(t, errors.As(err, &refErr))
		assert.Equal(t, "workout", refErr.Kind)

		n, err := env.exercises.Count(ctx, repository.ExerciseFilter{Title: "Ghost"})
		require.NoError(t, err)
		assert.EqualValues(t, 0, n)
	})
}

func TestExerciseUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	workout := env.seedWorkout(t)
	exercise := env.seedExercise(t, workout.ID)

	t.Run("identical payload is a no-op", func(t *testing.T) {
		_, err := env.exercises.Update(ctx, exercise.ID, exercise.Title, exercise.NSections, exercise.NReps, exercise.Weight, exercise.TutorialURL, exercise.WorkoutID)
		assert.ErrorIs(t, err, domain.ErrNoChange)
	})

	t.Run("moving to an unknown workout is rejected", func(t *testing.T) {
		_, err := env.exercises.Update(ctx, exercise.ID, exercise.Title, exercise.NSections, exercise.NReps, exercise.Weight, exercise.TutorialURL, primitive.NewObjectID())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("weight change is persisted", func(t *testing.T) {
		updated, err := env.exercises.Update(ctx, exercise.ID, exercise.Title, exercise.NSections, exercise.NReps, 85, exercise.TutorialURL, exercise.WorkoutID)
		require.NoError(t, err)
		assert.Equal(t, 85.0, updated.Weight)
	})

	t.Run("stored object key survives a replace", func(t *testing.T) {
		upload, err := env.exercises.TutorialUploadURL(ctx, exercise.ID, "video/mp4")
		require.NoError(t, err)

		updated, err := env.exercises.Update(ctx, exercise.ID, exercise.Title, exercise.NSections, exercise.NReps, 90, exercise.TutorialURL, exercise.WorkoutID)
		require.NoError(t, err)
		assert.Equal(t, upload.ObjectKey, updated.TutorialObjectKey)
	})
}

func TestExerciseNumericFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	workout := env.seedWorkout(t)

	light, err := env.exercises.Create(ctx, "Lateral Raise", 3, 15, 10, "", workout.ID)
	require.NoError(t, err)
	_, err = env.exercises.Create(ctx, "Deadlift", 5, 5, 140, "", workout.ID)
	require.NoError(t, err)

	maxWeight := 50.0
	minReps := 10
	exercises, err := env.exercises.List(ctx, repository.ExerciseFilter{
		Weight: repository.Range{Max: &maxWeight},
		NReps:  repository.IntRange{Min: &minReps},
	}, repository.DefaultPage(), repository.Sort{})
	require.NoError(t, err)
	require.Len(t, exercises, 1)
	assert.Equal(t, light.ID, exercises[0].ID)
}

func TestExerciseTutorialUploadURL(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	workout := env.seedWorkout(t)
	exercise := env.seedExercise(t, workout.ID)

	t.Run("presigns a key scoped to the exercise and records it", func(t *testing.T) {
		before := time.Now()
		upload, err := env.exercises.TutorialUploadURL(ctx, exercise.ID, "video/mp4")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(upload.ObjectKey, "tutorials/"+exercise.ID.Hex()+"/"))
		assert.Equal(t, "https://storage.test/upload/"+upload.ObjectKey, upload.UploadURL)
		assert.Equal(t, "video/mp4", env.files.lastContentType)
		assert.True(t, upload.ExpiresAt.After(before))

		stored, err := env.exercises.Get(ctx, exercise.ID)
		require.NoError(t, err)
		assert.Equal(t, upload.ObjectKey, stored.TutorialObjectKey)
	})

	t.Run("re-presigning deletes the previous object", func(t *testing.T) {
		first, err := env.exercises.Get(ctx, exercise.ID)
		require.NoError(t, err)
		require.NotEmpty(t, first.TutorialObjectKey)

		upload, err := env.exercises.TutorialUploadURL(ctx, exercise.ID, "video/mp4")
		require.NoError(t, err)
		assert.NotEqual(t, first.TutorialObjectKey, upload.ObjectKey)
		assert.Contains(t, env.files.deletedKeys, first.TutorialObjectKey)
	})

	t.Run("unknown exercise", func(t *testing.T) {
		_, err := env.exercises.TutorialUploadURL(ctx, primitive.NewObjectID(), "video/mp4")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestExerciseTutorialDownloadURL(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	workout := env.seedWorkout(t)
	exercise := env.seedExercise(t, workout.ID)

	t.Run("no stored object is not found", func(t *testing.T) {
		_, err := env.exercises.TutorialDownloadURL(ctx, exercise.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("presigns the stored key", func(t *testing.T) {
		upload, err := env.exercises.TutorialUploadURL(ctx, exercise.ID, "video/mp4")
		require.NoError(t, err)

		download, err := env.exercises.TutorialDownloadURL(ctx, exercise.ID)
		require.NoError(t, err)
		assert.Equal(t, upload.ObjectKey, download.ObjectKey)
		assert.Equal(t, "https://storage.test/download/"+download.ObjectKey, download.DownloadURL)
	})

	t.Run("unknown exercise", func(t *testing.T) {
		_, err := env.exercises.TutorialDownloadURL(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestExerciseDeleteRemovesStoredTutorial(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	workout := env.seedWorkout(t)
	exercise := env.seedExercise(t, workout.ID)

	t.Run("delete without a stored object touches no storage", func(t *testing.T) {
		other := env.seedExercise(t, workout.ID)
		require.NoError(t, env.exercises.Delete(ctx, other.ID))
		assert.Empty(t, env.files.deletedKeys)
	})

	t.Run("delete removes the stored object", func(t *testing.T) {
		upload, err := env.exercises.TutorialUploadURL(ctx, exercise.ID, "video/mp4")
		require.NoError(t, err)

		require.NoError(t, env.exercises.Delete(ctx, exercise.ID))
		assert.Contains(t, env.files.deletedKeys, upload.ObjectKey)

		_, err = env.exercises.Get(ctx, exercise.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
