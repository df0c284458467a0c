package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cemgthedev/ElitePlans-rest-api/internal/domain"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/repository/memory"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeFileStorage records presign and delete calls without touching a real
// bucket.
type fakeFileStorage struct {
	lastKey         string
	lastContentType string
	deletedKeys     []string
}

func (f *fakeFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, contentType string, _ time.Duration) (string, error) {
	f.lastKey = objectKey
	f.lastContentType = contentType
	return "https://storage.test/upload/" + objectKey, nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/download/" + objectKey, nil
}

func (f *fakeFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	f.deletedKeys = append(f.deletedKeys, objectKey)
	return nil
}

type testEnv struct {
	store *memory.Store
	files *fakeFileStorage

	users        UserService
	plans        PlanService
	workouts     WorkoutService
	exercises    ExerciseService
	userPlans    UserPlanService
	planWorkouts PlanWorkoutService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	files := &fakeFileStorage{}
	return &testEnv{
		store:        store,
		files:        files,
		users:        NewUserService(store.Users(), store.Plans(), store.UserPlans()),
		plans:        NewPlanService(store.Plans(), store.Users(), store.UserPlans()),
		workouts:     NewWorkoutService(store.Workouts(), store.Exercises()),
		exercises:    NewExerciseService(store.Exercises(), store.Workouts(), files),
		userPlans:    NewUserPlanService(store.UserPlans(), store.Users(), store.Plans()),
		planWorkouts: NewPlanWorkoutService(store.PlanWorkouts(), store.Plans(), store.Workouts()),
	}
}

var userSeq int

func (e *testEnv) seedUser(t *testing.T) *domain.User {
	t.Helper()
	userSeq++
	user, err := e.users.Create(context.Background(),
		fmt.Sprintf("User %d", userSeq),
		fmt.Sprintf("user%d@example.com", userSeq),
		"s3cr3t-pass", "12345678901", "+5585999990000")
	require.NoError(t, err)
	return user
}

func (e *testEnv) seedPlan(t *testing.T, sellerID primitive.ObjectID) *domain.Plan {
	t.Helper()
	plan, err := e.plans.Create(context.Background(),
		"Hypertrophy Base", "Twelve week hypertrophy block", "strength", "intermediate", 199.90, sellerID)
	require.NoError(t, err)
	return plan
}

func (e *testEnv) seedWorkout(t *testing.T) *domain.Workout {
	t.Helper()
	workout, err := e.workouts.Create(context.Background(),
		"Push Day", "Chest, shoulders and triceps", 90, "strength", "upper")
	require.NoError(t, err)
	return workout
}

func (e *testEnv) seedExercise(t *testing.T, workoutID primitive.ObjectID) *domain.Exercise {
	t.Helper()
	exercise, err := e.exercises.Create(context.Background(),
		"Bench Press", 4, 8, 80, "", workoutID)
	require.NoError(t, err)
	return exercise
}

func (e *testEnv) seedUserPlan(t *testing.T, sellerID, buyerID, planID primitive.ObjectID) *domain.UserPlan {
	t.Helper()
	userPlan, err := e.userPlans.Create(context.Background(), sellerID, buyerID, planID)
	require.NoError(t, err)
	return userPlan
}
