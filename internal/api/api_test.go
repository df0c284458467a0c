package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cemgthedev/ElitePlans-rest-api/internal/repository/memory"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFileStorage struct{}

func (fakeFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	return "https://storage.test/upload/" + objectKey, nil
}

func (fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/download/" + objectKey, nil
}

func (fakeFileStorage) DeleteObject(context.Context, string) error { return nil }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	userService := service.NewUserService(store.Users(), store.Plans(), store.UserPlans())
	planService := service.NewPlanService(store.Plans(), store.Users(), store.UserPlans())
	workoutService := service.NewWorkoutService(store.Workouts(), store.Exercises())
	exerciseService := service.NewExerciseService(store.Exercises(), store.Workouts(), fakeFileStorage{})
	userPlanService := service.NewUserPlanService(store.UserPlans(), store.Users(), store.Plans())
	planWorkoutService := service.NewPlanWorkoutService(store.PlanWorkouts(), store.Plans(), store.Workouts())

	router := gin.New()
	SetupRoutes(
		router,
		NewUserHandler(userService),
		NewPlanHandler(planService),
		NewWorkoutHandler(workoutService),
		NewExerciseHandler(exerciseService),
		NewUserPlanHandler(userPlanService),
		NewPlanWorkoutHandler(planWorkoutService),
	)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

var emailSeq int

func createUser(t *testing.T, router *gin.Engine) UserResponse {
	t.Helper()
	emailSeq++
	rec := doJSON(t, router, http.MethodPost, "/users", UserRequest{
		Name:        "Test User",
		Email:       fmt.Sprintf("api.user%d@example.com", emailSeq),
		Password:    "s3cr3t-pass",
		CPF:         "12345678901",
		PhoneNumber: "+558590000000",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeBody[UserResponse](t, rec)
}

func createPlan(t *testing.T, router *gin.Engine, sellerID string) PlanResponse {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/plans", PlanRequest{
		Title:       "Base Plan",
		Description: "Twelve week block",
		Type:        "strength",
		Category:    "intermediate",
		Price:       199.90,
		SellerID:    sellerID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeBody[PlanResponse](t, rec)
}

func TestPing(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"pong"}`, rec.Body.String())
}

func TestUserEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("create returns 201 without the password", func(t *testing.T) {
		emailSeq++
		rec := doJSON(t, router, http.MethodPost, "/users", UserRequest{
			Name:        "Test User",
			Email:       fmt.Sprintf("api.user%d@example.com", emailSeq),
			Password:    "s3cr3t-pass",
			CPF:         "12345678901",
			PhoneNumber: "+558590000000",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.NotContains(t, rec.Body.String(), "password")
		assert.NotContains(t, rec.Body.String(), "s3cr3t")
	})

	t.Run("duplicate email is 409", func(t *testing.T) {
		user := createUser(t, router)
		rec := doJSON(t, router, http.MethodPost, "/users", UserRequest{
			Name:        "Other User",
			Email:       user.Email,
			Password:    "s3cr3t-pass",
			CPF:         "10987654321",
			PhoneNumber: "+558590000001",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("short name fails validation with 400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/users", UserRequest{
			Name:        "ab",
			Email:       "short@example.com",
			Password:    "s3cr3t-pass",
			CPF:         "12345678901",
			PhoneNumber: "+558590000002",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown id is 404, malformed id is 400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/users/64b000000000000000000000", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = doJSON(t, router, http.MethodGet, "/users/not-an-id", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("identical replace is 500", func(t *testing.T) {
		user := createUser(t, router)
		rec := doJSON(t, router, http.MethodPut, "/users/"+user.ID, UserRequest{
			Name:        user.Name,
			Email:       user.Email,
			Password:    "s3cr3t-pass",
			CPF:         user.CPF,
			PhoneNumber: user.PhoneNumber,
		})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"no fields changed"}`, rec.Body.String())
	})

	t.Run("delete confirms with a message", func(t *testing.T) {
		user := createUser(t, router)
		rec := doJSON(t, router, http.MethodDelete, "/users/"+user.ID, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"user deleted successfully"}`, rec.Body.String())

		rec = doJSON(t, router, http.MethodDelete, "/users/"+user.ID, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListAndQuantityEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("empty list is 404 but quantity is 200 with zero", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/workouts", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = doJSON(t, router, http.MethodGet, "/workouts/quantity", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"quantity":0}`, rec.Body.String())
	})

	t.Run("limit outside 1..100 is 400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/users?limit=0", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = doJSON(t, router, http.MethodGet, "/users?limit=101", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = doJSON(t, router, http.MethodGet, "/users?page=0", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed numeric filter is 400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/plans?min_price=abc", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("filtered quantity", func(t *testing.T) {
		user := createUser(t, router)
		createPlan(t, router, user.ID)

		rec := doJSON(t, router, http.MethodGet, "/plans/quantity?seller_id="+user.ID, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"quantity":1}`, rec.Body.String())
	})
}

func TestPlanEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("unknown seller is 404 naming the reference", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/plans", PlanRequest{
			Title:       "Orphan Plan",
			Description: "No seller exists",
			Type:        "strength",
			Category:    "beginner",
			Price:       10,
			SellerID:    "64b000000000000000000000",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "seller not found")
	})

	t.Run("created plan lands in the seller's sold view", func(t *testing.T) {
		user := createUser(t, router)
		plan := createPlan(t, router, user.ID)

		rec := doJSON(t, router, http.MethodGet, "/users/"+user.ID+"/plans_sold", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		view := decodeBody[UserPlansResponse](t, rec)
		require.Len(t, view.Plans, 1)
		assert.Equal(t, plan.ID, view.Plans[0].ID)
	})

	t.Run("empty purchased view is 404", func(t *testing.T) {
		user := createUser(t, router)
		rec := doJSON(t, router, http.MethodGet, "/users/"+user.ID+"/purchased_plans", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUserPlanPurchaseEndpoint(t *testing.T) {
	router := newTestRouter(t)

	seller := createUser(t, router)
	buyer := createUser(t, router)
	plan := createPlan(t, router, seller.ID)

	triple := UserPlanRequest{SellerID: seller.ID, BuyerID: buyer.ID, PlanID: plan.ID}

	rec := doJSON(t, router, http.MethodPost, "/user_plans", triple)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[UserPlanResponse](t, rec)
	assert.False(t, created.Purchased)

	t.Run("mismatched triple is 404", func(t *testing.T) {
		bad := triple
		bad.BuyerID = seller.ID
		rec := doJSON(t, router, http.MethodPatch, "/user_plans/"+created.ID+"/purchase", bad)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("purchase succeeds once", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPatch, "/user_plans/"+created.ID+"/purchase", triple)
		require.Equal(t, http.StatusOK, rec.Code)
		purchased := decodeBody[UserPlanResponse](t, rec)
		assert.True(t, purchased.Purchased)
		require.NotNil(t, purchased.PurchasedAt)
	})

	t.Run("second purchase is 500", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPatch, "/user_plans/"+created.ID+"/purchase", triple)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"no fields changed"}`, rec.Body.String())
	})

	t.Run("buyer's purchased view resolves after purchase", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/users/"+buyer.ID+"/purchased_plans", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		view := decodeBody[UserPlansResponse](t, rec)
		require.Len(t, view.Plans, 1)
		assert.Equal(t, plan.ID, view.Plans[0].ID)
	})
}

func TestExerciseTutorialUploadEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/workouts", WorkoutRequest{
		Title:       "Pull Day",
		Description: "Back and biceps",
		RestTime:    90,
		Type:        "strength",
		Category:    "upper",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	workout := decodeBody[WorkoutResponse](t, rec)

	rec = doJSON(t, router, http.MethodPost, "/exercises", ExerciseRequest{
		Title:     "Barbell Row",
		NSections: 4,
		NReps:     8,
		Weight:    70,
		WorkoutID: workout.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	exercise := decodeBody[ExerciseResponse](t, rec)

	t.Run("download before any upload is 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/exercises/"+exercise.ID+"/tutorial_download", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "tutorial not found")
	})

	t.Run("returns a presigned target", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/exercises/"+exercise.ID+"/tutorial_upload", gin.H{"contentType": "video/mp4"})
		require.Equal(t, http.StatusOK, rec.Code)
		upload := decodeBody[TutorialUploadResponse](t, rec)
		assert.Contains(t, upload.UploadURL, upload.ObjectKey)
		assert.Contains(t, upload.ObjectKey, "tutorials/"+exercise.ID)
	})

	t.Run("download presigns the stored object", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/exercises/"+exercise.ID+"/tutorial_download", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		download := decodeBody[TutorialDownloadResponse](t, rec)
		assert.Contains(t, download.ObjectKey, "tutorials/"+exercise.ID)
		assert.Contains(t, download.DownloadURL, download.ObjectKey)
	})

	t.Run("missing content type is 400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/exercises/"+exercise.ID+"/tutorial_upload", gin.H{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown exercise is 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/exercises/64b000000000000000000000/tutorial_upload", gin.H{"contentType": "video/mp4"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
