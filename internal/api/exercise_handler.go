package api

import (
	"net/http"
	"time"

	"github.com/cemgthedev/ElitePlans-rest-api/internal/domain"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/repository"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// ExerciseRequest is the payload for creating or replacing an exercise.
type ExerciseRequest struct {
	Title       string  `json:"title" binding:"required,min=3,max=120"`
	NSections   int     `json:"nSections" binding:"gte=0"`
	NReps       int     `json:"nReps" binding:"gte=0"`
	Weight      float64 `json:"weight" binding:"gte=0"`
	TutorialURL string  `json:"tutorialUrl" binding:"omitempty,url"`
	WorkoutID   string  `json:"workoutId" binding:"required"`
}

type ExerciseResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	NSections   int       `json:"nSections"`
	NReps       int       `json:"nReps"`
	Weight      float64   `json:"weight"`
	TutorialURL string    `json:"tutorialUrl,omitempty"`
	WorkoutID   string    `json:"workoutId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TutorialUploadResponse carries a presigned PUT URL for tutorial media.
type TutorialUploadResponse struct {
	UploadURL string    `json:"uploadUrl"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// TutorialDownloadResponse carries a presigned GET URL for stored tutorial
// media.
type TutorialDownloadResponse struct {
	DownloadURL string    `json:"downloadUrl"`
	ObjectKey   string    `json:"objectKey"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func MapExerciseToResponse(e *domain.Exercise) ExerciseResponse {
	if e == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:          e.ID.Hex(),
		Title:       e.Title,
		NSections:   e.NSections,
		NReps:       e.NReps,
		Weight:      e.Weight,
		TutorialURL: e.TutorialURL,
		WorkoutID:   e.WorkoutID.Hex(),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (h *ExerciseHandler) bindExerciseRequest(c *gin.Context) (*ExerciseRequest, primitive.ObjectID, bool) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "validation error: "+err.Error())
		return nil, primitive.NilObjectID, false
	}
	workoutID, err := primitive.ObjectIDFromHex(req.WorkoutID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid workout ID format")
		return nil, primitive.NilObjectID, false
	}
	return &req, workoutID, true
}

// CreateExercise registers an exercise under an existing workout.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	req, workoutID, ok := h.bindExerciseRequest(c)
	if !ok {
		return
	}

	exercise, err := h.exerciseService.Create(c.Request.Context(), req.Title, req.NSections, req.NReps, req.Weight, req.TutorialURL, workoutID)
	if err != nil {
		respondError(c, err, "exercise")
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	exercise, err := h.exerciseService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "exercise")
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	req, workoutID, ok := h.bindExerciseRequest(c)
	if !ok {
		return
	}

	exercise, err := h.exerciseService.Update(c.Request.Context(), id, req.Title, req.NSections, req.NReps, req.Weight, req.TutorialURL, workoutID)
	if err != nil {
		respondError(c, err, "exercise")
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.exerciseService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "exercise")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "exercise deleted successfully"})
}

var exerciseSortFields = map[string]string{
	"title":      "title",
	"weight":     "weight",
	"n_sections": "nSections",
	"n_reps":     "nReps",
	"created_at": "createdAt",
}

func (h *ExerciseHandler) exerciseFilter(c *gin.Context) (repository.ExerciseFilter, error) {
	workoutID, err := queryObjectID(c, "workout_id")
	if err != nil {
		return repository.ExerciseFilter{}, err
	}
	minSections, err := queryInt(c, "min_n_sections")
	if err != nil {
		return repository.ExerciseFilter{}, err
	}
	maxSections, err := queryInt(c, "max_n_sections")
	if err != nil {
		return repository.ExerciseFilter{}, err
	}
	minReps, err := queryInt(c, "min_n_reps")
	if err != nil {
		return repository.ExerciseFilter{}, err
	}
	maxReps, err := queryInt(c, "max_n_reps")
	if err != nil {
		return repository.ExerciseFilter{}, err
	}
	minWeight, err := queryFloat(c, "min_weight")
	if err != nil {
		return repository.ExerciseFilter{}, err
	}
	maxWeight, err := queryFloat(c, "max_weight")
	if err != nil {
		return repository.ExerciseFilter{}, err
	}
	return repository.ExerciseFilter{
		Title:     c.Query("title"),
		WorkoutID: workoutID,
		NSections: repository.IntRange{Min: minSections, Max: maxSections},
		NReps:     repository.IntRange{Min: minReps, Max: maxReps},
		Weight:    repository.Range{Min: minWeight, Max: maxWeight},
	}, nil
}

func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	filter, err := h.exerciseFilter(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	exercises, err := h.exerciseService.List(c.Request.Context(), filter, page, parseSort(c, exerciseSortFields))
	if err != nil {
		respondError(c, err, "exercises")
		return
	}
	if len(exercises) == 0 {
		abortWithError(c, http.StatusNotFound, "no exercises found")
		return
	}

	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	c.JSON(http.StatusOK, responses)
}

func (h *ExerciseHandler) CountExercises(c *gin.Context) {
	filter, err := h.exerciseFilter(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	quantity, err := h.exerciseService.Count(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "exercises")
		return
	}
	c.JSON(http.StatusOK, gin.H{"quantity": quantity})
}

// GetTutorialUploadURL returns a presigned URL the client can PUT tutorial
// media to. The exercise must exist.
func (h *ExerciseHandler) GetTutorialUploadURL(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	var req struct {
		ContentType string `json:"contentType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}

	upload, err := h.exerciseService.TutorialUploadURL(c.Request.Context(), id, req.ContentType)
	if err != nil {
		respondError(c, err, "exercise")
		return
	}
	c.JSON(http.StatusOK, TutorialUploadResponse{
		UploadURL: upload.UploadURL,
		ObjectKey: upload.ObjectKey,
		ExpiresAt: upload.ExpiresAt,
	})
}

// GetTutorialDownloadURL returns a presigned URL the client can GET the
// stored tutorial media from. 404 when the exercise has no stored object.
func (h *ExerciseHandler) GetTutorialDownloadURL(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	download, err := h.exerciseService.TutorialDownloadURL(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "tutorial")
		return
	}
	c.JSON(http.StatusOK, TutorialDownloadResponse{
		DownloadURL: download.DownloadURL,
		ObjectKey:   download.ObjectKey,
		ExpiresAt:   download.ExpiresAt,
	})
}
