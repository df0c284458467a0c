package api

import (
	"net/http"
	"time"

	"github.com/cemgthedev/ElitePlans-rest-api/internal/domain"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/repository"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/service"

	"github.com/gin-gonic/gin"
)

type WorkoutHandler struct {
	workoutService service.WorkoutService
}

func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// WorkoutRequest is the payload for creating or replacing a workout.
type WorkoutRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=120"`
	Description string `json:"description" binding:"required,min=3"`
	RestTime    int    `json:"restTime" binding:"gte=0"`
	Type        string `json:"type" binding:"required,min=3"`
	Category    string `json:"category" binding:"required,min=3"`
}

type WorkoutResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	RestTime    int       `json:"restTime"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	if w == nil {
		return WorkoutResponse{}
	}
	return WorkoutResponse{
		ID:          w.ID.Hex(),
		Title:       w.Title,
		Description: w.Description,
		RestTime:    w.RestTime,
		Type:        w.Type,
		Category:    w.Category,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}

	workout, err := h.workoutService.Create(c.Request.Context(), req.Title, req.Description, req.RestTime, req.Type, req.Category)
	if err != nil {
		respondError(c, err, "workout")
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	workout, err := h.workoutService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "workout")
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}

	workout, err := h.workoutService.Update(c.Request.Context(), id, req.Title, req.Description, req.RestTime, req.Type, req.Category)
	if err != nil {
		respondError(c, err, "workout")
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// DeleteWorkout removes the workout and every exercise attached to it.
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.workoutService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "workout")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "workout deleted successfully"})
}

var workoutSortFields = map[string]string{
	"title":      "title",
	"rest_time":  "restTime",
	"created_at": "createdAt",
}

func (h *WorkoutHandler) workoutFilter(c *gin.Context) (repository.WorkoutFilter, error) {
	minRest, err := queryInt(c, "min_rest_time")
	if err != nil {
		return repository.WorkoutFilter{}, err
	}
	maxRest, err := queryInt(c, "max_rest_time")
	if err != nil {
		return repository.WorkoutFilter{}, err
	}
	return repository.WorkoutFilter{
		Title:    c.Query("title"),
		Type:     c.Query("type"),
		Category: c.Query("category"),
		RestTime: repository.IntRange{Min: minRest, Max: maxRest},
	}, nil
}

func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	filter, err := h.workoutFilter(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	workouts, err := h.workoutService.List(c.Request.Context(), filter, page, parseSort(c, workoutSortFields))
	if err != nil {
		respondError(c, err, "workouts")
		return
	}
	if len(workouts) == 0 {
		abortWithError(c, http.StatusNotFound, "no workouts found")
		return
	}

	responses := make([]WorkoutResponse, len(workouts))
	for i := range workouts {
		responses[i] = MapWorkoutToResponse(&workouts[i])
	}
	c.JSON(http.StatusOK, responses)
}

func (h *WorkoutHandler) CountWorkouts(c *gin.Context) {
	filter, err := h.workoutFilter(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	quantity, err := h.workoutService.Count(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "workouts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"quantity": quantity})
}
