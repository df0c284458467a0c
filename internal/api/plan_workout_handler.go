package api

import (
	"net/http"
	"time"

	"github.com/cemgthedev/ElitePlans-rest-api/internal/domain"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/repository"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/service"

	"github.com/gin-gonic/gin"
)

type PlanWorkoutHandler struct {
	planWorkoutService service.PlanWorkoutService
}

func NewPlanWorkoutHandler(planWorkoutService service.PlanWorkoutService) *PlanWorkoutHandler {
	return &PlanWorkoutHandler{planWorkoutService: planWorkoutService}
}

// PlanWorkoutRequest links a workout into a plan.
type PlanWorkoutRequest struct {
	PlanID    string `json:"planId" binding:"required"`
	WorkoutID string `json:"workoutId" binding:"required"`
}

type PlanWorkoutResponse struct {
	ID        string    `json:"id"`
	PlanID    string    `json:"planId"`
	WorkoutID string    `json:"workoutId"`
	CreatedAt time.Time `json:"createdAt"`
}

func MapPlanWorkoutToResponse(pw *domain.PlanWorkout) PlanWorkoutResponse {
	if pw == nil {
		return PlanWorkoutResponse{}
	}
	return PlanWorkoutResponse{
		ID:        pw.ID.Hex(),
		PlanID:    pw.PlanID.Hex(),
		WorkoutID: pw.WorkoutID.Hex(),
		CreatedAt: pw.CreatedAt,
	}
}

// CreatePlanWorkout attaches a workout to a plan. Both sides must exist.
func (h *PlanWorkoutHandler) CreatePlanWorkout(c *gin.Context) {
	var req PlanWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}
	planID, err := parseObjectID(req.PlanID, "plan")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	workoutID, err := parseObjectID(req.WorkoutID, "workout")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	planWorkout, err := h.planWorkoutService.Create(c.Request.Context(), planID, workoutID)
	if err != nil {
		respondError(c, err, "plan workout")
		return
	}
	c.JSON(http.StatusCreated, MapPlanWorkoutToResponse(planWorkout))
}

func (h *PlanWorkoutHandler) GetPlanWorkout(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	planWorkout, err := h.planWorkoutService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "plan workout")
		return
	}
	c.JSON(http.StatusOK, MapPlanWorkoutToResponse(planWorkout))
}

func (h *PlanWorkoutHandler) DeletePlanWorkout(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.planWorkoutService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "plan workout")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "plan workout deleted successfully"})
}

var planWorkoutSortFields = map[string]string{
	"created_at": "createdAt",
}

func (h *PlanWorkoutHandler) planWorkoutFilter(c *gin.Context) (repository.PlanWorkoutFilter, error) {
	planID, err := queryObjectID(c, "plan_id")
	if err != nil {
		return repository.PlanWorkoutFilter{}, err
	}
	workoutID, err := queryObjectID(c, "workout_id")
	if err != nil {
		return repository.PlanWorkoutFilter{}, err
	}
	return repository.PlanWorkoutFilter{PlanID: planID, WorkoutID: workoutID}, nil
}

func (h *PlanWorkoutHandler) ListPlanWorkouts(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	filter, err := h.planWorkoutFilter(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	planWorkouts, err := h.planWorkoutService.List(c.Request.Context(), filter, page, parseSort(c, planWorkoutSortFields))
	if err != nil {
		respondError(c, err, "plan workouts")
		return
	}
	if len(planWorkouts) == 0 {
		abortWithError(c, http.StatusNotFound, "no plan workouts found")
		return
	}

	responses := make([]PlanWorkoutResponse, len(planWorkouts))
	for i := range planWorkouts {
		responses[i] = MapPlanWorkoutToResponse(&planWorkouts[i])
	}
	c.JSON(http.StatusOK, responses)
}

func (h *PlanWorkoutHandler) CountPlanWorkouts(c *gin.Context) {
	filter, err := h.planWorkoutFilter(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	quantity, err := h.planWorkoutService.Count(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "plan workouts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"quantity": quantity})
}
