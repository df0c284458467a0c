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

type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// PlanRequest is the payload for creating or replacing a plan.
type PlanRequest struct {
	Title       string  `json:"title" binding:"required,min=3,max=120"`
	Description string  `json:"description" binding:"required,min=3"`
	Type        string  `json:"type" binding:"required,min=3"`
	Category    string  `json:"category" binding:"required,min=3"`
	Price       float64 `json:"price" binding:"gte=0"`
	SellerID    string  `json:"sellerId" binding:"required"`
}

type PlanResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	SellerID    string    `json:"sellerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func MapPlanToResponse(p *domain.Plan) PlanResponse {
	if p == nil {
		return PlanResponse{}
	}
	return PlanResponse{
		ID:          p.ID.Hex(),
		Title:       p.Title,
		Description: p.Description,
		Type:        p.Type,
		Category:    p.Category,
		Price:       p.Price,
		SellerID:    p.SellerID.Hex(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func MapPlansToResponse(plans []domain.Plan) []PlanResponse {
	responses := make([]PlanResponse, len(plans))
	for i := range plans {
		responses[i] = MapPlanToResponse(&plans[i])
	}
	return responses
}

func (h *PlanHandler) bindPlanRequest(c *gin.Context) (*PlanRequest, primitive.ObjectID, bool) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "validation error: "+err.Error())
		return nil, primitive.NilObjectID, false
	}
	sellerID, err := primitive.ObjectIDFromHex(req.SellerID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid seller ID format")
		return nil, primitive.NilObjectID, false
	}
	return &req, sellerID, true
}

// CreatePlan registers a plan. The seller must exist; the new plan ID is
// appended to the seller's sold collection.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	req, sellerID, ok := h.bindPlanRequest(c)
	if !ok {
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), req.Title, req.Description, req.Type, req.Category, req.Price, sellerID)
	if err != nil {
		respondError(c, err, "plan")
		return
	}
	c.JSON(http.StatusCreated, MapPlanToResponse(plan))
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := h.planService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "plan")
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	req, sellerID, ok := h.bindPlanRequest(c)
	if !ok {
		return
	}

	plan, err := h.planService.Update(c.Request.Context(), id, req.Title, req.Description, req.Type, req.Category, req.Price, sellerID)
	if err != nil {
		respondError(c, err, "plan")
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// DeletePlan removes the plan, its user-plan associations and any
// back-references held by users.
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.planService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "plan")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "plan deleted successfully"})
}

var planSortFields = map[string]string{
	"title":      "title",
	"price":      "price",
	"created_at": "createdAt",
}

func (h *PlanHandler) planFilter(c *gin.Context) (repository.PlanFilter, error) {
	sellerID, err := queryObjectID(c, "seller_id")
	if err != nil {
		return repository.PlanFilter{}, err
	}
	minPrice, err := queryFloat(c, "min_price")
	if err != nil {
		return repository.PlanFilter{}, err
	}
	maxPrice, err := queryFloat(c, "max_price")
	if err != nil {
		return repository.PlanFilter{}, err
	}
	return repository.PlanFilter{
		Title:    c.Query("title"),
		Type:     c.Query("type"),
		Category: c.Query("category"),
		SellerID: sellerID,
		Price:    repository.Range{Min: minPrice, Max: maxPrice},
	}, nil
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	filter, err := h.planFilter(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	plans, err := h.planService.List(c.Request.Context(), filter, page, parseSort(c, planSortFields))
	if err != nil {
		respondError(c, err, "plans")
		return
	}
	if len(plans) == 0 {
		abortWithError(c, http.StatusNotFound, "no plans found")
		return
	}
	c.JSON(http.StatusOK, MapPlansToResponse(plans))
}

func (h *PlanHandler) CountPlans(c *gin.Context) {
	filter, err := h.planFilter(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	quantity, err := h.planService.Count(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "plans")
		return
	}
	c.JSON(http.StatusOK, gin.H{"quantity": quantity})
}
