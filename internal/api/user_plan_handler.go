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

type UserPlanHandler struct {
	userPlanService service.UserPlanService
}

func NewUserPlanHandler(userPlanService service.UserPlanService) *UserPlanHandler {
	return &UserPlanHandler{userPlanService: userPlanService}
}

// UserPlanRequest identifies the seller/buyer/plan triple. The same triple
// is required again when marking the association purchased.
type UserPlanRequest struct {
	SellerID string `json:"sellerId" binding:"required"`
	BuyerID  string `json:"buyerId" binding:"required"`
	PlanID   string `json:"planId" binding:"required"`
}

type UserPlanResponse struct {
	ID          string     `json:"id"`
	SellerID    string     `json:"sellerId"`
	BuyerID     string     `json:"buyerId"`
	PlanID      string     `json:"planId"`
	Purchased   bool       `json:"purchased"`
	PurchasedAt *time.Time `json:"purchasedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func MapUserPlanToResponse(up *domain.UserPlan) UserPlanResponse {
	if up == nil {
		return UserPlanResponse{}
	}
	return UserPlanResponse{
		ID:          up.ID.Hex(),
		SellerID:    up.SellerID.Hex(),
		BuyerID:     up.BuyerID.Hex(),
		PlanID:      up.PlanID.Hex(),
		Purchased:   up.Purchased,
		PurchasedAt: up.PurchasedAt,
		CreatedAt:   up.CreatedAt,
	}
}

func (h *UserPlanHandler) bindTriple(c *gin.Context) (sellerID, buyerID, planID primitive.ObjectID, ok bool) {
	var req UserPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}
	var err error
	if sellerID, err = primitive.ObjectIDFromHex(req.SellerID); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid seller ID format")
		return
	}
	if buyerID, err = primitive.ObjectIDFromHex(req.BuyerID); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid buyer ID format")
		return
	}
	if planID, err = primitive.ObjectIDFromHex(req.PlanID); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid plan ID format")
		return
	}
	ok = true
	return
}

// CreateUserPlan opens a seller/buyer/plan association in the unpurchased
// state. All three references must exist.
func (h *UserPlanHandler) CreateUserPlan(c *gin.Context) {
	sellerID, buyerID, planID, ok := h.bindTriple(c)
	if !ok {
		return
	}

	userPlan, err := h.userPlanService.Create(c.Request.Context(), sellerID, buyerID, planID)
	if err != nil {
		respondError(c, err, "user plan")
		return
	}
	c.JSON(http.StatusCreated, MapUserPlanToResponse(userPlan))
}

func (h *UserPlanHandler) GetUserPlan(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	userPlan, err := h.userPlanService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "user plan")
		return
	}
	c.JSON(http.StatusOK, MapUserPlanToResponse(userPlan))
}

// PurchaseUserPlan flips the association to purchased. The triple in the
// body must match the stored record; a second purchase is a no-op failure.
func (h *UserPlanHandler) PurchaseUserPlan(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	sellerID, buyerID, planID, ok := h.bindTriple(c)
	if !ok {
		return
	}

	userPlan, err := h.userPlanService.MarkPurchased(c.Request.Context(), id, sellerID, buyerID, planID)
	if err != nil {
		respondError(c, err, "user plan")
		return
	}
	c.JSON(http.StatusOK, MapUserPlanToResponse(userPlan))
}

func (h *UserPlanHandler) DeleteUserPlan(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.userPlanService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "user plan")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user plan deleted successfully"})
}

var userPlanSortFields = map[string]string{
	"created_at": "createdAt",
}

func (h *UserPlanHandler) userPlanFilter(c *gin.Context) (repository.UserPlanFilter, error) {
	sellerID, err := queryObjectID(c, "seller_id")
	if err != nil {
		return repository.UserPlanFilter{}, err
	}
	buyerID, err := queryObjectID(c, "buyer_id")
	if err != nil {
		return repository.UserPlanFilter{}, err
	}
	planID, err := queryObjectID(c, "plan_id")
	if err != nil {
		return repository.UserPlanFilter{}, err
	}
	purchased, err := queryBool(c, "purchased")
	if err != nil {
		return repository.UserPlanFilter{}, err
	}
	return repository.UserPlanFilter{
		SellerID:  sellerID,
		BuyerID:   buyerID,
		PlanID:    planID,
		Purchased: purchased,
	}, nil
}

func (h *UserPlanHandler) ListUserPlans(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	filter, err := h.userPlanFilter(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	userPlans, err := h.userPlanService.List(c.Request.Context(), filter, page, parseSort(c, userPlanSortFields))
	if err != nil {
		respondError(c, err, "user plans")
		return
	}
	if len(userPlans) == 0 {
		abortWithError(c, http.StatusNotFound, "no user plans found")
		return
	}

	responses := make([]UserPlanResponse, len(userPlans))
	for i := range userPlans {
		responses[i] = MapUserPlanToResponse(&userPlans[i])
	}
	c.JSON(http.StatusOK, responses)
}

func (h *UserPlanHandler) CountUserPlans(c *gin.Context) {
	filter, err := h.userPlanFilter(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	quantity, err := h.userPlanService.Count(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "user plans")
		return
	}
	c.JSON(http.StatusOK, gin.H{"quantity": quantity})
}
