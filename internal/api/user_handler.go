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

// UserHandler holds the user service dependency.
type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// --- DTOs ---

// UserRequest is the payload for creating or replacing a user.
type UserRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=120"`
	Email       string `json:"email" binding:"required,min=3,max=80"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	CPF         string `json:"cpf" binding:"required,len=11"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	CPF            string    `json:"cpf"`
	PhoneNumber    string    `json:"phoneNumber"`
	PlansSold      []string  `json:"plansSold"`
	PurchasedPlans []string  `json:"purchasedPlans"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UserPlansResponse is the join-view projection: the user record augmented
// with one resolved plan collection, the opposite collection excluded.
type UserPlansResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	CPF         string         `json:"cpf"`
	PhoneNumber string         `json:"phoneNumber"`
	Plans       []PlanResponse `json:"plans"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Hex()
	}
	return out
}

func MapUserToResponse(u *domain.User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:             u.ID.Hex(),
		Name:           u.Name,
		Email:          u.Email,
		CPF:            u.CPF,
		PhoneNumber:    u.PhoneNumber,
		PlansSold:      hexIDs(u.PlansSold),
		PurchasedPlans: hexIDs(u.PurchasedPlans),
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func mapUserPlansToResponse(u *domain.User, plans []domain.Plan) UserPlansResponse {
	return UserPlansResponse{
		ID:          u.ID.Hex(),
		Name:        u.Name,
		Email:       u.Email,
		CPF:         u.CPF,
		PhoneNumber: u.PhoneNumber,
		Plans:       MapPlansToResponse(plans),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// --- Handlers ---

// CreateUser registers a new user. Duplicate emails are rejected with 409.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req.Name, req.Email, req.Password, req.CPF, req.PhoneNumber)
	if err != nil {
		respondError(c, err, "user")
		return
	}
	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "user")
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UpdateUser replaces the full user document. A payload identical to the
// stored record is reported as a no-op failure.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, req.Name, req.Email, req.Password, req.CPF, req.PhoneNumber)
	if err != nil {
		respondError(c, err, "user")
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// DeleteUser removes the user and every user-plan association where the user
// appears as seller or buyer.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted successfully"})
}

var userSortFields = map[string]string{
	"name":       "name",
	"email":      "email",
	"created_at": "createdAt",
}

// ListUsers returns a page of users filtered by name/email substrings.
// Zero matches surface as 404.
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	filter := repository.UserFilter{
		Name:  c.Query("name"),
		Email: c.Query("email"),
	}

	users, err := h.userService.List(c.Request.Context(), filter, page, parseSort(c, userSortFields))
	if err != nil {
		respondError(c, err, "users")
		return
	}
	if len(users) == 0 {
		abortWithError(c, http.StatusNotFound, "no users found")
		return
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = MapUserToResponse(&users[i])
	}
	c.JSON(http.StatusOK, responses)
}

func (h *UserHandler) CountUsers(c *gin.Context) {
	filter := repository.UserFilter{
		Name:  c.Query("name"),
		Email: c.Query("email"),
	}

	quantity, err := h.userService.Count(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"quantity": quantity})
}

// GetSoldPlans resolves the user's plansSold back-references against the plan
// store.
func (h *UserHandler) GetSoldPlans(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, plans, err := h.userService.SoldPlans(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "sold plans")
		return
	}
	c.JSON(http.StatusOK, mapUserPlansToResponse(user, plans))
}

// GetPurchasedPlans resolves the user's purchasedPlans back-references
// against the plan store.
func (h *UserHandler) GetPurchasedPlans(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, plans, err := h.userService.PurchasedPlans(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "purchased plans")
		return
	}
	c.JSON(http.StatusOK, mapUserPlansToResponse(user, plans))
}
