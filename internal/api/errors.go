package api

import (
	"errors"
	"net/http"

	"github.com/cemgthedev/ElitePlans-rest-api/internal/domain"

	"github.com/gin-gonic/gin"
)

// Helper to return a JSON error response and abort the request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// respondError translates the core error taxonomy to HTTP status codes:
// 404 for missing records and unresolved references, 409 for unique-field
// conflicts, 500 for no-op updates and internal faults. Mapping no-op updates
// to 500 is deliberate; clients depend on it.
func respondError(c *gin.Context, err error, resource string) {
	var refErr *domain.ReferenceError
	switch {
	case errors.As(err, &refErr):
		abortWithError(c, http.StatusNotFound, refErr.Error())
	case errors.Is(err, domain.ErrNotFound):
		abortWithError(c, http.StatusNotFound, resource+" not found")
	case errors.Is(err, domain.ErrConflict):
		abortWithError(c, http.StatusConflict, resource+" already exists")
	case errors.Is(err, domain.ErrNoChange):
		abortWithError(c, http.StatusInternalServerError, "no fields changed")
	default:
		abortWithError(c, http.StatusInternalServerError, "failed to process "+resource)
	}
}
