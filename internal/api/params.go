package api

import (
	"fmt"
	"strconv"

	"github.com/cemgthedev/ElitePlans-rest-api/internal/repository"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// parsePage reads the page/limit query parameters. Defaults are page=1,
// limit=10; limit is capped at 100.
func parsePage(c *gin.Context) (repository.Page, error) {
	page := repository.DefaultPage()
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return page, fmt.Errorf("invalid page: %q", v)
		}
		page.Page = n
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			return page, fmt.Errorf("invalid limit: %q", v)
		}
		page.Limit = n
	}
	return page, nil
}

// parseSort maps sort_by through the entity's allowed fields. A sort is only
// applied when both sort_by and order_by are supplied and valid; anything
// else silently leaves the store-default order in place.
func parseSort(c *gin.Context, allowed map[string]string) repository.Sort {
	field, ok := allowed[c.Query("sort_by")]
	order := c.Query("order_by")
	if !ok || (order != "asc" && order != "desc") {
		return repository.Sort{}
	}
	return repository.Sort{Field: field, Order: order}
}

func parseIDParam(c *gin.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid id: %q", c.Param("id"))
	}
	return id, nil
}

func parseObjectID(hex, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid %s ID format", name)
	}
	return id, nil
}

func queryFloat(c *gin.Context, name string) (*float64, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", name, v)
	}
	return &f, nil
}

func queryInt(c *gin.Context, name string) (*int, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", name, v)
	}
	return &n, nil
}

func queryBool(c *gin.Context, name string) (*bool, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", name, v)
	}
	return &b, nil
}

func queryObjectID(c *gin.Context, name string) (*primitive.ObjectID, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", name, v)
	}
	return &id, nil
}
