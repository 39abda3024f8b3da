package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-api/internal/domain/policy"
	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
	"github.com/BruksfildServices01/barbershop-api/internal/middleware"
)

// currentCaller writes a 401 and returns false when the route ran without auth.
func currentCaller(c *gin.Context) (policy.Caller, bool) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httperr.Unauthorized(c, "unauthenticated", "Authentication required.")
		return policy.Caller{}, false
	}
	return caller, true
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return false
	}
	return true
}
