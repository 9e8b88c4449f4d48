package handler

import (
	"backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// currentUser reads the identity RequireAuth stored in the gin context.
func currentUser(c *gin.Context) (id int64, role string, ok bool) {
	v, exists := c.Get(middleware.CtxUserID)
	if !exists {
		return 0, "", false
	}
	id, ok = v.(int64)
	if !ok {
		return 0, "", false
	}
	return id, c.GetString(middleware.CtxRole), true
}
