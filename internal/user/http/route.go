package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers user routes. They do not require a caller identity.
func RegisterRoutes(g *gin.RouterGroup, h *UserHandler) {
	group := g.Group("/users")
	{
		group.POST("", h.Create)       // Sign up
		group.GET("", h.List)          // List users
		group.GET("/:id", h.Get)       // Get user
		group.PATCH("/:id", h.Update)  // Partial update
		group.DELETE("/:id", h.Delete) // Delete user and everything they own
	}
}
