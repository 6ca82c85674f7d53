package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers item routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/items")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.POST("", h.Create)                 // Create item
		group.GET("", h.ListOwn)                 // Caller's items
		group.GET("/search", h.Search)           // Search available items
		group.GET("/:id", h.Get)                 // Get item details
		group.PATCH("/:id", h.Update)            // Update item
		group.POST("/:id/comment", h.AddComment) // Comment on item
	}
}
