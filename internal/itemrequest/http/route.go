package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers item request routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/requests")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.POST("", h.Create)        // Create request
		group.GET("", h.ListOwn)        // Caller's own requests
		group.GET("/all", h.ListOthers) // Requests of other users
		group.GET("/:id", h.Get)        // Get request details
	}
}
