package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/pricing")

	// Public: the booking form previews prices before submission.
	group.POST("/quote", h.Quote)

	// === Admin Routes ===
	rules := group.Group("/rules")
	rules.Use(authMiddleware, adminMiddleware)
	{
		rules.GET("", h.ListRules)
		rules.POST("", h.CreateRule)
		rules.DELETE("/:id", h.DeleteRule)
	}
}
