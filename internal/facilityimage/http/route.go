package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers facility image routes. Viewing is public,
// uploads and deletes are admin only.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	images := g.Group("/facility-images")
	{
		images.GET("/:id", h.ServeImage)
		images.GET("/:id/thumbnail", h.ServeThumbnail)
		images.DELETE("/:id", authMiddleware, adminMiddleware, h.Delete)
	}

	facilities := g.Group("/facilities/:id/images")
	{
		facilities.GET("", h.ListByFacility)
		facilities.POST("", authMiddleware, adminMiddleware, h.Upload)
	}
}
