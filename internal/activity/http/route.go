package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, sessionMiddleware, operatorMiddleware gin.HandlerFunc) {
	group := g.Group("/activity")
	group.Use(sessionMiddleware, operatorMiddleware)
	{
		group.GET("", h.List)
	}
}
