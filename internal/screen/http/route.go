package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterPageRoutes registers the server-rendered screen.
func RegisterPageRoutes(r gin.IRouter, h *Handler, sessionMiddleware, operatorMiddleware gin.HandlerFunc) {
	pages := r.Group("")
	pages.Use(sessionMiddleware, operatorMiddleware)
	{
		pages.GET("/", h.Index)
		pages.POST("/search", h.SearchForm)
		pages.POST("/refresh", h.RefreshForm)
		pages.POST("/users", h.AddForm)
		pages.POST("/users/:id/edit", h.EditForm)
		pages.POST("/users/:id/update", h.UpdateForm)
		pages.POST("/users/:id/delete", h.DeleteForm)
	}
}

// RegisterRoutes registers the JSON screen API.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, sessionMiddleware, operatorMiddleware gin.HandlerFunc) {
	group := g.Group("/screen")
	group.Use(sessionMiddleware, operatorMiddleware)
	{
		group.GET("", h.Get)
		group.POST("/search", h.Search)
		group.POST("/refresh", h.Refresh)
		group.PUT("/query", h.SetQuery)
		group.PUT("/draft", h.SetDraft)
		group.POST("/users", h.Add)
		group.POST("/users/:id/edit", h.Edit)
		group.POST("/users/:id/update", h.Update)
		group.DELETE("/users/:id", h.Delete)
	}
}
