package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the operator login routes.
func RegisterRoutes(r gin.IRouter, h *Handler, sessionMiddleware gin.HandlerFunc) {
	r.GET("/login", sessionMiddleware, h.LoginPage)
	r.POST("/login", sessionMiddleware, h.Login)
	r.POST("/logout", sessionMiddleware, h.Logout)
}
