package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/user-management-console/internal/auth"
	"github.com/nekogravitycat/user-management-console/internal/session"
)

const msgInvalidPassword = "Invalid password."

type Handler struct {
	gate       *auth.OperatorGate
	jwtManager *auth.JWTManager
	cookie     auth.CookieConfig
	sessions   *session.Manager
	logger     *zap.Logger
}

func NewHandler(
	gate *auth.OperatorGate,
	jwtManager *auth.JWTManager,
	cookie auth.CookieConfig,
	sessions *session.Manager,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		gate:       gate,
		jwtManager: jwtManager,
		cookie:     cookie,
		sessions:   sessions,
		logger:     logger,
	}
}

// LoginPage renders the operator login form.
func (h *Handler) LoginPage(c *gin.Context) {
	if !h.gate.Enabled() || auth.IsOperator(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.HTML(http.StatusOK, "login.html", LoginPage{})
}

// Login checks the operator password and upgrades the current session.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.loginFailed(c, http.StatusBadRequest)
		return
	}

	if err := h.gate.Verify(req.Password); err != nil {
		h.logger.Info("operator login rejected", zap.String("session", auth.GetSessionID(c)))
		h.loginFailed(c, http.StatusUnauthorized)
		return
	}

	if err := auth.IssueSession(c, h.jwtManager, h.cookie, auth.GetSessionID(c), true); err != nil {
		h.logger.Error("failed to issue operator session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	if isForm(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.JSON(http.StatusOK, gin.H{"operator": true})
}

// Logout drops the session's screen state and expires the cookie.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.sessions.Discard(c.Request.Context(), auth.GetSessionID(c)); err != nil {
		h.logger.Warn("failed to discard session", zap.Error(err))
	}
	auth.ClearSession(c, h.cookie)

	if isForm(c) {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) loginFailed(c *gin.Context, status int) {
	if isForm(c) {
		c.HTML(status, "login.html", LoginPage{Error: msgInvalidPassword})
		return
	}
	c.JSON(status, gin.H{"error": "invalid password"})
}

func isForm(c *gin.Context) bool {
	ct := c.ContentType()
	return ct == "application/x-www-form-urlencoded" || strings.HasPrefix(ct, "multipart/form-data")
}
