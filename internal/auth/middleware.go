package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// SessionRequired is a Gin middleware that attaches a screen session to every request.
// A missing, expired or forged cookie starts a fresh session.
func SessionRequired(jwtManager *JWTManager, cookie CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, err := c.Cookie(cookie.Name); err == nil && tokenStr != "" {
			if claims, err := jwtManager.ParseAndValidate(tokenStr); err == nil {
				c.Set(sessionIDKey, claims.SessionID())
				c.Set(operatorKey, claims.Operator)
				c.Next()
				return
			}
		}

		sessionID := uuid.NewString()
		if err := IssueSession(c, jwtManager, cookie, sessionID, false); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "failed to start session",
			})
			return
		}

		c.Next()
	}
}

// IssueSession signs a token for sessionID, sets it as the session cookie and
// stores the session info into the Gin context for later handlers.
func IssueSession(c *gin.Context, jwtManager *JWTManager, cookie CookieConfig, sessionID string, operator bool) error {
	token, err := jwtManager.GenerateSessionToken(sessionID, operator)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookie.Name, token, int(jwtManager.TTL().Seconds()), "/", "", cookie.Secure, true)
	c.Set(sessionIDKey, sessionID)
	c.Set(operatorKey, operator)
	return nil
}

// ClearSession expires the session cookie.
func ClearSession(c *gin.Context, cookie CookieConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookie.Name, "", -1, "/", "", cookie.Secure, true)
}

// OperatorRequired ensures the session passed the operator login.
// It MUST be used after SessionRequired. Browser requests are redirected to
// loginPath; API requests get 401.
func OperatorRequired(gate *OperatorGate, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !gate.Enabled() || IsOperator(c) {
			c.Next()
			return
		}

		if wantsHTML(c) {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "operator login required"})
	}
}

func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
