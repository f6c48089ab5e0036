package auth

import "github.com/gin-gonic/gin"

const (
	sessionIDKey = "sessionID"
	operatorKey  = "operator"
)

// GetSessionID returns the current session's ID or empty string.
func GetSessionID(c *gin.Context) string {
	if v, ok := c.Get(sessionIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// IsOperator reports whether the current session passed the operator login.
func IsOperator(c *gin.Context) bool {
	return c.GetBool(operatorKey)
}
