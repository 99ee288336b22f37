package auth

import "github.com/gin-gonic/gin"

// GetUserID returns the authenticated user's ID from the request context,
// or the empty string when the request never passed AuthRequired.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get(ctxUserIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
