package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CronKeyMiddleware guards the cron trigger endpoints with a shared secret,
// for environments without native cron. The key is read from the X-Cron-Key
// header or a ?key= query parameter.
func CronKeyMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Cron-Key")
		if key == "" {
			key = c.Query("key")
		}
		if secret == "" || subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid cron key"})
			return
		}
		c.Next()
	}
}
