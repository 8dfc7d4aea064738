package middleware

import "github.com/gin-gonic/gin"

// NoStore forbids caching. Responses may echo passwords or suggestions.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store, max-age=0")
		c.Header("Pragma", "no-cache")
		c.Next()
	}
}
