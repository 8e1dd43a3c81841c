package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS allows any origin with the given methods and headers. Preflight
// requests are answered with 200 and go no further down the chain, so it
// has to be installed ahead of AuthMiddleware.
func CORS(methods, headers string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", methods)
		c.Header("Access-Control-Allow-Headers", headers)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
