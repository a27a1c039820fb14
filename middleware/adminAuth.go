package middleware

import (
	"crypto/subtle"
	"net/http"

	"bookly/config"
	"bookly/utils"

	"github.com/gin-gonic/gin"
)

// AdminTokenMiddleware guards operator endpoints with the static ADMIN_TOKEN.
// With no token configured the endpoints are closed.
func AdminTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := config.AppConfig.AdminToken
		if expected == "" {
			utils.JSONError(c, http.StatusForbidden, "Admin access is disabled", "no admin token configured")
			return
		}

		tokenString, ok := bearerToken(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header", "")
			return
		}
		if subtle.ConstantTimeCompare([]byte(tokenString), []byte(expected)) != 1 {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized admin access", "")
			return
		}

		c.Set("isAdmin", true)
		c.Next()
	}
}
