package middleware

import (
	"net/http"
	"strings"

	"bookly/models"
	"bookly/services/errs"
	"bookly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

// JWTAuthMiddleware validates the bearer token and stores the caller as a
// models.Actor under utils.ActorKey.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header", "")
			return
		}

		actor, err := utils.ParseActor(tokenString)
		if err != nil {
			zap.L().Debug("Rejected token", zap.Error(err))
			utils.JSONError(c, http.StatusUnauthorized, "Invalid token", err.Error())
			return
		}

		c.Set(utils.ActorKey, actor)
		c.Next()
	}
}

// RequireRoles lets through only actors with one of roles. It must run after
// JWTAuthMiddleware.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
			return
		}
		for _, r := range roles {
			if actor.Role == r {
				c.Next()
				return
			}
		}
		utils.RespondError(c, "Insufficient role", errs.Authorization("role %q may not use this endpoint", actor.Role))
		c.Abort()
	}
}

// ActorFrom returns the authenticated caller set by JWTAuthMiddleware.
func ActorFrom(c *gin.Context) (models.Actor, bool) {
	v, exists := c.Get(utils.ActorKey)
	if !exists {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}
