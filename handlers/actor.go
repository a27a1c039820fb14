package handlers

import (
	"net/http"

	"bookly/middleware"
	"bookly/models"
	"bookly/services/errs"
	"bookly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requireActor returns the authenticated caller or writes a 401.
func requireActor(c *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Not authenticated", "missing actor")
		return models.Actor{}, false
	}
	return actor, true
}

// bindJSON binds the request body or writes a 400.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		getLogger(c).Debug("Invalid request payload", zap.Error(err))
		utils.RespondError(c, "Invalid request payload", errs.Validation("body", "%s", err.Error()))
		return false
	}
	return true
}
