package handlers

import (
	"net/http"
	"time"

	"bookly/models"
	"bookly/services/errs"
	"bookly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminHandler struct{}

// IssueTokenHandler handles POST /api/admin/tokens. Identity lives outside
// this service; operators mint tokens here for integration and testing.
func (h *AdminHandler) IssueTokenHandler(c *gin.Context) {
	var req models.IssueTokenRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.Role.Valid() {
		utils.RespondError(c, "Invalid role", errs.Validation("role", "must be user, provider or admin"))
		return
	}

	ttl := utils.DefaultTokenTTL
	if req.TTLMinutes > 0 {
		ttl = time.Duration(req.TTLMinutes) * time.Minute
	}
	if ttl > utils.MaxTokenTTL {
		ttl = utils.MaxTokenTTL
	}

	token, err := utils.GenerateToken(req.Subject, req.Role, ttl)
	if err != nil {
		getLogger(c).Error("Failed to sign token", zap.Error(err))
		utils.RespondError(c, "Failed to issue token", err)
		return
	}

	getLogger(c).Info("Issued token", zap.String("subject", req.Subject), zap.String("role", string(req.Role)))
	c.JSON(http.StatusCreated, gin.H{
		"token":     token,
		"expiresAt": time.Now().Add(ttl).UTC(),
	})
}
