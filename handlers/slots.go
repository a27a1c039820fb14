package handlers

import (
	"context"
	"net/http"
	"time"

	"bookly/models"
	"bookly/services/errs"
	"bookly/services/schedule"
	"bookly/utils"

	"github.com/gin-gonic/gin"
)

// SlotResolver computes open slots; *schedule.AvailabilityResolver implements it.
type SlotResolver interface {
	OpenSlots(ctx context.Context, serviceID string, date time.Time) (*models.OpenSlotsResponse, error)
}

type SlotsHandler struct {
	Resolver SlotResolver
}

// GetOpenSlotsHandler handles GET /api/services/:serviceID/slots?date=YYYY-MM-DD.
func (h *SlotsHandler) GetOpenSlotsHandler(c *gin.Context) {
	raw := c.Query("date")
	if raw == "" {
		utils.RespondError(c, "Missing date", errs.Validation("date", "is required"))
		return
	}
	date, err := schedule.ParseDate(raw)
	if err != nil {
		utils.RespondError(c, "Invalid date", errs.Validation("date", "%v", err))
		return
	}

	resp, err := h.Resolver.OpenSlots(c.Request.Context(), c.Param("serviceID"), date)
	if err != nil {
		utils.RespondError(c, "Failed to compute open slots", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
