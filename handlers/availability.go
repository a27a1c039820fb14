package handlers

import (
	"net/http"

	"bookly/models"
	"bookly/services/errs"
	"bookly/services/schedule"
	"bookly/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler serves a provider's weekly schedule and overrides.
type AvailabilityHandler struct {
	Service schedule.ScheduleService
}

// GetAvailabilityHandler handles GET /api/providers/:providerID/availability.
// The provider itself and admins get the document created on first read;
// anyone else sees the stored document or the unsaved default.
func (h *AvailabilityHandler) GetAvailabilityHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	providerID := c.Param("providerID")

	load := h.Service.ViewAvailability
	if actor.IsAdmin() || actor.Is(models.RoleProvider, providerID) {
		load = h.Service.GetAvailability
	}
	av, err := load(c.Request.Context(), providerID)
	if err != nil {
		utils.RespondError(c, "Failed to load availability", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": av})
}

// SetAvailabilityHandler handles PUT /api/providers/:providerID/availability.
// Only the provider itself or an admin may replace the schedule.
func (h *AvailabilityHandler) SetAvailabilityHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	providerID := c.Param("providerID")
	if !actor.IsAdmin() && !actor.Is(models.RoleProvider, providerID) {
		utils.RespondError(c, "Cannot update availability", errs.Authorization("only the provider or an admin may edit this schedule"))
		return
	}

	var req models.SetAvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	av, err := h.Service.SetAvailability(c.Request.Context(), providerID, req.Days, req.CustomDates)
	if err != nil {
		utils.RespondError(c, "Invalid availability", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability updated", "availability": av})
}
