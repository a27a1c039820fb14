package handlers

import (
	"net/http"

	"bookly/models"
	"bookly/services/catalog"
	"bookly/utils"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	Service catalog.CatalogService
}

// CreateServiceHandler handles POST /api/services.
func (h *CatalogHandler) CreateServiceHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req models.CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	svc, err := h.Service.CreateService(c.Request.Context(), actor, req)
	if err != nil {
		utils.RespondError(c, "Failed to create service", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"service": svc})
}

// GetServiceHandler handles GET /api/services/:serviceID.
func (h *CatalogHandler) GetServiceHandler(c *gin.Context) {
	svc, err := h.Service.GetService(c.Request.Context(), c.Param("serviceID"))
	if err != nil {
		utils.RespondError(c, "Failed to load service", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": svc})
}

// ListProviderServicesHandler handles GET /api/providers/:providerID/services.
func (h *CatalogHandler) ListProviderServicesHandler(c *gin.Context) {
	list, err := h.Service.ListProviderServices(c.Request.Context(), c.Param("providerID"))
	if err != nil {
		utils.RespondError(c, "Failed to list services", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": list})
}
