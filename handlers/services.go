package handlers

import (
	"net/http"

	"stagelink/services/booking"
	"stagelink/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the service rate card.
type CatalogHandler struct {
	Catalog *booking.CatalogService
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(catalog *booking.CatalogService) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog}
}

// ListServicesHandler returns the full rate card.
func (h *CatalogHandler) ListServicesHandler(c *gin.Context) {
	services, err := h.Catalog.GetAvailableServices(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Could not list services", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}
