package handlers

import (
	"net/http"

	communicationRepo "stagelink/database/repository/communication"
	"stagelink/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CommunicationHandler exposes the notification feed endpoints.
type CommunicationHandler struct {
	Repo   communicationRepo.CommunicationRepository
	Logger *zap.Logger
}

// NewCommunicationHandler creates a CommunicationHandler.
func NewCommunicationHandler(repo communicationRepo.CommunicationRepository, logger *zap.Logger) *CommunicationHandler {
	return &CommunicationHandler{Repo: repo, Logger: logger}
}

// ListHandler returns communications, optionally filtered by recipient or
// booking via query params.
func (h *CommunicationHandler) ListHandler(c *gin.Context) {
	ctx := c.Request.Context()

	if recipient := c.Query("recipient"); recipient != "" {
		comms, err := h.Repo.ListByRecipient(ctx, recipient)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Could not list communications", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"communications": comms})
		return
	}
	if bookingID := c.Query("booking_id"); bookingID != "" {
		comms, err := h.Repo.ListByBooking(ctx, bookingID)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Could not list communications", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"communications": comms})
		return
	}

	comms, err := h.Repo.ListAll(ctx)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Could not list communications", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"communications": comms})
}

// MarkReadHandler flips the read flag on one record.
func (h *CommunicationHandler) MarkReadHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Repo.MarkRead(c.Request.Context(), id); err != nil {
		h.Logger.Warn("failed to mark communication read", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusNotFound, "Could not mark communication read", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
