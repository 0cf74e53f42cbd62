package handlers

import (
	"net/http"

	"stagelink/models"
	"stagelink/services/blacklist"
	"stagelink/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DoNotServeHandler exposes the block-list endpoints.
type DoNotServeHandler struct {
	Service blacklist.DoNotServeService
	Logger  *zap.Logger
}

// NewDoNotServeHandler creates a DoNotServeHandler.
func NewDoNotServeHandler(svc blacklist.DoNotServeService, logger *zap.Logger) *DoNotServeHandler {
	return &DoNotServeHandler{Service: svc, Logger: logger}
}

// SubmitHandler records a new entry in pending state. Performers submit with
// their own id; admins submit as "admin".
func (h *DoNotServeHandler) SubmitHandler(c *gin.Context) {
	var input struct {
		ClientName  string `json:"client_name" binding:"required"`
		ClientEmail string `json:"client_email"`
		ClientPhone string `json:"client_phone"`
		Reason      string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid do-not-serve payload", err.Error())
		return
	}

	submittedBy := c.GetString("performerID")
	if submittedBy == "" {
		submittedBy = "admin"
	}

	entry, err := h.Service.Submit(c.Request.Context(), models.DoNotServeEntry{
		ClientName:  input.ClientName,
		ClientEmail: input.ClientEmail,
		ClientPhone: input.ClientPhone,
		Reason:      input.Reason,
		SubmittedBy: submittedBy,
	})
	if err != nil {
		h.Logger.Warn("do-not-serve submission failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Could not submit entry", err.Error())
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ReviewHandler approves or rejects a pending entry.
func (h *DoNotServeHandler) ReviewHandler(c *gin.Context) {
	id := c.Param("id")
	var input struct {
		Approve *bool `json:"approve" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid review payload", err.Error())
		return
	}

	updated, err := h.Service.Review(c.Request.Context(), id, *input.Approve)
	if err != nil {
		h.Logger.Warn("do-not-serve review failed", zap.String("entry_id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not review entry", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ListHandler returns all entries.
func (h *DoNotServeHandler) ListHandler(c *gin.Context) {
	entries, err := h.Service.List(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Could not list entries", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
