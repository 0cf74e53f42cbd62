package handlers

import (
	"net/http"

	performerRepo "stagelink/database/repository/performer"
	"stagelink/services/booking"
	"stagelink/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// AdminHandler exposes the admin-facing booking workflow endpoints.
type AdminHandler struct {
	BookingSvc    booking.BookingService
	PerformerRepo performerRepo.PerformerRepository
	Logger        *zap.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(svc booking.BookingService, repo performerRepo.PerformerRepository, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{BookingSvc: svc, PerformerRepo: repo, Logger: logger}
}

// VettingHandler approves or rejects a booking under vetting.
func (h *AdminHandler) VettingHandler(c *gin.Context) {
	bookingID := c.Param("id")
	var input struct {
		Approve *bool `json:"approve" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid vetting payload", err.Error())
		return
	}

	updated, err := h.BookingSvc.AdminDecideVetting(c.Request.Context(), bookingID, *input.Approve)
	if err != nil {
		h.Logger.Warn("vetting decision failed", zap.String("booking_id", bookingID), zap.Error(err))
		utils.JSONError(c, statusForError(err), "Could not record vetting decision", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ConfirmDepositHandler verifies a submitted deposit and confirms the booking.
func (h *AdminHandler) ConfirmDepositHandler(c *gin.Context) {
	bookingID := c.Param("id")
	verifier := c.GetString("adminName")
	if verifier == "" {
		verifier = "Admin"
	}

	updated, err := h.BookingSvc.AdminConfirmDeposit(c.Request.Context(), bookingID, verifier)
	if err != nil {
		h.Logger.Warn("deposit confirmation failed", zap.String("booking_id", bookingID), zap.Error(err))
		utils.JSONError(c, statusForError(err), "Could not confirm deposit", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

// RejectHandler closes a booking from any non-terminal state.
func (h *AdminHandler) RejectHandler(c *gin.Context) {
	bookingID := c.Param("id")
	updated, err := h.BookingSvc.AdminReject(c.Request.Context(), bookingID)
	if err != nil {
		h.Logger.Warn("admin rejection failed", zap.String("booking_id", bookingID), zap.Error(err))
		utils.JSONError(c, statusForError(err), "Could not reject booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ReassignHandler moves a booking to a different performer and restarts the
// acceptance step.
func (h *AdminHandler) ReassignHandler(c *gin.Context) {
	bookingID := c.Param("id")
	var input struct {
		PerformerID string `json:"performer_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid reassignment payload", err.Error())
		return
	}

	updated, err := h.BookingSvc.AdminReassignPerformer(c.Request.Context(), bookingID, input.PerformerID)
	if err != nil {
		h.Logger.Warn("reassignment failed", zap.String("booking_id", bookingID), zap.Error(err))
		utils.JSONError(c, statusForError(err), "Could not reassign performer", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

// OverrideHandler records an accept/decline on the performer's behalf.
func (h *AdminHandler) OverrideHandler(c *gin.Context) {
	bookingID := c.Param("id")
	var input struct {
		Decision   booking.Decision `json:"decision" binding:"required"`
		EtaMinutes int              `json:"eta_minutes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid override payload", err.Error())
		return
	}

	updated, err := h.BookingSvc.AdminOverrideForPerformer(c.Request.Context(), bookingID, input.Decision, input.EtaMinutes)
	if err != nil {
		h.Logger.Warn("admin override failed", zap.String("booking_id", bookingID), zap.Error(err))
		utils.JSONError(c, statusForError(err), "Could not record override", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdatePerformerProfileHandler lets an admin edit performer profile fields.
func (h *AdminHandler) UpdatePerformerProfileHandler(c *gin.Context) {
	performerID := c.Param("id")
	var input struct {
		Name       string   `json:"name"`
		Email      string   `json:"email"`
		Phone      string   `json:"phone"`
		ServiceIDs []string `json:"service_ids"`
		Areas      []string `json:"areas"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid profile payload", err.Error())
		return
	}

	set := bson.M{}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.Email != "" {
		set["email"] = input.Email
	}
	if input.Phone != "" {
		set["phone"] = input.Phone
	}
	if input.ServiceIDs != nil {
		set["service_ids"] = input.ServiceIDs
	}
	if input.Areas != nil {
		set["areas"] = input.Areas
	}
	if len(set) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "No profile fields to update", "")
		return
	}

	updated, err := h.PerformerRepo.UpdateProfile(c.Request.Context(), performerID, set)
	if err != nil {
		h.Logger.Warn("performer profile update failed", zap.String("performer_id", performerID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not update profile", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}
