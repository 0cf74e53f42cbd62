package handlers

import (
	"net/http"

	performerRepo "stagelink/database/repository/performer"
	"stagelink/models"
	"stagelink/services/booking"
	"stagelink/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PerformerHandler exposes the performer-facing endpoints.
type PerformerHandler struct {
	BookingSvc booking.BookingService
	Repo       performerRepo.PerformerRepository
	Logger     *zap.Logger
}

// NewPerformerHandler creates a PerformerHandler.
func NewPerformerHandler(svc booking.BookingService, repo performerRepo.PerformerRepository, logger *zap.Logger) *PerformerHandler {
	return &PerformerHandler{BookingSvc: svc, Repo: repo, Logger: logger}
}

// DecideHandler records the performer's accept/decline for a booking.
func (h *PerformerHandler) DecideHandler(c *gin.Context) {
	bookingID := c.Param("id")
	var input struct {
		Decision   booking.Decision `json:"decision" binding:"required"`
		EtaMinutes int              `json:"eta_minutes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid decision payload", err.Error())
		return
	}

	// The decision must come from the assigned performer.
	performerID := c.GetString("performerID")
	b, err := h.BookingSvc.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		utils.JSONError(c, statusForError(err), "Booking not found", err.Error())
		return
	}
	if b.PerformerID != performerID {
		utils.JSONError(c, http.StatusForbidden, "Booking is assigned to another performer", "")
		return
	}

	updated, err := h.BookingSvc.PerformerDecide(c.Request.Context(), bookingID, input.Decision, input.EtaMinutes)
	if err != nil {
		h.Logger.Warn("performer decision failed", zap.String("booking_id", bookingID), zap.Error(err))
		utils.JSONError(c, statusForError(err), "Could not record decision", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ListAssignedBookingsHandler returns the bookings assigned to the caller.
func (h *PerformerHandler) ListAssignedBookingsHandler(c *gin.Context) {
	performerID := c.GetString("performerID")
	bookings, err := h.BookingSvc.ListBookings(c.Request.Context())
	if err != nil {
		utils.JSONError(c, statusForError(err), "Could not list bookings", err.Error())
		return
	}

	assigned := make([]models.Booking, 0)
	for _, b := range bookings {
		if b.PerformerID != performerID {
			continue
		}
		// Client contact details stay hidden until the deposit is confirmed.
		if b.Status != models.StatusConfirmed {
			b.ClientPhone = ""
			b.ClientEmail = ""
			b.Address = ""
		}
		assigned = append(assigned, b)
	}
	c.JSON(http.StatusOK, gin.H{"bookings": assigned})
}

// UpdateStatusHandler lets a performer set their own availability.
func (h *PerformerHandler) UpdateStatusHandler(c *gin.Context) {
	performerID := c.GetString("performerID")
	var input struct {
		Status models.PerformerStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid status payload", err.Error())
		return
	}
	if !input.Status.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "Unknown performer status", string(input.Status))
		return
	}

	updated, err := h.Repo.UpdateStatus(c.Request.Context(), performerID, input.Status)
	if err != nil {
		h.Logger.Warn("performer status update failed", zap.String("performer_id", performerID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not update status", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ListPerformersHandler returns all performer profiles.
func (h *PerformerHandler) ListPerformersHandler(c *gin.Context) {
	performers, err := h.Repo.ListAll(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Could not list performers", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"performers": performers})
}
