package handlers

import (
	"net/http"

	"stagelink/services/booking"
	"stagelink/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the client-facing booking endpoints.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// statusForError maps the booking error taxonomy onto HTTP statuses.
func statusForError(err error) int {
	switch booking.CodeOf(err) {
	case booking.CodeAdmission:
		return http.StatusForbidden
	case booking.CodeValidation:
		return http.StatusBadRequest
	case booking.CodeConflict:
		return http.StatusConflict
	case booking.CodeBackend:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// CreateBookingHandler accepts a client request and fans it out into one
// booking per selected performer.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking request", err.Error())
		return
	}

	bookings, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		h.Logger.Warn("booking creation failed", zap.Error(err))
		utils.JSONError(c, statusForError(err), "Could not create booking", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"bookings": bookings})
}

// ConfirmDepositHandler records the client's deposit submission.
func (h *BookingHandler) ConfirmDepositHandler(c *gin.Context) {
	bookingID := c.Param("id")
	updated, err := h.Service.ClientConfirmDeposit(c.Request.Context(), bookingID)
	if err != nil {
		h.Logger.Warn("deposit submission failed", zap.String("booking_id", bookingID), zap.Error(err))
		utils.JSONError(c, statusForError(err), "Could not submit deposit", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetBookingHandler returns a single booking.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	bookingID := c.Param("id")
	b, err := h.Service.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		utils.JSONError(c, statusForError(err), "Booking not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListBookingsHandler returns all bookings.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	bookings, err := h.Service.ListBookings(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to list bookings", zap.Error(err))
		utils.JSONError(c, statusForError(err), "Could not list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
