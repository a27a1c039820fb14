package handlers

import (
	"net/http"
	"strconv"

	"bookly/models"
	"bookly/services/booking"
	"bookly/services/errs"
	"bookly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	Coordinator booking.BookingCoordinator
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req models.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.Coordinator.CreateBooking(c.Request.Context(), actor, booking.CreateBookingInput{
		UserID:    req.UserID,
		ServiceID: req.ServiceID,
		Start:     req.Start,
		Address:   req.Address,
		Notes:     req.Notes,
	})
	if err != nil {
		utils.RespondError(c, "Failed to create booking", err)
		return
	}

	getLogger(c).Debug("Booking placed via API", zap.String("bookingID", b.ID))
	c.JSON(http.StatusCreated, gin.H{"booking": b})
}

// ListBookingsHandler handles GET /api/bookings?providerId=&userId=&status=&limit=.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	filter := booking.ListFilter{
		ProviderID: c.Query("providerId"),
		UserID:     c.Query("userId"),
		Status:     models.BookingStatus(c.Query("status")),
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			utils.RespondError(c, "Invalid query", errs.Validation("limit", "must be a positive integer"))
			return
		}
		filter.Limit = n
	}

	list, err := h.Coordinator.ListBookings(c.Request.Context(), actor, filter)
	if err != nil {
		utils.RespondError(c, "Failed to list bookings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list, "count": len(list)})
}

// GetBookingHandler handles GET /api/bookings/:bookingID.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	b, err := h.Coordinator.GetBooking(c.Request.Context(), c.Param("bookingID"), actor)
	if err != nil {
		utils.RespondError(c, "Failed to load booking", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// UpdateBookingStatusHandler handles PATCH /api/bookings/:bookingID/status.
func (h *BookingHandler) UpdateBookingStatusHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req models.UpdateBookingStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.Coordinator.SetStatus(c.Request.Context(), c.Param("bookingID"), req.Status, actor)
	if err != nil {
		utils.RespondError(c, "Failed to update booking", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}
