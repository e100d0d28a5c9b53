package handlers

import (
	"net/http"

	"groomify/middleware"
	"groomify/services/booking"
	"groomify/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the appointment lifecycle endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(service booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: service}
}

// PreBook handles POST /api/appointments/pre-book.
func (h *BookingHandler) PreBook(c *gin.Context) {
	var in booking.PreBookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.CodeValidation, "invalid input: "+err.Error())
		return
	}

	appt, err := h.Service.PreBook(c.Request.Context(), middleware.TenantID(c), in)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// Get handles GET /api/appointments/:id.
func (h *BookingHandler) Get(c *gin.Context) {
	appt, err := h.Service.Get(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// Cancel handles POST /api/appointments/:id/cancel.
func (h *BookingHandler) Cancel(c *gin.Context) {
	var in struct {
		Reason string `json:"reason"`
	}
	// Body is optional.
	_ = c.ShouldBindJSON(&in)

	res, err := h.Service.Cancel(c.Request.Context(), middleware.TenantID(c), c.Param("id"), in.Reason)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"appointment":   res.Appointment,
		"refund_amount": res.RefundAmount.StringFixed(2),
	})
}

// Complete handles POST /api/appointments/:id/complete.
func (h *BookingHandler) Complete(c *gin.Context) {
	appt, err := h.Service.Complete(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// NoShow handles POST /api/appointments/:id/no-show.
func (h *BookingHandler) NoShow(c *gin.Context) {
	appt, err := h.Service.NoShow(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}
