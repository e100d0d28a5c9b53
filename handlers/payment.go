package handlers

import (
	"net/http"

	"groomify/middleware"
	"groomify/models"
	"groomify/services/payment"
	"groomify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes checkout creation and the provider webhook.
type PaymentHandler struct {
	Service payment.PaymentService
}

func NewPaymentHandler(service payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: service}
}

// CreateCheckout handles POST /api/payments/checkout.
func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	var in struct {
		AppointmentID string `json:"appointment_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.CodeValidation, "appointment_id is required")
		return
	}

	link, err := h.Service.CreateCheckout(c.Request.Context(), middleware.TenantID(c), in.AppointmentID)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment_link": link})
}

// Webhook handles POST /api/webhooks/payment-provider. The provider does
// not authenticate as a tenant; the payment row carries the tenant scope.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var event models.WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		utils.GetLogger().Warn("webhook with malformed body", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, utils.CodeValidation, "malformed webhook payload")
		return
	}

	result, err := h.Service.HandleWebhook(c.Request.Context(), event)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
