package payment

import (
	"context"

	"groomify/models"
)

// PaymentService owns the deposit ledger: checkout creation and the
// reconciliation of asynchronous provider notifications.
type PaymentService interface {
	// CreateCheckout creates the deposit Payment for a PRE_BOOKED
	// appointment and returns the redirect link issued by the gateway.
	CreateCheckout(ctx context.Context, tenantID, appointmentID string) (string, error)

	// HandleWebhook consumes one inbound provider notification. Repeated or
	// out-of-order deliveries of the same terminal outcome are no-op
	// successes.
	HandleWebhook(ctx context.Context, event models.WebhookEvent) (*models.WebhookResult, error)
}
