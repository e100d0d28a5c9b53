package models

// WebhookEvent is the inbound notification body from the payment provider.
// The payload is only a pointer: the authoritative payment status is always
// re-queried from the provider by Data.ID.
type WebhookEvent struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// WebhookResult statuses returned to the provider.
const (
	WebhookProcessed        = "processed"
	WebhookAlreadyProcessed = "already_processed"
	WebhookIgnored          = "ignored"
)

// WebhookResult is the acknowledgement body for a webhook delivery.
type WebhookResult struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status,omitempty"`
}
