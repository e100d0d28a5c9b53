package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment statuses.
const (
	PaymentCreated  = "CREATED"
	PaymentApproved = "APPROVED"
	PaymentRejected = "REJECTED"
)

// Payment tracks the deposit for one appointment. ExternalID is the
// correlation id issued by the payment gateway and is unique once known.
// WebhookProcessed guards against re-applying a terminal webhook outcome.
type Payment struct {
	ID               string          `bson:"id" json:"id"`
	TenantID         string          `bson:"tenant_id" json:"tenant_id"`
	AppointmentID    string          `bson:"appointment_id" json:"appointment_id"`
	ExternalID       string          `bson:"external_id,omitempty" json:"external_id,omitempty"`
	Amount           decimal.Decimal `bson:"amount" json:"amount"`
	Status           string          `bson:"status" json:"status"`
	WebhookProcessed bool            `bson:"webhook_processed" json:"webhook_processed"`
	CreatedAt        time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `bson:"updated_at" json:"updated_at"`
}
