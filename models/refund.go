package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RefundPending is the initial status of every refund row. Actually moving
// the money back through the provider is a separate settlement step.
const RefundPending = "PENDING"

// Refund records the amount returned to the customer when a confirmed
// appointment is cancelled.
type Refund struct {
	ID            string          `bson:"id" json:"id"`
	TenantID      string          `bson:"tenant_id" json:"tenant_id"`
	AppointmentID string          `bson:"appointment_id" json:"appointment_id"`
	PaymentID     string          `bson:"payment_id" json:"payment_id"`
	Amount        decimal.Decimal `bson:"amount" json:"amount"`
	Status        string          `bson:"status" json:"status"`
	Reason        string          `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt     time.Time       `bson:"created_at" json:"created_at"`
}
