package paymentRepo

import (
	"context"
	"errors"

	"groomify/models"
)

// Sentinel errors surfaced to the service layer.
var (
	// ErrNotFound means no payment matched the lookup.
	ErrNotFound = errors.New("payment not found")
	// ErrAlreadyProcessed means the webhook idempotency gate was already
	// claimed by an earlier delivery.
	ErrAlreadyProcessed = errors.New("webhook outcome already applied")
	// ErrStaleAppointment means the appointment was no longer PRE_BOOKED
	// when the outcome transaction ran; nothing was applied.
	ErrStaleAppointment = errors.New("appointment status changed concurrently")
	// ErrDuplicate means a payment already exists for the appointment.
	ErrDuplicate = errors.New("payment already exists for appointment")
)

// PaymentRepository persists payments, refunds, and the webhook outcome
// transaction. Payment status is mutated only through ApplyOutcome.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error

	// Delete removes a payment that never obtained an external id. Checkout
	// uses it to roll back when the gateway call fails.
	Delete(ctx context.Context, tenantID, id string) error

	// SetExternalID persists the gateway correlation id on the payment.
	SetExternalID(ctx context.Context, tenantID, id, externalID string) error

	// GetByExternalID looks a payment up across all tenants; the gateway
	// does not know tenant context.
	GetByExternalID(ctx context.Context, externalID string) (*models.Payment, error)

	GetByAppointment(ctx context.Context, tenantID, appointmentID string) (*models.Payment, error)

	// ApplyOutcome atomically claims the idempotency gate, sets the payment
	// status, and drives the appointment PRE_BOOKED -> apptStatus. When
	// releaseHold is set the calendar hold is removed in the same
	// transaction. Exactly one concurrent delivery for an external id can
	// succeed; the rest get ErrAlreadyProcessed.
	ApplyOutcome(ctx context.Context, externalID, paymentStatus, apptStatus string, releaseHold bool) (*models.Payment, *models.Appointment, error)

	CreateRefund(ctx context.Context, refund *models.Refund) error
}
