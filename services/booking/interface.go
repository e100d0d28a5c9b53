package booking

import (
	"context"
	"time"

	"groomify/models"

	"github.com/shopspring/decimal"
)

// PreBookInput is the request to place a hold on a resource interval.
type PreBookInput struct {
	PetID       string    `json:"pet_id"`
	ServiceID   string    `json:"service_id"`
	ResourceID  string    `json:"resource_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// CancelResult carries the outcome of a cancellation.
type CancelResult struct {
	Appointment  *models.Appointment `json:"appointment"`
	RefundAmount decimal.Decimal     `json:"refund_amount"`
}

// ExpiryScheduler enqueues the deferred expiry of a pre-booking hold.
type ExpiryScheduler interface {
	ScheduleExpiry(ctx context.Context, appointmentID string, at time.Time) error
}

// BookingService owns the appointment lifecycle. Every status mutation in
// the system goes through it (or through the payment service's webhook
// reconciler, which drives the same storage-level compare-and-set).
type BookingService interface {
	PreBook(ctx context.Context, tenantID string, in PreBookInput) (*models.Appointment, error)
	Get(ctx context.Context, tenantID, id string) (*models.Appointment, error)
	Cancel(ctx context.Context, tenantID, id, reason string) (*CancelResult, error)
	Complete(ctx context.Context, tenantID, id string) (*models.Appointment, error)
	NoShow(ctx context.Context, tenantID, id string) (*models.Appointment, error)

	// Expire applies PRE_BOOKED -> EXPIRED if the hold is overdue. A no-op
	// when the appointment already left PRE_BOOKED; an approval that
	// committed first always wins.
	Expire(ctx context.Context, appointmentID string) error

	// SweepExpired expires every overdue hold. Backstop for lost expiry
	// tasks; runs periodically.
	SweepExpired(ctx context.Context) (int, error)
}
