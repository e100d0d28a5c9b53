package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"groomify/models"
)

// Sentinel errors surfaced to the service layer.
var (
	// ErrNotFound means no appointment matched the (tenant, id) lookup.
	ErrNotFound = errors.New("appointment not found")
	// ErrOverlap means the calendar rejected a reservation because another
	// active hold overlaps the requested interval.
	ErrOverlap = errors.New("overlapping reservation exists")
	// ErrStaleStatus means a compare-and-set transition found a different
	// status than expected and changed nothing.
	ErrStaleStatus = errors.New("appointment status changed concurrently")
)

// AppointmentRepository persists appointments and their calendar holds.
//
// CreateWithHold and the transition methods are the only writers of the
// status field; both are atomic so transitions are totally ordered by
// commit order.
type AppointmentRepository interface {
	// CreateWithHold inserts the appointment and reserves its interval on
	// the (tenant, resource) calendar in one transaction. Returns ErrOverlap
	// when another active hold intersects the interval.
	CreateWithHold(ctx context.Context, appt *models.Appointment) error

	// GetByID resolves an appointment within a tenant.
	GetByID(ctx context.Context, tenantID, id string) (*models.Appointment, error)

	// GetByIDAnyTenant resolves an appointment regardless of tenant. Used by
	// the webhook path, where the provider carries no tenant context.
	GetByIDAnyTenant(ctx context.Context, id string) (*models.Appointment, error)

	// Transition applies fromStatus -> toStatus as a compare-and-set.
	// Returns ErrStaleStatus when the current status is not fromStatus.
	Transition(ctx context.Context, tenantID, id, fromStatus, toStatus string) (*models.Appointment, error)

	// TransitionAndRelease is Transition plus removal of the calendar hold,
	// in one transaction. Used for every move out of an active status except
	// PRE_BOOKED -> CONFIRMED.
	TransitionAndRelease(ctx context.Context, tenantID, id, fromStatus, toStatus string) (*models.Appointment, error)

	// ListDueForExpiry returns PRE_BOOKED appointments whose expires_at has
	// passed, across all tenants. Used by the background sweep.
	ListDueForExpiry(ctx context.Context, now time.Time, limit int64) ([]models.Appointment, error)
}
