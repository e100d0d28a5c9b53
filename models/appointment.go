package models

import "time"

// Appointment statuses.
const (
	StatusPreBooked = "PRE_BOOKED"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
	StatusCompleted = "COMPLETED"
	StatusNoShow    = "NO_SHOW"
	StatusExpired   = "EXPIRED"
	StatusRejected  = "REJECTED"
)

// ActiveStatuses are the statuses that hold a resource interval. Only these
// participate in overlap checks.
var ActiveStatuses = []string{StatusPreBooked, StatusConfirmed}

// Appointment is a time-bound hold on a resource. Rows are never deleted;
// they reach a terminal status and stay for audit and refund history.
type Appointment struct {
	ID          string    `bson:"id" json:"id"`
	TenantID    string    `bson:"tenant_id" json:"tenant_id"`
	ResourceID  string    `bson:"resource_id" json:"resource_id"`
	CustomerID  string    `bson:"customer_id" json:"customer_id"`
	PetID       string    `bson:"pet_id" json:"pet_id"`
	ServiceID   string    `bson:"service_id" json:"service_id"`
	ScheduledAt time.Time `bson:"scheduled_at" json:"scheduled_at"`
	EndTime     time.Time `bson:"end_time" json:"end_time"` // scheduled_at + service duration
	Status      string    `bson:"status" json:"status"`
	ExpiresAt   time.Time `bson:"expires_at" json:"expires_at"` // created_at + hold TTL
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// IsTerminal reports whether the status accepts no further transitions.
func (a *Appointment) IsTerminal() bool {
	switch a.Status {
	case StatusCancelled, StatusCompleted, StatusNoShow, StatusExpired, StatusRejected:
		return true
	}
	return false
}
