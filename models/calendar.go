package models

import "time"

// ResourceCalendar holds the active holds for one (tenant, resource) pair.
// Reservations are pushed into Intervals by a conditional update whose filter
// rejects any overlap, which is what makes double-booking impossible at the
// storage layer.
type ResourceCalendar struct {
	TenantID   string             `bson:"tenant_id" json:"tenant_id"`
	ResourceID string             `bson:"resource_id" json:"resource_id"`
	Intervals  []CalendarInterval `bson:"intervals" json:"intervals"`
}

// CalendarInterval is one reserved [Start, End) slice of a resource.
type CalendarInterval struct {
	AppointmentID string    `bson:"appointment_id" json:"appointment_id"`
	Start         time.Time `bson:"start" json:"start"`
	End           time.Time `bson:"end" json:"end"`
}

// Overlaps reports whether [s1,e1) and [s2,e2) intersect.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}
