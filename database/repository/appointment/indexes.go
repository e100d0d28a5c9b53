package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the appointments and
// calendars collections.
func (r *MongoAppointmentRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	apptModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary query pattern: tenant-scoped lookups.
		{
			Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "id", Value: 1}},
			Options: options.Index().SetName("tenant_id_idx"),
		},
		// Sweep query: due PRE_BOOKED holds.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("status_expires_idx"),
		},
		{
			Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "resource_id", Value: 1}, {Key: "scheduled_at", Value: 1}},
			Options: options.Index().SetName("tenant_resource_time_idx"),
		},
	}
	if _, err := r.apptColl.Indexes().CreateMany(ctx, apptModels); err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}

	calendarModels := []mongo.IndexModel{
		// One calendar document per (tenant, resource); the reservation
		// filter relies on this.
		{
			Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "resource_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_tenant_resource"),
		},
	}
	if _, err := r.calendarColl.Indexes().CreateMany(ctx, calendarModels); err != nil {
		return fmt.Errorf("failed to create calendar indexes: %w", err)
	}
	return nil
}
