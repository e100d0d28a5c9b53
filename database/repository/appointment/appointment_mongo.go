package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"groomify/database"
	"groomify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo implements AppointmentRepository on MongoDB. It owns
// both the appointments collection and the per-resource calendars collection,
// since reservations must commit together with the rows that hold them.
type MongoAppointmentRepo struct {
	apptColl     *mongo.Collection
	calendarColl *mongo.Collection
}

func NewMongoAppointmentRepo() *MongoAppointmentRepo {
	db := database.DB()
	repo := &MongoAppointmentRepo{
		apptColl:     db.Collection("appointments"),
		calendarColl: db.Collection("calendars"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		panic(fmt.Sprintf("appointment repo: %v", err))
	}
	return repo
}

func (r *MongoAppointmentRepo) GetByID(ctx context.Context, tenantID, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	err := r.apptColl.FindOne(ctx, bson.M{"id": id, "tenant_id": tenantID}).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) GetByIDAnyTenant(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	err := r.apptColl.FindOne(ctx, bson.M{"id": id}).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}
	return &appt, nil
}

// Transition performs the atomic compare-and-set on the status field. The
// filter carries the expected status, so a concurrent writer that got there
// first leaves nothing for this update to match.
func (r *MongoAppointmentRepo) Transition(ctx context.Context, tenantID, id, fromStatus, toStatus string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.transition(ctx, tenantID, id, fromStatus, toStatus)
}

func (r *MongoAppointmentRepo) transition(ctx context.Context, tenantID, id, fromStatus, toStatus string) (*models.Appointment, error) {
	filter := bson.M{"id": id, "status": fromStatus}
	if tenantID != "" {
		filter["tenant_id"] = tenantID
	}
	update := bson.M{"$set": bson.M{"status": toStatus, "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var appt models.Appointment
	err := r.apptColl.FindOneAndUpdate(ctx, filter, update, opts).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrStaleStatus
	}
	if err != nil {
		return nil, fmt.Errorf("failed to transition appointment %s to %s: %w", id, toStatus, err)
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) ListDueForExpiry(ctx context.Context, now time.Time, limit int64) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// $lte matches the deadline check in Expire, so the sweep and the
	// deferred task agree on holds expiring at this exact instant.
	filter := bson.M{
		"status":     models.StatusPreBooked,
		"expires_at": bson.M{"$lte": now},
	}
	cursor, err := r.apptColl.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list due pre-bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var due []models.Appointment
	if err := cursor.All(ctx, &due); err != nil {
		return nil, fmt.Errorf("failed to decode due pre-bookings: %w", err)
	}
	return due, nil
}
