package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"groomify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// reserveHold pushes the interval onto the (tenant, resource) calendar. The
// filter only matches a calendar document with no overlapping interval, so
// the push and the overlap check are one atomic document update, and of two
// concurrent overlapping reservations only one can match.
func (r *MongoAppointmentRepo) reserveHold(ctx context.Context, appt *models.Appointment) error {
	filter := bson.M{
		"tenant_id":   appt.TenantID,
		"resource_id": appt.ResourceID,
		"intervals": bson.M{
			"$not": bson.M{
				"$elemMatch": bson.M{
					"start": bson.M{"$lt": appt.EndTime},
					"end":   bson.M{"$gt": appt.ScheduledAt},
				},
			},
		},
	}
	update := bson.M{
		"$push": bson.M{
			"intervals": models.CalendarInterval{
				AppointmentID: appt.ID,
				Start:         appt.ScheduledAt,
				End:           appt.EndTime,
			},
		},
	}

	res, err := r.calendarColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to reserve calendar hold: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrOverlap
	}
	return nil
}

// releaseHold removes the appointment's interval from its calendar, making
// the slot visible as free to the next reservation attempt.
func (r *MongoAppointmentRepo) releaseHold(ctx context.Context, appt *models.Appointment) error {
	filter := bson.M{"tenant_id": appt.TenantID, "resource_id": appt.ResourceID}
	update := bson.M{"$pull": bson.M{"intervals": bson.M{"appointment_id": appt.ID}}}
	if _, err := r.calendarColl.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to release calendar hold: %w", err)
	}
	return nil
}

// ensureCalendar creates the calendar document for a (tenant, resource) pair
// if it does not exist yet. The unique index on (tenant_id, resource_id)
// makes a racing upsert collapse to a single document.
func (r *MongoAppointmentRepo) ensureCalendar(ctx context.Context, tenantID, resourceID string) error {
	filter := bson.M{"tenant_id": tenantID, "resource_id": resourceID}
	update := bson.M{"$setOnInsert": bson.M{
		"tenant_id":   tenantID,
		"resource_id": resourceID,
		"intervals":   bson.A{},
	}}
	_, err := r.calendarColl.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to ensure calendar: %w", err)
	}
	return nil
}

// CreateWithHold inserts the appointment row and reserves its interval in a
// single transaction, so the check-then-insert sequence cannot race.
func (r *MongoAppointmentRepo) CreateWithHold(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := r.ensureCalendar(ctx, appt.TenantID, appt.ResourceID); err != nil {
		return err
	}

	client := r.apptColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if err := r.reserveHold(sc, appt); err != nil {
			return err
		}
		if _, err := r.apptColl.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}

// TransitionAndRelease applies the status compare-and-set and removes the
// calendar hold in one transaction. Once the transition commits, the interval
// is already free for the conflict check.
func (r *MongoAppointmentRepo) TransitionAndRelease(ctx context.Context, tenantID, id, fromStatus, toStatus string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := r.apptColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var updated *models.Appointment
	txnFn := func(sc mongo.SessionContext) error {
		appt, err := r.transition(sc, tenantID, id, fromStatus, toStatus)
		if err != nil {
			return err
		}
		if err := r.releaseHold(sc, appt); err != nil {
			return err
		}
		updated = appt
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return nil, err
	}

	return updated, nil
}
