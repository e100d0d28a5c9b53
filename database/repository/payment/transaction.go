package paymentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"groomify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ApplyOutcome runs the webhook outcome as one transaction:
//
//  1. claim the idempotency gate: a compare-and-set on
//     {external_id, webhook_processed: false} that also writes the payment
//     status, so two concurrent deliveries cannot both match;
//  2. drive the appointment PRE_BOOKED -> apptStatus with the same
//     compare-and-set shape;
//  3. optionally release the calendar hold (rejection frees the slot).
//
// If the appointment is no longer PRE_BOOKED the whole transaction aborts,
// leaving the gate unclaimed, and ErrStaleAppointment is returned.
func (r *MongoPaymentRepo) ApplyOutcome(ctx context.Context, externalID, paymentStatus, apptStatus string, releaseHold bool) (*models.Payment, *models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := r.paymentColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var (
		payment models.Payment
		appt    models.Appointment
	)
	txnFn := func(sc mongo.SessionContext) error {
		now := time.Now().UTC()
		after := options.FindOneAndUpdate().SetReturnDocument(options.After)

		claim := bson.M{"external_id": externalID, "webhook_processed": false}
		set := bson.M{"$set": bson.M{
			"status":            paymentStatus,
			"webhook_processed": true,
			"updated_at":        now,
		}}
		err := r.paymentColl.FindOneAndUpdate(sc, claim, set, after).Decode(&payment)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrAlreadyProcessed
		}
		if err != nil {
			return fmt.Errorf("failed to claim webhook gate: %w", err)
		}

		apptFilter := bson.M{"id": payment.AppointmentID, "status": models.StatusPreBooked}
		apptSet := bson.M{"$set": bson.M{"status": apptStatus, "updated_at": now}}
		err = r.apptColl.FindOneAndUpdate(sc, apptFilter, apptSet, after).Decode(&appt)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrStaleAppointment
		}
		if err != nil {
			return fmt.Errorf("failed to transition appointment %s: %w", payment.AppointmentID, err)
		}

		if releaseHold {
			calFilter := bson.M{"tenant_id": appt.TenantID, "resource_id": appt.ResourceID}
			pull := bson.M{"$pull": bson.M{"intervals": bson.M{"appointment_id": appt.ID}}}
			if _, err := r.calendarColl.UpdateOne(sc, calFilter, pull); err != nil {
				return fmt.Errorf("failed to release calendar hold: %w", err)
			}
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
		return nil, nil, err
	}

	return &payment, &appt, nil
}
