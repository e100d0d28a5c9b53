package paymentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"groomify/database"
	"groomify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoPaymentRepo implements PaymentRepository on MongoDB. It also holds the
// appointments and calendars collections because the webhook outcome must
// commit the payment claim and the appointment transition together.
type MongoPaymentRepo struct {
	paymentColl  *mongo.Collection
	refundColl   *mongo.Collection
	apptColl     *mongo.Collection
	calendarColl *mongo.Collection
}

func NewMongoPaymentRepo() *MongoPaymentRepo {
	db := database.DB()
	repo := &MongoPaymentRepo{
		paymentColl:  db.Collection("payments"),
		refundColl:   db.Collection("refunds"),
		apptColl:     db.Collection("appointments"),
		calendarColl: db.Collection("calendars"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		panic(fmt.Sprintf("payment repo: %v", err))
	}
	return repo
}

func (r *MongoPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.paymentColl.InsertOne(ctx, payment); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

func (r *MongoPaymentRepo) Delete(ctx context.Context, tenantID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.paymentColl.DeleteOne(ctx, bson.M{"id": id, "tenant_id": tenantID}); err != nil {
		return fmt.Errorf("failed to delete payment %s: %w", id, err)
	}
	return nil
}

func (r *MongoPaymentRepo) SetExternalID(ctx context.Context, tenantID, id, externalID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "tenant_id": tenantID}
	update := bson.M{"$set": bson.M{"external_id": externalID, "updated_at": time.Now().UTC()}}
	res, err := r.paymentColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to set external id on payment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPaymentRepo) GetByExternalID(ctx context.Context, externalID string) (*models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var payment models.Payment
	err := r.paymentColl.FindOne(ctx, bson.M{"external_id": externalID}).Decode(&payment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment by external id: %w", err)
	}
	return &payment, nil
}

func (r *MongoPaymentRepo) GetByAppointment(ctx context.Context, tenantID, appointmentID string) (*models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"appointment_id": appointmentID, "tenant_id": tenantID}
	var payment models.Payment
	err := r.paymentColl.FindOne(ctx, filter).Decode(&payment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment for appointment %s: %w", appointmentID, err)
	}
	return &payment, nil
}

func (r *MongoPaymentRepo) CreateRefund(ctx context.Context, refund *models.Refund) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.refundColl.InsertOne(ctx, refund); err != nil {
		return fmt.Errorf("failed to insert refund: %w", err)
	}
	return nil
}
