package paymentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the payments and refunds
// collections.
func (r *MongoPaymentRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	paymentModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// One payment per appointment at a time.
		{
			Keys:    bson.D{{Key: "appointment_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_appointment"),
		},
		// The external correlation id is unique once known. Sparse: rows
		// awaiting their gateway id have none.
		{
			Keys:    bson.D{{Key: "external_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("unique_external_id"),
		},
	}
	if _, err := r.paymentColl.Indexes().CreateMany(ctx, paymentModels); err != nil {
		return fmt.Errorf("failed to create payment indexes: %w", err)
	}

	refundModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "appointment_id", Value: 1}},
			Options: options.Index().SetName("appointment_idx"),
		},
	}
	if _, err := r.refundColl.Indexes().CreateMany(ctx, refundModels); err != nil {
		return fmt.Errorf("failed to create refund indexes: %w", err)
	}
	return nil
}
