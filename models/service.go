package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a bookable offering with a price and a fixed duration.
// The price is snapshotted at checkout time; later edits do not affect
// already-created payments.
type Service struct {
	ID              string          `bson:"id" json:"id"`
	TenantID        string          `bson:"tenant_id" json:"tenant_id"`
	Name            string          `bson:"name" json:"name"`
	Description     string          `bson:"description,omitempty" json:"description,omitempty"`
	Price           decimal.Decimal `bson:"price" json:"price"`
	DurationMinutes int             `bson:"duration_minutes" json:"duration_minutes"`
	Active          bool            `bson:"active" json:"active"`
	CreatedAt       time.Time       `bson:"created_at" json:"created_at"`
}
