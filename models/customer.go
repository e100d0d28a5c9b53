package models

import "time"

// Customer belongs to a tenant. The document id (tax id) is unique per tenant.
type Customer struct {
	ID         string    `bson:"id" json:"id"`
	TenantID   string    `bson:"tenant_id" json:"tenant_id"`
	Name       string    `bson:"name" json:"name"`
	DocumentID string    `bson:"document_id" json:"document_id"` // digits only
	Email      string    `bson:"email" json:"email"`
	Phone      string    `bson:"phone" json:"phone"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
