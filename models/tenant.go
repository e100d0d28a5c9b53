package models

import "time"

// Tenant is an isolated customer organization. Every other document is
// partitioned by its ID.
type Tenant struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Subdomain string    `bson:"subdomain" json:"subdomain"`
	Active    bool      `bson:"active" json:"active"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
