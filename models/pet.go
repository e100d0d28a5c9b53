package models

import "time"

// Pet species values.
const (
	SpeciesDog   = "DOG"
	SpeciesCat   = "CAT"
	SpeciesOther = "OTHER"
)

// Pet is owned by a customer within the same tenant.
type Pet struct {
	ID         string     `bson:"id" json:"id"`
	TenantID   string     `bson:"tenant_id" json:"tenant_id"`
	CustomerID string     `bson:"customer_id" json:"customer_id"`
	Name       string     `bson:"name" json:"name"`
	Species    string     `bson:"species" json:"species"`
	Breed      string     `bson:"breed" json:"breed"`
	BirthDate  *time.Time `bson:"birth_date,omitempty" json:"birth_date,omitempty"`
}
