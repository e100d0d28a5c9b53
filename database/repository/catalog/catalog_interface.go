package catalogRepo

import (
	"context"
	"errors"

	"groomify/models"
)

var (
	// ErrNotFound means no document matched the (tenant, id) lookup.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate means a uniqueness constraint was violated, e.g. a
	// customer document id already registered in the tenant.
	ErrDuplicate = errors.New("duplicate document")
)

// CatalogRepository persists the tenant-scoped catalog: customers, their
// pets, and the bookable services.
type CatalogRepository interface {
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomer(ctx context.Context, tenantID, id string) (*models.Customer, error)

	CreatePet(ctx context.Context, pet *models.Pet) error
	GetPet(ctx context.Context, tenantID, id string) (*models.Pet, error)

	CreateService(ctx context.Context, service *models.Service) error
	GetService(ctx context.Context, tenantID, id string) (*models.Service, error)
}
