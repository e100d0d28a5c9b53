package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	catalogRepo "groomify/database/repository/catalog"
	"groomify/models"
	"groomify/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerInput is the request to register a customer.
type CustomerInput struct {
	Name       string `json:"name"`
	DocumentID string `json:"document_id"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// PetInput is the request to register a pet under a customer.
type PetInput struct {
	CustomerID string     `json:"customer_id"`
	Name       string     `json:"name"`
	Species    string     `json:"species"`
	Breed      string     `json:"breed"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
}

// ServiceInput is the request to register a bookable service.
type ServiceInput struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
}

// CatalogService manages the tenant-scoped catalog (customers, pets,
// services). It sits at the boundary of the booking core: the core only
// reads it.
type CatalogService interface {
	CreateCustomer(ctx context.Context, tenantID string, in CustomerInput) (*models.Customer, error)
	GetCustomer(ctx context.Context, tenantID, id string) (*models.Customer, error)
	CreatePet(ctx context.Context, tenantID string, in PetInput) (*models.Pet, error)
	GetPet(ctx context.Context, tenantID, id string) (*models.Pet, error)
	CreateService(ctx context.Context, tenantID string, in ServiceInput) (*models.Service, error)
	GetService(ctx context.Context, tenantID, id string) (*models.Service, error)
}

// DefaultCatalogService implements CatalogService.
type DefaultCatalogService struct {
	Repo catalogRepo.CatalogRepository
}

func (s *DefaultCatalogService) CreateCustomer(ctx context.Context, tenantID string, in CustomerInput) (*models.Customer, error) {
	if in.Name == "" {
		return nil, utils.NewValidationError("customer name is required")
	}
	doc := digitsOnly(in.DocumentID)
	if len(doc) != 11 {
		return nil, utils.NewValidationError("document id must carry 11 digits")
	}

	customer := &models.Customer{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		Name:       in.Name,
		DocumentID: doc,
		Email:      in.Email,
		Phone:      in.Phone,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.CreateCustomer(ctx, customer); err != nil {
		if errors.Is(err, catalogRepo.ErrDuplicate) {
			return nil, utils.NewValidationError("document id already registered in tenant")
		}
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return customer, nil
}

func (s *DefaultCatalogService) GetCustomer(ctx context.Context, tenantID, id string) (*models.Customer, error) {
	customer, err := s.Repo.GetCustomer(ctx, tenantID, id)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return nil, utils.NewServiceError(utils.CodeNotFound, fmt.Sprintf("customer %s not found", id))
	}
	return customer, err
}

func (s *DefaultCatalogService) CreatePet(ctx context.Context, tenantID string, in PetInput) (*models.Pet, error) {
	if in.Name == "" {
		return nil, utils.NewValidationError("pet name is required")
	}
	switch in.Species {
	case models.SpeciesDog, models.SpeciesCat, models.SpeciesOther:
	default:
		return nil, utils.NewValidationError("unknown species %q", in.Species)
	}
	// Tenant-scoped lookup: a customer from another tenant is indistinguishable
	// from a missing one, and both are rejected.
	if _, err := s.Repo.GetCustomer(ctx, tenantID, in.CustomerID); err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			return nil, utils.NewValidationError("customer %s not found in tenant", in.CustomerID)
		}
		return nil, fmt.Errorf("create pet: %w", err)
	}

	pet := &models.Pet{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		CustomerID: in.CustomerID,
		Name:       in.Name,
		Species:    in.Species,
		Breed:      in.Breed,
		BirthDate:  in.BirthDate,
	}
	if err := s.Repo.CreatePet(ctx, pet); err != nil {
		return nil, fmt.Errorf("create pet: %w", err)
	}
	return pet, nil
}

func (s *DefaultCatalogService) GetPet(ctx context.Context, tenantID, id string) (*models.Pet, error) {
	pet, err := s.Repo.GetPet(ctx, tenantID, id)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return nil, utils.NewServiceError(utils.CodeNotFound, fmt.Sprintf("pet %s not found", id))
	}
	return pet, err
}

func (s *DefaultCatalogService) CreateService(ctx context.Context, tenantID string, in ServiceInput) (*models.Service, error) {
	if in.Name == "" {
		return nil, utils.NewValidationError("service name is required")
	}
	if in.Price.Sign() < 0 {
		return nil, utils.NewValidationError("price must be greater than or equal to zero")
	}
	if in.DurationMinutes <= 0 {
		return nil, utils.NewValidationError("duration must be greater than zero")
	}

	service := &models.Service{
		ID:              uuid.New().String(),
		TenantID:        tenantID,
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price.Round(2),
		DurationMinutes: in.DurationMinutes,
		Active:          true,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.Repo.CreateService(ctx, service); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return service, nil
}

func (s *DefaultCatalogService) GetService(ctx context.Context, tenantID, id string) (*models.Service, error) {
	service, err := s.Repo.GetService(ctx, tenantID, id)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return nil, utils.NewServiceError(utils.CodeNotFound, fmt.Sprintf("service %s not found", id))
	}
	return service, err
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
