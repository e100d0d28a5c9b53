package tenantRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"groomify/database"
	"groomify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound means no tenant matched the lookup.
	ErrNotFound = errors.New("tenant not found")
	// ErrDuplicate means the subdomain is already taken.
	ErrDuplicate = errors.New("tenant subdomain already registered")
)

// TenantRepository resolves and onboards tenants. Tenancy itself is an
// external concern; this repo only exists so the auth middleware can verify
// that a token's tenant claim points at a live tenant.
type TenantRepository interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	GetByID(ctx context.Context, id string) (*models.Tenant, error)
}

// MongoTenantRepo implements TenantRepository on MongoDB.
type MongoTenantRepo struct {
	coll *mongo.Collection
}

func NewMongoTenantRepo() *MongoTenantRepo {
	repo := &MongoTenantRepo{coll: database.DB().Collection("tenants")}
	if err := repo.EnsureIndexes(); err != nil {
		panic(fmt.Sprintf("tenant repo: %v", err))
	}
	return repo
}

func (r *MongoTenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, tenant); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert tenant: %w", err)
	}
	return nil
}

func (r *MongoTenantRepo) GetByID(ctx context.Context, id string) (*models.Tenant, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var tenant models.Tenant
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&tenant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tenant %s: %w", id, err)
	}
	return &tenant, nil
}

// EnsureIndexes creates the necessary indexes on the tenants collection.
func (r *MongoTenantRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "subdomain", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_subdomain"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create tenant indexes: %w", err)
	}
	return nil
}
