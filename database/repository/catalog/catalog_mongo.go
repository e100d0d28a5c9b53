package catalogRepo

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

// MongoCatalogRepo implements CatalogRepository on MongoDB.
type MongoCatalogRepo struct {
	customerColl *mongo.Collection
	petColl      *mongo.Collection
	serviceColl  *mongo.Collection
}

func NewMongoCatalogRepo() *MongoCatalogRepo {
	db := database.DB()
	repo := &MongoCatalogRepo{
		customerColl: db.Collection("customers"),
		petColl:      db.Collection("pets"),
		serviceColl:  db.Collection("services"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		panic(fmt.Sprintf("catalog repo: %v", err))
	}
	return repo
}

func (r *MongoCatalogRepo) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	return r.insert(ctx, r.customerColl, customer, "customer")
}

func (r *MongoCatalogRepo) GetCustomer(ctx context.Context, tenantID, id string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.get(ctx, r.customerColl, tenantID, id, &customer, "customer"); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *MongoCatalogRepo) CreatePet(ctx context.Context, pet *models.Pet) error {
	return r.insert(ctx, r.petColl, pet, "pet")
}

func (r *MongoCatalogRepo) GetPet(ctx context.Context, tenantID, id string) (*models.Pet, error) {
	var pet models.Pet
	if err := r.get(ctx, r.petColl, tenantID, id, &pet, "pet"); err != nil {
		return nil, err
	}
	return &pet, nil
}

func (r *MongoCatalogRepo) CreateService(ctx context.Context, service *models.Service) error {
	return r.insert(ctx, r.serviceColl, service, "service")
}

func (r *MongoCatalogRepo) GetService(ctx context.Context, tenantID, id string) (*models.Service, error) {
	var service models.Service
	if err := r.get(ctx, r.serviceColl, tenantID, id, &service, "service"); err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *MongoCatalogRepo) insert(ctx context.Context, coll *mongo.Collection, doc interface{}, kind string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert %s: %w", kind, err)
	}
	return nil
}

func (r *MongoCatalogRepo) get(ctx context.Context, coll *mongo.Collection, tenantID, id string, out interface{}, kind string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := coll.FindOne(ctx, bson.M{"id": id, "tenant_id": tenantID}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to fetch %s %s: %w", kind, id, err)
	}
	return nil
}

// EnsureIndexes creates the necessary indexes on the catalog collections.
func (r *MongoCatalogRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uniqueID := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_id"),
	}

	customerModels := []mongo.IndexModel{
		uniqueID,
		// Document id (tax id) unique within a tenant.
		{
			Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "document_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_tenant_document"),
		},
	}
	if _, err := r.customerColl.Indexes().CreateMany(ctx, customerModels); err != nil {
		return fmt.Errorf("failed to create customer indexes: %w", err)
	}

	for kind, coll := range map[string]*mongo.Collection{"pet": r.petColl, "service": r.serviceColl} {
		if _, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{uniqueID}); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", kind, err)
		}
	}
	return nil
}
