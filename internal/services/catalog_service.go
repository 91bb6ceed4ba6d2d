package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orillasdelcoilaco/staymanager-sub002/internal/models"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/utils"
)

// ICatalogService exposes the read-only inventory of a tenant: its
// properties, rate periods, channels and clients. The analytics engine only
// ever reads these; ownership stays with the document store.
type ICatalogService interface {
	PropertiesByTenant(ctx context.Context, tenantID utils.SixID) ([]models.Property, error)
	RatePeriodsByTenant(ctx context.Context, tenantID utils.SixID) ([]models.RatePeriod, error)
	ChannelsByTenant(ctx context.Context, tenantID utils.SixID) ([]models.Channel, error)
	ClientsByTenant(ctx context.Context, tenantID utils.SixID) ([]models.Client, error)
}

const (
	propertiesCollection  = "properties"
	ratePeriodsCollection = "rate_periods"
	channelsCollection    = "channels"
	clientsCollection     = "clients"
)

// catalogService implements ICatalogService on MongoDB.
type catalogService struct {
	db *mongo.Database
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(db *mongo.Database) ICatalogService {
	return &catalogService{db: db}
}

func tenantFilter(tenantID utils.SixID) bson.M {
	return bson.M{
		"tenant_id": tenantID,
		"deleted":   false,
	}
}

func (s *catalogService) PropertiesByTenant(ctx context.Context, tenantID utils.SixID) ([]models.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.db.Collection(propertiesCollection).Find(ctx, tenantFilter(tenantID), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties for tenant %s: %w", tenantID.String(), err)
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	if err = cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}
	return properties, nil
}

func (s *catalogService) RatePeriodsByTenant(ctx context.Context, tenantID utils.SixID) ([]models.RatePeriod, error) {
	cursor, err := s.db.Collection(ratePeriodsCollection).Find(ctx, tenantFilter(tenantID))
	if err != nil {
		return nil, fmt.Errorf("failed to query rate periods for tenant %s: %w", tenantID.String(), err)
	}
	defer cursor.Close(ctx)

	var periods []models.RatePeriod
	if err = cursor.All(ctx, &periods); err != nil {
		return nil, fmt.Errorf("failed to decode rate periods: %w", err)
	}
	return periods, nil
}

func (s *catalogService) ChannelsByTenant(ctx context.Context, tenantID utils.SixID) ([]models.Channel, error) {
	cursor, err := s.db.Collection(channelsCollection).Find(ctx, tenantFilter(tenantID))
	if err != nil {
		return nil, fmt.Errorf("failed to query channels for tenant %s: %w", tenantID.String(), err)
	}
	defer cursor.Close(ctx)

	var channels []models.Channel
	if err = cursor.All(ctx, &channels); err != nil {
		return nil, fmt.Errorf("failed to decode channels: %w", err)
	}
	return channels, nil
}

func (s *catalogService) ClientsByTenant(ctx context.Context, tenantID utils.SixID) ([]models.Client, error) {
	cursor, err := s.db.Collection(clientsCollection).Find(ctx, tenantFilter(tenantID))
	if err != nil {
		return nil, fmt.Errorf("failed to query clients for tenant %s: %w", tenantID.String(), err)
	}
	defer cursor.Close(ctx)

	var clients []models.Client
	if err = cursor.All(ctx, &clients); err != nil {
		return nil, fmt.Errorf("failed to decode clients: %w", err)
	}
	return clients, nil
}
