package repository

import (
	"context"

	"stocksim/internal/models"
)

// BaselineRepository is the read surface the baseline loader needs. Forecast
// rows are scoped to the simulation horizon; actuals are returned in full so
// the loader can compute the trailing-average fallback.
type BaselineRepository interface {
	ListActiveProducts(ctx context.Context) ([]models.Product, error)
	ListSkuTiers(ctx context.Context) ([]models.SkuTier, error)
	ListForecastsByWeeks(ctx context.Context, weeks []string) ([]models.SalesForecast, error)
	ListActuals(ctx context.Context) ([]models.SalesActual, error)
	ListPendingShipments(ctx context.Context) ([]models.Shipment, error)
	ListPendingPOItems(ctx context.Context) ([]models.POItem, error)
	ListActiveCapitalConstraints(ctx context.Context) ([]models.CapitalConstraint, error)
}

// ActionLookupRepository is the read surface the action validator needs.
// Lookups return (nil, nil) when the row does not exist.
type ActionLookupRepository interface {
	GetActiveProduct(ctx context.Context, sku string) (*models.Product, error)
	GetPurchaseOrder(ctx context.Context, id string) (*models.PurchaseOrder, error)
	GetShipment(ctx context.Context, id string) (*models.Shipment, error)
}

type PresetRepository interface {
	ListScenarioPresets(ctx context.Context) ([]models.ScenarioPreset, error)
	GetScenarioPresetByName(ctx context.Context, name string) (*models.ScenarioPreset, error)
	UpsertScenarioPreset(ctx context.Context, item *models.ScenarioPreset) error
	DeleteScenarioPresetByName(ctx context.Context, name string) error
}

type Repository interface {
	BaselineRepository
	ActionLookupRepository
	PresetRepository
}
