package gormrepository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stocksim/internal/models"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// --- baseline ---------------------------------------------------------------

func (s *Store) ListActiveProducts(ctx context.Context) ([]models.Product, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Product
	if err := s.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("is_active = ?", true).
		Order("sku asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListSkuTiers(ctx context.Context) ([]models.SkuTier, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.SkuTier
	if err := s.db.WithContext(ctx).
		Model(&models.SkuTier{}).
		Where("is_active = ?", true).
		Order("display_order asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListForecastsByWeeks(ctx context.Context, weeks []string) ([]models.SalesForecast, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	if len(weeks) == 0 {
		return nil, nil
	}
	var items []models.SalesForecast
	if err := s.db.WithContext(ctx).
		Model(&models.SalesForecast{}).
		Where("week_iso IN ?", weeks).
		Order("sku asc, week_iso asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListActuals(ctx context.Context) ([]models.SalesActual, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.SalesActual
	if err := s.db.WithContext(ctx).
		Model(&models.SalesActual{}).
		Order("sku asc, week_iso asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListPendingShipments returns shipments that have not physically arrived yet.
func (s *Store) ListPendingShipments(ctx context.Context) ([]models.Shipment, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Shipment
	if err := s.db.WithContext(ctx).
		Model(&models.Shipment{}).
		Where("actual_arrival_date IS NULL").
		Order("arrival_week asc, id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListPendingPOItems returns PO lines with undelivered quantity on orders
// that are still open.
func (s *Store) ListPendingPOItems(ctx context.Context) ([]models.POItem, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.POItem
	if err := s.db.WithContext(ctx).
		Model(&models.POItem{}).
		Joins("JOIN purchase_orders ON purchase_orders.id = po_items.po_id").
		Where("po_items.ordered_qty > po_items.delivered_qty").
		Where("purchase_orders.status NOT IN ?", []string{models.POStatusDelivered, models.POStatusCancelled}).
		Order("po_items.id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListActiveCapitalConstraints(ctx context.Context) ([]models.CapitalConstraint, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.CapitalConstraint
	if err := s.db.WithContext(ctx).
		Model(&models.CapitalConstraint{}).
		Where("is_active = ?", true).
		Order("period_key asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- action validation lookups ----------------------------------------------

func (s *Store) GetActiveProduct(ctx context.Context, sku string) (*models.Product, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, nil
	}
	var item models.Product
	err := s.db.WithContext(ctx).
		Where("sku = ?", sku).
		Where("is_active = ?", true).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetPurchaseOrder(ctx context.Context, id string) (*models.PurchaseOrder, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	var item models.PurchaseOrder
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetShipment(ctx context.Context, id string) (*models.Shipment, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	var item models.Shipment
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// --- scenario presets -------------------------------------------------------

func (s *Store) ListScenarioPresets(ctx context.Context) ([]models.ScenarioPreset, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.ScenarioPreset
	if err := s.db.WithContext(ctx).
		Model(&models.ScenarioPreset{}).
		Order("name asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) GetScenarioPresetByName(ctx context.Context, name string) (*models.ScenarioPreset, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	var item models.ScenarioPreset
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpsertScenarioPreset(ctx context.Context, item *models.ScenarioPreset) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.Name) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"description",
			"params",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) DeleteScenarioPresetByName(ctx context.Context, name string) error {
	if s == nil || s.db == nil {
		return nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return s.db.WithContext(ctx).Where("name = ?", name).Delete(&models.ScenarioPreset{}).Error
}
