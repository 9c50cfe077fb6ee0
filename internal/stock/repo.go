package stock

import (
	"context"
	"errors"

	"github.com/ferreteriahogar/inventory-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var conflictKey = []clause.Column{
	{Name: "inventory_code"},
	{Name: "product_code"},
}

// Repository handles stock item persistence. The accumulate paths are single
// conditional writes (INSERT ... ON CONFLICT DO UPDATE) so two concurrent
// receipts for the same composite key can never lose an increment.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to stock operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByInventory returns all stock rows for the inventory, products
// preloaded. An unknown inventory code yields an empty list, not an error.
func (r *Repository) ListByInventory(ctx context.Context, inventoryCode string) ([]models.StockItem, error) {
	var items []models.StockItem
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("inventory_code = ?", inventoryCode).
		Order("product_code").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Find loads one row by composite key; absence is (nil, nil).
func (r *Repository) Find(ctx context.Context, inventoryCode, productCode string) (*models.StockItem, error) {
	var item models.StockItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("inventory_code = ? AND product_code = ?", inventoryCode, productCode).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpsertAccumulate inserts the row or, when the composite key already exists,
// adds the incoming stock to the stored value and overwrites min_stock.
func (r *Repository) UpsertAccumulate(ctx context.Context, item *models.StockItem) error {
	return r.db.WithContext(ctx).
		Omit("Inventory", "Product").
		Clauses(clause.OnConflict{
			Columns: conflictKey,
			DoUpdates: clause.Assignments(map[string]any{
				"stock":     gorm.Expr("stock + ?", item.Stock),
				"min_stock": item.MinStock,
			}),
		}).
		Create(item).Error
}

// UpsertIncrement inserts a fresh row with stock=qty and min_stock=0, or adds
// qty to an existing row leaving min_stock untouched.
func (r *Repository) UpsertIncrement(ctx context.Context, inventoryCode, productCode string, qty int) error {
	item := &models.StockItem{
		InventoryCode: inventoryCode,
		ProductCode:   productCode,
		Stock:         qty,
		MinStock:      0,
	}
	return r.db.WithContext(ctx).
		Omit("Inventory", "Product").
		Clauses(clause.OnConflict{
			Columns: conflictKey,
			DoUpdates: clause.Assignments(map[string]any{
				"stock": gorm.Expr("stock + ?", qty),
			}),
		}).
		Create(item).Error
}

// Save overwrites stock and min_stock for an existing row.
func (r *Repository) Save(ctx context.Context, item *models.StockItem) error {
	return r.db.WithContext(ctx).
		Model(&models.StockItem{}).
		Where("inventory_code = ? AND product_code = ?", item.InventoryCode, item.ProductCode).
		Updates(map[string]any{
			"stock":     item.Stock,
			"min_stock": item.MinStock,
		}).Error
}

// Delete removes one row by composite key.
func (r *Repository) Delete(ctx context.Context, inventoryCode, productCode string) error {
	return r.db.WithContext(ctx).
		Where("inventory_code = ? AND product_code = ?", inventoryCode, productCode).
		Delete(&models.StockItem{}).Error
}
