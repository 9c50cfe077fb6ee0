package inventories

import (
	"context"
	"errors"

	"github.com/ferreteriahogar/inventory-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository handles inventory persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to inventory operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new inventory row.
func (r *Repository) Create(ctx context.Context, inventory *models.Inventory) (*models.Inventory, error) {
	if err := r.db.WithContext(ctx).Create(inventory).Error; err != nil {
		return nil, err
	}
	return inventory, nil
}

// FindByCode loads an inventory with its owner; absence is (nil, nil).
func (r *Repository) FindByCode(ctx context.Context, code string) (*models.Inventory, error) {
	var inventory models.Inventory
	err := r.db.WithContext(ctx).Preload("Owner").First(&inventory, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inventory, nil
}

// List returns all inventories with their owners, ordered by code.
func (r *Repository) List(ctx context.Context) ([]models.Inventory, error) {
	var list []models.Inventory
	if err := r.db.WithContext(ctx).Preload("Owner").Order("code").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Save persists mutations to an existing inventory.
func (r *Repository) Save(ctx context.Context, inventory *models.Inventory) error {
	return r.db.WithContext(ctx).Save(inventory).Error
}

// DeleteCascade removes the inventory and its stock rows in one transaction.
// The two-step delete stands in for native ON DELETE CASCADE semantics.
func (r *Repository) DeleteCascade(ctx context.Context, code string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("inventory_code = ?", code).Delete(&models.StockItem{}).Error; err != nil {
			return err
		}
		return tx.Where("code = ?", code).Delete(&models.Inventory{}).Error
	})
}
