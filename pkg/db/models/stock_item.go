package models

import "time"

// StockItem is the Inventory x Product relation, keyed by the composite
// (inventory_code, product_code) pair. Both key parts are immutable once
// the row exists.
type StockItem struct {
	InventoryCode string     `gorm:"primaryKey;type:text;column:inventory_code" json:"inventory_code"`
	ProductCode   string     `gorm:"primaryKey;type:text;column:product_code" json:"product_code"`
	Stock         int        `gorm:"not null;default:0" json:"stock"`
	MinStock      int        `gorm:"column:min_stock;not null;default:0" json:"min_stock"`
	Inventory     *Inventory `gorm:"foreignKey:InventoryCode;references:Code" json:"-"`
	Product       *Product   `gorm:"foreignKey:ProductCode;references:Code" json:"-"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
