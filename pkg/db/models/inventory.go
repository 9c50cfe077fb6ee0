package models

import "time"

// Inventory groups stock items under an owning user.
type Inventory struct {
	Code      string      `gorm:"primaryKey;type:text" json:"code"`
	Name      string      `gorm:"type:text;not null" json:"name"`
	Status    string      `gorm:"type:text;not null" json:"status"`
	OwnerID   uint        `gorm:"column:owner_id;not null" json:"owner_id"`
	Owner     *User       `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Items     []StockItem `gorm:"foreignKey:InventoryCode;references:Code" json:"-"`
	CreatedAt time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
