package models

import (
	"time"

	"github.com/ferreteriahogar/inventory-backend/pkg/enums"
)

// User represents the canonical identity entity.
type User struct {
	ID           uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string      `gorm:"type:text;not null;uniqueIndex" json:"username"`
	PasswordHash string      `gorm:"column:password_hash;not null" json:"-"`
	Role         enums.Role  `gorm:"type:text;not null" json:"role"`
	Inventories  []Inventory `gorm:"foreignKey:OwnerID" json:"-"`
	CreatedAt    time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
