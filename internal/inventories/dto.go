package inventories

import "github.com/ferreteriahogar/inventory-backend/pkg/db/models"

// CreateInventoryInput is the request shape: it carries a raw owner
// reference (username) that validation resolves into a User before the
// domain entity is persisted.
type CreateInventoryInput struct {
	Code          string `json:"code" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Status        string `json:"status" validate:"required"`
	OwnerUsername string `json:"owner_username" validate:"required"`
}

// UpdateInventoryInput mirrors the create shape; the code addresses the
// existing row.
type UpdateInventoryInput struct {
	Code          string `json:"code" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Status        string `json:"status" validate:"required"`
	OwnerUsername string `json:"owner_username" validate:"required"`
}

// InventoryDTO is the transport shape exposing the owner by username.
type InventoryDTO struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Status        string `json:"status"`
	OwnerUsername string `json:"owner_username"`
}

// ProductLine is one stock row projected into the summary view.
type ProductLine struct {
	ProductCode string `json:"product_code"`
	ProductName string `json:"product_name"`
	Stock       int    `json:"stock"`
	MinStock    int    `json:"min_stock"`
}

// FullView is the derived inventory summary: header fields plus aggregate
// counts and the flattened product list. It is computed on demand, never
// persisted.
type FullView struct {
	Inventory  InventoryDTO  `json:"inventory"`
	TotalItems int           `json:"total_items"`
	TotalStock int           `json:"total_stock"`
	Products   []ProductLine `json:"products"`
}

func FromModel(inv *models.Inventory) *InventoryDTO {
	if inv == nil {
		return nil
	}
	dto := &InventoryDTO{
		Code:   inv.Code,
		Name:   inv.Name,
		Status: inv.Status,
	}
	if inv.Owner != nil {
		dto.OwnerUsername = inv.Owner.Username
	}
	return dto
}

func FromModels(list []models.Inventory) []InventoryDTO {
	out := make([]InventoryDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}
