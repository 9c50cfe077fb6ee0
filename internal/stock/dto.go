package stock

import "github.com/ferreteriahogar/inventory-backend/pkg/db/models"

// StockInput is the create/update request body for a stock row.
type StockInput struct {
	InventoryCode string `json:"inventory_code" validate:"required"`
	ProductCode   string `json:"product_code" validate:"required"`
	Stock         int    `json:"stock" validate:"gte=0"`
	MinStock      int    `json:"min_stock" validate:"gte=0"`
}

// StockItemDTO is the API projection of a stock row.
type StockItemDTO struct {
	InventoryCode string `json:"inventory_code"`
	ProductCode   string `json:"product_code"`
	ProductName   string `json:"product_name,omitempty"`
	Stock         int    `json:"stock"`
	MinStock      int    `json:"min_stock"`
}

// FromModel maps a persisted row to its DTO, carrying the product name when
// the association was preloaded.
func FromModel(m *models.StockItem) StockItemDTO {
	dto := StockItemDTO{
		InventoryCode: m.InventoryCode,
		ProductCode:   m.ProductCode,
		Stock:         m.Stock,
		MinStock:      m.MinStock,
	}
	if m.Product != nil {
		dto.ProductName = m.Product.Name
	}
	return dto
}

// FromModels maps a slice of rows.
func FromModels(ms []models.StockItem) []StockItemDTO {
	dtos := make([]StockItemDTO, 0, len(ms))
	for i := range ms {
		dtos = append(dtos, FromModel(&ms[i]))
	}
	return dtos
}
