package stock

import (
	"context"
	"fmt"
	"strings"

	"github.com/ferreteriahogar/inventory-backend/pkg/db/models"
	pkgerrors "github.com/ferreteriahogar/inventory-backend/pkg/errors"
)

// Service exposes the per-inventory stock ledger operations.
type Service interface {
	ListByInventory(ctx context.Context, inventoryCode string) ([]StockItemDTO, error)
	Get(ctx context.Context, inventoryCode, productCode string) (*StockItemDTO, error)
	Create(ctx context.Context, input StockInput) (*StockItemDTO, error)
	AddByScan(ctx context.Context, inventoryCode, productCode string, qty int) (*StockItemDTO, error)
	Update(ctx context.Context, input StockInput) (*StockItemDTO, error)
	Delete(ctx context.Context, inventoryCode, productCode string) error
}

type stockRepository interface {
	ListByInventory(ctx context.Context, inventoryCode string) ([]models.StockItem, error)
	Find(ctx context.Context, inventoryCode, productCode string) (*models.StockItem, error)
	UpsertAccumulate(ctx context.Context, item *models.StockItem) error
	UpsertIncrement(ctx context.Context, inventoryCode, productCode string, qty int) error
	Save(ctx context.Context, item *models.StockItem) error
	Delete(ctx context.Context, inventoryCode, productCode string) error
}

type inventoryResolver interface {
	FindByCode(ctx context.Context, code string) (*models.Inventory, error)
}

type productResolver interface {
	FindByCode(ctx context.Context, code string) (*models.Product, error)
}

type service struct {
	repo        stockRepository
	inventories inventoryResolver
	products    productResolver
}

// NewService constructs a stock ledger service.
func NewService(repo stockRepository, inventories inventoryResolver, products productResolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stock repository is required")
	}
	if inventories == nil {
		return nil, fmt.Errorf("inventory repository is required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	return &service{repo: repo, inventories: inventories, products: products}, nil
}

func (s *service) ListByInventory(ctx context.Context, inventoryCode string) ([]StockItemDTO, error) {
	items, err := s.repo.ListByInventory(ctx, inventoryCode)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list stock")
	}
	return FromModels(items), nil
}

func (s *service) Get(ctx context.Context, inventoryCode, productCode string) (*StockItemDTO, error) {
	item, err := s.find(ctx, inventoryCode, productCode)
	if err != nil {
		return nil, err
	}
	dto := FromModel(item)
	return &dto, nil
}

// Create records a receipt. When the (inventory, product) pair already has a
// row the incoming stock is added to the stored quantity and min_stock is
// replaced; otherwise a new row is inserted. Either way the write is a single
// conditional upsert so concurrent receipts cannot clobber each other.
func (s *service) Create(ctx context.Context, input StockInput) (*StockItemDTO, error) {
	item, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpsertAccumulate(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save stock")
	}
	return s.Get(ctx, input.InventoryCode, input.ProductCode)
}

// AddByScan increments the stored stock by qty, creating the row with
// min_stock 0 when the pair is new. Existing min_stock is never touched.
func (s *service) AddByScan(ctx context.Context, inventoryCode, productCode string, qty int) (*StockItemDTO, error) {
	if err := s.resolveRefs(ctx, inventoryCode, productCode, nil); err != nil {
		return nil, err
	}
	if qty < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}
	if err := s.repo.UpsertIncrement(ctx, inventoryCode, productCode, qty); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "increment stock")
	}
	return s.Get(ctx, inventoryCode, productCode)
}

// Update replaces stock and min_stock on an existing row. It never creates:
// a missing pair is reported, not inserted.
func (s *service) Update(ctx context.Context, input StockInput) (*StockItemDTO, error) {
	item, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.Find(ctx, input.InventoryCode, input.ProductCode)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load stock")
	}
	if existing == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "stock record not found")
	}
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save stock")
	}
	return s.Get(ctx, input.InventoryCode, input.ProductCode)
}

func (s *service) Delete(ctx context.Context, inventoryCode, productCode string) error {
	if _, err := s.find(ctx, inventoryCode, productCode); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, inventoryCode, productCode); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete stock")
	}
	return nil
}

func (s *service) find(ctx context.Context, inventoryCode, productCode string) (*models.StockItem, error) {
	if strings.TrimSpace(inventoryCode) == "" || strings.TrimSpace(productCode) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory code and product code are required")
	}
	item, err := s.repo.Find(ctx, inventoryCode, productCode)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load stock")
	}
	if item == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "stock record not found")
	}
	return item, nil
}

// validate checks the request shape and resolves both referenced entities,
// returning a row ready to persist.
func (s *service) validate(ctx context.Context, input StockInput) (*models.StockItem, error) {
	if strings.TrimSpace(input.InventoryCode) == "" || strings.TrimSpace(input.ProductCode) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory code and product code are required")
	}
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
	}
	if input.MinStock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minimum stock must not be negative")
	}
	item := &models.StockItem{
		InventoryCode: input.InventoryCode,
		ProductCode:   input.ProductCode,
		Stock:         input.Stock,
		MinStock:      input.MinStock,
	}
	if err := s.resolveRefs(ctx, input.InventoryCode, input.ProductCode, item); err != nil {
		return nil, err
	}
	return item, nil
}

// resolveRefs verifies both sides of the composite key exist. When item is
// non-nil the loaded entities are attached to it.
func (s *service) resolveRefs(ctx context.Context, inventoryCode, productCode string, item *models.StockItem) error {
	inventory, err := s.inventories.FindByCode(ctx, inventoryCode)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load inventory")
	}
	if inventory == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "the referenced inventory does not exist")
	}
	product, err := s.products.FindByCode(ctx, productCode)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if product == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "the referenced product does not exist")
	}
	if item != nil {
		item.Inventory = inventory
		item.Product = product
	}
	return nil
}
