package inventories

import (
	"context"
	"fmt"
	"strings"

	"github.com/ferreteriahogar/inventory-backend/pkg/db/models"
	pkgerrors "github.com/ferreteriahogar/inventory-backend/pkg/errors"
)

// Service exposes inventory registry operations.
type Service interface {
	List(ctx context.Context) ([]InventoryDTO, error)
	Get(ctx context.Context, code string) (*InventoryDTO, error)
	GetFull(ctx context.Context, code string) (*FullView, error)
	Create(ctx context.Context, input CreateInventoryInput) (*InventoryDTO, error)
	Update(ctx context.Context, input UpdateInventoryInput) (*InventoryDTO, error)
	Delete(ctx context.Context, code string) error
}

type inventoryRepository interface {
	Create(ctx context.Context, inventory *models.Inventory) (*models.Inventory, error)
	FindByCode(ctx context.Context, code string) (*models.Inventory, error)
	List(ctx context.Context) ([]models.Inventory, error)
	Save(ctx context.Context, inventory *models.Inventory) error
	DeleteCascade(ctx context.Context, code string) error
}

type ownerResolver interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type stockReader interface {
	ListByInventory(ctx context.Context, inventoryCode string) ([]models.StockItem, error)
}

type service struct {
	repo  inventoryRepository
	users ownerResolver
	stock stockReader
}

// NewService constructs an inventory registry service.
func NewService(repo inventoryRepository, users ownerResolver, stock stockReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository is required")
	}
	if users == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if stock == nil {
		return nil, fmt.Errorf("stock repository is required")
	}
	return &service{repo: repo, users: users, stock: stock}, nil
}

func (s *service) List(ctx context.Context) ([]InventoryDTO, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list inventories")
	}
	return FromModels(list), nil
}

func (s *service) Get(ctx context.Context, code string) (*InventoryDTO, error) {
	inventory, err := s.find(ctx, code)
	if err != nil {
		return nil, err
	}
	return FromModel(inventory), nil
}

// GetFull assembles the read-only summary view: header fields, row count,
// stock sum, and the projected product list.
func (s *service) GetFull(ctx context.Context, code string) (*FullView, error) {
	inventory, err := s.find(ctx, code)
	if err != nil {
		return nil, err
	}

	items, err := s.stock.ListByInventory(ctx, code)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list stock items")
	}

	totalStock := 0
	lines := make([]ProductLine, 0, len(items))
	for _, item := range items {
		totalStock += item.Stock
		line := ProductLine{
			ProductCode: item.ProductCode,
			Stock:       item.Stock,
			MinStock:    item.MinStock,
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
		}
		lines = append(lines, line)
	}

	return &FullView{
		Inventory:  *FromModel(inventory),
		TotalItems: len(items),
		TotalStock: totalStock,
		Products:   lines,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInventoryInput) (*InventoryDTO, error) {
	if strings.TrimSpace(input.Code) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory code is required")
	}

	owner, err := s.validate(ctx, input.Name, input.Status, input.OwnerUsername)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByCode(ctx, input.Code)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check inventory code")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "an inventory with that code already exists")
	}

	inventory, err := s.repo.Create(ctx, &models.Inventory{
		Code:    strings.TrimSpace(input.Code),
		Name:    input.Name,
		Status:  input.Status,
		OwnerID: owner.ID,
		Owner:   owner,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create inventory")
	}
	return FromModel(inventory), nil
}

func (s *service) Update(ctx context.Context, input UpdateInventoryInput) (*InventoryDTO, error) {
	if strings.TrimSpace(input.Code) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory code is required for update")
	}

	inventory, err := s.find(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	owner, err := s.validate(ctx, input.Name, input.Status, input.OwnerUsername)
	if err != nil {
		return nil, err
	}

	inventory.Name = input.Name
	inventory.Status = input.Status
	inventory.OwnerID = owner.ID
	inventory.Owner = owner

	if err := s.repo.Save(ctx, inventory); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save inventory")
	}
	return FromModel(inventory), nil
}

func (s *service) Delete(ctx context.Context, code string) error {
	if _, err := s.find(ctx, code); err != nil {
		return err
	}
	if err := s.repo.DeleteCascade(ctx, code); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete inventory")
	}
	return nil
}

func (s *service) find(ctx context.Context, code string) (*models.Inventory, error) {
	inventory, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find inventory")
	}
	if inventory == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory not found")
	}
	return inventory, nil
}

// validate checks the required fields and resolves the owner reference into
// a live User, so persistence receives a resolved association rather than a
// dangling username.
func (s *service) validate(ctx context.Context, name, status, ownerUsername string) (*models.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory name is required")
	}
	if strings.TrimSpace(status) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory status is required")
	}
	if strings.TrimSpace(ownerUsername) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory owner is required")
	}

	owner, err := s.users.FindByUsername(ctx, ownerUsername)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve owner")
	}
	if owner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "the assigned owner does not exist")
	}
	return owner, nil
}
