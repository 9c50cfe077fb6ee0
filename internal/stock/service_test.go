package stock

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ferreteriahogar/inventory-backend/internal/inventories"
	"github.com/ferreteriahogar/inventory-backend/internal/products"
	"github.com/ferreteriahogar/inventory-backend/pkg/db/models"
	"github.com/ferreteriahogar/inventory-backend/pkg/enums"
	pkgerrors "github.com/ferreteriahogar/inventory-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:stock_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}, &models.Product{}, &models.Inventory{}, &models.StockItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func seedRefs(t *testing.T, conn *gorm.DB) {
	t.Helper()
	owner := models.User{Username: "warehouse", PasswordHash: "x", Role: enums.RoleAdmin}
	if err := conn.Create(&owner).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if err := conn.Create(&models.Inventory{Code: "INV001", Name: "Main", Status: "ACTIVE", OwnerID: owner.ID}).Error; err != nil {
		t.Fatalf("seed inventory: %v", err)
	}
	if err := conn.Create(&models.Product{Code: "HAM-01", Name: "Hammer"}).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := newTestDB(t)
	seedRefs(t, conn)
	svc, err := NewService(NewRepository(conn), inventories.NewRepository(conn), products.NewRepository(conn))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, conn
}

func TestCreateAccumulatesOnDuplicateKey(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, StockInput{InventoryCode: "INV001", ProductCode: "HAM-01", Stock: 10, MinStock: 2})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if first.Stock != 10 || first.MinStock != 2 {
		t.Fatalf("unexpected first row: %+v", first)
	}

	second, err := svc.Create(ctx, StockInput{InventoryCode: "INV001", ProductCode: "HAM-01", Stock: 5, MinStock: 4})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if second.Stock != 15 {
		t.Fatalf("expected accumulated stock 15, got %d", second.Stock)
	}
	if second.MinStock != 4 {
		t.Fatalf("expected min stock overwritten to 4, got %d", second.MinStock)
	}
}

func TestCreateRejectsMissingReferences(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, StockInput{InventoryCode: "NOPE", ProductCode: "HAM-01", Stock: 1})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown inventory, got %v", err)
	}

	_, err = svc.Create(ctx, StockInput{InventoryCode: "INV001", ProductCode: "NOPE", Stock: 1})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown product, got %v", err)
	}
}

func TestCreateRejectsNegativeQuantities(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, StockInput{InventoryCode: "INV001", ProductCode: "HAM-01", Stock: -1})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for negative stock, got %v", err)
	}

	_, err = svc.Create(ctx, StockInput{InventoryCode: "INV001", ProductCode: "HAM-01", Stock: 1, MinStock: -1})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for negative min stock, got %v", err)
	}
}

func TestAddByScanCreatesThenIncrements(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	item, err := svc.AddByScan(ctx, "INV001", "HAM-01", 3)
	if err != nil {
		t.Fatalf("first scan: %v", err)
	}
	if item.Stock != 3 || item.MinStock != 0 {
		t.Fatalf("expected stock=3 min=0 on first scan, got %+v", item)
	}

	item, err = svc.AddByScan(ctx, "INV001", "HAM-01", 2)
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if item.Stock != 5 {
		t.Fatalf("expected stock 5 after second scan, got %d", item.Stock)
	}
	if item.MinStock != 0 {
		t.Fatalf("scan must not touch min stock, got %d", item.MinStock)
	}
}

func TestAddByScanLeavesExistingMinStock(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, StockInput{InventoryCode: "INV001", ProductCode: "HAM-01", Stock: 10, MinStock: 7}); err != nil {
		t.Fatalf("seed row: %v", err)
	}

	item, err := svc.AddByScan(ctx, "INV001", "HAM-01", 1)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if item.Stock != 11 || item.MinStock != 7 {
		t.Fatalf("expected stock=11 min=7, got %+v", item)
	}
}

func TestUpdateNeverCreates(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, StockInput{InventoryCode: "INV001", ProductCode: "HAM-01", Stock: 9, MinStock: 1})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for missing row, got %v", err)
	}

	var count int64
	if err := conn.Model(&models.StockItem{}).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 0 {
		t.Fatalf("update must not insert, found %d rows", count)
	}
}

func TestUpdateOverwritesBothQuantities(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, StockInput{InventoryCode: "INV001", ProductCode: "HAM-01", Stock: 10, MinStock: 2}); err != nil {
		t.Fatalf("seed row: %v", err)
	}

	item, err := svc.Update(ctx, StockInput{InventoryCode: "INV001", ProductCode: "HAM-01", Stock: 4, MinStock: 8})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if item.Stock != 4 || item.MinStock != 8 {
		t.Fatalf("expected full overwrite, got %+v", item)
	}
}

func TestDeleteRemovesRow(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, StockInput{InventoryCode: "INV001", ProductCode: "HAM-01", Stock: 1}); err != nil {
		t.Fatalf("seed row: %v", err)
	}
	if err := svc.Delete(ctx, "INV001", "HAM-01"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, err := svc.Get(ctx, "INV001", "HAM-01")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}

	if err := svc.Delete(ctx, "INV001", "HAM-01"); err == nil {
		t.Fatalf("expected error deleting missing row")
	}
}

func TestListByInventoryPreloadsProducts(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	if err := conn.Create(&models.Product{Code: "SCR-01", Name: "Screwdriver"}).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if _, err := svc.Create(ctx, StockInput{InventoryCode: "INV001", ProductCode: "HAM-01", Stock: 10}); err != nil {
		t.Fatalf("seed row: %v", err)
	}
	if _, err := svc.Create(ctx, StockInput{InventoryCode: "INV001", ProductCode: "SCR-01", Stock: 5}); err != nil {
		t.Fatalf("seed row: %v", err)
	}

	items, err := svc.ListByInventory(ctx, "INV001")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(items))
	}
	if items[0].ProductName != "Hammer" || items[1].ProductName != "Screwdriver" {
		t.Fatalf("expected product names loaded, got %+v", items)
	}
}
