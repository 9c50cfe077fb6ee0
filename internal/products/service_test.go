package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ferreteriahogar/inventory-backend/pkg/db/models"
	pkgerrors "github.com/ferreteriahogar/inventory-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	dsn := "file:products_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	svc, err := NewService(NewRepository(conn))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, conn
}

func TestCreateAndGetProduct(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	desc := "16oz claw hammer"
	created, err := svc.Create(ctx, CreateProductInput{Code: "HAM-01", Name: "Hammer", Description: &desc})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Code != "HAM-01" || created.Name != "Hammer" {
		t.Fatalf("unexpected product: %+v", created)
	}

	got, err := svc.Get(ctx, "HAM-01")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Description == nil || *got.Description != desc {
		t.Fatalf("expected description round trip, got %+v", got.Description)
	}
}

func TestCreateRejectsDuplicateCode(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateProductInput{Code: "HAM-01", Name: "Hammer"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.Create(ctx, CreateProductInput{Code: "HAM-01", Name: "Other"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for duplicate code, got %v", err)
	}
}

func TestUpdateMergesPartialFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	desc := "16oz claw hammer"
	if _, err := svc.Create(ctx, CreateProductInput{Code: "HAM-01", Name: "Hammer", Description: &desc}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// empty name keeps the stored one, nil description keeps the stored one
	updated, err := svc.Update(ctx, UpdateProductInput{Code: "HAM-01"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Hammer" || updated.Description == nil || *updated.Description != desc {
		t.Fatalf("expected no-op merge, got %+v", updated)
	}

	next := "framing hammer"
	updated, err = svc.Update(ctx, UpdateProductInput{Code: "HAM-01", Name: "Hammer XL", Description: &next})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Hammer XL" || *updated.Description != next {
		t.Fatalf("expected merged update, got %+v", updated)
	}
}

func TestUpdateMissingProductFails(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Update(context.Background(), UpdateProductInput{Code: "NOPE", Name: "X"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteProduct(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateProductInput{Code: "HAM-01", Name: "Hammer"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, "HAM-01"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, err := svc.Get(ctx, "HAM-01")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
