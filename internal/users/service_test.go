package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ferreteriahogar/inventory-backend/pkg/config"
	"github.com/ferreteriahogar/inventory-backend/pkg/db/models"
	"github.com/ferreteriahogar/inventory-backend/pkg/enums"
	pkgerrors "github.com/ferreteriahogar/inventory-backend/pkg/errors"
	"github.com/ferreteriahogar/inventory-backend/pkg/security"
)

// small argon parameters keep the hashing fast in tests
func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newTestService(t *testing.T) Service {
	t.Helper()
	dsn := "file:users_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	svc, err := NewService(NewRepository(conn), testPasswordConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateRoundTripsAndUppercasesRole(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateUserInput{Username: "maria", Password: "secret123", Role: "admin"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Role != enums.RoleAdmin {
		t.Fatalf("expected role normalized to ADMIN, got %q", created.Role)
	}

	got, err := svc.Get(ctx, "maria")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Username != "maria" || got.Role != enums.RoleAdmin {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestCreateRejectsInvalidRoleCaseInsensitively(t *testing.T) {
	svc := newTestService(t)

	for _, role := range []string{"SUPERADMIN", "root", "Manager", ""} {
		_, err := svc.Create(context.Background(), CreateUserInput{Username: "x" + role, Password: "secret123", Role: role})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("role %q: expected validation error, got %v", role, err)
		}
	}
}

func TestCreateRejectsDuplicateUsername(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateUserInput{Username: "maria", Password: "secret123", Role: "USER"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(ctx, CreateUserInput{Username: "maria", Password: "other456", Role: "ADMIN"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for duplicate username, got %v", err)
	}
}

func TestUpdateAppliesPartialMutations(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateUserInput{Username: "maria", Password: "secret123", Role: "USER"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	role := "uadmin"
	password := "rotated456"
	updated, err := svc.Update(ctx, "maria", UpdateUserInput{Password: &password, Role: &role})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Role != enums.RoleUserAdmin {
		t.Fatalf("expected role UADMIN, got %q", updated.Role)
	}
	if updated.Username != "maria" {
		t.Fatalf("username must be unchanged, got %q", updated.Username)
	}
}

func TestUpdatePasswordIsVerifiable(t *testing.T) {
	dsn := "file:users_pw_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo := NewRepository(conn)
	svc, err := NewService(repo, testPasswordConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateUserInput{Username: "maria", Password: "secret123", Role: "USER"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	password := "rotated456"
	if _, err := svc.Update(ctx, "maria", UpdateUserInput{Password: &password}); err != nil {
		t.Fatalf("update: %v", err)
	}

	stored, err := repo.FindByUsername(ctx, "maria")
	if err != nil || stored == nil {
		t.Fatalf("load user: %v", err)
	}
	ok, err := security.VerifyPassword("rotated456", stored.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("expected rotated password to verify, ok=%v err=%v", ok, err)
	}
}

func TestDeleteRemovesUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateUserInput{Username: "maria", Password: "secret123", Role: "USER"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, "maria"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, err := svc.Get(ctx, "maria")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}

	if err := svc.Delete(ctx, "maria"); err == nil {
		t.Fatalf("expected error deleting missing user")
	}
}
