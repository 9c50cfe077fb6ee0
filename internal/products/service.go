package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/ferreteriahogar/inventory-backend/pkg/db"
	"github.com/ferreteriahogar/inventory-backend/pkg/db/models"
	pkgerrors "github.com/ferreteriahogar/inventory-backend/pkg/errors"
)

// Service exposes product catalog operations.
type Service interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, code string) (*models.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*models.Product, error)
	Update(ctx context.Context, input UpdateProductInput) (*models.Product, error)
	Delete(ctx context.Context, code string) error
}

type productRepository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByCode(ctx context.Context, code string) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Save(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, code string) error
}

type service struct {
	repo productRepository
}

// NewService constructs a product catalog service.
func NewService(repo productRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.Product, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return list, nil
}

func (s *service) Get(ctx context.Context, code string) (*models.Product, error) {
	product, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find product")
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product code is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}

	existing, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check product code")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a product with that code already exists")
	}

	product, err := s.repo.Create(ctx, &models.Product{
		Code:        code,
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return product, nil
}

func (s *service) Update(ctx context.Context, input UpdateProductInput) (*models.Product, error) {
	if strings.TrimSpace(input.Code) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product code is required for update")
	}

	existing, err := s.Get(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Name) != "" {
		existing.Name = input.Name
	}
	if input.Description != nil {
		existing.Description = input.Description
	}

	if err := s.repo.Save(ctx, existing); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save product")
	}
	return existing, nil
}

func (s *service) Delete(ctx context.Context, code string) error {
	existing, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find product")
	}
	if existing == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err := s.repo.Delete(ctx, code); err != nil {
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product is referenced by stock records")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}
