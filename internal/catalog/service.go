package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/relistlabs/relist-backend/internal/ownership"
	"github.com/relistlabs/relist-backend/pkg/db/models"
	pkgerrors "github.com/relistlabs/relist-backend/pkg/errors"
	"github.com/relistlabs/relist-backend/pkg/pagination"
)

// Service defines the catalog behavior needed by the products controller.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductList, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]models.Product, error)
	CreateProduct(ctx context.Context, userID uuid.UUID, req CreateProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, userID, id uuid.UUID, req UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, userID, id uuid.UUID) error
}

type productRepository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Save(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, filters ListFilters, cursor *pagination.Cursor, limit int) ([]models.Product, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Product, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type categoryFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

type service struct {
	products   productRepository
	categories categoryFinder
}

// ServiceParams bundles the dependencies for the catalog service.
type ServiceParams struct {
	ProductRepo  productRepository
	CategoryRepo categoryFinder
}

// NewService constructs the catalog service.
func NewService(params ServiceParams) (Service, error) {
	if params.ProductRepo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	if params.CategoryRepo == nil {
		return nil, fmt.Errorf("category repository is required")
	}
	return &service{
		products:   params.ProductRepo,
		categories: params.CategoryRepo,
	}, nil
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductList, error) {
	if err := validateFilters(input.Filters); err != nil {
		return nil, err
	}

	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(input.Pagination.Limit)
	products, err := s.products.List(ctx, input.Filters, cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}

	next := ""
	if len(products) > limit {
		products = products[:limit]
		last := products[len(products)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return &ProductList{Products: products, NextCursor: next}, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.products.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return product, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]models.Product, error) {
	products, err := s.products.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list own products")
	}
	return products, nil
}

func (s *service) CreateProduct(ctx context.Context, userID uuid.UUID, req CreateProductRequest) (*models.Product, error) {
	if !req.Condition.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product condition")
	}
	if req.Price.IsNegative() || req.Price.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if err := s.requireCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	product, err := s.products.Create(ctx, req.toModel(userID))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return product, nil
}

func (s *service) UpdateProduct(ctx context.Context, userID, id uuid.UUID, req UpdateProductRequest) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if err := ownership.AssertOwner(product.UserID, userID, "product"); err != nil {
		return nil, err
	}
	if req.Condition != nil && !req.Condition.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product condition")
	}
	if req.Price != nil && (req.Price.IsNegative() || req.Price.IsZero()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if req.CategoryID != nil {
		if err := s.requireCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	req.apply(product)
	product.Category = nil
	updated, err := s.products.Save(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	return s.products.FindByID(ctx, updated.ID)
}

func (s *service) DeleteProduct(ctx context.Context, userID, id uuid.UUID) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if err := ownership.AssertOwner(product.UserID, userID, "product"); err != nil {
		return err
	}
	if err := s.products.Deactivate(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivate product")
	}
	return nil
}

func (s *service) requireCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "category does not exist")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check category")
	}
	return nil
}

func validateFilters(filters ListFilters) error {
	if filters.MinPrice != nil && filters.MinPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "minPrice cannot be negative")
	}
	if filters.MaxPrice != nil && filters.MaxPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "maxPrice cannot be negative")
	}
	if filters.MinPrice != nil && filters.MaxPrice != nil &&
		filters.MinPrice.GreaterThan(*filters.MaxPrice) {
		return pkgerrors.New(pkgerrors.CodeValidation, "minPrice cannot exceed maxPrice")
	}
	if filters.Condition != nil && !filters.Condition.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid condition filter")
	}
	return nil
}
