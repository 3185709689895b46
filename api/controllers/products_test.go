package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/relistlabs/relist-backend/internal/catalog"
	"github.com/relistlabs/relist-backend/pkg/db/models"
	"github.com/relistlabs/relist-backend/pkg/enums"
)

type stubCatalogService struct {
	page    *catalog.ProductList
	product *models.Product
	err     error

	gotInput catalog.ListProductsInput
}

func (s *stubCatalogService) ListProducts(ctx context.Context, input catalog.ListProductsInput) (*catalog.ProductList, error) {
	s.gotInput = input
	return s.page, s.err
}

func (s *stubCatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.product, s.err
}

func (s *stubCatalogService) ListMine(ctx context.Context, userID uuid.UUID) ([]models.Product, error) {
	return nil, s.err
}

func (s *stubCatalogService) CreateProduct(ctx context.Context, userID uuid.UUID, req catalog.CreateProductRequest) (*models.Product, error) {
	return s.product, s.err
}

func (s *stubCatalogService) UpdateProduct(ctx context.Context, userID, id uuid.UUID, req catalog.UpdateProductRequest) (*models.Product, error) {
	return s.product, s.err
}

func (s *stubCatalogService) DeleteProduct(ctx context.Context, userID, id uuid.UUID) error {
	return s.err
}

func TestListProductsParsesFilters(t *testing.T) {
	categoryID := uuid.New()
	svc := &stubCatalogService{page: &catalog.ProductList{}}
	handler := ListProducts(svc, nil)

	target := "/api/products?category=" + categoryID.String() + "&condition=good&search=canon&minPrice=10.50&limit=5"
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, target, nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	filters := svc.gotInput.Filters
	if filters.CategoryID == nil || *filters.CategoryID != categoryID {
		t.Fatalf("category filter not parsed: %v", filters.CategoryID)
	}
	if filters.Condition == nil || *filters.Condition != enums.ProductConditionGood {
		t.Fatalf("condition filter not parsed: %v", filters.Condition)
	}
	if filters.Search != "canon" {
		t.Fatalf("unexpected search: %q", filters.Search)
	}
	if filters.MinPrice == nil || filters.MinPrice.String() != "10.5" {
		t.Fatalf("min price not parsed: %v", filters.MinPrice)
	}
	if svc.gotInput.Pagination.Limit != 5 {
		t.Fatalf("unexpected limit: %d", svc.gotInput.Pagination.Limit)
	}
}

func TestListProductsRejectsInvalidCondition(t *testing.T) {
	handler := ListProducts(&stubCatalogService{page: &catalog.ProductList{}}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/products?condition=shiny", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetProductInvalidID(t *testing.T) {
	handler := GetProduct(&stubCatalogService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products/oops", nil)
	req = withURLParam(req, "id", "oops")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCreateProductJSON(t *testing.T) {
	product := &models.Product{ID: uuid.New(), Title: "Vintage camera"}
	svc := &stubCatalogService{product: product}
	handler := CreateProduct(svc, nil, nil)

	body := `{"title":"Vintage camera","description":"works fine","price":"120.00","condition":"good","categoryId":"` + uuid.NewString() + `"}`
	req := authedRequest(http.MethodPost, "/api/products", body)
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCreateProductRequiresAuth(t *testing.T) {
	handler := CreateProduct(&stubCatalogService{}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
