package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/relistlabs/relist-backend/api/middleware"
	cartsvc "github.com/relistlabs/relist-backend/internal/cart"
	"github.com/relistlabs/relist-backend/pkg/db/models"
	pkgerrors "github.com/relistlabs/relist-backend/pkg/errors"
)

type stubCartService struct {
	view *cartsvc.View
	item *models.CartItem
	err  error

	gotQuantity  int
	gotProductID uuid.UUID
	gotItemID    uuid.UUID
}

func (s *stubCartService) AddItem(ctx context.Context, userID uuid.UUID, req cartsvc.AddItemRequest) (*models.CartItem, error) {
	s.gotQuantity = req.Quantity
	s.gotProductID = req.ProductID
	return s.item, s.err
}

func (s *stubCartService) GetCart(ctx context.Context, userID uuid.UUID) (*cartsvc.View, error) {
	return s.view, s.err
}

func (s *stubCartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req cartsvc.UpdateItemRequest) (*cartsvc.View, error) {
	s.gotItemID = itemID
	s.gotQuantity = req.Quantity
	return s.view, s.err
}

func (s *stubCartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*cartsvc.View, error) {
	s.gotItemID = itemID
	return s.view, s.err
}

func (s *stubCartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.err
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestGetCartSuccess(t *testing.T) {
	view := &cartsvc.View{
		Items:     nil,
		Total:     decimal.RequireFromString("42.50"),
		ItemCount: 0,
	}
	handler := GetCart(&stubCartService{view: view}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/cart", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data cartsvc.View `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.Total.Equal(view.Total) {
		t.Fatalf("unexpected total: %s", envelope.Data.Total)
	}
}

func TestGetCartMissingUserContext(t *testing.T) {
	handler := GetCart(&stubCartService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAddCartItemCreated(t *testing.T) {
	productID := uuid.New()
	itemID := uuid.New()
	svc := &stubCartService{item: &models.CartItem{ID: itemID, ProductID: productID, Quantity: 3}}
	handler := AddCartItem(svc, nil)

	body := `{"productId":"` + productID.String() + `","quantity":3}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/cart", body))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.gotProductID != productID {
		t.Fatalf("unexpected product id: %s", svc.gotProductID)
	}
	if svc.gotQuantity != 3 {
		t.Fatalf("unexpected quantity: %d", svc.gotQuantity)
	}

	// The 201 body carries the resulting cart line, not the whole cart.
	var envelope struct {
		Data models.CartItem `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != itemID {
		t.Fatalf("unexpected item id: %s", envelope.Data.ID)
	}
	if envelope.Data.Quantity != 3 {
		t.Fatalf("unexpected quantity: %d", envelope.Data.Quantity)
	}
}

func TestAddCartItemOwnProduct(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeInvalidOperation, "cannot add your own product to cart")}
	handler := AddCartItem(svc, nil)

	body := `{"productId":"` + uuid.NewString() + `"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/cart", body))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "cannot add your own product to cart") {
		t.Fatalf("expected operation message, got %s", resp.Body.String())
	}
}

func TestUpdateCartItemInvalidPathID(t *testing.T) {
	handler := UpdateCartItem(&stubCartService{}, nil)

	req := authedRequest(http.MethodPut, "/api/cart/not-a-uuid", `{"quantity":2}`)
	req = withURLParam(req, "itemId", "not-a-uuid")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestRemoveCartItemNotFound(t *testing.T) {
	itemID := uuid.New()
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")}
	handler := RemoveCartItem(svc, nil)

	req := authedRequest(http.MethodDelete, "/api/cart/"+itemID.String(), "")
	req = withURLParam(req, "itemId", itemID.String())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	if svc.gotItemID != itemID {
		t.Fatalf("unexpected item id: %s", svc.gotItemID)
	}
}

func TestClearCartSuccess(t *testing.T) {
	handler := ClearCart(&stubCartService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodDelete, "/api/cart", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
