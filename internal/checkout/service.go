package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/relistlabs/relist-backend/internal/cart"
	"github.com/relistlabs/relist-backend/internal/orders"
	"github.com/relistlabs/relist-backend/pkg/db/models"
	"github.com/relistlabs/relist-backend/pkg/enums"
	pkgerrors "github.com/relistlabs/relist-backend/pkg/errors"
	"github.com/relistlabs/relist-backend/pkg/types"
)

// CheckoutRequest is the payload for converting a cart into an order.
type CheckoutRequest struct {
	ShippingAddress types.ShippingAddress `json:"shippingAddress" validate:"required"`
	PaymentMethod   enums.PaymentMethod   `json:"paymentMethod" validate:"required"`
}

// Service converts the authenticated user's cart into an order.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID, req CheckoutRequest) (*models.Order, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type orderReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

type service struct {
	runner txRunner
	orders orderReader
}

// ServiceParams bundles the dependencies for the checkout service.
type ServiceParams struct {
	DB        txRunner
	OrderRepo orderReader
}

// NewService constructs the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	if params.OrderRepo == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	return &service{runner: params.DB, orders: params.OrderRepo}, nil
}

// Checkout snapshots cart lines into order items, then clears the cart. The
// whole conversion runs in one transaction; any failure leaves the cart
// untouched.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID, req CheckoutRequest) (*models.Order, error) {
	if req.ShippingAddress.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping address is required")
	}
	if !req.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}

	var orderID uuid.UUID
	err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := cart.NewRepository(tx)
		orderRepo := orders.NewRepository(tx)

		items, err := cartRepo.ListByUser(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart items")
		}
		if len(items) == 0 {
			return pkgerrors.New(pkgerrors.CodeInvalidOperation, "cart is empty")
		}

		total := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			product := item.Product
			if product == nil || !product.IsActive {
				return pkgerrors.New(pkgerrors.CodeInvalidOperation, "a product in your cart is no longer available")
			}
			line := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			total = total.Add(line)
			orderItems = append(orderItems, models.OrderItem{
				ID:        uuid.New(),
				ProductID: product.ID,
				Quantity:  item.Quantity,
				Price:     product.Price,
			})
		}

		order := &models.Order{
			ID:              uuid.New(),
			UserID:          userID,
			ShippingAddress: req.ShippingAddress,
			PaymentMethod:   req.PaymentMethod,
			Total:           total,
			Status:          enums.OrderStatusPending,
			Items:           orderItems,
		}
		if _, err := orderRepo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}

		if err := cartRepo.Clear(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checkout")
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	return order, nil
}
