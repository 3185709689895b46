package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/relistlabs/relist-backend/pkg/db/models"
)

// AddItemRequest is the payload for putting a product into the cart.
// Quantity defaults to 1 when omitted.
type AddItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"omitempty,min=1"`
}

// UpdateItemRequest changes the absolute quantity of a cart line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// View is the aggregate cart shape returned to clients. ItemCount counts
// distinct lines, not summed quantities.
type View struct {
	Items     []models.CartItem `json:"items"`
	Total     decimal.Decimal   `json:"total"`
	ItemCount int               `json:"itemCount"`
}
