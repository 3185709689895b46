package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/relistlabs/relist-backend/pkg/enums"
	"github.com/relistlabs/relist-backend/pkg/types"
)

// Order is created atomically with its items at checkout.
type Order struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID             `gorm:"column:user_id;type:uuid;not null;index" json:"userId"`
	ShippingAddress types.ShippingAddress `gorm:"column:shipping_address;serializer:json" json:"shippingAddress"`
	PaymentMethod   enums.PaymentMethod   `gorm:"column:payment_method;type:text;not null" json:"paymentMethod"`
	Total           decimal.Decimal       `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	Status          enums.OrderStatus     `gorm:"column:status;type:text;not null" json:"status"`
	Items           []OrderItem           `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
