package models

import "github.com/google/uuid"

// SellerSummary is the public slice of a user attached to catalog and cart
// reads. It maps onto the users table but only selects identity fields, so
// email and password hash never ride along with a product payload.
type SellerSummary struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Username string    `gorm:"column:username" json:"username"`
}

// TableName points the summary at the users table.
func (SellerSummary) TableName() string {
	return "users"
}
