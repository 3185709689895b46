package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/relistlabs/relist-backend/internal/repo"
	"github.com/relistlabs/relist-backend/pkg/db/models"
)

// Repository exposes cart line persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a cart repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Base.WithTx(tx)}
}

const upsertIncrementSQL = `
INSERT INTO cart_items (id, user_id, product_id, quantity, created_at, updated_at)
VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
ON CONFLICT (user_id, product_id)
DO UPDATE SET quantity = cart_items.quantity + excluded.quantity,
              updated_at = CURRENT_TIMESTAMP
`

// UpsertIncrement adds quantity to the (user, product) line, creating it when
// absent. The single statement keeps concurrent adds from losing increments.
func (r *Repository) UpsertIncrement(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	return r.DB(ctx).
		Exec(upsertIncrementSQL, uuid.New(), userID, productID, quantity).Error
}

// ListByUser returns the user's cart lines with products attached, oldest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB(ctx).
		Preload("Product").
		Preload("Product.Category").
		Preload("Product.Seller").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByUserAndProduct loads the single line for the (user, product) pair
// with the product joined, so callers can return the line right after an
// upsert.
func (r *Repository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB(ctx).
		Preload("Product").
		Preload("Product.Category").
		Preload("Product.Seller").
		First(&item, "user_id = ? AND product_id = ?", userID, productID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// SetQuantity overwrites the line quantity. Lines are addressed by their own
// id; scoping by user keeps one buyer from touching another's cart. It
// reports whether a line matched.
func (r *Repository) SetQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (bool, error) {
	result := r.DB(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ? AND id = ?", userID, itemID).
		UpdateColumn("quantity", quantity)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Remove deletes the line. It reports whether a line matched.
func (r *Repository) Remove(ctx context.Context, userID, itemID uuid.UUID) (bool, error) {
	result := r.DB(ctx).
		Where("user_id = ? AND id = ?", userID, itemID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Clear drops every line for the user. Clearing an empty cart is a no-op.
func (r *Repository) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.DB(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}
