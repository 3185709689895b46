package catalog

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/relistlabs/relist-backend/pkg/db/models"
	"github.com/relistlabs/relist-backend/pkg/enums"
)

func mustCreateTestUser(t *testing.T, tx *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("rl_test_%s@example.com", uuid.NewString()),
		Username:     fmt.Sprintf("rl_test_%s", uuid.NewString()),
		PasswordHash: "hash",
	}
	if err := tx.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustCreateTestCategory(t *testing.T, tx *gorm.DB) *models.Category {
	t.Helper()
	category := &models.Category{
		ID:   uuid.New(),
		Name: fmt.Sprintf("Category %s", uuid.NewString()),
	}
	if err := tx.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, userID, categoryID uuid.UUID, mutate ...func(*models.Product)) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:          uuid.New(),
		Title:       "Vintage Road Bike",
		Description: "Well maintained steel frame",
		Price:       decimal.NewFromFloat(125.50),
		Quantity:    1,
		Condition:   enums.ProductConditionGood,
		IsActive:    true,
		Images:      []string{},
		CategoryID:  categoryID,
		UserID:      userID,
	}
	for _, fn := range mutate {
		fn(product)
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}
