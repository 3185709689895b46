package orders

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/relistlabs/relist-backend/pkg/db/models"
	"github.com/relistlabs/relist-backend/pkg/enums"
	pkgerrors "github.com/relistlabs/relist-backend/pkg/errors"
	"github.com/relistlabs/relist-backend/pkg/types"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return conn
}

func mustCreateUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("rl_test_%s@example.com", uuid.NewString()),
		Username:     fmt.Sprintf("rl_test_%s", uuid.NewString()),
		PasswordHash: "hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func mustCreateOrder(t *testing.T, db *gorm.DB, userID uuid.UUID) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:     uuid.New(),
		UserID: userID,
		ShippingAddress: types.ShippingAddress{
			FullName: "Ada Buyer",
			Address:  "12 Canal Street",
			City:     "Utrecht",
			State:    "UT",
			ZipCode:  "3511",
			Phone:    "+31600000000",
		},
		PaymentMethod: enums.PaymentMethodCashOnDelivery,
		Total:         decimal.NewFromInt(80),
		Status:        enums.OrderStatusPending,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestServiceListMineReturnsOnlyOwnOrders(t *testing.T) {
	db := openTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	ctx := context.Background()

	buyer := mustCreateUser(t, db)
	other := mustCreateUser(t, db)
	mine := mustCreateOrder(t, db, buyer.ID)
	mustCreateOrder(t, db, other.ID)

	orders, err := svc.ListMine(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, mine.ID, orders[0].ID)
}

func TestServiceGetEnforcesOwnership(t *testing.T) {
	db := openTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	ctx := context.Background()

	buyer := mustCreateUser(t, db)
	stranger := mustCreateUser(t, db)
	order := mustCreateOrder(t, db, buyer.ID)

	loaded, err := svc.Get(ctx, buyer.ID, order.ID)
	require.NoError(t, err)
	require.Equal(t, order.ID, loaded.ID)

	_, err = svc.Get(ctx, stranger.ID, order.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	_, err = svc.Get(ctx, buyer.ID, uuid.New())
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
