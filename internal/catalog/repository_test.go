package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/relistlabs/relist-backend/pkg/db/models"
	"github.com/relistlabs/relist-backend/pkg/enums"
	"github.com/relistlabs/relist-backend/pkg/pagination"
)

func TestRepositoryListHidesDeactivatedProducts(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	user := mustCreateTestUser(t, db)
	category := mustCreateTestCategory(t, db)
	visible := mustCreateTestProduct(t, db, user.ID, category.ID)
	hidden := mustCreateTestProduct(t, db, user.ID, category.ID, func(p *models.Product) {
		p.Title = "Hidden Listing"
	})

	require.NoError(t, repo.Deactivate(ctx, hidden.ID))

	products, err := repo.List(ctx, ListFilters{}, nil, 10)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, visible.ID, products[0].ID)

	_, err = repo.FindActiveByID(ctx, hidden.ID)
	require.Error(t, err)

	// The row itself survives for order history.
	kept, err := repo.FindByID(ctx, hidden.ID)
	require.NoError(t, err)
	require.False(t, kept.IsActive)
}

func TestRepositoryListFilters(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	user := mustCreateTestUser(t, db)
	bikes := mustCreateTestCategory(t, db)
	cameras := mustCreateTestCategory(t, db)

	bike := mustCreateTestProduct(t, db, user.ID, bikes.ID, func(p *models.Product) {
		p.Title = "Vintage Road Bike"
		p.Condition = enums.ProductConditionGood
	})
	mustCreateTestProduct(t, db, user.ID, cameras.ID, func(p *models.Product) {
		p.Title = "Film Camera"
		brand := "Canonette"
		p.Brand = &brand
		p.Condition = enums.ProductConditionFair
	})

	byCategory, err := repo.List(ctx, ListFilters{CategoryID: &bikes.ID}, nil, 10)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	require.Equal(t, bike.ID, byCategory[0].ID)

	cond := enums.ProductConditionFair
	byCondition, err := repo.List(ctx, ListFilters{Condition: &cond}, nil, 10)
	require.NoError(t, err)
	require.Len(t, byCondition, 1)
	require.Equal(t, "Film Camera", byCondition[0].Title)

	// Search is case-insensitive and spans title and brand.
	bySearch, err := repo.List(ctx, ListFilters{Search: "CANONETTE"}, nil, 10)
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	require.Equal(t, "Film Camera", bySearch[0].Title)
}

func TestRepositoryListNewestFirstWithCursor(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	user := mustCreateTestUser(t, db)
	category := mustCreateTestCategory(t, db)

	older := mustCreateTestProduct(t, db, user.ID, category.ID, func(p *models.Product) {
		p.Title = "Older"
	})
	require.NoError(t, db.Model(older).UpdateColumn("created_at", time.Now().Add(-time.Hour)).Error)
	newer := mustCreateTestProduct(t, db, user.ID, category.ID, func(p *models.Product) {
		p.Title = "Newer"
	})

	page, err := repo.List(ctx, ListFilters{}, nil, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, newer.ID, page[0].ID)

	cursor := &pagination.Cursor{CreatedAt: page[0].CreatedAt, ID: page[0].ID}
	rest, err := repo.List(ctx, ListFilters{}, cursor, 10)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	require.Equal(t, older.ID, rest[0].ID)
}

func TestRepositoryListByUserIncludesDeactivated(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seller := mustCreateTestUser(t, db)
	other := mustCreateTestUser(t, db)
	category := mustCreateTestCategory(t, db)

	mine := mustCreateTestProduct(t, db, seller.ID, category.ID)
	require.NoError(t, repo.Deactivate(ctx, mine.ID))
	mustCreateTestProduct(t, db, other.ID, category.ID)

	products, err := repo.ListByUser(ctx, seller.ID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, mine.ID, products[0].ID)
}

func TestRepositoryReadsJoinSellerSummary(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seller := mustCreateTestUser(t, db)
	category := mustCreateTestCategory(t, db)
	product := mustCreateTestProduct(t, db, seller.ID, category.ID)

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Seller)
	require.Equal(t, seller.ID, found.Seller.ID)
	require.Equal(t, seller.Username, found.Seller.Username)

	active, err := repo.FindActiveByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, active.Seller)
	require.Equal(t, seller.Username, active.Seller.Username)

	listed, err := repo.List(ctx, ListFilters{}, nil, 10)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].Seller)
	require.Equal(t, seller.Username, listed[0].Seller.Username)

	mine, err := repo.ListByUser(ctx, seller.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Seller)
	require.Equal(t, seller.Username, mine[0].Seller.Username)
}
