package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vogelpark/storefront/pkg/db/models"
	"github.com/vogelpark/storefront/pkg/pagination"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, title, category string, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:          uuid.New(),
		Title:       title,
		Price:       decimal.RequireFromString(price),
		Description: "Beschreibung " + title,
		Category:    category,
		AmountLeft:  5,
		Image:       "/images/" + title + ".jpg",
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestListFiltersByCategory(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedProduct(t, db, "Futter Premium", "Futter", "9.99")
	seedProduct(t, db, "Futter Standard", "Futter", "4.99")
	seedProduct(t, db, "Nistkasten", "Zubehoer", "24.90")

	rows, total, err := repo.List(ctx, ListParams{Category: "Futter"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, rows, 2)
	assert.Equal(t, "Futter Premium", rows[0].Title)
	assert.Equal(t, "Futter Standard", rows[1].Title)
}

func TestListTreatsAlleAsNoFilter(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedProduct(t, db, "Futter", "Futter", "9.99")
	seedProduct(t, db, "Nistkasten", "Zubehoer", "24.90")

	_, total, err := repo.List(ctx, ListParams{Category: AllCategories})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestListSearchesTitleAndDescription(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedProduct(t, db, "Nistkasten Eiche", "Zubehoer", "24.90")
	seedProduct(t, db, "Futter", "Futter", "9.99")

	rows, total, err := repo.List(ctx, ListParams{Search: "eiche"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Nistkasten Eiche", rows[0].Title)
}

func TestListPaginates(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedProduct(t, db, "A", "Futter", "1.00")
	seedProduct(t, db, "B", "Futter", "2.00")
	seedProduct(t, db, "C", "Futter", "3.00")

	rows, total, err := repo.List(ctx, ListParams{Page: pagination.Params{Page: 2, Limit: 2}})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "C", rows[0].Title)
}

func TestCategoriesAreDistinct(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedProduct(t, db, "A", "Futter", "1.00")
	seedProduct(t, db, "B", "Futter", "2.00")
	seedProduct(t, db, "C", "Zubehoer", "3.00")

	categories, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Futter", "Zubehoer"}, categories)
}

func TestUpdateAndDeleteMissingProduct(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	err := repo.Update(ctx, uuid.New(), map[string]any{"title": "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateExistingProduct(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "Futter", "Futter", "9.99")
	require.NoError(t, repo.Update(ctx, product.ID, map[string]any{"amount_left": 42}))

	reloaded, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, reloaded.AmountLeft)
}
