package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vogelpark/storefront/pkg/db/models"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.CartItem{}))
	return db
}

func seedCartProduct(t *testing.T, db *gorm.DB, title string) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:          uuid.New(),
		Title:       title,
		Price:       decimal.RequireFromString("9.99"),
		Description: "d",
		Category:    "Futter",
		Image:       "/img/" + title + ".jpg",
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestReplaceThenFetchRoundTrip(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	p1 := seedCartProduct(t, db, "Futter")
	p2 := seedCartProduct(t, db, "Nistkasten")

	err := repo.Replace(ctx, userID, []Entry{
		{ID: p1.ID.String(), Quantity: 2},
		{ID: p2.ID.String(), Quantity: 1},
	})
	require.NoError(t, err)

	rows, err := repo.Fetch(ctx, userID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := map[uuid.UUID]Row{}
	for _, row := range rows {
		byID[row.ProductID] = row
	}
	assert.Equal(t, 2, byID[p1.ID].Quantity)
	assert.Equal(t, "Futter", byID[p1.ID].Title)
	assert.Equal(t, "/img/Futter.jpg", byID[p1.ID].Image)
	assert.True(t, byID[p1.ID].Price.Equal(decimal.RequireFromString("9.99")))
	assert.Equal(t, 1, byID[p2.ID].Quantity)
}

func TestReplaceIsWholesale(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	p1 := seedCartProduct(t, db, "A")
	p2 := seedCartProduct(t, db, "B")

	require.NoError(t, repo.Replace(ctx, userID, []Entry{{ID: p1.ID.String(), Quantity: 3}}))
	require.NoError(t, repo.Replace(ctx, userID, []Entry{{ID: p2.ID.String(), Quantity: 1}}))

	rows, err := repo.Fetch(ctx, userID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, p2.ID, rows[0].ProductID)
}

func TestReplaceSkipsInvalidEntries(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	p1 := seedCartProduct(t, db, "A")

	err := repo.Replace(ctx, userID, []Entry{
		{ID: "", Quantity: 2},
		{ID: "not-a-uuid", Quantity: 1},
		{ID: p1.ID.String(), Quantity: 0},
		{ID: p1.ID.String(), Quantity: -4},
		{ID: p1.ID.String(), Quantity: 2},
	})
	require.NoError(t, err)

	rows, err := repo.Fetch(ctx, userID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Quantity)
}

func TestReplaceSumsDuplicateIDs(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	p1 := seedCartProduct(t, db, "A")

	err := repo.Replace(ctx, userID, []Entry{
		{ID: p1.ID.String(), Quantity: 2},
		{ID: p1.ID.String(), Quantity: 3},
	})
	require.NoError(t, err)

	rows, err := repo.Fetch(ctx, userID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].Quantity)
}

func TestReplaceWithEmptyCartClears(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	p1 := seedCartProduct(t, db, "A")
	require.NoError(t, repo.Replace(ctx, userID, []Entry{{ID: p1.ID.String(), Quantity: 1}}))
	require.NoError(t, repo.Replace(ctx, userID, nil))

	rows, err := repo.Fetch(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFetchKeepsUsersApart(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	alice, bob := uuid.New(), uuid.New()
	p1 := seedCartProduct(t, db, "A")
	p2 := seedCartProduct(t, db, "B")

	require.NoError(t, repo.Replace(ctx, alice, []Entry{{ID: p1.ID.String(), Quantity: 1}}))
	require.NoError(t, repo.Replace(ctx, bob, []Entry{{ID: p2.ID.String(), Quantity: 7}}))

	rows, err := repo.Fetch(ctx, alice)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, p1.ID, rows[0].ProductID)
}

func TestFetchOrdersByInsertionTime(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	p1 := seedCartProduct(t, db, "A")
	p2 := seedCartProduct(t, db, "B")

	require.NoError(t, db.Create(&models.CartItem{UserID: userID, ProductID: p1.ID, Quantity: 1, UpdatedAt: time.Now().Add(-time.Minute)}).Error)
	require.NoError(t, db.Create(&models.CartItem{UserID: userID, ProductID: p2.ID, Quantity: 1, UpdatedAt: time.Now()}).Error)

	rows, err := repo.Fetch(ctx, userID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, p1.ID, rows[0].ProductID)
	assert.Equal(t, p2.ID, rows[1].ProductID)
}
