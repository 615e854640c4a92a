package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vogelpark/storefront/pkg/db/models"
)

// Repository persists per-user carts. The whole cart is replaced wholesale
// on every sync; there is no per-line mutation surface.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Fetch returns the user's cart joined against the catalog, in insertion
// order. Lines whose product has been removed from the catalog are dropped
// by the join.
func (r *Repository) Fetch(ctx context.Context, userID uuid.UUID) ([]Row, error) {
	rows := make([]Row, 0)
	err := r.db.WithContext(ctx).
		Table("cart_items").
		Select("products.id AS product_id, products.title, products.price, products.image, cart_items.quantity").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.updated_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Replace swaps the user's entire cart for the provided entries in one
// transaction. Entries are sanitized first; invalid lines are skipped, not
// rejected. Concurrent replacements for the same user serialize on the
// transaction, last commit wins.
func (r *Repository) Replace(ctx context.Context, userID uuid.UUID, entries []Entry) error {
	valid := SanitizeEntries(entries)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if len(valid) == 0 {
			return nil
		}
		items := make([]models.CartItem, 0, len(valid))
		for _, entry := range valid {
			items = append(items, models.CartItem{
				UserID:    userID,
				ProductID: entry.ProductID,
				Quantity:  entry.Quantity,
			})
		}
		return tx.Create(&items).Error
	})
}
