package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one product's presence in a user's server-persisted cart.
// The whole row set for a user is replaced wholesale on every sync; rows
// never carry a quantity below one.
type CartItem struct {
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	Quantity  int       `gorm:"column:quantity;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
