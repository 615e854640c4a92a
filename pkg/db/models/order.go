package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order captures one checkout submission. The payment field is opaque
// passthrough data; no processing happens on it.
type Order struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	UserID    *uuid.UUID  `gorm:"column:user_id;type:uuid"`
	FirstName string      `gorm:"column:firstname;not null"`
	LastName  string      `gorm:"column:lastname;not null"`
	Email     string      `gorm:"column:email;not null"`
	Address   string      `gorm:"column:address;not null"`
	City      string      `gorm:"column:city;not null"`
	Country   string      `gorm:"column:country;not null"`
	Payment   string      `gorm:"column:payment;not null"`
	Status    string      `gorm:"column:status;not null;default:'pending'"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time   `gorm:"column:created_at;autoCreateTime"`
}

// OrderItem freezes one cart line at the price it was ordered for.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
}
