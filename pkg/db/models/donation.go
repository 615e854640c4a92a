package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Donation is one received contribution.
type Donation struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DonorName string          `gorm:"column:donor_name;not null"`
	Amount    decimal.Decimal `gorm:"column:amount;type:numeric(10,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}
