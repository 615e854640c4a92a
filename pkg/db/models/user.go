package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/vogelpark/storefront/pkg/enums"
)

// User represents the canonical identity entity.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Username     string     `gorm:"column:username;not null;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	FirstName    string     `gorm:"column:firstname;not null"`
	LastName     string     `gorm:"column:lastname;not null"`
	Email        string     `gorm:"column:email;not null;uniqueIndex"`
	Role         enums.Role `gorm:"column:role;not null;default:'customer'"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}
