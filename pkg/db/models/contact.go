package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact is one submitted contact-form entry.
type Contact struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName string    `gorm:"column:firstname;not null"`
	LastName  string    `gorm:"column:lastname;not null"`
	Email     string    `gorm:"column:email;not null"`
	Phone     string    `gorm:"column:phone;not null"`
	Message   *string   `gorm:"column:message"`
	Status    string    `gorm:"column:status;not null;default:'new'"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
