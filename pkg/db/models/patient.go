package models

import (
	"time"

	"github.com/google/uuid"
)

// Patient is one wildlife-rescue record.
type Patient struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"column:name;not null"`
	Species       string    `gorm:"column:species;not null"`
	Status        string    `gorm:"column:status;not null"`
	AdmissionDate time.Time `gorm:"column:admission_date;not null"`
	Details       *string   `gorm:"column:details"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}
