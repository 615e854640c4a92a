package models

import (
	"time"

	"github.com/google/uuid"
)

// BlogPost is one published article.
type BlogPost struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title    string    `gorm:"column:title;not null"`
	Content  string    `gorm:"column:content;not null"`
	ImageURL *string   `gorm:"column:image_url"`
	Category *string   `gorm:"column:category"`
	Author   string    `gorm:"column:author;not null"`
	Date     time.Time `gorm:"column:date;not null"`
}
