package models

// MapItem is one marker on the enclosure map. Coordinates are percentages
// of the rendered map surface, not geographic positions.
type MapItem struct {
	ID          int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Label       string  `gorm:"column:label;not null"`
	Class       string  `gorm:"column:class;not null"`
	X           float64 `gorm:"column:x;not null"`
	Y           float64 `gorm:"column:y;not null"`
	Image       string  `gorm:"column:image"`
	Name        string  `gorm:"column:name;not null"`
	Species     string  `gorm:"column:species"`
	Age         string  `gorm:"column:age"`
	Description string  `gorm:"column:description"`
	Status      string  `gorm:"column:status;not null;default:'Gesund'"`
}
