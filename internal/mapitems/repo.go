package mapitems

import (
	"context"

	"gorm.io/gorm"

	"github.com/vogelpark/storefront/pkg/db/models"
)

// Marker class and status defaults for newly placed enclosures.
const (
	DefaultClass  = "voliere-new"
	DefaultStatus = "Gesund"
)

// Repository persists enclosure map markers.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every marker.
func (r *Repository) List(ctx context.Context) ([]models.MapItem, error) {
	var rows []models.MapItem
	err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}

// Create inserts a marker, applying class and status defaults.
func (r *Repository) Create(ctx context.Context, item *models.MapItem) error {
	if item.Class == "" {
		item.Class = DefaultClass
	}
	if item.Status == "" {
		item.Status = DefaultStatus
	}
	return r.db.WithContext(ctx).Create(item).Error
}

// Update overwrites mutable marker fields. Returns gorm.ErrRecordNotFound
// when no row matches.
func (r *Repository) Update(ctx context.Context, id int64, fields map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&models.MapItem{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a marker. Returns gorm.ErrRecordNotFound when no row
// matches.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.MapItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
