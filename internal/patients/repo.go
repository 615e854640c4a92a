package patients

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vogelpark/storefront/pkg/db/models"
	"github.com/vogelpark/storefront/pkg/pagination"
)

// Repository persists wildlife-rescue records.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns one page of records, most recent admission first, plus the
// total count.
func (r *Repository) List(ctx context.Context, page pagination.Params) ([]models.Patient, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Patient{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page = pagination.Normalize(page)
	var rows []models.Patient
	if err := query.
		Order("admission_date DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Create inserts a record.
func (r *Repository) Create(ctx context.Context, patient *models.Patient) error {
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(patient).Error
}

// Update overwrites status/details. Returns gorm.ErrRecordNotFound when no
// row matches.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&models.Patient{}).
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
