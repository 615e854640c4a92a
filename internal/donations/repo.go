package donations

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vogelpark/storefront/pkg/db/models"
	"github.com/vogelpark/storefront/pkg/pagination"
)

// Repository persists donations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns one page of donations, newest first, plus the total count.
func (r *Repository) List(ctx context.Context, page pagination.Params) ([]models.Donation, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Donation{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page = pagination.Normalize(page)
	var rows []models.Donation
	if err := query.
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Top returns the largest donations by amount.
func (r *Repository) Top(ctx context.Context, limit int) ([]models.Donation, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []models.Donation
	err := r.db.WithContext(ctx).Order("amount DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

// Create inserts a donation.
func (r *Repository) Create(ctx context.Context, donation *models.Donation) error {
	if donation.ID == uuid.Nil {
		donation.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(donation).Error
}
