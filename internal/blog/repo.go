package blog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vogelpark/storefront/pkg/db/models"
)

// Repository persists blog posts.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every post, newest first.
func (r *Repository) List(ctx context.Context) ([]models.BlogPost, error) {
	var rows []models.BlogPost
	err := r.db.WithContext(ctx).Order("date DESC").Find(&rows).Error
	return rows, err
}

// Latest returns the newest posts up to limit.
func (r *Repository) Latest(ctx context.Context, limit int) ([]models.BlogPost, error) {
	if limit <= 0 {
		limit = 3
	}
	var rows []models.BlogPost
	err := r.db.WithContext(ctx).Order("date DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

// Create inserts a new post, stamping the publication date when absent.
func (r *Repository) Create(ctx context.Context, post *models.BlogPost) error {
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	if post.Date.IsZero() {
		post.Date = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(post).Error
}

// Update overwrites mutable fields. Returns gorm.ErrRecordNotFound when no
// row matches.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&models.BlogPost{}).
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

// Delete removes a post. Returns gorm.ErrRecordNotFound when no row matches.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BlogPost{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
