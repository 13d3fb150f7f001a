package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) CreateReview(ctx context.Context, rv *models.Review) error {
	return r.DB.WithContext(ctx).Create(rv).Error
}

// ListReviews returns reviews newest first; an empty status lists all of them.
func (r *GormRepo) ListReviews(ctx context.Context, status string, offset, limit int) (int64, []models.Review, error) {
	q := r.DB.WithContext(ctx).Model(&models.Review{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var reviews []models.Review
	if err := q.Order("created_at DESC").Order("id").Offset(offset).Limit(limit).Find(&reviews).Error; err != nil {
		return 0, nil, err
	}
	return total, reviews, nil
}

func (r *GormRepo) SetReviewStatus(ctx context.Context, id uuid.UUID, status string) (*models.Review, error) {
	db := r.DB.WithContext(ctx)
	res := db.Model(&models.Review{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var rv models.Review
	if err := db.Where("id = ?", id).First(&rv).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *GormRepo) DeleteReview(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Review{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
