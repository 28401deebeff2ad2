package repository

import (
	"errors"

	"gorm.io/gorm"

	"cinelog/internal/httpapi/models"
)

// ReviewRepository defines the persistence operations on reviews.
type ReviewRepository interface {
	Create(review *models.Review) error
	FindByID(id int64) (*models.Review, error)
	ListAll() ([]models.Review, error)
	UpdateFields(id int64, updates map[string]any) error
	Delete(id int64) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *reviewRepository) FindByID(id int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// ListAll returns every review, newest id first.
func (r *reviewRepository) ListAll() ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Order("id DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// UpdateFields writes only the supplied columns. An empty map is a no-op.
func (r *reviewRepository) UpdateFields(id int64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Review{}).Where("id = ?", id).Updates(updates).Error
}

func (r *reviewRepository) Delete(id int64) error {
	result := r.db.Delete(&models.Review{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
