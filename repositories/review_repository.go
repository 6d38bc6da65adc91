package repositories

import (
	"yamdb-api/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *models.Review) error
	GetByID(titleID, id uint) (*models.Review, error)
	GetList(titleID uint, offset, limit int) ([]models.Review, int64, error)
	ExistsForAuthor(titleID, authorID uint) (bool, error)
	Update(review *models.Review) error
	Delete(review *models.Review) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Omit("Author", "Title").Create(review).Error
}

func (r *reviewRepository) GetByID(titleID, id uint) (*models.Review, error) {
	var review models.Review
	err := r.db.Preload("Author").
		Where("title_id = ? AND id = ?", titleID, id).
		First(&review).Error
	return &review, err
}

func (r *reviewRepository) GetList(titleID uint, offset, limit int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	query := r.db.Model(&models.Review{}).Where("title_id = ?", titleID).Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Author").Order("pub_date asc").Order("id asc").
		Offset(offset).Limit(limit).Find(&reviews).Error
	return reviews, total, err
}

func (r *reviewRepository) ExistsForAuthor(titleID, authorID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Review{}).
		Where("title_id = ? AND author_id = ?", titleID, authorID).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) Update(review *models.Review) error {
	return r.db.Omit("Author", "Title").Save(review).Error
}

func (r *reviewRepository) Delete(review *models.Review) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", review.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Omit("Author", "Title").Delete(review).Error
	})
}
