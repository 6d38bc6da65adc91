package repositories

import (
	"yamdb-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(reviewID, id uint) (*models.Comment, error)
	GetList(reviewID uint, offset, limit int) ([]models.Comment, int64, error)
	Update(comment *models.Comment) error
	Delete(comment *models.Comment) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Omit("Author", "Review").Create(comment).Error
}

func (r *commentRepository) GetByID(reviewID, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Author").Preload("Review").
		Where("review_id = ? AND id = ?", reviewID, id).
		First(&comment).Error
	return &comment, err
}

func (r *commentRepository) GetList(reviewID uint, offset, limit int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	query := r.db.Model(&models.Comment{}).Where("review_id = ?", reviewID).Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Author").Preload("Review").
		Order("pub_date asc").Order("id asc").
		Offset(offset).Limit(limit).Find(&comments).Error
	return comments, total, err
}

func (r *commentRepository) Update(comment *models.Comment) error {
	return r.db.Omit("Author", "Review").Save(comment).Error
}

func (r *commentRepository) Delete(comment *models.Comment) error {
	return r.db.Omit("Author", "Review").Delete(comment).Error
}
