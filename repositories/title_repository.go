package repositories

import (
	"strings"

	"yamdb-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const ratingColumn = "titles.*, (SELECT AVG(reviews.score) FROM reviews WHERE reviews.title_id = titles.id) AS rating"

type TitleRepository interface {
	Create(title *models.Title) error
	GetByID(id uint) (*models.Title, error)
	GetList(params models.TitleListParams, offset, limit int) ([]models.Title, int64, error)
	// Update saves the scalar fields; genres replace the current set when non-nil.
	Update(title *models.Title, genres []models.Genre) error
	Delete(title *models.Title) error
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(title *models.Title) error {
	return r.db.Create(title).Error
}

func (r *titleRepository) GetByID(id uint) (*models.Title, error) {
	var title models.Title
	err := r.db.Model(&models.Title{}).
		Select(ratingColumn).
		Preload("Category").
		Preload("Genres").
		Where("titles.id = ?", id).
		First(&title).Error
	return &title, err
}

func (r *titleRepository) filtered(params models.TitleListParams) *gorm.DB {
	query := r.db.Model(&models.Title{})

	if params.Category != "" {
		query = query.Where("titles.category_id IN (?)",
			r.db.Model(&models.Category{}).Select("id").Where("slug = ?", params.Category))
	}
	if params.Genre != "" {
		query = query.Where("titles.id IN (?)",
			r.db.Table("title_genres").Select("title_genres.title_id").
				Joins("JOIN genres ON genres.id = title_genres.genre_id").
				Where("genres.slug = ?", params.Genre))
	}
	if params.Name != "" {
		query = query.Where("LOWER(titles.name) LIKE ?", "%"+strings.ToLower(params.Name)+"%")
	}
	if params.Year != 0 {
		query = query.Where("titles.year = ?", params.Year)
	}
	return query
}

func (r *titleRepository) GetList(params models.TitleListParams, offset, limit int) ([]models.Title, int64, error) {
	var titles []models.Title
	var total int64

	if err := r.filtered(params).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.filtered(params).
		Select(ratingColumn).
		Preload("Category").
		Preload("Genres").
		Order("titles.id asc").
		Offset(offset).Limit(limit).
		Find(&titles).Error
	return titles, total, err
}

func (r *titleRepository) Update(title *models.Title, genres []models.Genre) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(title).Error; err != nil {
			return err
		}
		if genres == nil {
			return nil
		}
		association := tx.Model(title).Association("Genres")
		if len(genres) == 0 {
			if err := association.Clear(); err != nil {
				return err
			}
		} else if err := association.Replace(genres); err != nil {
			return err
		}
		title.Genres = genres
		return nil
	})
}

// Delete removes the title with its reviews and their comments.
func (r *titleRepository) Delete(title *models.Title) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		reviews := tx.Model(&models.Review{}).Select("id").Where("title_id = ?", title.ID)
		if err := tx.Where("review_id IN (?)", reviews).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("title_id = ?", title.ID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Model(title).Association("Genres").Clear(); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Delete(title).Error
	})
}
