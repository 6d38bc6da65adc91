package repositories

import (
	"strings"

	"yamdb-api/models"

	"gorm.io/gorm"
)

// SlugRepository stores the slug-addressed dictionaries (categories, genres).
type SlugRepository[T any] interface {
	Create(item *T) error
	GetBySlug(slug string) (*T, error)
	GetBySlugs(slugs []string) ([]T, error)
	GetList(params models.ListParams, offset, limit int) ([]T, int64, error)
	Update(item *T) error
	Delete(item *T) error
}

type slugRepository[T any] struct {
	db *gorm.DB
	// beforeDelete detaches rows that reference the item.
	beforeDelete func(tx *gorm.DB, item *T) error
}

func NewCategoryRepository(db *gorm.DB) SlugRepository[models.Category] {
	return &slugRepository[models.Category]{
		db: db,
		beforeDelete: func(tx *gorm.DB, c *models.Category) error {
			return tx.Model(&models.Title{}).Where("category_id = ?", c.ID).
				Update("category_id", nil).Error
		},
	}
}

func NewGenreRepository(db *gorm.DB) SlugRepository[models.Genre] {
	return &slugRepository[models.Genre]{
		db: db,
		beforeDelete: func(tx *gorm.DB, g *models.Genre) error {
			return tx.Exec("DELETE FROM title_genres WHERE genre_id = ?", g.ID).Error
		},
	}
}

func (r *slugRepository[T]) Create(item *T) error {
	return r.db.Create(item).Error
}

func (r *slugRepository[T]) GetBySlug(slug string) (*T, error) {
	var item T
	err := r.db.Where("slug = ?", slug).First(&item).Error
	return &item, err
}

func (r *slugRepository[T]) GetBySlugs(slugs []string) ([]T, error) {
	var items []T
	err := r.db.Where("slug IN ?", slugs).Find(&items).Error
	return items, err
}

func (r *slugRepository[T]) GetList(params models.ListParams, offset, limit int) ([]T, int64, error) {
	var items []T
	var total int64

	query := r.db.Model(new(T))
	if params.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(params.Search)+"%")
	}
	query = query.Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("name asc").Order("id asc").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

func (r *slugRepository[T]) Update(item *T) error {
	return r.db.Save(item).Error
}

func (r *slugRepository[T]) Delete(item *T) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if r.beforeDelete != nil {
			if err := r.beforeDelete(tx, item); err != nil {
				return err
			}
		}
		return tx.Delete(item).Error
	})
}
