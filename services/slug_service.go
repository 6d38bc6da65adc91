package services

import (
	"errors"
	"fmt"

	"yamdb-api/models"
	"yamdb-api/repositories"

	"github.com/op/go-logging"
	"gorm.io/gorm"
)

// sluggable is satisfied by pointers to Category and Genre.
type sluggable[T any] interface {
	*T
	Fields() (name, slug string)
	SetFields(name, slug string)
}

// SlugService manages a name/slug dictionary addressed by slug.
type SlugService[T any] interface {
	List(params models.ListParams, offset, limit int) ([]T, int64, error)
	Create(req models.CreateSlugRequest) (*T, error)
	Update(slug string, req models.UpdateSlugRequest) (*T, error)
	Delete(slug string) error
}

type slugService[T any, PT sluggable[T]] struct {
	repo repositories.SlugRepository[T]
	kind string
	log  *logging.Logger
}

func NewSlugService[T any, PT sluggable[T]](repo repositories.SlugRepository[T], kind string, log *logging.Logger) SlugService[T] {
	return &slugService[T, PT]{repo: repo, kind: kind, log: log}
}

func NewCategoryService(repo repositories.SlugRepository[models.Category], log *logging.Logger) SlugService[models.Category] {
	return NewSlugService[models.Category](repo, "category", log)
}

func NewGenreService(repo repositories.SlugRepository[models.Genre], log *logging.Logger) SlugService[models.Genre] {
	return NewSlugService[models.Genre](repo, "genre", log)
}

func (s *slugService[T, PT]) slugTaken() string {
	return fmt.Sprintf("%s with this slug already exists.", s.kind)
}

func (s *slugService[T, PT]) List(params models.ListParams, offset, limit int) ([]T, int64, error) {
	items, total, err := s.repo.GetList(params, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", s.kind, err)
	}
	return items, total, nil
}

func (s *slugService[T, PT]) Create(req models.CreateSlugRequest) (*T, error) {
	if err := s.checkSlugFree(req.Slug); err != nil {
		return nil, err
	}

	item := PT(new(T))
	item.SetFields(req.Name, req.Slug)
	if err := s.repo.Create((*T)(item)); err != nil {
		return nil, writeError(err, "create "+s.kind, "slug", s.slugTaken())
	}
	s.log.Infof("%s %s created", s.kind, req.Slug)
	return (*T)(item), nil
}

func (s *slugService[T, PT]) Update(slug string, req models.UpdateSlugRequest) (*T, error) {
	found, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, lookupError(err, "get "+s.kind)
	}
	item := PT(found)

	name, newSlug := item.Fields()
	if req.Name != nil {
		name = *req.Name
	}
	if req.Slug != nil && *req.Slug != newSlug {
		if err := s.checkSlugFree(*req.Slug); err != nil {
			return nil, err
		}
		newSlug = *req.Slug
	}
	item.SetFields(name, newSlug)

	if err := s.repo.Update(found); err != nil {
		return nil, writeError(err, "update "+s.kind, "slug", s.slugTaken())
	}
	return found, nil
}

func (s *slugService[T, PT]) Delete(slug string) error {
	item, err := s.repo.GetBySlug(slug)
	if err != nil {
		return lookupError(err, "get "+s.kind)
	}
	if err := s.repo.Delete(item); err != nil {
		return fmt.Errorf("delete %s: %w", s.kind, err)
	}
	s.log.Infof("%s %s deleted", s.kind, slug)
	return nil
}

func (s *slugService[T, PT]) checkSlugFree(slug string) error {
	_, err := s.repo.GetBySlug(slug)
	if err == nil {
		return models.NewValidationError("slug", s.slugTaken())
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup %s: %w", s.kind, err)
	}
	return nil
}
