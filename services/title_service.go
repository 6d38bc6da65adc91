package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"yamdb-api/models"
	"yamdb-api/repositories"

	"github.com/op/go-logging"
	"gorm.io/gorm"
)

type TitleService interface {
	List(params models.TitleListParams, offset, limit int) ([]models.TitleResponse, int64, error)
	Get(id uint) (*models.TitleResponse, error)
	Create(req models.TitleRequest) (*models.TitleWriteResponse, error)
	Replace(id uint, req models.TitleRequest) (*models.TitleWriteResponse, error)
	Update(id uint, req models.UpdateTitleRequest) (*models.TitleWriteResponse, error)
	Delete(id uint) error
}

type titleService struct {
	titleRepo    repositories.TitleRepository
	categoryRepo repositories.SlugRepository[models.Category]
	genreRepo    repositories.SlugRepository[models.Genre]
	log          *logging.Logger
}

func NewTitleService(
	titleRepo repositories.TitleRepository,
	categoryRepo repositories.SlugRepository[models.Category],
	genreRepo repositories.SlugRepository[models.Genre],
	log *logging.Logger,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		log:          log,
	}
}

func (s *titleService) List(params models.TitleListParams, offset, limit int) ([]models.TitleResponse, int64, error) {
	titles, total, err := s.titleRepo.GetList(params, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list titles: %w", err)
	}

	results := make([]models.TitleResponse, 0, len(titles))
	for i := range titles {
		results = append(results, models.NewTitleResponse(&titles[i]))
	}
	return results, total, nil
}

func (s *titleService) Get(id uint) (*models.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		return nil, lookupError(err, "get title")
	}
	resp := models.NewTitleResponse(title)
	return &resp, nil
}

func (s *titleService) Create(req models.TitleRequest) (*models.TitleWriteResponse, error) {
	category, err := s.resolveCategory(req.Category)
	if err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(req.Genre)
	if err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  &category.ID,
		Category:    category,
		Genres:      genres,
	}
	if err := s.titleRepo.Create(title); err != nil {
		return nil, fmt.Errorf("create title: %w", err)
	}

	s.log.Infof("title %d created", title.ID)
	resp := models.NewTitleWriteResponse(title)
	return &resp, nil
}

// Replace is a full update: every field of req is applied.
func (s *titleService) Replace(id uint, req models.TitleRequest) (*models.TitleWriteResponse, error) {
	genre := req.Genre
	if genre == nil {
		genre = []string{}
	}
	return s.Update(id, models.UpdateTitleRequest{
		Name:        &req.Name,
		Year:        &req.Year,
		Description: &req.Description,
		Genre:       &genre,
		Category:    &req.Category,
	})
}

func (s *titleService) Update(id uint, req models.UpdateTitleRequest) (*models.TitleWriteResponse, error) {
	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		return nil, lookupError(err, "get title")
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = *req.Description
	}
	if req.Category != nil {
		category, err := s.resolveCategory(*req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	var genres []models.Genre
	if req.Genre != nil {
		if genres, err = s.resolveGenres(*req.Genre); err != nil {
			return nil, err
		}
	}

	if err := s.titleRepo.Update(title, genres); err != nil {
		return nil, fmt.Errorf("update title: %w", err)
	}
	resp := models.NewTitleWriteResponse(title)
	return &resp, nil
}

func (s *titleService) Delete(id uint) error {
	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		return lookupError(err, "get title")
	}
	if err := s.titleRepo.Delete(title); err != nil {
		return fmt.Errorf("delete title: %w", err)
	}
	s.log.Infof("title %d deleted", id)
	return nil
}

func (s *titleService) resolveCategory(slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewValidationError("category",
			fmt.Sprintf("Object with slug=%s does not exist.", slug))
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

// resolveGenres returns a non-nil slice so an empty list clears the genres.
func (s *titleService) resolveGenres(slugs []string) ([]models.Genre, error) {
	genres := []models.Genre{}
	if len(slugs) == 0 {
		return genres, nil
	}

	found, err := s.genreRepo.GetBySlugs(slugs)
	if err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}
	bySlug := make(map[string]models.Genre, len(found))
	for _, g := range found {
		bySlug[g.Slug] = g
	}

	var missing []string
	seen := make(map[string]bool, len(slugs))
	for _, slug := range slugs {
		if seen[slug] {
			continue
		}
		seen[slug] = true
		g, ok := bySlug[slug]
		if !ok {
			missing = append(missing, slug)
			continue
		}
		genres = append(genres, g)
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, models.NewValidationError("genre",
			fmt.Sprintf("Object with slug=%s does not exist.", strings.Join(missing, ", ")))
	}
	return genres, nil
}
