package services

import (
	"fmt"

	"yamdb-api/models"
	"yamdb-api/repositories"

	"github.com/op/go-logging"
)

const msgAlreadyReviewed = "You have already reviewed this title."

type ReviewService interface {
	List(titleID uint, offset, limit int) ([]models.ReviewResponse, int64, error)
	Get(titleID, id uint) (*models.Review, error)
	Create(titleID, authorID uint, req models.ReviewRequest) (*models.Review, error)
	Replace(review *models.Review, req models.ReviewRequest) (*models.Review, error)
	Update(review *models.Review, req models.UpdateReviewRequest) (*models.Review, error)
	Delete(review *models.Review) error
}

type reviewService struct {
	reviewRepo repositories.ReviewRepository
	titleRepo  repositories.TitleRepository
	log        *logging.Logger
}

func NewReviewService(reviewRepo repositories.ReviewRepository, titleRepo repositories.TitleRepository, log *logging.Logger) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
		log:        log,
	}
}

func (s *reviewService) ensureTitle(titleID uint) error {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		return lookupError(err, "get title")
	}
	return nil
}

func (s *reviewService) List(titleID uint, offset, limit int) ([]models.ReviewResponse, int64, error) {
	if err := s.ensureTitle(titleID); err != nil {
		return nil, 0, err
	}
	reviews, total, err := s.reviewRepo.GetList(titleID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}

	results := make([]models.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		results = append(results, models.NewReviewResponse(&reviews[i]))
	}
	return results, total, nil
}

func (s *reviewService) Get(titleID, id uint) (*models.Review, error) {
	if err := s.ensureTitle(titleID); err != nil {
		return nil, err
	}
	review, err := s.reviewRepo.GetByID(titleID, id)
	if err != nil {
		return nil, lookupError(err, "get review")
	}
	return review, nil
}

// Create stores one review per author and title.
func (s *reviewService) Create(titleID, authorID uint, req models.ReviewRequest) (*models.Review, error) {
	if err := s.ensureTitle(titleID); err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsForAuthor(titleID, authorID)
	if err != nil {
		return nil, fmt.Errorf("check review: %w", err)
	}
	if exists {
		return nil, models.NewValidationError("non_field_errors", msgAlreadyReviewed)
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: authorID,
		Text:     *req.Text,
		Score:    req.Score,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, writeError(err, "create review", "non_field_errors", msgAlreadyReviewed)
	}

	created, err := s.reviewRepo.GetByID(titleID, review.ID)
	if err != nil {
		return nil, fmt.Errorf("reload review: %w", err)
	}
	s.log.Infof("review %d on title %d created by user %d", review.ID, titleID, authorID)
	return created, nil
}

func (s *reviewService) Replace(review *models.Review, req models.ReviewRequest) (*models.Review, error) {
	return s.Update(review, models.UpdateReviewRequest{Text: req.Text, Score: &req.Score})
}

func (s *reviewService) Update(review *models.Review, req models.UpdateReviewRequest) (*models.Review, error) {
	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return review, nil
}

func (s *reviewService) Delete(review *models.Review) error {
	if err := s.reviewRepo.Delete(review); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	s.log.Infof("review %d deleted", review.ID)
	return nil
}
