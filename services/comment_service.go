package services

import (
	"fmt"

	"yamdb-api/models"
	"yamdb-api/repositories"

	"github.com/op/go-logging"
)

type CommentService interface {
	List(titleID, reviewID uint, offset, limit int) ([]models.CommentResponse, int64, error)
	Get(titleID, reviewID, id uint) (*models.Comment, error)
	Create(titleID, reviewID, authorID uint, req models.CommentRequest) (*models.Comment, error)
	Update(comment *models.Comment, req models.UpdateCommentRequest) (*models.Comment, error)
	Delete(comment *models.Comment) error
}

type commentService struct {
	commentRepo repositories.CommentRepository
	reviewRepo  repositories.ReviewRepository
	log         *logging.Logger
}

func NewCommentService(commentRepo repositories.CommentRepository, reviewRepo repositories.ReviewRepository, log *logging.Logger) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		log:         log,
	}
}

// review resolves the parent review, which must belong to titleID.
func (s *commentService) review(titleID, reviewID uint) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(titleID, reviewID)
	if err != nil {
		return nil, lookupError(err, "get review")
	}
	return review, nil
}

func (s *commentService) List(titleID, reviewID uint, offset, limit int) ([]models.CommentResponse, int64, error) {
	if _, err := s.review(titleID, reviewID); err != nil {
		return nil, 0, err
	}
	comments, total, err := s.commentRepo.GetList(reviewID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}

	results := make([]models.CommentResponse, 0, len(comments))
	for i := range comments {
		results = append(results, models.NewCommentResponse(&comments[i]))
	}
	return results, total, nil
}

func (s *commentService) Get(titleID, reviewID, id uint) (*models.Comment, error) {
	if _, err := s.review(titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByID(reviewID, id)
	if err != nil {
		return nil, lookupError(err, "get comment")
	}
	return comment, nil
}

func (s *commentService) Create(titleID, reviewID, authorID uint, req models.CommentRequest) (*models.Comment, error) {
	if _, err := s.review(titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: authorID,
		Text:     req.Text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	created, err := s.commentRepo.GetByID(reviewID, comment.ID)
	if err != nil {
		return nil, fmt.Errorf("reload comment: %w", err)
	}
	return created, nil
}

func (s *commentService) Update(comment *models.Comment, req models.UpdateCommentRequest) (*models.Comment, error) {
	if req.Text != nil {
		comment.Text = *req.Text
	}
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) Delete(comment *models.Comment) error {
	if err := s.commentRepo.Delete(comment); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
