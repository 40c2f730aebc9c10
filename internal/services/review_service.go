package services

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"portales/internal/models"
	"portales/internal/repositories"
)

// ReviewService handles reviews, enforcing the one-review-per-user rule
// for each portal.
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	portalRepo repositories.PortalRepository
	validate   *validator.Validate
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repositories.ReviewRepository, portalRepo repositories.PortalRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, portalRepo: portalRepo, validate: validator.New()}
}

// ListReviews returns a page of a portal's reviews, newest first.
func (s *ReviewService) ListReviews(portalID uint, page, perPage int) (map[string]interface{}, error) {
	portal, err := s.portalRepo.GetByID(portalID)
	if err != nil {
		return nil, err
	}
	if portal == nil {
		return nil, notFoundError("portal not found")
	}

	reviews, pg, err := s.reviewRepo.ListByPortal(portalID, page, perPage)
	if err != nil {
		return nil, err
	}

	dicts := make([]map[string]interface{}, 0, len(reviews))
	for i := range reviews {
		dicts = append(dicts, reviewDict(&reviews[i]))
	}
	return map[string]interface{}{
		"reviews":    dicts,
		"pagination": paginationDict(pg),
	}, nil
}

// CreateReview adds the authenticated user's review of a portal. A second
// review of the same portal is rejected.
func (s *ReviewService) CreateReview(userID string, portalID uint, data map[string]interface{}) (map[string]interface{}, error) {
	portal, err := s.portalRepo.GetByID(portalID)
	if err != nil {
		return nil, err
	}
	if portal == nil {
		return nil, notFoundError("portal not found")
	}

	existing, err := s.reviewRepo.GetByPortalAndUser(portalID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, duplicateError("you have already reviewed this portal")
	}

	rating, _ := fieldInt(data, "rating")
	if rating < 1 || rating > 5 {
		return nil, validationError("rating must be between 1 and 5")
	}
	title, _ := fieldString(data, "title")
	comment, _ := fieldString(data, "comment")

	review := &models.Review{
		PortalID: portalID,
		UserID:   userID,
		Rating:   rating,
		Title:    title,
		Comment:  comment,
	}
	if err := s.validate.Struct(review); err != nil {
		return nil, validationError(fmt.Sprintf("invalid review: %v", err))
	}

	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	created, err := s.reviewRepo.GetByID(review.ID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"review": reviewDict(created)}, nil
}

// UpdateReview applies a partial update to the author's own review.
func (s *ReviewService) UpdateReview(userID string, reviewID uint, data map[string]interface{}) (map[string]interface{}, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, notFoundError("review not found")
	}
	if review.UserID != userID {
		return nil, forbiddenError("you can only edit your own reviews")
	}

	if rating, ok := fieldInt(data, "rating"); ok {
		if rating < 1 || rating > 5 {
			return nil, validationError("rating must be between 1 and 5")
		}
		review.Rating = rating
	}
	if title, ok := fieldString(data, "title"); ok {
		review.Title = title
	}
	if comment, ok := fieldString(data, "comment"); ok {
		review.Comment = comment
	}

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return map[string]interface{}{"review": reviewDict(review)}, nil
}

// DeleteReview removes the author's own review.
func (s *ReviewService) DeleteReview(userID string, reviewID uint) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return notFoundError("review not found")
	}
	if review.UserID != userID {
		return forbiddenError("you can only delete your own reviews")
	}

	return s.reviewRepo.Delete(reviewID)
}
