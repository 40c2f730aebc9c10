package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"portales/internal/models"
)

// ReviewStats aggregates the review-derived numbers a portal response
// carries.
type ReviewStats struct {
	Count   int64
	Average float64
}

// ReviewRepository defines data access for reviews.
type ReviewRepository interface {
	Create(review *models.Review) error
	GetByID(id uint) (*models.Review, error)
	GetByPortalAndUser(portalID uint, userID string) (*models.Review, error)
	ListByPortal(portalID uint, page, perPage int) ([]models.Review, Pagination, error)
	Update(review *models.Review) error
	Delete(id uint) error
	CountByUser(userID string) (int64, error)
	CountByPortal(portalID uint) (int64, error)
	Count() (int64, error)
	CountCreatedBetween(start, end time.Time) (int64, error)
	AverageRating(portalID uint) (float64, error)
	StatsForPortals(ids []uint) (map[uint]ReviewStats, error)
}

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{db: db}
}

func (r *GORMReviewRepository) Create(review *models.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *GORMReviewRepository) GetByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.Preload("User").First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get review %d: %w", id, err)
	}
	return &review, nil
}

// GetByPortalAndUser looks up the single review one user may hold on one
// portal; (nil, nil) means the pair is still free.
func (r *GORMReviewRepository) GetByPortalAndUser(portalID uint, userID string) (*models.Review, error) {
	var review models.Review
	err := r.db.First(&review, "portal_id = ? AND user_id = ?", portalID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up review for portal %d: %w", portalID, err)
	}
	return &review, nil
}

func (r *GORMReviewRepository) ListByPortal(portalID uint, page, perPage int) ([]models.Review, Pagination, error) {
	query := r.db.Preload("User").Model(&models.Review{}).Where("portal_id = ?", portalID)
	return Paginate[models.Review](query, "created_at DESC, id DESC", page, perPage)
}

func (r *GORMReviewRepository) Update(review *models.Review) error {
	if err := r.db.Omit("User").Save(review).Error; err != nil {
		return fmt.Errorf("failed to update review %d: %w", review.ID, err)
	}
	return nil
}

func (r *GORMReviewRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.Review{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete review %d: %w", id, err)
	}
	return nil
}

func (r *GORMReviewRepository) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Review{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews by user: %w", err)
	}
	return count, nil
}

func (r *GORMReviewRepository) CountByPortal(portalID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Review{}).Where("portal_id = ?", portalID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews for portal: %w", err)
	}
	return count, nil
}

func (r *GORMReviewRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Review{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}

func (r *GORMReviewRepository) CountCreatedBetween(start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Review{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews by creation date: %w", err)
	}
	return count, nil
}

// AverageRating returns 0 when the portal has no reviews.
func (r *GORMReviewRepository) AverageRating(portalID uint) (float64, error) {
	var avg *float64
	err := r.db.Model(&models.Review{}).
		Select("AVG(rating)").
		Where("portal_id = ?", portalID).
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute average rating for portal %d: %w", portalID, err)
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

// StatsForPortals batch-computes review count and average rating for a
// set of portals in one grouped query.
func (r *GORMReviewRepository) StatsForPortals(ids []uint) (map[uint]ReviewStats, error) {
	stats := map[uint]ReviewStats{}
	if len(ids) == 0 {
		return stats, nil
	}

	rows := []struct {
		PortalID uint
		Count    int64
		Average  float64
	}{}
	err := r.db.Model(&models.Review{}).
		Select("portal_id, COUNT(*) AS count, AVG(rating) AS average").
		Where("portal_id IN ?", ids).
		Group("portal_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to batch-compute review stats: %w", err)
	}

	for _, row := range rows {
		stats[row.PortalID] = ReviewStats{Count: row.Count, Average: row.Average}
	}
	return stats, nil
}
