package repositories

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"portales/internal/models"
)

// AnalyticsRepository holds the ranked, grouped queries behind the
// analytics endpoints. All operations are read-only.
type AnalyticsRepository interface {
	PopularPortals(limit int) ([]models.Portal, error)
	PopularPortalsByCreator(creatorID string, limit int) ([]models.Portal, error)
	TrendingPortals(since time.Time, limit int) ([]models.Portal, error)
}

// GORMAnalyticsRepository is a GORM implementation of AnalyticsRepository.
type GORMAnalyticsRepository struct {
	db *gorm.DB
}

// NewGORMAnalyticsRepository creates a new instance of GORMAnalyticsRepository.
func NewGORMAnalyticsRepository(db *gorm.DB) *GORMAnalyticsRepository {
	return &GORMAnalyticsRepository{db: db}
}

// rankedByLikes joins portals against the likes table and orders by like
// count. The inner join means portals without a single like never rank;
// ties break on portal id ascending so the ordering is stable.
func (r *GORMAnalyticsRepository) rankedByLikes() *gorm.DB {
	return r.db.Preload("Creator").Preload("Category").Preload("Tags").
		Model(&models.Portal{}).
		Select("portals.*").
		Joins("JOIN user_portal_likes ON user_portal_likes.portal_id = portals.id").
		Group("portals.id").
		Order("COUNT(user_portal_likes.user_id) DESC, portals.id ASC")
}

// PopularPortals returns the most-liked portals platform-wide.
func (r *GORMAnalyticsRepository) PopularPortals(limit int) ([]models.Portal, error) {
	portals := []models.Portal{}
	if err := r.rankedByLikes().Limit(limit).Find(&portals).Error; err != nil {
		return nil, fmt.Errorf("failed to rank popular portals: %w", err)
	}
	return portals, nil
}

// PopularPortalsByCreator returns one creator's most-liked portals.
func (r *GORMAnalyticsRepository) PopularPortalsByCreator(creatorID string, limit int) ([]models.Portal, error) {
	portals := []models.Portal{}
	err := r.rankedByLikes().
		Where("portals.creator_id = ?", creatorID).
		Limit(limit).
		Find(&portals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank portals for creator: %w", err)
	}
	return portals, nil
}

// TrendingPortals ranks public, active portals created after the cutoff
// by like count.
func (r *GORMAnalyticsRepository) TrendingPortals(since time.Time, limit int) ([]models.Portal, error) {
	portals := []models.Portal{}
	err := r.rankedByLikes().
		Where("portals.is_public = ? AND portals.is_active = ?", true, true).
		Where("portals.created_at >= ?", since).
		Limit(limit).
		Find(&portals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank trending portals: %w", err)
	}
	return portals, nil
}
