package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"portales/internal/models"
)

// ExplorationRepository defines data access for logged scan/AR events.
type ExplorationRepository interface {
	Create(exploration *models.Exploration) error
	GetByID(id uint) (*models.Exploration, error)
	ListByUser(userID string, page, perPage int) ([]models.Exploration, Pagination, error)
	Delete(id uint) error
	CountByUser(userID string) (int64, error)
	CountByPortal(portalID uint) (int64, error)
	Count() (int64, error)
}

// GORMExplorationRepository is a GORM implementation of ExplorationRepository.
type GORMExplorationRepository struct {
	db *gorm.DB
}

// NewGORMExplorationRepository creates a new instance of GORMExplorationRepository.
func NewGORMExplorationRepository(db *gorm.DB) *GORMExplorationRepository {
	return &GORMExplorationRepository{db: db}
}

func (r *GORMExplorationRepository) Create(exploration *models.Exploration) error {
	if err := r.db.Create(exploration).Error; err != nil {
		return fmt.Errorf("failed to create exploration: %w", err)
	}
	return nil
}

func (r *GORMExplorationRepository) GetByID(id uint) (*models.Exploration, error) {
	var exploration models.Exploration
	if err := r.db.Preload("Portal").First(&exploration, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get exploration %d: %w", id, err)
	}
	return &exploration, nil
}

func (r *GORMExplorationRepository) ListByUser(userID string, page, perPage int) ([]models.Exploration, Pagination, error) {
	query := r.db.Preload("Portal").Model(&models.Exploration{}).Where("user_id = ?", userID)
	return Paginate[models.Exploration](query, "created_at DESC, id DESC", page, perPage)
}

func (r *GORMExplorationRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.Exploration{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete exploration %d: %w", id, err)
	}
	return nil
}

func (r *GORMExplorationRepository) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Exploration{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count explorations by user: %w", err)
	}
	return count, nil
}

func (r *GORMExplorationRepository) CountByPortal(portalID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Exploration{}).Where("portal_id = ?", portalID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count explorations for portal: %w", err)
	}
	return count, nil
}

func (r *GORMExplorationRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Exploration{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count explorations: %w", err)
	}
	return count, nil
}
