package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"portales/internal/models"
)

// TagRepository defines read access for tags. Tag creation happens inside
// portal transactions, never through a standalone endpoint.
type TagRepository interface {
	List(trending bool, limit int) ([]models.Tag, error)
	NamesByPrefix(prefix string, limit int) ([]string, error)
}

// GORMTagRepository is a GORM implementation of TagRepository.
type GORMTagRepository struct {
	db *gorm.DB
}

// NewGORMTagRepository creates a new instance of GORMTagRepository.
func NewGORMTagRepository(db *gorm.DB) *GORMTagRepository {
	return &GORMTagRepository{db: db}
}

// List returns tags alphabetically, or by number of associated portals
// descending when trending is requested.
func (r *GORMTagRepository) List(trending bool, limit int) ([]models.Tag, error) {
	tags := []models.Tag{}

	query := r.db.Model(&models.Tag{})
	if trending {
		query = query.
			Joins("JOIN portal_tags ON portal_tags.tag_id = tags.id").
			Group("tags.id").
			Order("COUNT(portal_tags.portal_id) DESC, tags.id ASC")
	} else {
		query = query.Order("name ASC")
	}

	if err := query.Limit(limit).Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// NamesByPrefix returns tag names starting with the prefix, for search
// suggestions.
func (r *GORMTagRepository) NamesByPrefix(prefix string, limit int) ([]string, error) {
	names := []string{}
	err := r.db.Model(&models.Tag{}).
		Where("name LIKE ?", prefix+"%").
		Order("name ASC").
		Limit(limit).
		Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tag suggestions: %w", err)
	}
	return names, nil
}
