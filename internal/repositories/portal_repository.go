package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"portales/internal/helpers"
	"portales/internal/models"
)

// PortalFilters carries the optional predicates of the portal listing.
// Zero values mean "no filter".
type PortalFilters struct {
	CategoryID *uint
	CreatorID  string
	Featured   *bool
	Search     string
}

// PortalRepository defines data access for portals and their tag
// associations. Multi-step mutations run inside a single transaction so a
// failure never leaves a portal without its tags or half a cascade behind.
type PortalRepository interface {
	GetByID(id uint) (*models.Portal, error)
	List(filters PortalFilters, page, perPage int) ([]models.Portal, Pagination, error)
	CreateWithTags(portal *models.Portal, tagNames []string) error
	Update(portal *models.Portal, tagNames *[]string) error
	DeleteCascade(id uint) error
	SearchPage(q string, page, perPage int) ([]models.Portal, Pagination, error)
	SearchTop(q string, limit int) ([]models.Portal, error)
	TitlesByPrefix(prefix string, limit int) ([]string, error)
	CountByCreator(creatorID string) (int64, error)
	CountActive() (int64, error)
	CountCreatedBetween(start, end time.Time) (int64, error)
}

// GORMPortalRepository is a GORM implementation of PortalRepository.
type GORMPortalRepository struct {
	db *gorm.DB
}

// NewGORMPortalRepository creates a new instance of GORMPortalRepository.
func NewGORMPortalRepository(db *gorm.DB) *GORMPortalRepository {
	return &GORMPortalRepository{db: db}
}

func (r *GORMPortalRepository) withAssociations() *gorm.DB {
	return r.db.Preload("Creator").Preload("Category").Preload("Tags")
}

// GetByID returns (nil, nil) when the portal does not exist. Creator,
// category and tags are eagerly loaded for response shaping.
func (r *GORMPortalRepository) GetByID(id uint) (*models.Portal, error) {
	var portal models.Portal
	if err := r.withAssociations().First(&portal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get portal %d: %w", id, err)
	}
	return &portal, nil
}

// List returns public, active portals matching the filters, newest first.
func (r *GORMPortalRepository) List(filters PortalFilters, page, perPage int) ([]models.Portal, Pagination, error) {
	query := r.withAssociations().Model(&models.Portal{}).
		Where("is_public = ? AND is_active = ?", true, true)

	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.CreatorID != "" {
		query = query.Where("creator_id = ?", filters.CreatorID)
	}
	if filters.Featured != nil {
		query = query.Where("is_featured = ?", *filters.Featured)
	}
	if filters.Search != "" {
		query = query.Where("title LIKE ?", "%"+filters.Search+"%")
	}

	return Paginate[models.Portal](query, "created_at DESC, id DESC", page, perPage)
}

// CreateWithTags inserts the portal and attaches its tags, creating any
// tag that does not exist yet, all in one transaction.
func (r *GORMPortalRepository) CreateWithTags(portal *models.Portal, tagNames []string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(portal).Error; err != nil {
			return err
		}
		return attachTags(tx, portal.ID, tagNames)
	})
	if err != nil {
		return fmt.Errorf("failed to create portal: %w", err)
	}
	return nil
}

// Update saves the mutated portal. When tagNames is non-nil the tag set is
// replaced wholesale, mirroring how tag arrays arrive in update requests.
func (r *GORMPortalRepository) Update(portal *models.Portal, tagNames *[]string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Creator", "Category", "Tags").Save(portal).Error; err != nil {
			return err
		}
		if tagNames == nil {
			return nil
		}
		if err := tx.Where("portal_id = ?", portal.ID).Delete(&models.PortalTag{}).Error; err != nil {
			return err
		}
		return attachTags(tx, portal.ID, *tagNames)
	})
	if err != nil {
		return fmt.Errorf("failed to update portal %d: %w", portal.ID, err)
	}
	return nil
}

// DeleteCascade removes the portal together with its reviews and
// like/favorite/tag memberships, and clears exploration references.
// Explicit deletes rather than FK cascades keep the semantics identical
// across backends.
func (r *GORMPortalRepository) DeleteCascade(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("portal_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("portal_id = ?", id).Delete(&models.PortalLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("portal_id = ?", id).Delete(&models.PortalFavorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("portal_id = ?", id).Delete(&models.PortalTag{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Exploration{}).Where("portal_id = ?", id).
			Update("portal_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Portal{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete portal %d: %w", id, err)
	}
	return nil
}

func (r *GORMPortalRepository) searchQuery(q string) *gorm.DB {
	pattern := "%" + q + "%"
	return r.withAssociations().Model(&models.Portal{}).
		Where("is_public = ? AND is_active = ?", true, true).
		Where("title LIKE ? OR description LIKE ?", pattern, pattern)
}

// SearchPage returns a full paginated listing of public, active portals
// matching the query by title or description substring.
func (r *GORMPortalRepository) SearchPage(q string, page, perPage int) ([]models.Portal, Pagination, error) {
	return Paginate[models.Portal](r.searchQuery(q), "created_at DESC, id DESC", page, perPage)
}

// SearchTop returns the first few matches only, for the combined search
// preview.
func (r *GORMPortalRepository) SearchTop(q string, limit int) ([]models.Portal, error) {
	portals := []models.Portal{}
	err := r.searchQuery(q).Order("created_at DESC, id DESC").Limit(limit).Find(&portals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search portals: %w", err)
	}
	return portals, nil
}

// TitlesByPrefix returns titles of public, active portals starting with
// the prefix, for search suggestions.
func (r *GORMPortalRepository) TitlesByPrefix(prefix string, limit int) ([]string, error) {
	titles := []string{}
	err := r.db.Model(&models.Portal{}).
		Where("is_public = ? AND is_active = ?", true, true).
		Where("title LIKE ?", prefix+"%").
		Order("title ASC").
		Limit(limit).
		Pluck("title", &titles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch title suggestions: %w", err)
	}
	return titles, nil
}

func (r *GORMPortalRepository) CountByCreator(creatorID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Portal{}).Where("creator_id = ?", creatorID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count portals by creator: %w", err)
	}
	return count, nil
}

// CountActive counts public, active portals, the population every public
// listing and the dashboard report on.
func (r *GORMPortalRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Portal{}).
		Where("is_public = ? AND is_active = ?", true, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active portals: %w", err)
	}
	return count, nil
}

func (r *GORMPortalRepository) CountCreatedBetween(start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Portal{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count portals by creation date: %w", err)
	}
	return count, nil
}

// attachTags resolves tag names to rows (creating missing tags by slug)
// and inserts the portal_tags memberships. Duplicate names in one request
// collapse to a single membership.
func attachTags(tx *gorm.DB, portalID uint, tagNames []string) error {
	seen := map[string]bool{}
	for _, name := range tagNames {
		slug := helpers.CreateSlug(name)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true

		var tag models.Tag
		err := tx.Where("slug = ?", slug).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = models.Tag{Name: name, Slug: slug}
			if err := tx.Create(&tag).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if err := tx.Create(&models.PortalTag{PortalID: portalID, TagID: tag.ID}).Error; err != nil {
			return err
		}
	}
	return nil
}
