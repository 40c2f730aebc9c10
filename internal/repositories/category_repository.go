package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"portales/internal/models"
)

// CategoryRepository defines data access for categories.
type CategoryRepository interface {
	List() ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
	CountPortals(id uint) (int64, error)
	PortalCounts(ids []uint) (map[uint]int64, error)
	SearchPage(q string, page, perPage int) ([]models.Category, Pagination, error)
	SearchTop(q string, limit int) ([]models.Category, error)
}

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

func (r *GORMCategoryRepository) List() ([]models.Category, error) {
	categories := []models.Category{}
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *GORMCategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category %d: %w", id, err)
	}
	return &category, nil
}

func (r *GORMCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	}
	return &category, nil
}

func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *GORMCategoryRepository) Update(category *models.Category) error {
	if err := r.db.Save(category).Error; err != nil {
		return fmt.Errorf("failed to update category %d: %w", category.ID, err)
	}
	return nil
}

func (r *GORMCategoryRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.Category{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}
	return nil
}

// CountPortals counts portals referencing the category; the deletion
// guard depends on it.
func (r *GORMCategoryRepository) CountPortals(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Portal{}).Where("category_id = ?", id).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count portals for category %d: %w", id, err)
	}
	return count, nil
}

// PortalCounts batch-counts portal membership for a set of categories in
// one grouped query, so list responses avoid a count per row.
func (r *GORMCategoryRepository) PortalCounts(ids []uint) (map[uint]int64, error) {
	counts := map[uint]int64{}
	if len(ids) == 0 {
		return counts, nil
	}

	rows := []struct {
		CategoryID uint
		Count      int64
	}{}
	err := r.db.Model(&models.Portal{}).
		Select("category_id, COUNT(*) AS count").
		Where("category_id IN ?", ids).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to batch-count portals per category: %w", err)
	}

	for _, row := range rows {
		counts[row.CategoryID] = row.Count
	}
	return counts, nil
}

func (r *GORMCategoryRepository) searchQuery(q string) *gorm.DB {
	pattern := "%" + q + "%"
	return r.db.Model(&models.Category{}).
		Where("name LIKE ? OR description LIKE ?", pattern, pattern)
}

// SearchPage returns a full paginated listing of categories matching the
// query by name or description substring, ordered by name.
func (r *GORMCategoryRepository) SearchPage(q string, page, perPage int) ([]models.Category, Pagination, error) {
	return Paginate[models.Category](r.searchQuery(q), "name ASC", page, perPage)
}

// SearchTop returns the first few matches only, for the combined search
// preview.
func (r *GORMCategoryRepository) SearchTop(q string, limit int) ([]models.Category, error) {
	categories := []models.Category{}
	err := r.searchQuery(q).Order("name ASC").Limit(limit).Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search categories: %w", err)
	}
	return categories, nil
}
