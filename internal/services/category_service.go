package services

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"portales/internal/helpers"
	"portales/internal/models"
	"portales/internal/repositories"
)

// CategoryService handles the category taxonomy.
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
	validate     *validator.Validate
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, validate: validator.New()}
}

// ListCategories returns every category ordered by name, each with its
// portal count from a single grouped query.
func (s *CategoryService) ListCategories() (map[string]interface{}, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}

	dicts, err := s.categoryDicts(categories)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"categories": dicts}, nil
}

// GetCategory returns one category with its portal count.
func (s *CategoryService) GetCategory(id uint) (map[string]interface{}, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, notFoundError("category not found")
	}

	count, err := s.categoryRepo.CountPortals(id)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"category": categoryDict(category, count)}, nil
}

// CreateCategory creates a category, deriving the slug from the name.
func (s *CategoryService) CreateCategory(data map[string]interface{}) (map[string]interface{}, error) {
	name, _ := fieldString(data, "name")
	description, _ := fieldString(data, "description")
	icon, _ := fieldString(data, "icon")
	color, _ := fieldString(data, "color")

	slug := helpers.CreateSlug(name)
	existing, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, duplicateError("a category with this name already exists")
	}

	category := &models.Category{
		Name:        name,
		Slug:        slug,
		Description: description,
		Icon:        icon,
		Color:       color,
	}
	if err := s.validate.Struct(category); err != nil {
		return nil, validationError(fmt.Sprintf("invalid category: %v", err))
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return map[string]interface{}{"category": categoryDict(category, 0)}, nil
}

// UpdateCategory applies a partial update. Renaming re-derives the slug
// and must not collide with another category.
func (s *CategoryService) UpdateCategory(id uint, data map[string]interface{}) (map[string]interface{}, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, notFoundError("category not found")
	}

	if name, ok := fieldString(data, "name"); ok {
		slug := helpers.CreateSlug(name)
		existing, err := s.categoryRepo.GetBySlug(slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, duplicateError("a category with this name already exists")
		}
		category.Name = name
		category.Slug = slug
	}
	if description, ok := fieldString(data, "description"); ok {
		category.Description = description
	}
	if icon, ok := fieldString(data, "icon"); ok {
		category.Icon = icon
	}
	if color, ok := fieldString(data, "color"); ok {
		category.Color = color
	}

	if err := s.validate.Struct(category); err != nil {
		return nil, validationError(fmt.Sprintf("invalid category: %v", err))
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}

	count, err := s.categoryRepo.CountPortals(id)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"category": categoryDict(category, count)}, nil
}

// DeleteCategory removes a category that no portal references.
func (s *CategoryService) DeleteCategory(id uint) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return notFoundError("category not found")
	}

	count, err := s.categoryRepo.CountPortals(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return validationError("cannot delete a category with associated portals")
	}

	return s.categoryRepo.Delete(id)
}

func (s *CategoryService) categoryDicts(categories []models.Category) ([]map[string]interface{}, error) {
	ids := make([]uint, 0, len(categories))
	for _, category := range categories {
		ids = append(ids, category.ID)
	}
	counts, err := s.categoryRepo.PortalCounts(ids)
	if err != nil {
		return nil, err
	}

	dicts := make([]map[string]interface{}, 0, len(categories))
	for i := range categories {
		dicts = append(dicts, categoryDict(&categories[i], counts[categories[i].ID]))
	}
	return dicts, nil
}
