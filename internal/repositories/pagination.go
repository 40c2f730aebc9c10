package repositories

import (
	"fmt"

	"gorm.io/gorm"
)

const (
	// DefaultPerPage is used when the caller sends no page size (or a
	// non-positive one).
	DefaultPerPage = 20
	// MaxPerPage caps the page size regardless of what the caller asks
	// for, to bound response size and query cost.
	MaxPerPage = 100
)

// Pagination is the metadata block returned next to every paginated list.
type Pagination struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

// Paginate runs the given filtered query twice: once for the total count
// (ignoring page bounds) and once for the bounded page, applying the
// caller's ordering only to the latter. An out-of-range page yields an
// empty item slice with the correct total, never an error.
func Paginate[T any](query *gorm.DB, order string, page, perPage int) ([]T, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, Pagination{}, fmt.Errorf("failed to count rows for pagination: %w", err)
	}

	items := []T{}
	err := query.Session(&gorm.Session{}).
		Order(order).
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&items).Error
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("failed to fetch page %d: %w", page, err)
	}

	pages := int((total + int64(perPage) - 1) / int64(perPage))

	return items, Pagination{
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}, nil
}
