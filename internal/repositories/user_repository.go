package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"portales/internal/models"
)

// UserRepository defines data access for user profiles.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	SearchPage(q string, page, perPage int) ([]models.User, Pagination, error)
	SearchTop(q string, limit int) ([]models.User, error)
	Count() (int64, error)
	CountCreatedBetween(start, end time.Time) (int64, error)
}

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{db: db}
}

func (r *GORMUserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID returns (nil, nil) when no user exists with the given identity.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return &user, nil
}

func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *GORMUserRepository) Update(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}
	return nil
}

func (r *GORMUserRepository) searchQuery(q string) *gorm.DB {
	pattern := "%" + q + "%"
	return r.db.Model(&models.User{}).
		Where("name LIKE ? OR bio LIKE ?", pattern, pattern)
}

// SearchPage returns a full paginated listing of users matching the query
// by name or bio substring.
func (r *GORMUserRepository) SearchPage(q string, page, perPage int) ([]models.User, Pagination, error) {
	return Paginate[models.User](r.searchQuery(q), "created_at DESC", page, perPage)
}

// SearchTop returns the first few matches only, for the combined search
// preview.
func (r *GORMUserRepository) SearchTop(q string, limit int) ([]models.User, error) {
	users := []models.User{}
	err := r.searchQuery(q).Order("created_at DESC").Limit(limit).Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}

func (r *GORMUserRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *GORMUserRepository) CountCreatedBetween(start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count users by creation date: %w", err)
	}
	return count, nil
}
