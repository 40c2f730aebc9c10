package models

import (
	"time"

	"gorm.io/datatypes"
)

// Portal is a user-created shareable media artifact with location and
// category metadata. Reviews cascade with the portal; explorations keep
// their rows but lose the reference.
type Portal struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Title        string         `json:"title" gorm:"size:200;not null" validate:"required,max=200"`
	Description  string         `json:"description" gorm:"type:text"`
	ImageURL     string         `json:"image_url" gorm:"size:500;not null" validate:"required,max=500"`
	ThumbnailURL string         `json:"thumbnail_url" gorm:"size:500" validate:"omitempty,max=500"`
	CreatorID    string         `json:"creator_id" gorm:"size:128;not null;index" validate:"required"`
	CategoryID   *uint          `json:"category_id" gorm:"index"`
	Location     string         `json:"location" gorm:"size:200" validate:"omitempty,max=200"`
	Latitude     *float64       `json:"latitude"`
	Longitude    *float64       `json:"longitude"`
	IsPublic     bool           `json:"is_public"`
	IsActive     bool           `json:"is_active"`
	IsFeatured   bool           `json:"is_featured"`
	AIAnalysis   datatypes.JSON `json:"ai_analysis"`
	AREffects    datatypes.JSON `json:"ar_effects"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	Creator  *User     `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Tags     []Tag     `json:"tags" gorm:"many2many:portal_tags;"`
}
