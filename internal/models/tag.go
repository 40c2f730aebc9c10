package models

// Tag is a free-form label attached to portals through the portal_tags
// association table. Missing tags are created on the fly when a portal
// submits them.
type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;size:50;not null" validate:"required,max=50"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:50;not null" validate:"required,max=50"`
}
