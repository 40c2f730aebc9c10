package models

// Category groups portals. Name and slug are both globally unique; a
// category cannot be deleted while any portal references it.
type Category struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex;size:100;not null" validate:"required,max=100"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:100;not null" validate:"required,max=100"`
	Description string `json:"description" gorm:"type:text"`
	Icon        string `json:"icon" gorm:"size:50" validate:"omitempty,max=50"`
	Color       string `json:"color" gorm:"size:7" validate:"omitempty,max=7"` // hex color code
}
