package models

import "time"

// Review is one user's rating of one portal. The composite unique index
// enforces at most one review per (portal, user) pair.
type Review struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	PortalID     uint      `json:"portal_id" gorm:"not null;uniqueIndex:idx_user_portal_review"`
	UserID       string    `json:"user_id" gorm:"size:128;not null;uniqueIndex:idx_user_portal_review"`
	Rating       int       `json:"rating" gorm:"not null" validate:"required,min=1,max=5"`
	Title        string    `json:"title" gorm:"size:200" validate:"omitempty,max=200"`
	Comment      string    `json:"comment" gorm:"type:text"`
	IsVerified   bool      `json:"is_verified"`
	HelpfulCount int       `json:"helpful_count"`
	CreatedAt    time.Time `json:"created_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
