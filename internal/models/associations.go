package models

import "time"

// Explicit association models for the many-to-many relations. Composite
// primary keys double as the uniqueness guard for the toggle endpoints:
// a concurrent duplicate insert fails on the key instead of creating a
// second membership row.

// PortalLike is a row in user_portal_likes.
type PortalLike struct {
	UserID    string    `gorm:"primaryKey;size:128"`
	PortalID  uint      `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (PortalLike) TableName() string { return "user_portal_likes" }

// PortalFavorite is a row in user_portal_favorites.
type PortalFavorite struct {
	UserID    string    `gorm:"primaryKey;size:128"`
	PortalID  uint      `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (PortalFavorite) TableName() string { return "user_portal_favorites" }

// UserFollow is a row in the self-referential user_follows table.
// FollowerID follows FollowedID.
type UserFollow struct {
	FollowerID string    `gorm:"primaryKey;size:128"`
	FollowedID string    `gorm:"primaryKey;size:128"`
	CreatedAt  time.Time
}

func (UserFollow) TableName() string { return "user_follows" }

// PortalTag is a row in portal_tags. GORM uses this table for the
// Portal.Tags many-to-many as well; declaring the model keeps the join
// table under AutoMigrate control and queryable directly.
type PortalTag struct {
	PortalID uint `gorm:"primaryKey"`
	TagID    uint `gorm:"primaryKey"`
}

func (PortalTag) TableName() string { return "portal_tags" }
