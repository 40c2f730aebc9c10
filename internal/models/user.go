package models

import "time"

// User is a profile for an identity issued by the external identity
// provider. The primary key is the provider's stable identity string,
// never generated locally.
type User struct {
	ID         string    `json:"id" gorm:"primaryKey;size:128"`
	Name       string    `json:"name" gorm:"size:100;not null" validate:"required,max=100"`
	Email      string    `json:"email" gorm:"uniqueIndex;size:120;not null" validate:"required,email"`
	AvatarURL  string    `json:"avatar_url" gorm:"size:500" validate:"omitempty,max=500"`
	Bio        string    `json:"bio" gorm:"type:text"`
	Location   string    `json:"location" gorm:"size:200" validate:"omitempty,max=200"`
	Website    string    `json:"website" gorm:"size:500" validate:"omitempty,max=500"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}
