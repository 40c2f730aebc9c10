package models

import "time"

// Exploration is a logged scan/AR event, optionally tied to a portal.
// The portal reference is cleared (not cascaded) when the portal goes away.
type Exploration struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	UserID              string    `json:"user_id" gorm:"size:128;not null;index" validate:"required"`
	PortalID            *uint     `json:"portal_id" gorm:"index"`
	ScanImageURL        string    `json:"scan_image_url" gorm:"size:500" validate:"omitempty,max=500"`
	DetectionConfidence *float64  `json:"detection_confidence"`
	ARActivated         bool      `json:"ar_activated"`
	Latitude            *float64  `json:"latitude"`
	Longitude           *float64  `json:"longitude"`
	CreatedAt           time.Time `json:"created_at"`

	Portal *Portal `json:"portal,omitempty" gorm:"foreignKey:PortalID"`
}
