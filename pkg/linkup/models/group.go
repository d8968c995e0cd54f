package models

import (
	"time"
)

// Group represents a user-created group. The creator owns the group: only
// they may edit or delete it and adjudicate join requests.
type Group struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
	CreatorID   uint      `gorm:"not null;index" json:"creatorId"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Private     bool      `json:"private"`
	Image       string    `json:"image"` // filesystem path of the group image

	// Relationships
	Creator  User              `gorm:"foreignKey:CreatorID" json:"-"`
	Requests []GroupRequest    `gorm:"foreignKey:GroupID" json:"-"`
	Members  []GroupMembership `gorm:"foreignKey:GroupID" json:"-"`
}
