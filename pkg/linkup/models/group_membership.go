package models

import (
	"time"
)

// GroupMembership records that a user belongs to a group. Its existence is
// the source of truth for membership, independent of the (possibly stale)
// request row that led to it. Accepting a request does not delete the
// request row; declining one does not delete the membership.
type GroupMembership struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	GroupID   uint      `gorm:"not null;uniqueIndex:idx_group_user" json:"groupId"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_group_user" json:"userId"`

	// Relationships
	Group Group `gorm:"foreignKey:GroupID" json:"-"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}
