package models

import (
	"time"
)

// GroupRequest is a join request from a user to a group. At most one row
// exists per (group, sender) pair. Accepted encodes the request state:
// nil is pending, true is accepted, and a missing row means the request
// was declined or cancelled (the row is hard-deleted, never soft-deleted,
// because row absence is itself a state).
type GroupRequest struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time  `json:"-"`
	GroupID    uint       `gorm:"not null;uniqueIndex:idx_group_sender" json:"groupId"`
	SenderID   uint       `gorm:"not null;uniqueIndex:idx_group_sender" json:"senderId"`
	Accepted   *bool      `json:"accepted"`
	AcceptTime *time.Time `json:"acceptTime"`

	// Relationships
	Group  Group `gorm:"foreignKey:GroupID" json:"-"`
	Sender User  `gorm:"foreignKey:SenderID" json:"-"`
}

// IsAccepted reports whether the request has been accepted.
func (r *GroupRequest) IsAccepted() bool {
	return r.Accepted != nil && *r.Accepted
}
