package models

import (
	"time"
)

// User represents a registered account.
type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time  `json:"-"`
	UpdatedAt    time.Time  `json:"-"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `gorm:"not null" json:"firstName"`
	LastName     string     `gorm:"not null" json:"lastName"`
	ProfileImg   string     `json:"profileImg"`
	Gender       string     `json:"gender,omitempty"`
	BirthDate    *time.Time `json:"birthDate,omitempty"`
	Bio          string     `json:"bio,omitempty"`

	// Relationships
	Groups           []Group           `gorm:"foreignKey:CreatorID" json:"groups,omitempty"`
	GroupRequests    []GroupRequest    `gorm:"foreignKey:SenderID" json:"group_requests,omitempty"`
	GroupMemberships []GroupMembership `gorm:"foreignKey:UserID" json:"group_memberships,omitempty"`
}

// Profile is the public projection of a user embedded in API responses.
type Profile struct {
	ID         uint   `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	ProfileImg string `json:"profileImg"`
}

// Profile returns the public fields of the user.
func (u *User) Profile() Profile {
	return Profile{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		ProfileImg: u.ProfileImg,
	}
}
