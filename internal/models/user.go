package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;not null;default:'client'" json:"role"`
	Active       bool   `gorm:"not null;default:true" json:"is_active"`

	// IsAdmin is an override flag independent of Role; nil means never set.
	IsAdmin *bool `json:"is_admin,omitempty"`

	Phone       *string `gorm:"size:25" json:"phone,omitempty"`
	Address     *string `gorm:"size:255" json:"address,omitempty"`
	PhotoURL    *string `gorm:"size:500" json:"photo_url,omitempty"`
	Bio         *string `gorm:"type:text" json:"bio,omitempty"`
	Specialties *string `gorm:"type:text" json:"specialties,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasAdminOverride reports whether the override flag is set to true.
func (u *User) HasAdminOverride() bool {
	return u.IsAdmin != nil && *u.IsAdmin
}
