package models

import (
	"fmt"
	"time"
)

// Role is the closed set of account roles. Unknown values are rejected
// at the boundary instead of being carried around as free text.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) IsAdmin() bool { return r == RoleAdmin }

// User is the account record. Email carries a DB unique index so two
// concurrent registrations with the same address cannot both succeed.
// If EmailConfirmed is true the token and expiry are always cleared.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Phone        string    `gorm:"size:20" json:"phone"`
	Role         Role      `gorm:"size:20;not null;default:'User'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`

	EmailConfirmed        bool       `gorm:"not null;default:false" json:"email_confirmed"`
	EmailConfirmToken     *string    `gorm:"size:64" json:"-"`
	EmailConfirmExpiresAt *time.Time `json:"-"`

	Orders []Order `gorm:"foreignKey:UserID" json:"-"`
}
