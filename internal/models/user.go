// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Role is the authorization role attached to a user account.
type Role string

const (
	// RoleUser is the default role for self-registered accounts.
	RoleUser Role = "user"
	// RoleAdmin grants access to management endpoints and overrides ownership checks.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered account in the Inkwell application.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      Role      `gorm:"type:varchar(16);not null;default:user" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Posts     []Post    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
