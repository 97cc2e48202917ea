package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles available to users. Authorization checks compare against these.
const (
	RoleAdmin  = "admin"
	RoleAuthor = "author"
	RoleEditor = "editor"
	RoleUser   = "user"
	RoleGuest  = "guest"
)

// User represents an account. Passwords are stored as bcrypt hashes only.
// Emails are normalized to lowercase before storage so the unique index is
// effectively case-insensitive.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	Name         string    `gorm:"size:128" json:"name"`
	Role         string    `gorm:"size:32;default:'user'" json:"role"`
	Active       bool      `gorm:"default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Posts        []Post    `gorm:"foreignKey:AuthorID" json:"-"`
}

// ValidRole reports whether s is one of the known roles.
func ValidRole(s string) bool {
	switch s {
	case RoleAdmin, RoleAuthor, RoleEditor, RoleUser, RoleGuest:
		return true
	}
	return false
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
