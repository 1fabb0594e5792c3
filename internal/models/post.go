// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents a markdown article in the Inkwell application.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Category    string    `gorm:"not null;index" json:"category"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Author      User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	IsPublished bool      `gorm:"not null;default:false" json:"is_published"`
	// ViewCount only ever increases; increments happen via an atomic
	// storage-level UPDATE, never a read-modify-write.
	ViewCount int     `gorm:"not null;default:0" json:"view_count"`
	CoverURL  *string `json:"cover_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Comments  []Comment  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	Favorites []Favorite `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}
