// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Comment represents a comment on a post. Comments may nest: ParentID points
// at another comment on the same post. Deleting a comment removes its whole
// descendant subtree (see repository.CommentRepository).
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Content  string `gorm:"not null" json:"content"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	ParentID *uint  `gorm:"index" json:"parent_id,omitempty"`

	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
