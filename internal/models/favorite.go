package models

import (
	"time"
)

// Favorite marks a post as favorited by a user. The (UserID, PostID) pair is
// the primary key; existence of the row is the favorited state. Rows are hard
// deleted on toggle-off.
type Favorite struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	PostID    uint      `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Post Post `gorm:"foreignKey:PostID" json:"-"`
}
