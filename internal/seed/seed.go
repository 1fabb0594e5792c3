// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	BcryptCost  int
	ShouldClean bool
}

var categories = []string{
	"technology", "programming", "design", "travel", "food",
	"music", "books", "science", "gaming", "lifestyle",
}

// Seed populates the database with test data. Every seeded user gets the
// password "password123".
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := ClearAll(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	f := NewFactory(db, opts)

	admin, err := f.CreateAdmin()
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	log.Printf("admin user %q created", admin.Username)

	users, err := f.CreateUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	posts, err := f.CreatePosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	comments, err := f.CreateCommentThreads(users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("%d comments created", comments)

	favorites, err := f.CreateFavorites(users, posts)
	if err != nil {
		return fmt.Errorf("failed to create favorites: %w", err)
	}
	log.Printf("%d favorites created", favorites)

	log.Println("Database seeding completed successfully!")
	return nil
}

// ClearAll removes all seeded rows. Deletion order follows foreign keys so it
// also works on databases without cascading constraints.
func ClearAll(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	for _, model := range []any{
		&models.Favorite{},
		&models.Comment{},
		&models.Post{},
		&models.User{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// spreadTime returns a timestamp up to maxDays in the past for a realistic
// created_at distribution.
func spreadTime(r *rand.Rand, maxDays int) time.Time {
	daysBack := r.Intn(maxDays)
	hoursBack := r.Intn(24)
	minsBack := r.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}
