// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedPassword is the password shared by every seeded account.
const SeedPassword = "password123"

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak randomness is fine for seeding
	return &Factory{db: db, opts: opts, rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (f *Factory) hashPassword() string {
	cost := f.opts.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, _ := bcrypt.GenerateFromPassword([]byte(SeedPassword), cost)
	return string(hashed)
}

// CreateAdmin persists the well-known admin account.
func (f *Factory) CreateAdmin() (*models.User, error) {
	admin := &models.User{
		Username: "admin",
		Email:    "admin@inkwell.local",
		Password: f.hashPassword(),
		Role:     models.RoleAdmin,
	}
	if err := f.db.Create(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: f.hashPassword(),
		Role:     models.RoleUser,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUsers persists count sample users.
func (f *Factory) CreateUsers(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// CreatePost constructs and persists a sample `models.Post` for the given
// author. Roughly one post in five stays a draft.
func (f *Factory) CreatePost(author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	cover := fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", gofakeit.UUID())
	post := &models.Post{
		Title:       gofakeit.Sentence(5),
		Content:     gofakeit.Paragraph(3, 5, 12, "\n\n"),
		Category:    categories[f.rand.Intn(len(categories))],
		AuthorID:    author.ID,
		IsPublished: f.rand.Intn(5) != 0,
		ViewCount:   f.rand.Intn(500),
		CoverURL:    &cover,
		CreatedAt:   spreadTime(f.rand, 90),
	}

	for _, override := range overrides {
		override(post)
	}
	// Drafts have no views yet.
	if !post.IsPublished {
		post.ViewCount = 0
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePosts persists count posts spread across the given authors.
func (f *Factory) CreatePosts(authors []*models.User, count int) ([]*models.Post, error) {
	if len(authors) == 0 {
		return nil, fmt.Errorf("no authors to assign posts to")
	}
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := authors[f.rand.Intn(len(authors))]
		post, err := f.CreatePost(author)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// CreateComment constructs and persists a sample `models.Comment` on the
// provided post authored by the provided user.
func (f *Factory) CreateComment(user *models.User, post *models.Post, parent *models.Comment, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(8),
		UserID:  user.ID,
		PostID:  post.ID,
	}
	if parent != nil {
		comment.ParentID = &parent.ID
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateCommentThreads seeds each published post with a small comment thread:
// a few top-level comments, some with replies. Returns how many comments were
// created.
func (f *Factory) CreateCommentThreads(users []*models.User, posts []*models.Post) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}

	created := 0
	for _, post := range posts {
		if !post.IsPublished {
			continue
		}
		for i := 0; i < f.rand.Intn(4); i++ {
			commenter := users[f.rand.Intn(len(users))]
			top, err := f.CreateComment(commenter, post, nil)
			if err != nil {
				return created, err
			}
			created++

			for j := 0; j < f.rand.Intn(3); j++ {
				replier := users[f.rand.Intn(len(users))]
				if _, err := f.CreateComment(replier, post, top); err != nil {
					return created, err
				}
				created++
			}
		}
	}
	return created, nil
}

// CreateFavorite persists a favorite from `user` on `post`.
func (f *Factory) CreateFavorite(user *models.User, post *models.Post) error {
	fav := &models.Favorite{
		UserID: user.ID,
		PostID: post.ID,
	}
	return f.db.Create(fav).Error
}

// CreateFavorites gives each user a random handful of favorited posts.
// Returns how many favorites were created.
func (f *Factory) CreateFavorites(users []*models.User, posts []*models.Post) (int, error) {
	if len(posts) == 0 {
		return 0, nil
	}

	created := 0
	for _, user := range users {
		seen := map[uint]bool{}
		for i := 0; i < f.rand.Intn(6); i++ {
			post := posts[f.rand.Intn(len(posts))]
			if !post.IsPublished || seen[post.ID] {
				continue
			}
			if err := f.CreateFavorite(user, post); err != nil {
				return created, err
			}
			seen[post.ID] = true
			created++
		}
	}
	return created, nil
}
