package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	svc := NewPostService(noopPostRepo())
	ctx := context.Background()
	author := Actor{UserID: 1, Role: models.RoleUser}

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{Title: "t", Content: "c", Category: "general"})
		assertUnauthorizedError(t, err)
	})

	t.Run("empty title", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{Actor: author, Content: "c", Category: "general"})
		assertValidationError(t, err)
	})

	t.Run("title too long", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{
			Actor: author, Title: strings.Repeat("x", 256), Content: "c", Category: "general",
		})
		assertValidationError(t, err)
	})

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{Actor: author, Title: "t", Category: "general"})
		assertValidationError(t, err)
	})

	t.Run("category too long", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{
			Actor: author, Title: "t", Content: "c", Category: strings.Repeat("x", 51),
		})
		assertValidationError(t, err)
	})
}

func TestPostService_CreatePost_Success(t *testing.T) {
	t.Parallel()

	var created *models.Post
	repo := noopPostRepo()
	repo.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = 10
		created = p
		return nil
	}
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return created, nil
	}

	svc := NewPostService(repo)
	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		Actor:    Actor{UserID: 4, Role: models.RoleUser},
		Title:    "Hello",
		Content:  "World",
		Category: "general",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(10), post.ID)
	assert.Equal(t, uint(4), post.AuthorID)
	assert.False(t, post.IsPublished, "posts default to draft")
}

func TestPostService_GetPost_DraftVisibility(t *testing.T) {
	t.Parallel()

	draftRepo := func() *postRepoStub {
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, AuthorID: 1, IsPublished: false}, nil
		}
		return repo
	}

	ctx := context.Background()

	t.Run("hidden from strangers as not found", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(draftRepo())
		_, err := svc.GetPost(ctx, Actor{UserID: 2, Role: models.RoleUser}, 1)
		assertNotFoundError(t, err)
	})

	t.Run("hidden from anonymous", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(draftRepo())
		_, err := svc.GetPost(ctx, Actor{}, 1)
		assertNotFoundError(t, err)
	})

	t.Run("visible to author", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(draftRepo())
		post, err := svc.GetPost(ctx, Actor{UserID: 1, Role: models.RoleUser}, 1)
		require.NoError(t, err)
		assert.Equal(t, uint(1), post.ID)
	})

	t.Run("visible to admin", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(draftRepo())
		_, err := svc.GetPost(ctx, Actor{UserID: 99, Role: models.RoleAdmin}, 1)
		assert.NoError(t, err)
	})
}

func TestPostService_GetPost_ViewCount(t *testing.T) {
	t.Parallel()

	t.Run("successful fetch counts a view", func(t *testing.T) {
		t.Parallel()
		var incremented uint
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, AuthorID: 1, IsPublished: true, ViewCount: 5}, nil
		}
		repo.incrementViewCountFn = func(_ context.Context, id uint) error {
			incremented = id
			return nil
		}
		svc := NewPostService(repo)
		post, err := svc.GetPost(context.Background(), Actor{}, 9)
		require.NoError(t, err)
		assert.Equal(t, uint(9), incremented)
		assert.Equal(t, 6, post.ViewCount, "returned post reflects the new count")
	})

	t.Run("increment failure does not break the read", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.incrementViewCountFn = func(_ context.Context, _ uint) error {
			return errors.New("db gone")
		}
		svc := NewPostService(repo)
		post, err := svc.GetPost(context.Background(), Actor{}, 1)
		require.NoError(t, err)
		assert.NotNil(t, post)
	})
}

func TestPostService_ListPosts_VisibilityRules(t *testing.T) {
	t.Parallel()

	captureRepo := func(captured *repository.ListPostsParams) *postRepoStub {
		repo := noopPostRepo()
		repo.listFn = func(_ context.Context, params repository.ListPostsParams) ([]models.Post, int64, error) {
			*captured = params
			return nil, 0, nil
		}
		return repo
	}

	ctx := context.Background()

	t.Run("anonymous is forced to published only", func(t *testing.T) {
		t.Parallel()
		var params repository.ListPostsParams
		svc := NewPostService(captureRepo(&params))
		_, _, err := svc.ListPosts(ctx, ListPostsInput{PublishedOnly: false})
		require.NoError(t, err)
		assert.True(t, params.PublishedOnly)
	})

	t.Run("browsing another author is forced to published only", func(t *testing.T) {
		t.Parallel()
		var params repository.ListPostsParams
		svc := NewPostService(captureRepo(&params))
		_, _, err := svc.ListPosts(ctx, ListPostsInput{
			Actor:         Actor{UserID: 1, Role: models.RoleUser},
			AuthorID:      2,
			PublishedOnly: false,
		})
		require.NoError(t, err)
		assert.True(t, params.PublishedOnly)
	})

	t.Run("author may browse own drafts", func(t *testing.T) {
		t.Parallel()
		var params repository.ListPostsParams
		svc := NewPostService(captureRepo(&params))
		_, _, err := svc.ListPosts(ctx, ListPostsInput{
			Actor:         Actor{UserID: 2, Role: models.RoleUser},
			AuthorID:      2,
			PublishedOnly: false,
		})
		require.NoError(t, err)
		assert.False(t, params.PublishedOnly)
	})

	t.Run("admin may browse all drafts", func(t *testing.T) {
		t.Parallel()
		var params repository.ListPostsParams
		svc := NewPostService(captureRepo(&params))
		_, _, err := svc.ListPosts(ctx, ListPostsInput{
			Actor:         Actor{UserID: 1, Role: models.RoleAdmin},
			PublishedOnly: false,
		})
		require.NoError(t, err)
		assert.False(t, params.PublishedOnly)
	})

	t.Run("pagination is normalized", func(t *testing.T) {
		t.Parallel()
		var params repository.ListPostsParams
		svc := NewPostService(captureRepo(&params))
		_, _, err := svc.ListPosts(ctx, ListPostsInput{Page: 3, PageSize: 5})
		require.NoError(t, err)
		assert.Equal(t, 5, params.Limit)
		assert.Equal(t, 10, params.Offset)
	})
}

func TestPostService_UpdatePost_Ownership(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	newTitle := "Updated"

	t.Run("stranger forbidden", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo())
		_, err := svc.UpdatePost(ctx, UpdatePostInput{
			Actor:  Actor{UserID: 2, Role: models.RoleUser},
			PostID: 1,
			Title:  &newTitle,
		})
		assertForbiddenError(t, err)
	})

	t.Run("author can update", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo())
		post, err := svc.UpdatePost(ctx, UpdatePostInput{
			Actor:  Actor{UserID: 1, Role: models.RoleUser},
			PostID: 1,
			Title:  &newTitle,
		})
		require.NoError(t, err)
		assert.Equal(t, newTitle, post.Title)
	})

	t.Run("publish flag flips", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, AuthorID: 1, IsPublished: false}, nil
		}
		svc := NewPostService(repo)
		published := true
		post, err := svc.UpdatePost(ctx, UpdatePostInput{
			Actor:       Actor{UserID: 1, Role: models.RoleUser},
			PostID:      1,
			IsPublished: &published,
		})
		require.NoError(t, err)
		assert.True(t, post.IsPublished)
	})

	t.Run("empty content rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo())
		empty := ""
		_, err := svc.UpdatePost(ctx, UpdatePostInput{
			Actor:   Actor{UserID: 1, Role: models.RoleUser},
			PostID:  1,
			Content: &empty,
		})
		assertValidationError(t, err)
	})
}

func TestPostService_DeletePost_Ownership(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("stranger forbidden", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo())
		err := svc.DeletePost(ctx, Actor{UserID: 2, Role: models.RoleUser}, 1)
		assertForbiddenError(t, err)
	})

	t.Run("author allowed", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo())
		assert.NoError(t, svc.DeletePost(ctx, Actor{UserID: 1, Role: models.RoleUser}, 1))
	})

	t.Run("admin allowed", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo())
		assert.NoError(t, svc.DeletePost(ctx, Actor{UserID: 99, Role: models.RoleAdmin}, 1))
	})
}

func TestPostService_DeletePosts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("non-admin forbidden", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo())
		_, err := svc.DeletePosts(ctx, Actor{UserID: 1, Role: models.RoleUser}, []uint{1, 2})
		assertForbiddenError(t, err)
	})

	t.Run("empty ids rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo())
		_, err := svc.DeletePosts(ctx, Actor{UserID: 1, Role: models.RoleAdmin}, nil)
		assertValidationError(t, err)
	})

	t.Run("admin batch delete", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo())
		deleted, err := svc.DeletePosts(ctx, Actor{UserID: 1, Role: models.RoleAdmin}, []uint{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, int64(3), deleted)
	})
}
