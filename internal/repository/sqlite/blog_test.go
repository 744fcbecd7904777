package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

var day0 = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

// seedBlogs creates n blogs one day apart starting at day0, titled "post 0".."post n-1".
func seedBlogs(t *testing.T, db *DB, category *model.Category, n int) []*model.Blog {
	t.Helper()
	fixedClock(db, day0, 24*time.Hour)
	blogs := make([]*model.Blog, n)
	for i := range n {
		blogs[i] = createTestBlog(t, db, category, fmt.Sprintf("post %d", i), "")
	}
	return blogs
}

func titles(blogs []model.Blog) []string {
	out := make([]string, len(blogs))
	for i, b := range blogs {
		out[i] = b.Title
	}
	return out
}

func TestFindBlog_ScopedToUserAndCategory(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "o@example.com", "owner")
	other := createTestUser(t, db, "x@example.com", "other")
	category := createTestCategory(t, db, owner, "tech", "")
	otherCategory := createTestCategory(t, db, owner, "life", "")
	blog := createTestBlog(t, db, category, "hello", "world")

	found, err := db.Blogs().FindBlog(context.Background(), blog.ID, category.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "world", found.Description)
	assert.Equal(t, category.ID, found.Category)

	_, err = db.Blogs().FindBlog(context.Background(), blog.ID, category.ID, other.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "wrong user")

	_, err = db.Blogs().FindBlog(context.Background(), blog.ID, otherCategory.ID, owner.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "wrong category")
}

func TestListBlogs_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "o@example.com", "owner")
	category := createTestCategory(t, db, owner, "tech", "")
	seedBlogs(t, db, category, 3)

	blogs, err := db.Blogs().ListBlogs(context.Background(), repository.BlogFilter{
		UserID: owner.ID, CategoryID: category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"post 2", "post 1", "post 0"}, titles(blogs))
}

func TestListBlogs_Pagination(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "o@example.com", "owner")
	category := createTestCategory(t, db, owner, "tech", "")
	seedBlogs(t, db, category, 12)

	// page=2&limit=5 → skip the 5 newest
	blogs, err := db.Blogs().ListBlogs(context.Background(), repository.BlogFilter{
		UserID: owner.ID, CategoryID: category.ID,
		ListOptions: repository.ListOptions{Limit: 5, Offset: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"post 6", "post 5", "post 4", "post 3", "post 2"}, titles(blogs))

	blogs, err = db.Blogs().ListBlogs(context.Background(), repository.BlogFilter{
		UserID: owner.ID, CategoryID: category.ID,
		ListOptions: repository.ListOptions{Limit: 5, Offset: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"post 1", "post 0"}, titles(blogs))
}

func TestListBlogs_DateRangeInclusive(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "o@example.com", "owner")
	category := createTestCategory(t, db, owner, "tech", "")
	seedBlogs(t, db, category, 5) // day0 .. day0+4d

	from := day0.Add(24 * time.Hour)
	to := day0.Add(3 * 24 * time.Hour)

	tests := []struct {
		name     string
		from, to *time.Time
		want     []string
	}{
		{"both bounds", &from, &to, []string{"post 3", "post 2", "post 1"}},
		{"lower bound only", &from, nil, []string{"post 4", "post 3", "post 2", "post 1"}},
		{"upper bound only", nil, &to, []string{"post 3", "post 2", "post 1", "post 0"}},
		{"unbounded", nil, nil, []string{"post 4", "post 3", "post 2", "post 1", "post 0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blogs, err := db.Blogs().ListBlogs(context.Background(), repository.BlogFilter{
				UserID: owner.ID, CategoryID: category.ID,
				ListOptions: repository.ListOptions{From: tt.from, To: tt.to},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(blogs))
		})
	}
}

func TestListBlogs_Keywords(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "o@example.com", "owner")
	category := createTestCategory(t, db, owner, "tech", "")
	fixedClock(db, day0, time.Hour)
	createTestBlog(t, db, category, "Learning Go", "channels and goroutines")
	createTestBlog(t, db, category, "Cooking", "pasta with GO-go sauce")
	createTestBlog(t, db, category, "Gardening", "tomatoes")
	createTestBlog(t, db, category, "100% literal", "")

	list := func(keywords string) []string {
		blogs, err := db.Blogs().ListBlogs(context.Background(), repository.BlogFilter{
			UserID: owner.ID, CategoryID: category.ID,
			ListOptions: repository.ListOptions{Keywords: keywords},
		})
		require.NoError(t, err)
		return titles(blogs)
	}

	assert.Equal(t, []string{"Cooking", "Learning Go"}, list("go"))
	assert.Equal(t, []string{"Gardening"}, list("TOMATO"))
	assert.Equal(t, []string{"100% literal"}, list("0%"))
	assert.Empty(t, list("nothing matches"))
}

func TestUpdateBlog(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "o@example.com", "owner")
	category := createTestCategory(t, db, owner, "tech", "")
	blog := createTestBlog(t, db, category, "draft", "")

	updated, err := db.Blogs().UpdateBlog(context.Background(), blog.ID, category.ID, owner.ID,
		model.ContentPatch{Title: "final", Description: "done"})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, "done", updated.Description)
	assert.Equal(t, blog.CreatedAt, updated.CreatedAt)
}

func TestUpdateBlog_OwnershipChangedIsNotFound(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "o@example.com", "owner")
	category := createTestCategory(t, db, owner, "tech", "")
	blog := createTestBlog(t, db, category, "draft", "")

	_, err := db.Blogs().UpdateBlog(context.Background(), blog.ID, newID(), owner.ID,
		model.ContentPatch{Title: "hijack", Description: "x"})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	unchanged, err := db.Blogs().FindBlog(context.Background(), blog.ID, category.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "draft", unchanged.Title)
}

func TestDeleteBlog(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "o@example.com", "owner")
	category := createTestCategory(t, db, owner, "tech", "")
	blog := createTestBlog(t, db, category, "bye", "")

	deleted, err := db.Blogs().DeleteBlog(context.Background(), blog.ID, category.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "bye", deleted.Title)

	_, err = db.Blogs().DeleteBlog(context.Background(), blog.ID, category.ID, owner.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
