// Package repository declares the storage contracts the services depend on.
//
// Two implementations exist: repository/sqlite (embedded, used by default and in
// tests) and repository/mongodb (a MongoDB document store). Services only see these
// interfaces.
//
// SCOPED MUTATIONS:
// Update and delete methods on categories and blogs take the whole ownership chain
// and apply it as the filter of a single store operation. If the document no longer
// matches (deleted, or moved to another owner) the call returns apperror.ErrNotFound
// instead of mutating something the caller was never allowed to see.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sakif/blog-api/internal/model"
)

// ListOptions holds pagination and filtering shared by list endpoints.
//
// Keywords is matched as a case-insensitive substring against title OR description.
// From and To bound createdAt inclusively; nil means unbounded on that side.
type ListOptions struct {
	Limit    int
	Offset   int
	Keywords string
	From     *time.Time
	To       *time.Time
}

type CategoryFilter struct {
	UserID primitive.ObjectID
	ListOptions
}

type BlogFilter struct {
	UserID     primitive.ObjectID
	CategoryID primitive.ObjectID
	ListOptions
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	UpdateUsername(ctx context.Context, id primitive.ObjectID, username string) (*model.User, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) (*model.User, error)
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *model.Category) error
	FindCategory(ctx context.Context, id, userID primitive.ObjectID) (*model.Category, error)
	ListCategories(ctx context.Context, filter CategoryFilter) ([]model.Category, error)
	UpdateCategory(ctx context.Context, id, userID primitive.ObjectID, patch model.ContentPatch) (*model.Category, error)
	DeleteCategory(ctx context.Context, id, userID primitive.ObjectID) (*model.Category, error)
}

type BlogRepository interface {
	CreateBlog(ctx context.Context, blog *model.Blog) error
	FindBlog(ctx context.Context, id, categoryID, userID primitive.ObjectID) (*model.Blog, error)
	ListBlogs(ctx context.Context, filter BlogFilter) ([]model.Blog, error)
	UpdateBlog(ctx context.Context, id, categoryID, userID primitive.ObjectID, patch model.ContentPatch) (*model.Blog, error)
	DeleteBlog(ctx context.Context, id, categoryID, userID primitive.ObjectID) (*model.Blog, error)
}

// Store bundles the three collections behind one connection.
// The server owns it and closes it on shutdown.
type Store interface {
	Users() UserRepository
	Categories() CategoryRepository
	Blogs() BlogRepository
	Ping(ctx context.Context) error
	Close() error
}
