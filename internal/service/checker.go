package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

// Checker answers the existence and ownership questions every route asks
// before touching a document.
//
// Each check validates its identifiers first; a malformed id is simply "does not
// exist" and costs no store read. A well-formed id costs exactly one scoped read.
// Nothing is cached, so repeated calls query again.
type Checker struct {
	store repository.Store
}

func NewChecker(store repository.Store) *Checker {
	return &Checker{store: store}
}

// UserExists reports whether a user with userID exists.
func (c *Checker) UserExists(ctx context.Context, userID string) (bool, error) {
	id, ok := model.ParseID(userID)
	if !ok {
		return false, nil
	}
	_, err := c.store.Users().GetUser(ctx, id)
	return found(err)
}

// CategoryExists reports whether categoryID exists and belongs to userID.
func (c *Checker) CategoryExists(ctx context.Context, categoryID, userID string) (bool, error) {
	cid, ok1 := model.ParseID(categoryID)
	uid, ok2 := model.ParseID(userID)
	if !ok1 || !ok2 {
		return false, nil
	}
	_, err := c.store.Categories().FindCategory(ctx, cid, uid)
	return found(err)
}

// BlogExists reports whether blogID exists under categoryID and userID.
func (c *Checker) BlogExists(ctx context.Context, blogID, categoryID, userID string) (bool, error) {
	bid, ok1 := model.ParseID(blogID)
	cid, ok2 := model.ParseID(categoryID)
	uid, ok3 := model.ParseID(userID)
	if !ok1 || !ok2 || !ok3 {
		return false, nil
	}
	_, err := c.store.Blogs().FindBlog(ctx, bid, cid, uid)
	return found(err)
}

func found(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperror.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Scope is a verified ownership chain. Fields past the deepest check are zero.
type Scope struct {
	UserID     primitive.ObjectID
	CategoryID primitive.ObjectID
	BlogID     primitive.ObjectID
}

// RequireUser runs the user check and returns NotFound("User") when it fails.
func (c *Checker) RequireUser(ctx context.Context, userID string) (Scope, error) {
	ok, err := c.UserExists(ctx, userID)
	if err != nil {
		return Scope{}, fmt.Errorf("checking user: %w", err)
	}
	if !ok {
		return Scope{}, apperror.NotFound("User")
	}

	id, _ := model.ParseID(userID)
	return Scope{UserID: id}, nil
}

// RequireCategory checks the user, then the category; the first failure wins.
func (c *Checker) RequireCategory(ctx context.Context, userID, categoryID string) (Scope, error) {
	scope, err := c.RequireUser(ctx, userID)
	if err != nil {
		return Scope{}, err
	}

	ok, err := c.CategoryExists(ctx, categoryID, userID)
	if err != nil {
		return Scope{}, fmt.Errorf("checking category: %w", err)
	}
	if !ok {
		return Scope{}, apperror.NotFound("Category")
	}

	scope.CategoryID, _ = model.ParseID(categoryID)
	return scope, nil
}

// RequireBlog checks the user, the category, then the blog.
func (c *Checker) RequireBlog(ctx context.Context, userID, categoryID, blogID string) (Scope, error) {
	scope, err := c.RequireCategory(ctx, userID, categoryID)
	if err != nil {
		return Scope{}, err
	}

	ok, err := c.BlogExists(ctx, blogID, categoryID, userID)
	if err != nil {
		return Scope{}, fmt.Errorf("checking blog: %w", err)
	}
	if !ok {
		return Scope{}, apperror.NotFound("Blog")
	}

	scope.BlogID, _ = model.ParseID(blogID)
	return scope, nil
}

// LocateBlog runs only the blog check. GET /blogs/{id} answers "Blog not found!"
// for any broken link in the chain, without saying which one.
func (c *Checker) LocateBlog(ctx context.Context, userID, categoryID, blogID string) (Scope, error) {
	ok, err := c.BlogExists(ctx, blogID, categoryID, userID)
	if err != nil {
		return Scope{}, fmt.Errorf("checking blog: %w", err)
	}
	if !ok {
		return Scope{}, apperror.NotFound("Blog")
	}

	scope := Scope{}
	scope.UserID, _ = model.ParseID(userID)
	scope.CategoryID, _ = model.ParseID(categoryID)
	scope.BlogID, _ = model.ParseID(blogID)
	return scope, nil
}
