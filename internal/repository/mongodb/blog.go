package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

var _ repository.BlogRepository = (*BlogCollection)(nil)

// BlogCollection stores blogs; every filter includes the owning user and category.
type BlogCollection struct {
	store *Store
}

func (b *BlogCollection) CreateBlog(ctx context.Context, blog *model.Blog) error {
	coll, err := b.store.collection(ctx, blogsCollection)
	if err != nil {
		return err
	}

	now := b.store.timestamp()
	blog.ID = primitive.NewObjectID()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	if _, err := coll.InsertOne(ctx, blog); err != nil {
		return fmt.Errorf("mongodb: creating blog: %w", err)
	}
	return nil
}

func (b *BlogCollection) FindBlog(ctx context.Context, id, categoryID, userID primitive.ObjectID) (*model.Blog, error) {
	coll, err := b.store.collection(ctx, blogsCollection)
	if err != nil {
		return nil, err
	}

	var blog model.Blog
	if err := coll.FindOne(ctx, blogScope(id, categoryID, userID)).Decode(&blog); err != nil {
		return nil, wrapFind(err, "Blog", "getting blog "+id.Hex())
	}
	return &blog, nil
}

func (b *BlogCollection) ListBlogs(ctx context.Context, filter repository.BlogFilter) ([]model.Blog, error) {
	coll, err := b.store.collection(ctx, blogsCollection)
	if err != nil {
		return nil, err
	}

	query := withListOptions(bson.M{"user": filter.UserID, "category": filter.CategoryID}, filter.ListOptions)
	cur, err := coll.Find(ctx, query, findOptions(filter.ListOptions, newestFirst))
	if err != nil {
		return nil, fmt.Errorf("mongodb: listing blogs: %w", err)
	}

	blogs := []model.Blog{}
	if err := cur.All(ctx, &blogs); err != nil {
		return nil, fmt.Errorf("mongodb: decoding blogs: %w", err)
	}
	return blogs, nil
}

func (b *BlogCollection) UpdateBlog(ctx context.Context, id, categoryID, userID primitive.ObjectID, patch model.ContentPatch) (*model.Blog, error) {
	coll, err := b.store.collection(ctx, blogsCollection)
	if err != nil {
		return nil, err
	}

	var blog model.Blog
	err = coll.FindOneAndUpdate(ctx, blogScope(id, categoryID, userID),
		contentUpdate(patch, b.store.timestamp()), returnAfter).Decode(&blog)
	if err != nil {
		return nil, wrapFind(err, "Blog", "updating blog "+id.Hex())
	}
	return &blog, nil
}

func (b *BlogCollection) DeleteBlog(ctx context.Context, id, categoryID, userID primitive.ObjectID) (*model.Blog, error) {
	coll, err := b.store.collection(ctx, blogsCollection)
	if err != nil {
		return nil, err
	}

	var blog model.Blog
	if err := coll.FindOneAndDelete(ctx, blogScope(id, categoryID, userID)).Decode(&blog); err != nil {
		return nil, wrapFind(err, "Blog", "deleting blog "+id.Hex())
	}
	return &blog, nil
}
