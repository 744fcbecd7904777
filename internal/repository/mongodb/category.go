package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

var _ repository.CategoryRepository = (*CategoryCollection)(nil)

// CategoryCollection stores categories; every filter includes the owning user.
type CategoryCollection struct {
	store *Store
}

func (c *CategoryCollection) CreateCategory(ctx context.Context, category *model.Category) error {
	coll, err := c.store.collection(ctx, categoriesCollection)
	if err != nil {
		return err
	}

	now := c.store.timestamp()
	category.ID = primitive.NewObjectID()
	category.CreatedAt = now
	category.UpdatedAt = now

	if _, err := coll.InsertOne(ctx, category); err != nil {
		return fmt.Errorf("mongodb: creating category: %w", err)
	}
	return nil
}

func (c *CategoryCollection) FindCategory(ctx context.Context, id, userID primitive.ObjectID) (*model.Category, error) {
	coll, err := c.store.collection(ctx, categoriesCollection)
	if err != nil {
		return nil, err
	}

	var category model.Category
	if err := coll.FindOne(ctx, categoryScope(id, userID)).Decode(&category); err != nil {
		return nil, wrapFind(err, "Category", "getting category "+id.Hex())
	}
	return &category, nil
}

// ListCategories applies no sort; the server's natural order is returned.
func (c *CategoryCollection) ListCategories(ctx context.Context, filter repository.CategoryFilter) ([]model.Category, error) {
	coll, err := c.store.collection(ctx, categoriesCollection)
	if err != nil {
		return nil, err
	}

	query := withListOptions(bson.M{"user": filter.UserID}, filter.ListOptions)
	cur, err := coll.Find(ctx, query, findOptions(filter.ListOptions, nil))
	if err != nil {
		return nil, fmt.Errorf("mongodb: listing categories: %w", err)
	}

	categories := []model.Category{}
	if err := cur.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("mongodb: decoding categories: %w", err)
	}
	return categories, nil
}

func (c *CategoryCollection) UpdateCategory(ctx context.Context, id, userID primitive.ObjectID, patch model.ContentPatch) (*model.Category, error) {
	coll, err := c.store.collection(ctx, categoriesCollection)
	if err != nil {
		return nil, err
	}

	var category model.Category
	err = coll.FindOneAndUpdate(ctx, categoryScope(id, userID),
		contentUpdate(patch, c.store.timestamp()), returnAfter).Decode(&category)
	if err != nil {
		return nil, wrapFind(err, "Category", "updating category "+id.Hex())
	}
	return &category, nil
}

func (c *CategoryCollection) DeleteCategory(ctx context.Context, id, userID primitive.ObjectID) (*model.Category, error) {
	coll, err := c.store.collection(ctx, categoriesCollection)
	if err != nil {
		return nil, err
	}

	var category model.Category
	if err := coll.FindOneAndDelete(ctx, categoryScope(id, userID)).Decode(&category); err != nil {
		return nil, wrapFind(err, "Category", "deleting category "+id.Hex())
	}
	return &category, nil
}
