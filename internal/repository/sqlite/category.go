package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

var _ repository.CategoryRepository = (*CategoryDB)(nil)

const categoryColumns = `id, user_id, title, description, created_at, updated_at`

// CategoryDB stores categories in the categories table.
// Every lookup and mutation is scoped by user_id.
type CategoryDB struct {
	db *DB
}

func (c *CategoryDB) CreateCategory(ctx context.Context, category *model.Category) error {
	now := c.db.timestamp()
	category.ID = newID()
	category.CreatedAt = now
	category.UpdatedAt = now

	_, err := c.db.conn.ExecContext(ctx,
		`INSERT INTO categories (`+categoryColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		category.ID.Hex(),
		category.User.Hex(),
		category.Title,
		category.Description,
		toMillis(category.CreatedAt),
		toMillis(category.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating category: %w", err)
	}
	return nil
}

// FindCategory returns the category only if it belongs to userID.
func (c *CategoryDB) FindCategory(ctx context.Context, id, userID primitive.ObjectID) (*model.Category, error) {
	row := c.db.conn.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ? AND user_id = ?`,
		id.Hex(), userID.Hex())
	return c.one(row, "getting category "+id.Hex())
}

// ListCategories returns the user's categories in storage order.
func (c *CategoryDB) ListCategories(ctx context.Context, filter repository.CategoryFilter) ([]model.Category, error) {
	var where whereBuilder
	where.add(`user_id = ?`, filter.UserID.Hex())
	where.addListOptions(filter.ListOptions)

	limit, offset := limitOffset(filter.ListOptions)
	args := append(where.args, limit, offset)

	rows, err := c.db.conn.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories`+where.String()+` LIMIT ? OFFSET ?`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning category row: %w", err)
		}
		categories = append(categories, *category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating categories: %w", err)
	}
	return categories, nil
}

func (c *CategoryDB) UpdateCategory(ctx context.Context, id, userID primitive.ObjectID, patch model.ContentPatch) (*model.Category, error) {
	row := c.db.conn.QueryRowContext(ctx,
		`UPDATE categories SET title = ?, description = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?
		 RETURNING `+categoryColumns,
		patch.Title,
		patch.Description,
		toMillis(c.db.timestamp()),
		id.Hex(),
		userID.Hex(),
	)
	return c.one(row, "updating category "+id.Hex())
}

// DeleteCategory removes the category and returns it. Blogs filed under it stay.
func (c *CategoryDB) DeleteCategory(ctx context.Context, id, userID primitive.ObjectID) (*model.Category, error) {
	row := c.db.conn.QueryRowContext(ctx,
		`DELETE FROM categories WHERE id = ? AND user_id = ? RETURNING `+categoryColumns,
		id.Hex(), userID.Hex())
	return c.one(row, "deleting category "+id.Hex())
}

func (c *CategoryDB) one(row *sql.Row, op string) (*model.Category, error) {
	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Category")
		}
		return nil, fmt.Errorf("sqlite: %s: %w", op, err)
	}
	return category, nil
}

func scanCategory(s scanner) (*model.Category, error) {
	var (
		category         model.Category
		id, userID       string
		created, updated int64
	)
	if err := s.Scan(&id, &userID, &category.Title, &category.Description, &created, &updated); err != nil {
		return nil, err
	}

	var err error
	if category.ID, err = parseHex("categories.id", id); err != nil {
		return nil, err
	}
	if category.User, err = parseHex("categories.user_id", userID); err != nil {
		return nil, err
	}
	category.CreatedAt = fromMillis(created)
	category.UpdatedAt = fromMillis(updated)
	return &category, nil
}
