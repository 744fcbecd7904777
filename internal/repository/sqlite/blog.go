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

var _ repository.BlogRepository = (*BlogDB)(nil)

const blogColumns = `id, user_id, category_id, title, description, created_at, updated_at`

// BlogDB stores blogs in the blogs table.
// Every lookup and mutation is scoped by user_id AND category_id.
type BlogDB struct {
	db *DB
}

func (b *BlogDB) CreateBlog(ctx context.Context, blog *model.Blog) error {
	now := b.db.timestamp()
	blog.ID = newID()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	_, err := b.db.conn.ExecContext(ctx,
		`INSERT INTO blogs (`+blogColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		blog.ID.Hex(),
		blog.User.Hex(),
		blog.Category.Hex(),
		blog.Title,
		blog.Description,
		toMillis(blog.CreatedAt),
		toMillis(blog.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating blog: %w", err)
	}
	return nil
}

func (b *BlogDB) FindBlog(ctx context.Context, id, categoryID, userID primitive.ObjectID) (*model.Blog, error) {
	row := b.db.conn.QueryRowContext(ctx,
		`SELECT `+blogColumns+` FROM blogs WHERE id = ? AND user_id = ? AND category_id = ?`,
		id.Hex(), userID.Hex(), categoryID.Hex())
	return b.one(row, "getting blog "+id.Hex())
}

// ListBlogs returns the matching blogs newest first. Equal timestamps fall back
// to id order, which is also creation order for ids minted by one process.
func (b *BlogDB) ListBlogs(ctx context.Context, filter repository.BlogFilter) ([]model.Blog, error) {
	var where whereBuilder
	where.add(`user_id = ?`, filter.UserID.Hex())
	where.add(`category_id = ?`, filter.CategoryID.Hex())
	where.addListOptions(filter.ListOptions)

	limit, offset := limitOffset(filter.ListOptions)
	args := append(where.args, limit, offset)

	rows, err := b.db.conn.QueryContext(ctx,
		`SELECT `+blogColumns+` FROM blogs`+where.String()+`
		 ORDER BY created_at DESC, id DESC
		 LIMIT ? OFFSET ?`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing blogs: %w", err)
	}
	defer rows.Close()

	blogs := make([]model.Blog, 0, max(filter.Limit, 0))
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning blog row: %w", err)
		}
		blogs = append(blogs, *blog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating blogs: %w", err)
	}
	return blogs, nil
}

func (b *BlogDB) UpdateBlog(ctx context.Context, id, categoryID, userID primitive.ObjectID, patch model.ContentPatch) (*model.Blog, error) {
	row := b.db.conn.QueryRowContext(ctx,
		`UPDATE blogs SET title = ?, description = ?, updated_at = ?
		 WHERE id = ? AND user_id = ? AND category_id = ?
		 RETURNING `+blogColumns,
		patch.Title,
		patch.Description,
		toMillis(b.db.timestamp()),
		id.Hex(),
		userID.Hex(),
		categoryID.Hex(),
	)
	return b.one(row, "updating blog "+id.Hex())
}

func (b *BlogDB) DeleteBlog(ctx context.Context, id, categoryID, userID primitive.ObjectID) (*model.Blog, error) {
	row := b.db.conn.QueryRowContext(ctx,
		`DELETE FROM blogs WHERE id = ? AND user_id = ? AND category_id = ? RETURNING `+blogColumns,
		id.Hex(), userID.Hex(), categoryID.Hex())
	return b.one(row, "deleting blog "+id.Hex())
}

func (b *BlogDB) one(row *sql.Row, op string) (*model.Blog, error) {
	blog, err := scanBlog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Blog")
		}
		return nil, fmt.Errorf("sqlite: %s: %w", op, err)
	}
	return blog, nil
}

func scanBlog(s scanner) (*model.Blog, error) {
	var (
		blog                   model.Blog
		id, userID, categoryID string
		created, updated       int64
	)
	if err := s.Scan(&id, &userID, &categoryID, &blog.Title, &blog.Description, &created, &updated); err != nil {
		return nil, err
	}

	var err error
	if blog.ID, err = parseHex("blogs.id", id); err != nil {
		return nil, err
	}
	if blog.User, err = parseHex("blogs.user_id", userID); err != nil {
		return nil, err
	}
	if blog.Category, err = parseHex("blogs.category_id", categoryID); err != nil {
		return nil, err
	}
	blog.CreatedAt = fromMillis(created)
	blog.UpdatedAt = fromMillis(updated)
	return &blog, nil
}
