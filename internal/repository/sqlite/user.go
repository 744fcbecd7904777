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

var _ repository.UserRepository = (*UserDB)(nil)

const userColumns = `id, email, username, password, created_at, updated_at`

// UserDB stores users in the users table.
type UserDB struct {
	db *DB
}

// CreateUser inserts a user, filling in ID and timestamps in place.
// Duplicate email or username fails on the UNIQUE constraints and is returned
// as a plain wrapped error.
func (u *UserDB) CreateUser(ctx context.Context, user *model.User) error {
	now := u.db.timestamp()
	user.ID = newID()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := u.db.conn.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID.Hex(),
		user.Email,
		user.Username,
		user.Password,
		toMillis(user.CreatedAt),
		toMillis(user.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating user: %w", err)
	}
	return nil
}

func (u *UserDB) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := u.db.conn.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating users: %w", err)
	}
	return users, nil
}

// GetUser returns apperror.ErrNotFound if no user has the given id.
func (u *UserDB) GetUser(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	row := u.db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id.Hex())
	return u.one(row, "getting user "+id.Hex())
}

// UpdateUsername sets a new username and returns the updated document.
// UPDATE ... RETURNING keeps the lookup and the write in one statement.
func (u *UserDB) UpdateUsername(ctx context.Context, id primitive.ObjectID, username string) (*model.User, error) {
	row := u.db.conn.QueryRowContext(ctx,
		`UPDATE users SET username = ?, updated_at = ?
		 WHERE id = ?
		 RETURNING `+userColumns,
		username,
		toMillis(u.db.timestamp()),
		id.Hex(),
	)
	return u.one(row, "updating user "+id.Hex())
}

// DeleteUser removes a user and returns the deleted document.
// Categories and blogs owned by the user are left in place.
func (u *UserDB) DeleteUser(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	row := u.db.conn.QueryRowContext(ctx,
		`DELETE FROM users WHERE id = ? RETURNING `+userColumns, id.Hex())
	return u.one(row, "deleting user "+id.Hex())
}

func (u *UserDB) one(row *sql.Row, op string) (*model.User, error) {
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("User")
		}
		return nil, fmt.Errorf("sqlite: %s: %w", op, err)
	}
	return user, nil
}

func scanUser(s scanner) (*model.User, error) {
	var (
		user             model.User
		id               string
		created, updated int64
	)
	if err := s.Scan(&id, &user.Email, &user.Username, &user.Password, &created, &updated); err != nil {
		return nil, err
	}

	oid, err := parseHex("users.id", id)
	if err != nil {
		return nil, err
	}
	user.ID = oid
	user.CreatedAt = fromMillis(created)
	user.UpdatedAt = fromMillis(updated)
	return &user, nil
}
