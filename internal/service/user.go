package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

// PasswordHasher turns a plaintext password into its stored form.
// auth.PasswordService satisfies it.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

type UserService struct {
	repo   repository.UserRepository
	hasher PasswordHasher // nil: passwords are stored as given
	logger *slog.Logger
}

// NewUserService creates a UserService. hasher may be nil.
func NewUserService(repo repository.UserRepository, hasher PasswordHasher, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

// CreateUserInput is the body of POST /users.
type CreateUserInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// Create validates and inserts a new user. Uniqueness of email and username is
// left to the store, so a duplicate surfaces as a plain (500) error.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	user := &model.User{
		Email:    strings.TrimSpace(in.Email),
		Username: strings.TrimSpace(in.Username),
		Password: in.Password,
	}
	if err := checkStruct(user); err != nil {
		return nil, err
	}

	if s.hasher != nil {
		hash, err := s.hasher.Hash(user.Password)
		if err != nil {
			return nil, apperror.ValidationFailed("password", err.Error())
		}
		user.Password = hash
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		s.logger.Error("failed to create user",
			slog.String("username", user.Username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user created",
		slog.String("id", user.ID.Hex()),
		slog.String("username", user.Username),
	)
	return user, nil
}

// UpdateUsername renames a user.
//
// Missing input is a 404 and a malformed id a 400; both messages are part of the
// public contract of PATCH /users.
func (s *UserService) UpdateUsername(ctx context.Context, userID, username string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if userID == "" || username == "" {
		return nil, apperror.NotFoundf("Id or new username not found!")
	}

	id, ok := model.ParseID(userID)
	if !ok {
		return nil, apperror.InvalidID("userId", "Invalid user id")
	}
	if len(username) > 100 {
		return nil, apperror.ValidationFailed("username", "username must be 100 characters or less")
	}

	user, err := s.repo.UpdateUsername(ctx, id, username)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user updated",
		slog.String("id", user.ID.Hex()),
		slog.String("username", user.Username),
	)
	return user, nil
}

// Delete removes a user and returns the removed document.
// The user's categories and blogs are left in place.
func (s *UserService) Delete(ctx context.Context, userID string) (*model.User, error) {
	id, ok := model.ParseID(userID)
	if !ok {
		return nil, apperror.InvalidID("userId", "Invalid or missing userId")
	}

	user, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user deleted", slog.String("id", user.ID.Hex()))
	return user, nil
}
