package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

// ContentInput is the body of POST and PATCH on categories and blogs.
type ContentInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (in ContentInput) patch() model.ContentPatch {
	return model.ContentPatch{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
	}
}

// checkPatch requires both fields; every violation reads "Invalid input data".
func checkPatch(patch model.ContentPatch) error {
	if err := checkStruct(patch); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return apperror.ValidationFailed(appErr.Field, "Invalid input data")
		}
		return err
	}
	return nil
}

// CategoryService works on categories whose owner has already been verified by
// a Checker. Every store call still carries the owner, so a category that changed
// hands in between is reported as not found.
type CategoryService struct {
	repo   repository.CategoryRepository
	logger *slog.Logger
}

func NewCategoryService(repo repository.CategoryRepository, logger *slog.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

func (s *CategoryService) List(ctx context.Context, scope Scope, q ListQuery) ([]model.Category, error) {
	categories, err := s.repo.ListCategories(ctx, repository.CategoryFilter{
		UserID:      scope.UserID,
		ListOptions: q.options(),
	})
	if err != nil {
		s.logger.Error("failed to list categories",
			slog.String("user", scope.UserID.Hex()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Create(ctx context.Context, scope Scope, in ContentInput) (*model.Category, error) {
	p := in.patch()
	category := &model.Category{
		User:        scope.UserID,
		Title:       p.Title,
		Description: p.Description,
	}
	if err := checkStruct(category); err != nil {
		return nil, err
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		s.logger.Error("failed to create category",
			slog.String("user", scope.UserID.Hex()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating category: %w", err)
	}

	s.logger.Info("category created",
		slog.String("id", category.ID.Hex()),
		slog.String("user", scope.UserID.Hex()),
	)
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, scope Scope, in ContentInput) (*model.Category, error) {
	patch := in.patch()
	if err := checkPatch(patch); err != nil {
		return nil, err
	}

	category, err := s.repo.UpdateCategory(ctx, scope.CategoryID, scope.UserID, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("category updated", slog.String("id", category.ID.Hex()))
	return category, nil
}

// Delete removes the category and returns it. Its blogs are not touched.
func (s *CategoryService) Delete(ctx context.Context, scope Scope) (*model.Category, error) {
	category, err := s.repo.DeleteCategory(ctx, scope.CategoryID, scope.UserID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("category deleted", slog.String("id", category.ID.Hex()))
	return category, nil
}
