package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

// BlogService works on blogs inside a verified user/category scope.
type BlogService struct {
	repo   repository.BlogRepository
	logger *slog.Logger
}

func NewBlogService(repo repository.BlogRepository, logger *slog.Logger) *BlogService {
	return &BlogService{repo: repo, logger: logger}
}

// List returns the scope's blogs, newest first.
func (s *BlogService) List(ctx context.Context, scope Scope, q ListQuery) ([]model.Blog, error) {
	blogs, err := s.repo.ListBlogs(ctx, repository.BlogFilter{
		UserID:      scope.UserID,
		CategoryID:  scope.CategoryID,
		ListOptions: q.options(),
	})
	if err != nil {
		s.logger.Error("failed to list blogs",
			slog.String("category", scope.CategoryID.Hex()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing blogs: %w", err)
	}
	return blogs, nil
}

// Get looks a blog up by its full ownership chain. It needs no prior check:
// the scoped read is the existence check.
func (s *BlogService) Get(ctx context.Context, scope Scope) (*model.Blog, error) {
	return s.repo.FindBlog(ctx, scope.BlogID, scope.CategoryID, scope.UserID)
}

func (s *BlogService) Create(ctx context.Context, scope Scope, in ContentInput) (*model.Blog, error) {
	p := in.patch()
	blog := &model.Blog{
		User:        scope.UserID,
		Category:    scope.CategoryID,
		Title:       p.Title,
		Description: p.Description,
	}
	if err := checkStruct(blog); err != nil {
		return nil, err
	}

	if err := s.repo.CreateBlog(ctx, blog); err != nil {
		s.logger.Error("failed to create blog",
			slog.String("category", scope.CategoryID.Hex()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating blog: %w", err)
	}

	s.logger.Info("blog created",
		slog.String("id", blog.ID.Hex()),
		slog.String("category", scope.CategoryID.Hex()),
	)
	return blog, nil
}

func (s *BlogService) Update(ctx context.Context, scope Scope, in ContentInput) (*model.Blog, error) {
	patch := in.patch()
	if err := checkPatch(patch); err != nil {
		return nil, err
	}

	blog, err := s.repo.UpdateBlog(ctx, scope.BlogID, scope.CategoryID, scope.UserID, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("blog updated", slog.String("id", blog.ID.Hex()))
	return blog, nil
}

func (s *BlogService) Delete(ctx context.Context, scope Scope) (*model.Blog, error) {
	blog, err := s.repo.DeleteBlog(ctx, scope.BlogID, scope.CategoryID, scope.UserID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("blog deleted", slog.String("id", blog.ID.Hex()))
	return blog, nil
}
