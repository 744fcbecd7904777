// Package server is the composition root: it opens the store, picks the token
// verifier, wires services into handlers and mounts them on a chi router.
//
// DEPENDENCY FLOW:
//
//	config.Config
//	  ├─ database → repository.Store (sqlite.DB | mongodb.Store)
//	  │              └─ service.Checker, UserService, CategoryService, BlogService
//	  │                  └─ handler.UserHandler, CategoryHandler, BlogHandler
//	  └─ auth     → auth.Verifier (AcceptAny | TokenService | GitHubVerifier)
//	                 └─ auth.RequireBearer on /api
//
// Handlers only see services, services only see repository interfaces.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/blog-api/internal/auth"
	"github.com/sakif/blog-api/internal/config"
	"github.com/sakif/blog-api/internal/handler"
	"github.com/sakif/blog-api/internal/middleware"
	"github.com/sakif/blog-api/internal/repository"
	"github.com/sakif/blog-api/internal/repository/mongodb"
	"github.com/sakif/blog-api/internal/repository/sqlite"
	"github.com/sakif/blog-api/internal/service"
)

// Server owns the router and the store. The store is closed when Run returns.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	store  repository.Store
}

// New opens the configured store and builds the routes. Nothing listens until
// Start or Run is called.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	verifier, err := newVerifier(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("configuring auth: %w", err)
	}

	var hasher service.PasswordHasher
	if cfg.Auth.HashPasswords {
		passwords, err := auth.NewPasswordService(cfg.Auth.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("configuring password hashing: %w", err)
		}
		hasher = passwords
	}

	store, err := openStore(cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
	}
	s.setupRoutes(verifier, hasher)

	return s, nil
}

func openStore(cfg config.DatabaseConfig, logger *slog.Logger) (repository.Store, error) {
	switch cfg.Driver {
	case "sqlite":
		if cfg.SQLitePath != ":memory:" {
			dir := filepath.Dir(cfg.SQLitePath)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
			}
		}
		return sqlite.New(cfg.SQLitePath)

	case "mongo":
		// Connects lazily on the first request.
		return mongodb.New(cfg.MongoURI, cfg.MongoDatabase, logger), nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func newVerifier(cfg config.AuthConfig) (auth.Verifier, error) {
	switch cfg.Mode {
	case "any":
		return auth.AcceptAny{}, nil
	case "jwt":
		return auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer)
	case "github":
		return auth.NewGitHubVerifier(cfg.GitHubAPIURL, nil), nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
	}
}

// setupRoutes mounts:
//
//	GET    /healthz                      store ping, no auth
//	GET    /static/*                     files from server.static_dir, when set
//	GET    /api/users                    list users
//	POST   /api/users                    create user
//	PATCH  /api/users?userId=            change username
//	DELETE /api/users?userId=            delete user
//	GET    /api/categories?userId=       list a user's categories
//	POST   /api/categories?userId=       create category
//	PATCH  /api/categories/{categoryId}  update category
//	DELETE /api/categories/{categoryId}  delete category
//	GET    /api/blogs                    list blogs in a category
//	POST   /api/blogs                    create blog
//	GET    /api/blogs/{blogId}           get blog
//	PATCH  /api/blogs/{blogId}           update blog
//	DELETE /api/blogs/{blogId}           delete blog
//
// Everything under /api requires a bearer token.
func (s *Server) setupRoutes(verifier auth.Verifier, hasher service.PasswordHasher) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	s.router.Get("/healthz", handler.NewHealthHandler(s.store, s.logger).HandleHealth)

	if dir := s.config.Server.StaticDir; dir != "" {
		fileServer := http.FileServer(http.Dir(dir))
		s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))
	}

	checker := service.NewChecker(s.store)
	users := handler.NewUserHandler(service.NewUserService(s.store.Users(), hasher, s.logger), s.logger)
	categories := handler.NewCategoryHandler(checker, service.NewCategoryService(s.store.Categories(), s.logger), s.logger)
	blogs := handler.NewBlogHandler(checker, service.NewBlogService(s.store.Blogs(), s.logger), s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(auth.RequireBearer(verifier, s.logger))
		r.Use(middleware.Subject)

		r.Get("/users", users.HandleList)
		r.Post("/users", users.HandleCreate)
		r.Patch("/users", users.HandleUpdate)
		r.Delete("/users", users.HandleDelete)

		r.Get("/categories", categories.HandleList)
		r.Post("/categories", categories.HandleCreate)
		r.Patch("/categories/{categoryId}", categories.HandleUpdate)
		r.Delete("/categories/{categoryId}", categories.HandleDelete)

		r.Get("/blogs", blogs.HandleList)
		r.Post("/blogs", blogs.HandleCreate)
		r.Get("/blogs/{blogId}", blogs.HandleGet)
		r.Patch("/blogs/{blogId}", blogs.HandleUpdate)
		r.Delete("/blogs/{blogId}", blogs.HandleDelete)
	})
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the server until SIGINT or SIGTERM.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run listens on the configured port until ctx is cancelled, then drains
// in-flight requests for up to server.shutdown_timeout and closes the store.
func (s *Server) Run(ctx context.Context) error {
	defer func() {
		if err := s.store.Close(); err != nil {
			s.logger.Error("closing store", slog.String("error", err.Error()))
		}
	}()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Server.Port),
			slog.String("database", s.config.Database.Driver),
			slog.String("auth", s.config.Auth.Mode),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case <-ctx.Done():
		s.logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
