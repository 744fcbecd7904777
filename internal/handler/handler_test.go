package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/sakif/blog-api/internal/handler"
	"github.com/sakif/blog-api/internal/repository/sqlite"
	"github.com/sakif/blog-api/internal/service"
)

const missingID = "507f1f77bcf86cd799439011"

type testEnv struct {
	t      *testing.T
	db     *sqlite.DB
	router chi.Router
}

// newTestEnv wires the handlers over an in-memory sqlite store, without the
// auth gate, on the same paths the server uses.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	checker := service.NewChecker(db)
	users := handler.NewUserHandler(service.NewUserService(db.Users(), nil, logger), logger)
	categories := handler.NewCategoryHandler(checker, service.NewCategoryService(db.Categories(), logger), logger)
	blogs := handler.NewBlogHandler(checker, service.NewBlogService(db.Blogs(), logger), logger)

	r := chi.NewRouter()
	r.Get("/healthz", handler.NewHealthHandler(db, logger).HandleHealth)
	r.Route("/api", func(r chi.Router) {
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

	return &testEnv{t: t, db: db, router: r}
}

// do sends body as-is when it is a string, JSON-encoded otherwise.
func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v), "body: %s", rr.Body.String())
	return v
}

type doc struct {
	ID          string `json:"_id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	Title       string `json:"title"`
	Description string `json:"description"`
	User        string `json:"user"`
	Category    string `json:"category"`
	CreatedAt   string `json:"createdAt"`
}

type envelope struct {
	Message    string `json:"message"`
	Detail     string `json:"detail"`
	User       *doc   `json:"user"`
	Category   *doc   `json:"category"`
	Blog       *doc   `json:"blog"`
	Categories []doc  `json:"categories"`
	Blogs      []doc  `json:"blogs"`
}

func (e *testEnv) createUser(username string) doc {
	e.t.Helper()
	rr := e.do(http.MethodPost, "/api/users", map[string]string{
		"email": username + "@example.com", "username": username, "password": "pw",
	})
	require.Equal(e.t, http.StatusCreated, rr.Code, rr.Body.String())
	return *decode[envelope](e.t, rr).User
}

func (e *testEnv) createCategory(userID, title string) doc {
	e.t.Helper()
	rr := e.do(http.MethodPost, "/api/categories?userId="+userID, map[string]string{"title": title, "description": "d"})
	require.Equal(e.t, http.StatusCreated, rr.Code, rr.Body.String())
	return *decode[envelope](e.t, rr).Category
}

func (e *testEnv) createBlog(userID, categoryID, title string) doc {
	e.t.Helper()
	rr := e.do(http.MethodPost, "/api/blogs?userId="+userID+"&categoryId="+categoryID,
		map[string]string{"title": title, "description": "d"})
	require.Equal(e.t, http.StatusCreated, rr.Code, rr.Body.String())
	return *decode[envelope](e.t, rr).Blog
}
