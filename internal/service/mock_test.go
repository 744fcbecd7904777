package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

// =========================================================================
// MOCK STORE
// =========================================================================
//
// An in-memory repository.Store. It counts reads so tests can assert that a
// malformed id never reaches the store, and can be told to fail every call.

type mockStore struct {
	users      map[primitive.ObjectID]model.User
	categories map[primitive.ObjectID]model.Category
	blogs      map[primitive.ObjectID]model.Blog

	reads int   // GetUser + FindCategory + FindBlog calls
	err   error // when set, every call returns it
}

func newMockStore() *mockStore {
	return &mockStore{
		users:      make(map[primitive.ObjectID]model.User),
		categories: make(map[primitive.ObjectID]model.Category),
		blogs:      make(map[primitive.ObjectID]model.Blog),
	}
}

func (m *mockStore) Users() repository.UserRepository          { return (*mockUsers)(m) }
func (m *mockStore) Categories() repository.CategoryRepository { return (*mockCategories)(m) }
func (m *mockStore) Blogs() repository.BlogRepository          { return (*mockBlogs)(m) }
func (m *mockStore) Ping(context.Context) error                { return m.err }
func (m *mockStore) Close() error                              { return nil }

func (m *mockStore) addUser(username string) model.User {
	u := model.User{ID: primitive.NewObjectID(), Email: username + "@example.com", Username: username, Password: "pw"}
	m.users[u.ID] = u
	return u
}

func (m *mockStore) addCategory(owner model.User, title string) model.Category {
	c := model.Category{ID: primitive.NewObjectID(), User: owner.ID, Title: title}
	m.categories[c.ID] = c
	return c
}

func (m *mockStore) addBlog(c model.Category, title string) model.Blog {
	b := model.Blog{ID: primitive.NewObjectID(), User: c.User, Category: c.ID, Title: title}
	m.blogs[b.ID] = b
	return b
}

type mockUsers mockStore

func (m *mockUsers) CreateUser(_ context.Context, user *model.User) error {
	if m.err != nil {
		return m.err
	}
	for _, u := range m.users {
		if u.Email == user.Email || u.Username == user.Username {
			return errors.New("UNIQUE constraint failed")
		}
	}
	user.ID = primitive.NewObjectID()
	m.users[user.ID] = *user
	return nil
}

func (m *mockUsers) ListUsers(context.Context) ([]model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []model.User{}
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUsers) GetUser(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	m.reads++
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("User")
	}
	return &u, nil
}

func (m *mockUsers) UpdateUsername(_ context.Context, id primitive.ObjectID, username string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("User")
	}
	u.Username = username
	m.users[id] = u
	return &u, nil
}

func (m *mockUsers) DeleteUser(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("User")
	}
	delete(m.users, id)
	return &u, nil
}

type mockCategories mockStore

func (m *mockCategories) CreateCategory(_ context.Context, c *model.Category) error {
	if m.err != nil {
		return m.err
	}
	c.ID = primitive.NewObjectID()
	m.categories[c.ID] = *c
	return nil
}

func (m *mockCategories) FindCategory(_ context.Context, id, userID primitive.ObjectID) (*model.Category, error) {
	m.reads++
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.categories[id]
	if !ok || c.User != userID {
		return nil, apperror.NotFound("Category")
	}
	return &c, nil
}

func (m *mockCategories) ListCategories(_ context.Context, f repository.CategoryFilter) ([]model.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []model.Category{}
	for _, c := range m.categories {
		if c.User == f.UserID && matches(c.Title, c.Description, f.Keywords) {
			out = append(out, c)
		}
	}
	return page(out, f.ListOptions), nil
}

func (m *mockCategories) UpdateCategory(_ context.Context, id, userID primitive.ObjectID, p model.ContentPatch) (*model.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.categories[id]
	if !ok || c.User != userID {
		return nil, apperror.NotFound("Category")
	}
	c.Title, c.Description = p.Title, p.Description
	m.categories[id] = c
	return &c, nil
}

func (m *mockCategories) DeleteCategory(_ context.Context, id, userID primitive.ObjectID) (*model.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.categories[id]
	if !ok || c.User != userID {
		return nil, apperror.NotFound("Category")
	}
	delete(m.categories, id)
	return &c, nil
}

type mockBlogs mockStore

func (m *mockBlogs) CreateBlog(_ context.Context, b *model.Blog) error {
	if m.err != nil {
		return m.err
	}
	b.ID = primitive.NewObjectID()
	m.blogs[b.ID] = *b
	return nil
}

func (m *mockBlogs) FindBlog(_ context.Context, id, categoryID, userID primitive.ObjectID) (*model.Blog, error) {
	m.reads++
	if m.err != nil {
		return nil, m.err
	}
	b, ok := m.blogs[id]
	if !ok || b.User != userID || b.Category != categoryID {
		return nil, apperror.NotFound("Blog")
	}
	return &b, nil
}

func (m *mockBlogs) ListBlogs(_ context.Context, f repository.BlogFilter) ([]model.Blog, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []model.Blog{}
	for _, b := range m.blogs {
		if b.User == f.UserID && b.Category == f.CategoryID && matches(b.Title, b.Description, f.Keywords) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return page(out, f.ListOptions), nil
}

func (m *mockBlogs) UpdateBlog(_ context.Context, id, categoryID, userID primitive.ObjectID, p model.ContentPatch) (*model.Blog, error) {
	if m.err != nil {
		return nil, m.err
	}
	b, ok := m.blogs[id]
	if !ok || b.User != userID || b.Category != categoryID {
		return nil, apperror.NotFound("Blog")
	}
	b.Title, b.Description = p.Title, p.Description
	m.blogs[id] = b
	return &b, nil
}

func (m *mockBlogs) DeleteBlog(_ context.Context, id, categoryID, userID primitive.ObjectID) (*model.Blog, error) {
	if m.err != nil {
		return nil, m.err
	}
	b, ok := m.blogs[id]
	if !ok || b.User != userID || b.Category != categoryID {
		return nil, apperror.NotFound("Blog")
	}
	delete(m.blogs, id)
	return &b, nil
}

func matches(title, description, keywords string) bool {
	if keywords == "" {
		return true
	}
	k := strings.ToLower(keywords)
	return strings.Contains(strings.ToLower(title), k) || strings.Contains(strings.ToLower(description), k)
}

func page[T any](items []T, opts repository.ListOptions) []T {
	if opts.Offset >= len(items) {
		return []T{}
	}
	items = items[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(items) {
		items = items[:opts.Limit]
	}
	return items
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// requireKind fails the test unless err matches the sentinel kind.
func requireKind(t *testing.T, err, kind error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got nil", kind)
	}
	if !errors.Is(err, kind) {
		t.Fatalf("error = %v, want %v", err, kind)
	}
}
