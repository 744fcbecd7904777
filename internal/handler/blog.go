package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/service"
)

type BlogHandler struct {
	checker *service.Checker
	blogs   *service.BlogService
	logger  *slog.Logger
}

func NewBlogHandler(checker *service.Checker, blogs *service.BlogService, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{checker: checker, blogs: blogs, logger: logger}
}

type blogResponse struct {
	Message string      `json:"message,omitempty"`
	Blog    *model.Blog `json:"blog"`
}

type blogsResponse struct {
	Blogs []model.Blog `json:"blogs"`
}

// ids pulls the user and category ids from the query string.
func ids(r *http.Request) (userID, categoryID string) {
	q := r.URL.Query()
	return q.Get("userId"), q.Get("categoryId")
}

func (h *BlogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const failMsg = "Error in fetching blogs!"

	userID, categoryID := ids(r)
	scope, err := h.checker.RequireCategory(r.Context(), userID, categoryID)
	if err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}

	q, err := parseListQuery(r)
	if err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}

	blogs, err := h.blogs.List(r.Context(), scope, q)
	if err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}
	writeJSON(w, http.StatusOK, blogsResponse{Blogs: blogs})
}

func (h *BlogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const failMsg = "Error in creating blog!"

	userID, categoryID := ids(r)
	scope, err := h.checker.RequireCategory(r.Context(), userID, categoryID)
	if err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}

	var req service.ContentInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}

	blog, err := h.blogs.Create(r.Context(), scope, req)
	if err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}
	writeJSON(w, http.StatusCreated, blogResponse{Message: "Blog created successfully!", Blog: blog})
}

// HandleGet reports any broken link in the user/category/blog chain as
// "Blog not found!".
func (h *BlogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const failMsg = "Error in fetching a blog!"

	userID, categoryID := ids(r)
	scope, err := h.checker.LocateBlog(r.Context(), userID, categoryID, chi.URLParam(r, "blogId"))
	if err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}

	blog, err := h.blogs.Get(r.Context(), scope)
	if err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}
	writeJSON(w, http.StatusOK, blogResponse{Blog: blog})
}

func (h *BlogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const failMsg = "Error in updating blog!"

	userID, categoryID := ids(r)
	scope, err := h.checker.RequireBlog(r.Context(), userID, categoryID, chi.URLParam(r, "blogId"))
	if err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}

	var req service.ContentInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}

	blog, err := h.blogs.Update(r.Context(), scope, req)
	if err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}
	writeJSON(w, http.StatusOK, blogResponse{Message: "Blog updated successfully!", Blog: blog})
}

func (h *BlogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const failMsg = "Error in deleting blog!"

	userID, categoryID := ids(r)
	scope, err := h.checker.RequireBlog(r.Context(), userID, categoryID, chi.URLParam(r, "blogId"))
	if err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}

	blog, err := h.blogs.Delete(r.Context(), scope)
	if err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}
	writeJSON(w, http.StatusOK, blogResponse{Message: "Blog deleted successfully!", Blog: blog})
}
