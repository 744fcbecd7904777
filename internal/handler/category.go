package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/service"
)

type CategoryHandler struct {
	checker    *service.Checker
	categories *service.CategoryService
	logger     *slog.Logger
}

func NewCategoryHandler(checker *service.Checker, categories *service.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{checker: checker, categories: categories, logger: logger}
}

type categoryResponse struct {
	Message  string          `json:"message,omitempty"`
	Category *model.Category `json:"category"`
}

type categoriesResponse struct {
	Categories []model.Category `json:"categories"`
}

func (h *CategoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const failMsg = "Error in fetching category!"

	scope, err := h.checker.RequireUser(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}

	q, err := parseListQuery(r)
	if err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}

	categories, err := h.categories.List(r.Context(), scope, q)
	if err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: categories})
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const failMsg = "Failed to create category!"

	scope, err := h.checker.RequireUser(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}

	var req service.ContentInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}

	category, err := h.categories.Create(r.Context(), scope, req)
	if err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}
	writeJSON(w, http.StatusCreated, categoryResponse{Message: "Category created successfully!", Category: category})
}

func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const failMsg = "Error in updating category!"

	scope, err := h.checker.RequireCategory(r.Context(), r.URL.Query().Get("userId"), chi.URLParam(r, "categoryId"))
	if err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}

	var req service.ContentInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}

	category, err := h.categories.Update(r.Context(), scope, req)
	if err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}
	writeJSON(w, http.StatusOK, categoryResponse{Message: "Category updated successfully!", Category: category})
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const failMsg = "Error in deleting category!"

	scope, err := h.checker.RequireCategory(r.Context(), r.URL.Query().Get("userId"), chi.URLParam(r, "categoryId"))
	if err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}

	category, err := h.categories.Delete(r.Context(), scope)
	if err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}
	writeJSON(w, http.StatusOK, categoryResponse{Message: "Category deleted successfully!", Category: category})
}
