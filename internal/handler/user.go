package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/service"
)

type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

type userResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

type usernameRequest struct {
	Username string `json:"username"`
}

// HandleList answers GET /api/users with a bare array.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "Error in fetching users!")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const failMsg = "Error in creating user!"

	var req service.CreateUserInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}

	user, err := h.users.Create(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}
	writeJSON(w, http.StatusCreated, userResponse{Message: "User is created!", User: user})
}

// HandleUpdate answers PATCH /api/users?userId=. The body is read before the id
// is looked at, so a malformed body wins over a missing id.
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const failMsg = "Error in updating user!"

	var req usernameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}

	user, err := h.users.UpdateUsername(r.Context(), r.URL.Query().Get("userId"), req.Username)
	if err != nil {
		writeError(w, h.logger, err, failMsg)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{Message: "User is updated!", User: user})
}

func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Delete(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, h.logger, err, "Error in deleting user!")
		return
	}
	writeJSON(w, http.StatusOK, userResponse{Message: "User is deleted!", User: user})
}
