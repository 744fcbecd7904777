// Package handler turns HTTP requests into service calls and service results
// into JSON responses.
//
// Every route follows the same shape: read ids from the path or query string,
// run the ownership checks in order (user, category, blog), decode the body if
// there is one, make one service call, and write an envelope such as
// {"message": "...", "blog": {...}}.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/blog-api/internal/apperror"
)

type messageResponse struct {
	Message string `json:"message"`
}

// failureResponse is the body of every 500. Detail is the raw error text.
type failureResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// writeError maps err to a response.
//
//	ErrValidation, ErrInvalidID → 400 {message}
//	ErrNotFound                 → 404 {message}
//	anything else               → 500 {message: failMsg, detail: err.Error()}
func writeError(w http.ResponseWriter, logger *slog.Logger, err error, failMsg string) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(err, apperror.ErrValidation), errors.Is(err, apperror.ErrInvalidID):
			writeMessage(w, http.StatusBadRequest, appErr.Message)
			return
		case errors.Is(err, apperror.ErrNotFound):
			writeMessage(w, http.StatusNotFound, appErr.Message)
			return
		}
	}

	logger.Error(failMsg, slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, failureResponse{
		Message: failMsg,
		Detail:  err.Error(),
	})
}

// decodeJSON reads the request body into v. A malformed or empty body is an
// ordinary error and therefore answered with a 500.
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
