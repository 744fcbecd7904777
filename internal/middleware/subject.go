package middleware

import (
	"log/slog"
	"net/http"

	"github.com/sakif/blog-api/internal/auth"
)

// Subject adds the authenticated subject to the request log line. It belongs
// after auth.RequireBearer; verifiers that name no subject add nothing.
func Subject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if subject, ok := auth.SubjectFromContext(r.Context()); ok {
			Annotate(r.Context(), slog.String("subject", subject))
		}
		next.ServeHTTP(w, r)
	})
}
