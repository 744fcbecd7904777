package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

type contextKey string

const subjectKey contextKey = "subject"

const bearerPrefix = "Bearer "

var unauthorizedBody = []byte(`{"message":"Unauthorized"}`)

// RequireBearer rejects any request whose Authorization header does not carry
// a token the verifier accepts. Rejected requests get 401 {"message":"Unauthorized"}
// and never reach next.
//
// The prefix match is literal and case-sensitive: "bearer x" and "Bearer" with
// nothing after it are both rejected.
func RequireBearer(v Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w)
				return
			}

			subject, err := v.Verify(r.Context(), token)
			if err != nil {
				if !errors.Is(err, ErrRejected) {
					logger.Error("token verification failed",
						slog.String("path", r.URL.Path),
						slog.String("error", err.Error()),
					)
				}
				unauthorized(w)
				return
			}

			if subject != "" {
				r = r.WithContext(context.WithValue(r.Context(), subjectKey, subject))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SubjectFromContext returns the subject the verifier attached, if any.
func SubjectFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey).(string)
	return s, ok && s != ""
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, bearerPrefix)
	if !found || token == "" {
		return "", false
	}
	return token, true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write(unauthorizedBody)
}
