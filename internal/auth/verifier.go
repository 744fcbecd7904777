// Package auth guards the API with a bearer token and provides the pluggable
// ways of deciding whether a token is acceptable.
//
// REQUEST FLOW:
//
//	Authorization: Bearer <token>
//	      │
//	RequireBearer ── no header / wrong prefix / empty token ──▶ 401
//	      │
//	Verifier.Verify ── rejected ──▶ 401
//	      │
//	next handler (subject stored in the request context)
//
// Three verifiers exist, selected by configuration:
//   - AcceptAny: every non-empty token passes. This is the default and the one
//     tests use.
//   - TokenService: HS256 JWTs signed with a shared secret.
//   - GitHubVerifier: the token is a GitHub access token; GitHub's /user endpoint
//     decides.
package auth

import (
	"context"
	"errors"
)

// ErrRejected is returned by a Verifier when the token is not acceptable.
// Any other error means the verifier itself failed.
var ErrRejected = errors.New("auth: token rejected")

// Verifier decides whether a bearer token is acceptable and, when it can,
// names the subject the token belongs to.
type Verifier interface {
	Verify(ctx context.Context, token string) (subject string, err error)
}

// AcceptAny accepts every non-empty token. It has no notion of identity, so
// the subject is always empty.
type AcceptAny struct{}

func (AcceptAny) Verify(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrRejected
	}
	return "", nil
}
