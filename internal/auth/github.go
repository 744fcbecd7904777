package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

const DefaultGitHubAPI = "https://api.github.com"

// GitHubUser is the part of GitHub's /user response the verifier reads.
type GitHubUser struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

// GitHubVerifier treats the bearer token as a GitHub access token and asks
// GitHub who it belongs to. The subject is the GitHub login.
//
// 200 means valid; 401 and 403 mean rejected; anything else is a verifier failure
// (GitHub down, rate limited) and is reported as such rather than as a rejection.
type GitHubVerifier struct {
	apiURL string
	base   *http.Client
}

var _ Verifier = (*GitHubVerifier)(nil)

// NewGitHubVerifier creates a verifier against apiURL (DefaultGitHubAPI when empty).
// base is the transport underneath the oauth2 client; nil uses http.DefaultClient.
func NewGitHubVerifier(apiURL string, base *http.Client) *GitHubVerifier {
	if apiURL == "" {
		apiURL = DefaultGitHubAPI
	}
	return &GitHubVerifier{apiURL: strings.TrimRight(apiURL, "/"), base: base}
}

func (g *GitHubVerifier) Verify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrRejected
	}

	// oauth2.NewClient picks up the base client from the context and adds
	// "Authorization: Bearer <token>" to every request.
	if g.base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, g.base)
	}
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.apiURL+"/user", nil)
	if err != nil {
		return "", fmt.Errorf("auth: building GitHub request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("auth: calling GitHub /user API: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", fmt.Errorf("%w: GitHub returned status %d", ErrRejected, resp.StatusCode)
	default:
		return "", fmt.Errorf("auth: GitHub /user API returned status %d", resp.StatusCode)
	}

	var user GitHubUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", fmt.Errorf("auth: decoding GitHub /user response: %w", err)
	}
	if user.ID == 0 {
		return "", fmt.Errorf("%w: GitHub returned an invalid user (ID = 0)", ErrRejected)
	}
	return user.Login, nil
}
