// Package service holds the business rules between the HTTP handlers and the
// repositories.
//
// THE LAYERS:
//
//	Handler (HTTP)      → parses the request, runs the ownership checks, writes JSON
//	Service (business)  → validates input, performs exactly one store operation
//	Repository (data)   → sqlite or mongodb
//
// Services never see *http.Request and never return status codes. They return
// apperror values; the handler layer decides what status each one becomes.
//
// Ownership checks live on Checker rather than inside each service method because
// the order of checks and body parsing is part of the observable contract: a
// missing user is reported before a malformed body.
package service

import (
	"math"
	"time"

	"github.com/sakif/blog-api/internal/repository"
)

const DefaultListLimit = 10

// ListQuery is the page-based form of a list request.
type ListQuery struct {
	Page     int
	Limit    int
	Keywords string
	From     *time.Time
	To       *time.Time
}

// options converts page and limit to skip/limit. Page 1 is the first page;
// non-positive values fall back to the defaults. The limit is passed through
// uncapped. An offset that would overflow saturates at math.MaxInt, which
// is past the end of any collection.
func (q ListQuery) options() repository.ListOptions {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	page := q.Page
	if page < 1 {
		page = 1
	}

	offset := math.MaxInt
	if page-1 <= math.MaxInt/limit {
		offset = (page - 1) * limit
	}

	return repository.ListOptions{
		Limit:    limit,
		Offset:   offset,
		Keywords: q.Keywords,
		From:     q.From,
		To:       q.To,
	}
}
