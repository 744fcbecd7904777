package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/service"
)

const dateOnly = "2006-01-02"

// parseListQuery reads page, limit, keywords, startDate and endDate.
//
// Non-numeric page or limit fall back to the service defaults. Dates accept
// RFC 3339 or YYYY-MM-DD (midnight UTC); anything else is a 400.
func parseListQuery(r *http.Request) (service.ListQuery, error) {
	q := r.URL.Query()

	from, err := parseDate(q.Get("startDate"), "startDate")
	if err != nil {
		return service.ListQuery{}, err
	}
	to, err := parseDate(q.Get("endDate"), "endDate")
	if err != nil {
		return service.ListQuery{}, err
	}

	return service.ListQuery{
		Page:     atoiOrZero(q.Get("page")),
		Limit:    atoiOrZero(q.Get("limit")),
		Keywords: strings.TrimSpace(q.Get("keywords")),
		From:     from,
		To:       to,
	}, nil
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func parseDate(s, field string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	for _, layout := range []string{time.RFC3339Nano, dateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, apperror.ValidationFailed(field, "Invalid "+field)
}
