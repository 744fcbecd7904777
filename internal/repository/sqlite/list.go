package sqlite

import (
	"strings"

	"github.com/sakif/blog-api/internal/repository"
)

// whereBuilder accumulates AND-ed conditions and their positional arguments.
type whereBuilder struct {
	conds []string
	args  []any
}

func (b *whereBuilder) add(cond string, args ...any) {
	b.conds = append(b.conds, cond)
	b.args = append(b.args, args...)
}

// addListOptions appends the keyword and createdAt range conditions.
//
// Keywords use instr() rather than LIKE so '%' and '_' in the search text are
// matched literally. lower() only folds ASCII, which matches what the API promises.
func (b *whereBuilder) addListOptions(opts repository.ListOptions) {
	if opts.Keywords != "" {
		b.add(`(instr(lower(title), lower(?)) > 0 OR instr(lower(description), lower(?)) > 0)`,
			opts.Keywords, opts.Keywords)
	}
	if opts.From != nil {
		b.add(`created_at >= ?`, toMillis(*opts.From))
	}
	if opts.To != nil {
		b.add(`created_at <= ?`, toMillis(*opts.To))
	}
}

func (b *whereBuilder) String() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// limitOffset returns the LIMIT/OFFSET arguments. SQLite treats a negative
// LIMIT as "no limit".
func limitOffset(opts repository.ListOptions) (int, int) {
	limit := opts.Limit
	if limit <= 0 {
		limit = -1
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
