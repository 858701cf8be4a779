package storepg

import (
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func quoteAll(names []string) []string {
	res := make([]string, 0, len(names))
	for _, n := range names {
		res = append(res, pq.QuoteIdentifier(n))
	}
	return res
}

// rawPredicate escapes '?' so that squirrel's placeholder rewriting leaves the operator's
// predicate untouched.
func rawPredicate(condition string) string {
	return "(" + strings.ReplaceAll(condition, "?", "??") + ")"
}
