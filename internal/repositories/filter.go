// file: internal/repositories/filter.go
package repositories

import (
	"fmt"
	"strings"
)

// Filter builds a parameterized WHERE clause. Every condition added
// binds its own argument, so a clause can never be appended without the
// parameter that backs it.
type Filter struct {
	clauses []string
	args    []interface{}
}

// NewFilter creates an empty filter
func NewFilter() *Filter {
	return &Filter{}
}

// Where appends a condition. expr uses one %s verb per value; each verb is
// replaced with the next positional placeholder and the value is bound to it.
//
//	f.Where("role = %s", role)
//	f.Where("(first_name ILIKE %s OR last_name ILIKE %s)", q, q)
func (f *Filter) Where(expr string, values ...interface{}) *Filter {
	placeholders := make([]interface{}, len(values))
	for i, v := range values {
		f.args = append(f.args, v)
		placeholders[i] = fmt.Sprintf("$%d", len(f.args))
	}
	f.clauses = append(f.clauses, fmt.Sprintf(expr, placeholders...))
	return f
}

// Empty reports whether no conditions were added
func (f *Filter) Empty() bool {
	return len(f.clauses) == 0
}

// SQL returns the WHERE clause (with leading " WHERE ", empty when no
// conditions) and the bound arguments in placeholder order.
func (f *Filter) SQL() (string, []interface{}) {
	if len(f.clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(f.clauses, " AND "), f.args
}

// NextPlaceholder returns the placeholder for one extra argument appended
// after the filter's own, for LIMIT/OFFSET style suffixes.
func (f *Filter) NextPlaceholder(offset int) string {
	return fmt.Sprintf("$%d", len(f.args)+offset)
}

// Args returns the bound arguments with extras appended
func (f *Filter) Args(extra ...interface{}) []interface{} {
	return append(f.args, extra...)
}
