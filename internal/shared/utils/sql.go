package utils

import (
	"fmt"
	"strings"
)

// JoinWithAnd joins a slice of strings with AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// JoinWithOr joins a slice of strings with OR operator
func JoinWithOr(clauses []string) string {
	return strings.Join(clauses, " OR ")
}

// Args collects positional query arguments and hands out $n placeholders.
type Args struct {
	values []interface{}
}

// Add appends v and returns its placeholder ("$3").
func (a *Args) Add(v interface{}) string {
	a.values = append(a.values, v)
	return fmt.Sprintf("$%d", len(a.values))
}

func (a *Args) Values() []interface{} {
	return a.values
}

func (a *Args) Len() int {
	return len(a.values)
}

// LikeContains escapes LIKE wildcards and wraps s for containment matching.
func LikeContains(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
