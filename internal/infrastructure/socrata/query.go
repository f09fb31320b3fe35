package socrata

import (
	"net/url"
	"strconv"
	"strings"
)

// Condition проверка на равенство одной колонки. Условия Query
// объединяются через AND.
type Condition struct {
	Column string
	Value  string
}

func (c Condition) String() string {
	return c.Column + " = " + Quote(c.Value)
}

// Query SoQL-запрос к одному датасету.
type Query struct {
	Select []string
	Where  []Condition
	Group  []string
	Limit  int
}

// WhereClause собирает условия в одно выражение $where.
func (q Query) WhereClause() string {
	parts := make([]string, 0, len(q.Where))
	for _, c := range q.Where {
		parts = append(parts, c.String())
	}

	return strings.Join(parts, " AND ")
}

// Encode возвращает query string без ведущего '?'. Пробелы кодируются как
// %20, как описано в документации SODA.
func (q Query) Encode() string {
	values := url.Values{}

	if len(q.Select) > 0 {
		values.Set("$select", strings.Join(q.Select, ","))
	}

	if len(q.Where) > 0 {
		values.Set("$where", q.WhereClause())
	}

	if len(q.Group) > 0 {
		values.Set("$group", strings.Join(q.Group, ","))
	}

	if q.Limit > 0 {
		values.Set("$limit", strconv.Itoa(q.Limit))
	}

	// url.Values экранирует '+' как %2B, значит все оставшиеся '+' это пробелы.
	return strings.ReplaceAll(values.Encode(), "+", "%20")
}

// Quote превращает s в строковый литерал SoQL.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
