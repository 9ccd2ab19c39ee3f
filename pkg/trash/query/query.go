// Package query provides Query, an immutable description of a fetch from one
// table. Queries are composed by value and rendered to SQL with squirrel only
// when a data store executes them.
package query

import (
	"slices"

	"github.com/Masterminds/squirrel"
)

// column is one projected output. expr is nil for plain table columns.
type column struct {
	name string
	expr squirrel.Sqlizer
}

// Query describes what to fetch: source table, projection, filters, ordering
// and paging. An empty Select projects every column; columns merged later are
// added next to "*".
//
// Every method returns a new Query; the receiver is never modified, so a
// Query can be shared and extended freely.
type Query struct {
	table   string
	prefix  string
	star    bool
	columns []column
	where   []squirrel.Sqlizer
	orderBy []string
	limit   uint64
	offset  uint64
}

// From starts a query over table, optionally projecting columns.
func From(table string, columns ...string) Query {
	return Query{table: table}.Select(columns...)
}

// Table returns the unqualified table name.
func (q Query) Table() string {
	return q.table
}

// Source returns the table name qualified with the prefix, if any.
func (q Query) Source() string {
	if q.prefix == "" {
		return q.table
	}
	return q.prefix + "." + q.table
}

// Prefix qualifies the table with a schema name. An empty prefix clears it.
func (q Query) Prefix(schema string) Query {
	q.prefix = schema
	return q
}

// Select replaces the projection. No columns means every column.
func (q Query) Select(columns ...string) Query {
	cols := make([]column, 0, len(columns))
	for _, name := range columns {
		cols = append(cols, column{name: name})
	}
	q.columns = cols
	q.star = len(cols) == 0
	return q
}

// Expand replaces "*" with columns, keeping columns merged since. A query
// with an explicit projection is returned as is.
func (q Query) Expand(columns ...string) Query {
	if !q.IsSelectAll() {
		return q
	}

	cols := make([]column, 0, len(columns)+len(q.columns))
	for _, name := range columns {
		if !q.HasColumn(name) {
			cols = append(cols, column{name: name})
		}
	}
	q.columns = append(cols, q.columns...)
	q.star = false
	return q
}

// SelectMerge adds a column to the projection, keeping what is already
// selected. A nil expr projects the table column of that name; otherwise expr
// is selected under the alias name. An existing column with the same name is
// replaced in place.
func (q Query) SelectMerge(name string, expr squirrel.Sqlizer) Query {
	cols := slices.Clone(q.columns)
	col := column{name: name, expr: expr}

	if i := slices.IndexFunc(cols, func(c column) bool { return c.name == name }); i >= 0 {
		cols[i] = col
	} else {
		cols = append(cols, col)
	}

	q.columns = cols
	return q
}

// Where adds a filter. Filters are combined with AND.
func (q Query) Where(pred squirrel.Sqlizer) Query {
	q.where = append(slices.Clone(q.where), pred)
	return q
}

// WhereEq adds an equality filter per key; a nil value matches IS NULL.
func (q Query) WhereEq(clauses map[string]any) Query {
	if len(clauses) == 0 {
		return q
	}
	return q.Where(squirrel.Eq(clauses))
}

// OrderBy appends ordering expressions such as "title DESC".
func (q Query) OrderBy(orderBys ...string) Query {
	q.orderBy = append(slices.Clone(q.orderBy), orderBys...)
	return q
}

// Limit caps the number of rows. Zero removes the cap.
func (q Query) Limit(n uint64) Query {
	q.limit = n
	return q
}

// Offset skips n rows.
func (q Query) Offset(n uint64) Query {
	q.offset = n
	return q
}

// LimitValue returns the row cap, zero when unlimited.
func (q Query) LimitValue() uint64 {
	return q.limit
}

// IsSelectAll reports whether the projection includes "*".
func (q Query) IsSelectAll() bool {
	return q.star || len(q.columns) == 0
}

// Columns returns the output names of the projection, "*" excluded.
func (q Query) Columns() []string {
	names := make([]string, len(q.columns))
	for i, c := range q.columns {
		names[i] = c.name
	}
	return names
}

// HasColumn reports whether name is projected explicitly.
func (q Query) HasColumn(name string) bool {
	return slices.ContainsFunc(q.columns, func(c column) bool { return c.name == name })
}

// Filters returns the number of filters applied.
func (q Query) Filters() int {
	return len(q.where)
}

// Builder renders the query as a squirrel select with $n placeholders.
func (q Query) Builder() squirrel.SelectBuilder {
	b := squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Select().
		From(q.Source())

	if q.IsSelectAll() {
		b = b.Columns("*")
	}
	for _, c := range q.columns {
		if c.expr == nil {
			b = b.Columns(c.name)
		} else {
			b = b.Column(squirrel.Alias(c.expr, c.name))
		}
	}

	for _, pred := range q.where {
		b = b.Where(pred)
	}
	if len(q.orderBy) > 0 {
		b = b.OrderBy(q.orderBy...)
	}
	if q.limit > 0 {
		b = b.Limit(q.limit)
	}
	if q.offset > 0 {
		b = b.Offset(q.offset)
	}
	return b
}

// ToSql implements squirrel.Sqlizer.
func (q Query) ToSql() (string, []any, error) {
	return q.Builder().ToSql()
}
