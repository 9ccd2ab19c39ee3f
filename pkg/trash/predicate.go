package trash

import (
	"github.com/Masterminds/squirrel"

	"trash/pkg/trash/query"
	"trash/pkg/trash/schema"
)

// discardedExpr is the computed flag, selected AS discarded.
var discardedExpr = squirrel.Expr(schema.ColumnDiscardedAt + " IS NOT NULL")

// WithDiscarded restricts q to discarded rows. Existing filters are kept.
func WithDiscarded(q query.Query) query.Query {
	return q.Where(squirrel.NotEq{schema.ColumnDiscardedAt: nil})
}

// WithKept restricts q to kept rows. Existing filters are kept.
func WithKept(q query.Query) query.Query {
	return q.Where(squirrel.Eq{schema.ColumnDiscardedAt: nil})
}

// WithComputedProjection merges discarded_at and the computed discarded flag
// into the projection of q. Columns already selected stay in place.
// A select-all query already returns discarded_at, so only the flag is added.
func WithComputedProjection(q query.Query) query.Query {
	if !q.IsSelectAll() && !q.HasColumn(schema.ColumnDiscardedAt) {
		q = q.SelectMerge(schema.ColumnDiscardedAt, nil)
	}
	return q.SelectMerge(schema.ColumnDiscarded, discardedExpr)
}
