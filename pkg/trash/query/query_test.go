package query

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_ToSql(t *testing.T) {
	tests := []struct {
		name     string
		q        Query
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "SelectAll",
			q:       From("posts"),
			wantSQL: "SELECT * FROM posts",
		},
		{
			name:    "Projection",
			q:       From("posts", "id", "title"),
			wantSQL: "SELECT id, title FROM posts",
		},
		{
			name:     "Filters",
			q:        From("posts", "id").Where(squirrel.Eq{"title": "Hello"}).Where(squirrel.Gt{"id": 3}),
			wantSQL:  "SELECT id FROM posts WHERE title = $1 AND id > $2",
			wantArgs: []any{"Hello", 3},
		},
		{
			name:     "WhereEq",
			q:        From("posts", "id").WhereEq(map[string]any{"author": "ada"}),
			wantSQL:  "SELECT id FROM posts WHERE author = $1",
			wantArgs: []any{"ada"},
		},
		{
			name:    "OrderLimitOffset",
			q:       From("posts", "id").OrderBy("title DESC").Limit(10).Offset(5),
			wantSQL: "SELECT id FROM posts ORDER BY title DESC LIMIT 10 OFFSET 5",
		},
		{
			name:    "Prefix",
			q:       From("posts", "id").Prefix("blog"),
			wantSQL: "SELECT id FROM blog.posts",
		},
		{
			name:    "MergeExpression",
			q:       From("posts", "id").SelectMerge("flag", squirrel.Expr("id > 1")),
			wantSQL: "SELECT id, (id > 1) AS flag FROM posts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := tt.q.ToSql()
			require.NoError(t, err)

			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, len(tt.wantArgs), len(args))
			for i := range tt.wantArgs {
				assert.Equal(t, tt.wantArgs[i], args[i])
			}
		})
	}
}

func TestQuery_Immutable(t *testing.T) {
	base := From("posts", "id").Where(squirrel.Eq{"author": "ada"})

	a := base.Where(squirrel.Eq{"title": "a"})
	b := base.Where(squirrel.Eq{"title": "b"})
	_ = base.SelectMerge("title", nil)

	assert.Equal(t, 1, base.Filters())
	assert.Equal(t, []string{"id"}, base.Columns())

	sqlA, argsA, err := a.ToSql()
	require.NoError(t, err)
	sqlB, argsB, err := b.ToSql()
	require.NoError(t, err)

	assert.Equal(t, sqlA, sqlB)
	assert.Equal(t, []any{"ada", "a"}, argsA)
	assert.Equal(t, []any{"ada", "b"}, argsB)
}

func TestQuery_SelectMergeReplacesSameName(t *testing.T) {
	q := From("posts", "id", "title").
		SelectMerge("title", nil).
		SelectMerge("id", squirrel.Expr("id::text"))

	assert.Equal(t, []string{"id", "title"}, q.Columns())

	sql, _, err := q.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT (id::text) AS id, title FROM posts", sql)
}

func TestQuery_Accessors(t *testing.T) {
	q := From("posts").Prefix("tenant_a").Limit(2)

	assert.Equal(t, "posts", q.Table())
	assert.Equal(t, "tenant_a.posts", q.Source())
	assert.True(t, q.IsSelectAll())
	assert.False(t, q.HasColumn("id"))
	assert.Equal(t, uint64(2), q.LimitValue())

	q = q.Select("id")
	assert.True(t, q.HasColumn("id"))
	assert.False(t, q.IsSelectAll())
	assert.Equal(t, "posts", q.Prefix("").Source())
}

func TestQuery_SelectAllKeepsStarAfterMerge(t *testing.T) {
	q := From("posts").SelectMerge("flag", squirrel.Expr("id > 1"))

	assert.True(t, q.IsSelectAll())
	assert.Equal(t, []string{"flag"}, q.Columns())

	sql, _, err := q.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT *, (id > 1) AS flag FROM posts", sql)
}

func TestQuery_Expand(t *testing.T) {
	t.Run("SelectAll", func(t *testing.T) {
		q := From("posts").SelectMerge("flag", squirrel.Expr("id > 1")).Expand("id", "title")

		assert.False(t, q.IsSelectAll())
		sql, _, err := q.ToSql()
		require.NoError(t, err)
		assert.Equal(t, "SELECT id, title, (id > 1) AS flag FROM posts", sql)
	})

	t.Run("ExplicitProjectionUntouched", func(t *testing.T) {
		q := From("posts", "title").Expand("id", "title")
		assert.Equal(t, []string{"title"}, q.Columns())
	})
}
