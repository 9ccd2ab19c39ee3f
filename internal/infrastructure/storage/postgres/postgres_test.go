package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationURL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@localhost:5432/trash":   "pgx5://u:p@localhost:5432/trash",
		"postgresql://u:p@localhost:5432/trash": "pgx5://u:p@localhost:5432/trash",
		"pgx5://u:p@localhost/trash":            "pgx5://u:p@localhost/trash",
	}
	for in, want := range tests {
		assert.Equal(t, want, MigrationURL(in), in)
	}
}

func TestDefaultPoolConfig(t *testing.T) {
	cfg := DefaultPoolConfig("postgres://localhost/trash")

	assert.Equal(t, "postgres://localhost/trash", cfg.DSN)
	assert.Equal(t, "trash", cfg.ApplicationName)
	assert.Equal(t, int32(10), cfg.MaxConns)
	assert.LessOrEqual(t, cfg.MinConns, cfg.MaxConns)
	assert.Equal(t, time.Hour, cfg.MaxConnLifetime)
}

func TestDefaultTxOptions(t *testing.T) {
	opts := DefaultTxOptions()
	assert.Equal(t, 30*time.Second, opts.StatementTimeout)
}

func TestTxManager_NoTransactionInContext(t *testing.T) {
	txm := NewTxManagerFromRawPool(nil)
	ctx := context.Background()

	assert.Nil(t, txm.GetTx(ctx))

	_, err := NewBatchInserter(txm).CopyRows(ctx, "posts", []string{"id"}, [][]any{{1}})
	require.ErrorIs(t, err, ErrNoTransaction)
}

func TestRetryVersion(t *testing.T) {
	tests := []struct {
		dirty uint
		want  int
	}{
		{dirty: 1, want: -1},
		{dirty: 2, want: 1},
		{dirty: 7, want: 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, retryVersion(tt.dirty), "dirty version %d", tt.dirty)
	}
}
